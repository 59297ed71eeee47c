package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/app/client/config"
	"github.com/wuntoguo/word-assistant/internal/domain/sync"
)

// ErrUnauthorized is returned when the server rejects the session
// token. Callers should drop the stored credential and ask the user to
// log in again.
var ErrUnauthorized = errors.New("unauthorized")

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   cfg.ServerAddress,
		userAgent: "WordAssistant-Client/1.0",
	}
}

// SetToken sets the bearer token used on authenticated requests.
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck probes server availability.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

type registerResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Register creates a server account.
func (h *httpClient) Register(ctx context.Context, login, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/register", map[string]string{
		"login":    login,
		"password": password,
	})
	if err != nil {
		return err
	}

	var out registerResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return err
	}
	if out.Status != "Ok" {
		return fmt.Errorf("registration failed: %s", out.Error)
	}
	return nil
}

type loginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Login authenticates and returns a bearer token.
func (h *httpClient) Login(ctx context.Context, login, password string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/login", map[string]string{
		"login":    login,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var out loginResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	if out.Status != "Ok" || out.Token == "" {
		return "", fmt.Errorf("login failed: %s", out.Error)
	}
	return out.Token, nil
}

// Logout revokes the current session server-side.
func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/logout", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

type meResponse struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
}

// Me returns the login of the authenticated account.
func (h *httpClient) Me(ctx context.Context) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return "", err
	}

	var out meResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	return out.Login, nil
}

// SyncWords posts the client's words and cursor, and returns the
// server's merged changes.
func (h *httpClient) SyncWords(ctx context.Context, req sync.SyncRequest) (*sync.SyncResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/sync", req)
	if err != nil {
		return nil, err
	}

	var out sync.SyncResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Words fetches the full server collection.
func (h *httpClient) Words(ctx context.Context) (*sync.WordsResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/words", nil)
	if err != nil {
		return nil, err
	}

	var out sync.WordsResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request",
		slog.String("method", method),
		slog.String("url", req.URL.String()),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
