package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/domain/sync"
	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// Status is the engine's externally visible sync state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusOffline Status = "offline"
	StatusError   Status = "error"
)

// serverAPI is the part of the HTTP client the engine needs.
type serverAPI interface {
	SyncWords(ctx context.Context, req sync.SyncRequest) (*sync.SyncResponse, error)
	SetToken(token string)
}

// Engine keeps the local word store and the server converged.
//
// Local edits arrive through the store's change callback and are
// coalesced with a trailing debounce before a sync runs. At most one
// sync is in flight at a time, a trigger while one runs is skipped
// rather than queued, the periodic pass picks the changes up. The
// cursor (last synced timestamp) only advances after a sync fully
// succeeds, a failed round leaves both cursor and local data
// untouched. A delta round pushes only records edited after the
// cursor, a full round ignores the cursor and pushes everything.
type Engine struct {
	store   *WordStore
	api     serverAPI
	storage *SQLiteStorage
	log     *slog.Logger

	debounce time.Duration
	interval time.Duration

	mu            stdsync.Mutex
	status        Status
	lastError     error
	online        bool
	syncing       bool
	token         string
	lastSyncedAt  *time.Time
	debounceTimer *time.Timer
}

func NewEngine(store *WordStore, api serverAPI, storage *SQLiteStorage, debounce, interval time.Duration, log *slog.Logger) (*Engine, error) {
	e := &Engine{
		store:    store,
		api:      api,
		storage:  storage,
		log:      log.With(slog.String("component", "sync_engine")),
		debounce: debounce,
		interval: interval,
		status:   StatusIdle,
		online:   true,
	}

	if err := e.loadState(); err != nil {
		return nil, err
	}
	store.OnChange(e.TriggerSync)
	return e, nil
}

func (e *Engine) loadState() error {
	raw, err := e.storage.Get(lastSyncedKey)
	if err == nil {
		var at time.Time
		if err := json.Unmarshal(raw, &at); err != nil {
			return fmt.Errorf("decode sync cursor: %w", err)
		}
		e.lastSyncedAt = &at
	} else if !errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("load sync cursor: %w", err)
	}

	token, err := e.storage.Get(tokenKey)
	if err == nil {
		e.token = string(token)
		e.api.SetToken(e.token)
	} else if !errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("load token: %w", err)
	}
	return nil
}

// Status returns the current sync state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// LastError returns the error of the most recent failed sync.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastError
}

// LastSyncedAt returns the current sync cursor, nil before the first
// successful sync.
func (e *Engine) LastSyncedAt() *time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastSyncedAt == nil {
		return nil
	}
	at := *e.lastSyncedAt
	return &at
}

// LoggedIn reports whether a credential is present.
func (e *Engine) LoggedIn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.token != ""
}

// SetOnline flips connectivity. Coming back online schedules a sync,
// going offline cancels any pending one.
func (e *Engine) SetOnline(online bool) {
	e.mu.Lock()
	wasOnline := e.online
	e.online = online
	if !online {
		e.status = StatusOffline
		if e.debounceTimer != nil {
			e.debounceTimer.Stop()
			e.debounceTimer = nil
		}
	}
	e.mu.Unlock()

	if online && !wasOnline {
		e.TriggerSync()
	}
}

// SetCredential stores the bearer token and schedules a sync so a
// fresh login pulls the server collection immediately.
func (e *Engine) SetCredential(token string) error {
	if err := e.storage.Set(tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	e.mu.Lock()
	e.token = token
	e.mu.Unlock()
	e.api.SetToken(token)

	e.TriggerSync()
	return nil
}

// ClearCredential drops the stored token and the sync cursor, the
// next login starts with a full sync.
func (e *Engine) ClearCredential() error {
	if err := e.storage.Delete(tokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if err := e.storage.Delete(lastSyncedKey); err != nil {
		return fmt.Errorf("delete sync cursor: %w", err)
	}

	e.mu.Lock()
	e.token = ""
	e.lastSyncedAt = nil
	e.status = StatusIdle
	e.mu.Unlock()
	e.api.SetToken("")
	return nil
}

// TriggerSync schedules a sync after the debounce window. Repeated
// triggers within the window coalesce into one run.
func (e *Engine) TriggerSync() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.online || e.token == "" {
		return
	}
	if e.debounceTimer != nil {
		e.debounceTimer.Stop()
	}
	e.debounceTimer = time.AfterFunc(e.debounce, func() {
		if err := e.PerformSync(context.Background()); err != nil {
			e.log.Warn("debounced sync failed", slog.String("error", err.Error()))
		}
	})
}

// FullSync syncs the complete collection by running one round without
// the cursor. The stored cursor is not touched up front, so a failed
// full sync leaves delta syncing intact, success overwrites it anyway.
// Like PerformSync it is a no-op while a round is already in flight.
func (e *Engine) FullSync(ctx context.Context) error {
	return e.performSync(ctx, true)
}

// PerformSync runs one delta sync round. A round already in flight
// makes this a no-op.
func (e *Engine) PerformSync(ctx context.Context) error {
	return e.performSync(ctx, false)
}

func (e *Engine) performSync(ctx context.Context, forceFull bool) error {
	e.mu.Lock()
	if e.syncing {
		e.mu.Unlock()
		return nil
	}
	if !e.online {
		e.status = StatusOffline
		e.mu.Unlock()
		return nil
	}
	if e.token == "" {
		e.mu.Unlock()
		return nil
	}
	e.syncing = true
	e.status = StatusSyncing
	cursor := e.lastSyncedAt
	if forceFull {
		cursor = nil
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	req := sync.SyncRequest{
		LastSyncedAt: cursor,
		ClientWords:  e.changedSince(cursor),
	}

	resp, err := e.api.SyncWords(ctx, req)
	if err != nil {
		return e.fail(err)
	}

	// Merge against a fresh snapshot: the user may have edited words
	// while the request was on the wire, those edits must survive.
	local := e.store.All()
	byWord := make(map[string]word.Record, len(local))
	for _, rec := range local {
		byWord[word.Normalize(rec.Word)] = rec
	}

	for _, sw := range resp.ServerWords {
		key := word.Normalize(sw.Word)
		if lw, ok := byWord[key]; ok {
			// Local id wins on this side so in-flight edits keyed by
			// id keep resolving.
			byWord[key] = word.Merge(lw, sw, resp.SyncedAt)
		} else {
			byWord[key] = sw
		}
	}

	merged := make([]word.Record, 0, len(byWord))
	for _, rec := range byWord {
		merged = append(merged, rec)
	}
	if err := e.store.ReplaceAll(merged); err != nil {
		return e.fail(fmt.Errorf("apply sync result: %w", err))
	}

	if err := e.saveCursor(resp.SyncedAt); err != nil {
		return e.fail(err)
	}

	e.mu.Lock()
	e.status = StatusSynced
	e.lastError = nil
	e.mu.Unlock()

	e.log.Debug("sync completed",
		slog.Int("sent", len(req.ClientWords)),
		slog.Int("received", len(resp.ServerWords)),
	)
	return nil
}

// changedSince picks the push payload for one round: everything when
// there is no cursor, otherwise only records edited after it. Records
// already stamped by a previous round are equal to the cursor, not
// after it, so a quiet collection pushes nothing.
func (e *Engine) changedSince(cursor *time.Time) []word.Record {
	all := e.store.All()
	if cursor == nil {
		return all
	}
	changed := make([]word.Record, 0, len(all))
	for _, rec := range all {
		if rec.UpdatedAt.After(*cursor) {
			changed = append(changed, rec)
		}
	}
	return changed
}

func (e *Engine) saveCursor(at time.Time) error {
	raw, err := json.Marshal(at)
	if err != nil {
		return fmt.Errorf("encode sync cursor: %w", err)
	}
	if err := e.storage.Set(lastSyncedKey, raw); err != nil {
		return fmt.Errorf("persist sync cursor: %w", err)
	}

	e.mu.Lock()
	e.lastSyncedAt = &at
	e.mu.Unlock()
	return nil
}

// fail records the error. A rejected token is dropped entirely, the
// session is gone and retrying with it is pointless.
func (e *Engine) fail(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		if cerr := e.ClearCredential(); cerr != nil {
			e.log.Error("clear credential", slog.String("error", cerr.Error()))
		}
	}

	e.mu.Lock()
	e.status = StatusError
	e.lastError = err
	e.mu.Unlock()

	e.log.Warn("sync failed", slog.String("error", err.Error()))
	return err
}

// StartAutoSync runs a periodic sync until the context is cancelled.
func (e *Engine) StartAutoSync(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.PerformSync(ctx); err != nil {
				e.log.Warn("periodic sync failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Flush cancels any pending debounce and syncs right now. Called
// before the process exits so short-lived CLI runs do not lose the
// trailing debounce window.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	if e.debounceTimer != nil {
		e.debounceTimer.Stop()
		e.debounceTimer = nil
	}
	e.mu.Unlock()
	return e.PerformSync(ctx)
}
