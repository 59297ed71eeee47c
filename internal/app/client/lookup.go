package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// ErrWordNotFound is returned when the dictionary has no entry for a
// word.
var ErrWordNotFound = errors.New("word not found in dictionary")

const (
	maxDefinitions = 3
	maxExamples    = 4
)

// LookupResult is the dictionary data attached to a newly added word.
type LookupResult struct {
	Word         string
	Phonetic     string
	AudioURL     string
	AudioAccent  string
	PartOfSpeech string
	Definitions  []string
	Examples     []string
}

// DictionaryClient looks words up on a dictionaryapi.dev compatible
// endpoint.
type DictionaryClient struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
}

func NewDictionaryClient(baseURL string, log *slog.Logger) *DictionaryClient {
	return &DictionaryClient{
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log.With(slog.String("component", "dictionary_client")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type dictEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup fetches dictionary data for a word. Audio prefers the US
// pronunciation, then UK, then AU, and the IPA text follows the US
// entry when it has one.
func (c *DictionaryClient) Lookup(ctx context.Context, w string) (*LookupResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/"+url.PathEscape(w), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrWordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	var entries []dictEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrWordNotFound
	}

	first := entries[0]
	result := &LookupResult{Word: first.Word, Phonetic: pickPhonetic(first)}

	result.AudioURL, result.AudioAccent = pickAudio(first)

	// With several meanings a bare definition is ambiguous, so each one
	// gets tagged with its part of speech.
	tagged := len(first.Meanings) > 1
	for _, m := range first.Meanings {
		if result.PartOfSpeech == "" {
			result.PartOfSpeech = m.PartOfSpeech
		}
		for _, d := range m.Definitions {
			if len(result.Definitions) < maxDefinitions && d.Definition != "" {
				def := d.Definition
				if tagged {
					def = "(" + m.PartOfSpeech + ") " + def
				}
				result.Definitions = append(result.Definitions, def)
			}
			if len(result.Examples) < maxExamples && d.Example != "" {
				result.Examples = append(result.Examples, d.Example)
			}
		}
	}

	// Secondary entries sometimes carry examples the first one lacks,
	// but only a sparse primary entry is worth mining them for.
	if len(result.Examples) < 2 {
		for _, entry := range entries[1:] {
			if len(result.Examples) >= maxExamples {
				break
			}
			for _, m := range entry.Meanings {
				for _, d := range m.Definitions {
					if len(result.Examples) >= maxExamples {
						break
					}
					if d.Example != "" && !slices.Contains(result.Examples, d.Example) {
						result.Examples = append(result.Examples, d.Example)
					}
				}
			}
		}
	}

	c.log.Debug("dictionary lookup",
		slog.String("word", w),
		slog.Int("definitions", len(result.Definitions)),
		slog.Int("examples", len(result.Examples)),
	)
	return result, nil
}

// pickPhonetic chooses the IPA text: the US pronunciation entry's text
// first, then any entry with text, then the top-level field.
func pickPhonetic(entry dictEntry) string {
	var anyText string
	for _, p := range entry.Phonetics {
		if p.Text == "" {
			continue
		}
		if strings.Contains(p.Audio, "-us") {
			return p.Text
		}
		if anyText == "" {
			anyText = p.Text
		}
	}
	if anyText != "" {
		return anyText
	}
	return entry.Phonetic
}

// pickAudio chooses a pronunciation by accent preference.
func pickAudio(entry dictEntry) (string, string) {
	accents := []struct {
		suffix string
		label  string
	}{
		{"-us.mp3", "US"},
		{"-uk.mp3", "UK"},
		{"-au.mp3", "AU"},
	}
	for _, accent := range accents {
		for _, p := range entry.Phonetics {
			if strings.HasSuffix(p.Audio, accent.suffix) {
				return p.Audio, accent.label
			}
		}
	}
	// Fall back to any audio at all, accent unknown.
	for _, p := range entry.Phonetics {
		if p.Audio != "" {
			return p.Audio, ""
		}
	}
	return "", ""
}
