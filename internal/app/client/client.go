package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/app/client/config"
	"github.com/wuntoguo/word-assistant/internal/domain/review"
	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// App wires the client together: local storage, the in-memory word
// store, the sync engine, the server API and the dictionary lookup.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *SQLiteStorage
	store   *WordStore
	api     *httpClient
	dict    *DictionaryClient
	engine  *Engine
}

func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	store, err := NewWordStore(storage)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("load word store: %w", err)
	}

	api := NewHTTPClient(cfg, log)
	engine, err := NewEngine(store, api, storage,
		time.Duration(cfg.DebounceMillis)*time.Millisecond,
		time.Duration(cfg.SyncInterval)*time.Second,
		log)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("init sync engine: %w", err)
	}

	return &App{
		cfg:     cfg,
		log:     log,
		storage: storage,
		store:   store,
		api:     api,
		dict:    NewDictionaryClient(cfg.DictionaryURL, log),
		engine:  engine,
	}, nil
}

// Engine exposes the sync engine for status display and manual syncs.
func (a *App) Engine() *Engine {
	return a.engine
}

// Close flushes any pending sync and closes local storage.
func (a *App) Close() error {
	if a.engine.LoggedIn() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.engine.Flush(ctx); err != nil {
			a.log.Warn("final sync failed", slog.String("error", err.Error()))
		}
	}
	return a.storage.Close()
}

// Register creates a server account.
func (a *App) Register(ctx context.Context, login, password string) error {
	return a.api.Register(ctx, login, password)
}

// Login authenticates and stores the session token. The follow-up
// sync pulls the account's words into the local store.
func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.api.Login(ctx, login, password)
	if err != nil {
		return err
	}
	if err := a.engine.SetCredential(token); err != nil {
		return err
	}
	return a.engine.FullSync(ctx)
}

// Logout revokes the session server-side and drops the local token.
// The local word collection stays, the app works offline.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn("server logout failed", slog.String("error", err.Error()))
	}
	return a.engine.ClearCredential()
}

// Whoami returns the logged-in account's login.
func (a *App) Whoami(ctx context.Context) (string, error) {
	if !a.engine.LoggedIn() {
		return "", errors.New("not logged in")
	}
	return a.api.Me(ctx)
}

// AddWord looks a word up in the dictionary and stores it with a
// fresh learning state. Adding an archived word un-archives it
// instead. A dictionary outage degrades to a bare entry, the word is
// never lost over it.
func (a *App) AddWord(ctx context.Context, raw string) (*word.Record, error) {
	normalized := word.Normalize(raw)
	if normalized == "" {
		return nil, word.ErrInvalidWord
	}

	if existing, ok := a.store.FindByWord(normalized); ok {
		if !existing.Archived {
			return nil, fmt.Errorf("%q is already in your list", normalized)
		}
		restored := existing.Clone()
		restored.Archived = false
		restored.UpdatedAt = time.Now().UTC()
		if err := a.store.Upsert(restored); err != nil {
			return nil, err
		}
		return &restored, nil
	}

	now := time.Now().UTC()
	rec := word.Record{
		ID:             uuid.NewString(),
		Word:           normalized,
		DateAdded:      word.DateOf(now),
		NextReviewDate: word.NextReviewDate(0, now),
		UpdatedAt:      now,
	}

	lookup, err := a.dict.Lookup(ctx, normalized)
	switch {
	case err == nil:
		rec.Phonetic = lookup.Phonetic
		rec.AudioURL = lookup.AudioURL
		rec.AudioAccent = lookup.AudioAccent
		rec.PartOfSpeech = lookup.PartOfSpeech
		rec.Definitions = lookup.Definitions
		rec.Examples = lookup.Examples
	case errors.Is(err, ErrWordNotFound):
		return nil, err
	default:
		a.log.Warn("dictionary lookup failed, storing bare word",
			slog.String("word", normalized),
			slog.String("error", err.Error()),
		)
	}

	if err := a.store.Upsert(rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListWords returns the collection, without archived words unless
// asked for.
func (a *App) ListWords(includeArchived bool) []word.Record {
	all := a.store.All()
	if includeArchived {
		return all
	}
	active := make([]word.Record, 0, len(all))
	for _, rec := range all {
		if !rec.Archived {
			active = append(active, rec)
		}
	}
	return active
}

// ArchiveWord hides a word from listings and reviews without deleting
// its learning history.
func (a *App) ArchiveWord(raw string) error {
	return a.setArchived(raw, true)
}

// UnarchiveWord brings an archived word back into rotation.
func (a *App) UnarchiveWord(raw string) error {
	return a.setArchived(raw, false)
}

func (a *App) setArchived(raw string, archived bool) error {
	normalized := word.Normalize(raw)
	rec, ok := a.store.FindByWord(normalized)
	if !ok {
		return word.ErrNotFound
	}
	if rec.Archived == archived {
		return nil
	}
	updated := rec.Clone()
	updated.Archived = archived
	updated.UpdatedAt = time.Now().UTC()
	return a.store.Upsert(updated)
}

// ReviewBatch returns today's words to review, weakest first.
func (a *App) ReviewBatch(limit int) []word.Record {
	today := word.DateOf(time.Now().UTC())
	return review.DailyBatch(review.Due(a.store.All(), today), limit)
}

// DueCount returns how many words are due today in total.
func (a *App) DueCount() int {
	today := word.DateOf(time.Now().UTC())
	return len(review.Due(a.store.All(), today))
}

// ApplyReview records one review outcome and reschedules the word.
func (a *App) ApplyReview(raw string, remembered bool) (*word.Record, error) {
	normalized := word.Normalize(raw)
	rec, ok := a.store.FindByWord(normalized)
	if !ok {
		return nil, word.ErrNotFound
	}

	updated := review.ApplyOutcome(*rec, remembered, time.Now().UTC())
	if err := a.store.Upsert(updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Stats summarizes the collection's learning progress.
func (a *App) Stats() review.Stats {
	return review.Summarize(a.store.All())
}

// WeeklyAdded returns the words added in the week at the given offset
// from the current one, 0 meaning this week.
func (a *App) WeeklyAdded(offsetWeeks int) (review.WeekRange, []word.Record) {
	week := review.Week(time.Now().UTC(), offsetWeeks)
	return week, review.AddedIn(a.store.All(), week)
}

// SyncNow forces an immediate full sync.
func (a *App) SyncNow(ctx context.Context) error {
	if !a.engine.LoggedIn() {
		return errors.New("not logged in")
	}
	return a.engine.FullSync(ctx)
}

// HealthCheck probes the server and flips the engine's online state
// accordingly.
func (a *App) HealthCheck(ctx context.Context) error {
	err := a.api.HealthCheck(ctx)
	a.engine.SetOnline(err == nil)
	return err
}
