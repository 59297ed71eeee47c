package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	stdsync "sync"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// Storage keys inside the local key-value database.
const (
	wordsKey      = "word-assistant-words"
	lastSyncedKey = "word-assistant-last-synced"
	tokenKey      = "word-assistant-token"
)

// WordStore is the client's in-memory word collection, keyed by the
// normalized word. Every mutation is written through to local storage
// before it returns, so a process exit never loses an edit.
type WordStore struct {
	mu       stdsync.Mutex
	words    map[string]word.Record
	storage  *SQLiteStorage
	onChange func()
}

// NewWordStore loads the persisted collection from storage.
func NewWordStore(storage *SQLiteStorage) (*WordStore, error) {
	s := &WordStore{
		words:   make(map[string]word.Record),
		storage: storage,
	}

	raw, err := storage.Get(wordsKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("load words: %w", err)
	}

	var records []word.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}
	for _, rec := range records {
		s.words[word.Normalize(rec.Word)] = rec
	}
	return s, nil
}

// OnChange registers a callback fired after every local mutation.
// ReplaceAll does not fire it, applying a sync result must not
// schedule another sync.
func (s *WordStore) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// All returns a copy of the collection sorted by word.
func (s *WordStore) All() []word.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]word.Record, 0, len(s.words))
	for _, rec := range s.words {
		records = append(records, rec.Clone())
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Word < records[j].Word
	})
	return records
}

// FindByWord looks up a record by its normalized form.
func (s *WordStore) FindByWord(normalized string) (*word.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.words[normalized]
	if !ok {
		return nil, false
	}
	clone := rec.Clone()
	return &clone, true
}

func (s *WordStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.words)
}

// Upsert stores a record, persists the collection and notifies the
// change listener.
func (s *WordStore) Upsert(rec word.Record) error {
	s.mu.Lock()
	s.words[word.Normalize(rec.Word)] = rec.Clone()
	err := s.persistLocked()
	fn := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if fn != nil {
		fn()
	}
	return nil
}

// ReplaceAll atomically swaps the whole collection for the merged
// result of a sync. The change listener is deliberately not fired.
func (s *WordStore) ReplaceAll(records []word.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	words := make(map[string]word.Record, len(records))
	for _, rec := range records {
		words[word.Normalize(rec.Word)] = rec.Clone()
	}
	s.words = words
	return s.persistLocked()
}

func (s *WordStore) persistLocked() error {
	records := make([]word.Record, 0, len(s.words))
	for _, rec := range s.words {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Word < records[j].Word
	})

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	if err := s.storage.Set(wordsKey, raw); err != nil {
		return fmt.Errorf("persist words: %w", err)
	}
	return nil
}
