package sync

import (
	"time"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// SyncRequest is the client's sync payload: its cursor and the records it
// has touched since then. A nil cursor means the client sends everything.
type SyncRequest struct {
	LastSyncedAt *time.Time    `json:"lastSyncedAt,omitempty" format:"date-time"`
	ClientWords  []word.Record `json:"clientWords"`
}

// SyncResponse carries everything the server knows to be newer than the
// client's cursor, including the records just merged in this round, plus the
// new cursor the client should store.
type SyncResponse struct {
	ServerWords []word.Record `json:"serverWords"`
	SyncedAt    time.Time     `json:"syncedAt" format:"date-time"`
}

// WordsResponse is the full-collection fallback payload.
type WordsResponse struct {
	Words []word.Record `json:"words"`
}
