package sync

import "github.com/wuntoguo/word-assistant/internal/domain/sync"

type syncInput struct {
	Body sync.SyncRequest
}

type syncOutput struct {
	Body sync.SyncResponse
}
