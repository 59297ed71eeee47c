package word

import "github.com/wuntoguo/word-assistant/internal/domain/sync"

type listInput struct{}

type listOutput struct {
	Body sync.WordsResponse
}
