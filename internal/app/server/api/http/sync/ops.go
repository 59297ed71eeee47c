package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-words",
		Method:      http.MethodPost,
		Path:        "/api/sync",
		Summary:     "Merge client words with the server set",
		Description: "Accepts the client's words, merges them field by field and returns the server's changes since the client's cursor.",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
