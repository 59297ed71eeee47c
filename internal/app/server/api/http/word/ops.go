package word

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "words-list",
		Method:      http.MethodGet,
		Path:        "/api/words",
		Summary:     "List the user's full word collection",
		Tags:        []string{"words"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
