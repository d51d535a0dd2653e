// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/types"
)

// LayoutDependencies defines the interface for layout computation.
type LayoutDependencies interface {
	Layout(ctx context.Context, payload model.MatchPayload, width float64) (types.LayoutResult, model.MatchContext)
}

// LayoutHandler handles layout requests.
type LayoutHandler struct {
	deps LayoutDependencies
}

// NewLayoutHandler creates a new layout handler.
func NewLayoutHandler(deps LayoutDependencies) *LayoutHandler {
	return &LayoutHandler{deps: deps}
}

// layoutResponse is the shape returned by POST /layout.
type layoutResponse struct {
	Match  model.MatchContext `json:"match"`
	Layout types.LayoutResult `json:"layout"`
}

// HandlePostLayout handles POST /layout?width=N requests. The body is
// the raw provider match document; width falls back to the service
// default when absent.
func (h *LayoutHandler) HandlePostLayout(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_layout"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var width float64
	if widthStr := r.URL.Query().Get("width"); widthStr != "" {
		parsed, err := strconv.ParseFloat(widthStr, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		width = parsed
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, match := h.deps.Layout(r.Context(), payload, width)
	writeJSON(w, http.StatusOK, layoutResponse{Match: match, Layout: result})
}
