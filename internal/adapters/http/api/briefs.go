// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/pitchline/internal/app"
	"github.com/okian/pitchline/internal/domain/model"
)

// BriefsDependencies defines the interface for brief resolution.
type BriefsDependencies interface {
	Briefs(ctx context.Context, payload model.MatchPayload) []service.ClusterBrief
}

// BriefsHandler handles brief resolution requests.
type BriefsHandler struct {
	deps BriefsDependencies
}

// NewBriefsHandler creates a new briefs handler.
func NewBriefsHandler(deps BriefsDependencies) *BriefsHandler {
	return &BriefsHandler{deps: deps}
}

// briefsResponse is the shape returned by POST /briefs. Pending briefs
// carry placeholder text; clients poll to observe resolved entries.
type briefsResponse struct {
	Briefs []service.ClusterBrief `json:"briefs"`
}

// HandlePostBriefs handles POST /briefs requests.
func (h *BriefsHandler) HandlePostBriefs(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_briefs"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, briefsResponse{Briefs: h.deps.Briefs(r.Context(), payload)})
}
