// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pitchline/internal/domain/model"
)

// TimelineDependencies defines the interface for timeline synthesis.
type TimelineDependencies interface {
	Timeline(ctx context.Context, payload model.MatchPayload) ([]model.CanonicalEvent, model.MatchContext)
}

// TimelineHandler handles timeline synthesis requests.
type TimelineHandler struct {
	deps TimelineDependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps TimelineDependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// timelineResponse is the shape returned by POST /timeline.
type timelineResponse struct {
	Match  model.MatchContext     `json:"match"`
	Events []model.CanonicalEvent `json:"events"`
}

// HandlePostTimeline handles POST /timeline requests. The body is the
// raw provider match document.
func (h *TimelineHandler) HandlePostTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_timeline"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	events, match := h.deps.Timeline(r.Context(), payload)
	writeJSON(w, http.StatusOK, timelineResponse{Match: match, Events: events})
}
