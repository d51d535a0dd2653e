// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/pitchline/internal/app"
	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Timeline synthesizes the canonical event list for a match payload.
	Timeline(ctx context.Context, payload model.MatchPayload) ([]model.CanonicalEvent, model.MatchContext)

	// Layout clusters and positions the payload's timeline.
	Layout(ctx context.Context, payload model.MatchPayload, width float64) (types.LayoutResult, model.MatchContext)

	// Briefs resolves a brief per cluster, placeholder-first.
	Briefs(ctx context.Context, payload model.MatchPayload) []service.ClusterBrief

	// Images resolves an image URL per event.
	Images(ctx context.Context, payload model.MatchPayload) []service.EventImage
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	timelineHandler *TimelineHandler
	layoutHandler   *LayoutHandler
	briefsHandler   *BriefsHandler
	imagesHandler   *ImagesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		timelineHandler: NewTimelineHandler(deps),
		layoutHandler:   NewLayoutHandler(deps),
		briefsHandler:   NewBriefsHandler(deps),
		imagesHandler:   NewImagesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/timeline", MetricsMiddleware(s.timelineHandler.HandlePostTimeline, "timeline"))
	mux.HandleFunc("/layout", MetricsMiddleware(s.layoutHandler.HandlePostLayout, "layout"))
	mux.HandleFunc("/briefs", MetricsMiddleware(s.briefsHandler.HandlePostBriefs, "briefs"))
	mux.HandleFunc("/images", MetricsMiddleware(s.imagesHandler.HandlePostImages, "images"))
}

// decodePayload reads the raw provider match document from the request
// body. The body is the payload itself, in whatever shape the provider
// emits it.
func decodePayload(r *http.Request) (model.MatchPayload, error) {
	var payload model.MatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errors.New("empty match payload")
	}
	return payload, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
