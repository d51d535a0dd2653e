// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/pitchline/internal/app"
	"github.com/okian/pitchline/internal/domain/model"
)

// ImagesDependencies defines the interface for image resolution.
type ImagesDependencies interface {
	Images(ctx context.Context, payload model.MatchPayload) []service.EventImage
}

// ImagesHandler handles image resolution requests.
type ImagesHandler struct {
	deps ImagesDependencies
}

// NewImagesHandler creates a new images handler.
func NewImagesHandler(deps ImagesDependencies) *ImagesHandler {
	return &ImagesHandler{deps: deps}
}

// imagesResponse is the shape returned by POST /images.
type imagesResponse struct {
	Images []service.EventImage `json:"images"`
}

// HandlePostImages handles POST /images requests.
func (h *ImagesHandler) HandlePostImages(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_images"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, imagesResponse{Images: h.deps.Images(r.Context(), payload)})
}
