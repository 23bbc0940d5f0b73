package pipeline

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sigmacoders/guardian/pkg/handlers"
	"github.com/sigmacoders/guardian/pkg/routes"
)

// Handler provides the HTTP endpoint for detection events.
type Handler struct {
	pipe        *Pipeline
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given pipeline, logger, and request
// size limit.
func NewHandler(pipe *Pipeline, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		pipe:        pipe,
		logger:      logger.With("handler", "detections"),
		maxBodySize: maxBodySize,
	}
}

// Handler returns the HTTP handler for this pipeline.
func (p *Pipeline) Handler(maxBodySize int64) *Handler {
	return NewHandler(p, p.logger, maxBodySize)
}

// Routes returns the route group definition for detection endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/detections",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{parentId}/{childId}", Handler: h.Detect},
		},
	}
}

// Detect accepts a detected video title and classifies it asynchronously.
// Repeats of the last classified title are acknowledged without starting a
// pass.
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	var det Detection
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(body).Decode(&det); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidDetection)
		return
	}

	accepted, err := h.pipe.Submit(r.PathValue("parentId"), r.PathValue("childId"), det)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if !accepted {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "duplicate"})
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
