package usage

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/sigmacoders/guardian/pkg/handlers"
	"github.com/sigmacoders/guardian/pkg/routes"
)

// Handler provides HTTP endpoints for usage telemetry.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
	registrar   Registrar
}

// NewHandler creates a Handler with the given system, logger, request size
// limit, and scheduler registrar. A nil registrar disables scheduling.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64, registrar Registrar) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "usage"),
		maxBodySize: maxBodySize,
		registrar:   registrar,
	}
}

// Routes returns the route group definition for usage endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/usage",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{parentId}/{childId}", Handler: h.Ingest},
			{Method: "GET", Pattern: "/{parentId}/{childId}/{date}", Handler: h.Summary},
			{Method: "GET", Pattern: "/{parentId}/{childId}/{date}/samples", Handler: h.Samples},
			{Method: "GET", Pattern: "/{parentId}/{childId}/{date}/report", Handler: h.RawReport},
		},
	}
}

// Ingest accepts a device agent's usage report for the current local day and
// registers the child for recurring risk evaluation.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	parentID := r.PathValue("parentId")
	childID := r.PathValue("childId")

	var report Report
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(body).Decode(&report); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidReport)
		return
	}

	summary, err := h.sys.Ingest(r.Context(), parentID, childID, report)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if h.registrar != nil {
		h.registrar.Schedule(parentID, childID)
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Summary returns the aggregated summary for a stored day.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sys.SummaryForDay(
		r.Context(),
		r.PathValue("parentId"),
		r.PathValue("childId"),
		r.PathValue("date"),
	)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// RawReport streams the archived raw report for a day as it arrived from the
// device, before any aggregation.
func (h *Handler) RawReport(w http.ResponseWriter, r *http.Request) {
	reader, err := h.sys.RawReport(
		r.Context(),
		r.PathValue("parentId"),
		r.PathValue("childId"),
		r.PathValue("date"),
	)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/json")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("stream archived report failed", "error", err)
	}
}

// Samples returns the stored raw samples for a day, ordered by foreground time.
func (h *Handler) Samples(w http.ResponseWriter, r *http.Request) {
	samples, err := h.sys.SamplesForDay(
		r.Context(),
		r.PathValue("parentId"),
		r.PathValue("childId"),
		r.PathValue("date"),
	)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, samples)
}
