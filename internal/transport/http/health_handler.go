package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "deliverydash/internal/errors"
)

// HealthHandler reports service liveness and dataset readiness.
type HealthHandler struct {
	service      DeliveryServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	startTime    time.Time
	version      string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DeliveryServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, version string) *HealthHandler {
	return &HealthHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "health_handler")),
		errorHandler: errorHandler,
		startTime:    time.Now(),
		version:      version,
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetHealth)
	r.Get("/ready", h.GetReady)

	return r
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// GetHealth handles GET /api/health.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// ReadyResponse is the readiness body. Provenance and count describe the
// loaded dataset.
type ReadyResponse struct {
	Status     string `json:"status"`
	Provenance string `json:"provenance"`
	Count      int    `json:"count"`
}

// GetReady handles GET /api/health/ready. It fails with 503 until the
// dataset has loaded successfully.
func (h *HealthHandler) GetReady(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Meta(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailableError(err))
		return
	}
	render.JSON(w, r, ReadyResponse{
		Status:     "ready",
		Provenance: string(meta.Provenance),
		Count:      meta.Count,
	})
}
