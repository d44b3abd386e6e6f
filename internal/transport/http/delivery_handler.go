package http

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "deliverydash/internal/errors"
	"deliverydash/internal/query"
	"deliverydash/internal/stats"
	"deliverydash/pkg/contracts/domain"
)

// previewLimit caps the number of records echoed back with a query response.
const previewLimit = 200

// DeliveryHandler serves the filtering and summary API over the delivery
// dataset.
type DeliveryHandler struct {
	service      DeliveryServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(service DeliveryServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DeliveryHandler {
	return &DeliveryHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "delivery_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the delivery routes.
func (h *DeliveryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/meta", h.GetMeta)
	r.Post("/query", h.PostQuery)
	r.Post("/export", h.PostExport)

	return r
}

// GetMeta handles GET /api/delivery/meta. It describes the dataset so the
// presentation layer can populate its selection and range controls.
func (h *DeliveryHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Meta(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailableError(err))
		return
	}
	render.JSON(w, r, meta)
}

// QueryResponse is the body returned for a filter evaluation. Summary is
// omitted for an empty view; Message then carries the loosen-your-filter
// hint. Records holds a preview of the surviving rows when requested.
type QueryResponse struct {
	Count   int              `json:"count"`
	Summary *SummaryResponse `json:"summary,omitempty"`
	Message string           `json:"message,omitempty"`
	Records []domain.Record  `json:"records,omitempty"`
}

// SummaryResponse carries the aggregate statistics of a view. Undefined
// values (empty view, zero variance) are null, never NaN, so the body stays
// valid JSON.
type SummaryResponse struct {
	Mean        *float64     `json:"mean"`
	Median      *float64     `json:"median"`
	P90         *float64     `json:"p90"`
	Count       int          `json:"count"`
	Correlation *Correlation `json:"correlation"`
}

// Correlation is the Pearson matrix over the numeric columns.
type Correlation struct {
	Fields []string     `json:"fields"`
	Matrix [][]*float64 `json:"matrix"`
}

// PostQuery handles POST /api/delivery/query. The body is a FilterSpec; the
// response is the match count plus summary statistics. An empty view is a
// normal 200 response.
func (h *DeliveryHandler) PostQuery(w http.ResponseWriter, r *http.Request) {
	var spec query.FilterSpec
	if err := render.DecodeJSON(r.Body, &spec); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	result, err := h.service.Query(r.Context(), spec)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := QueryResponse{Count: result.Count}
	if result.Count == 0 {
		resp.Message = "No data after filter. Loosen the filter."
	} else {
		resp.Summary = newSummaryResponse(result.Summary)
	}

	if r.URL.Query().Get("include_records") == "true" {
		records := result.Records
		if len(records) > previewLimit {
			records = records[:previewLimit]
		}
		resp.Records = records
	}

	render.JSON(w, r, resp)
}

// PostExport handles POST /api/delivery/export?format=csv|xlsx. The body is
// a FilterSpec; the response streams the filtered view as a download.
func (h *DeliveryHandler) PostExport(w http.ResponseWriter, r *http.Request) {
	var spec query.FilterSpec
	if err := render.DecodeJSON(r.Body, &spec); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		data, err := h.service.ExportCSV(r.Context(), spec)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_food_delivery_times.csv"`)
		w.Write(data)

	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_food_delivery_times.xlsx"`)
		if err := h.service.ExportXLSX(r.Context(), w, spec); err != nil {
			// Headers are already written; log instead of re-rendering.
			h.logger.ErrorContext(r.Context(), "xlsx export failed",
				slog.String("error", err.Error()))
		}

	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "must be csv or xlsx"))
	}
}

// newSummaryResponse converts a stats summary into its JSON-safe form.
func newSummaryResponse(s stats.Summary) *SummaryResponse {
	matrix := make([][]*float64, len(s.Correlation))
	for i := range s.Correlation {
		matrix[i] = make([]*float64, len(s.Correlation[i]))
		for j := range s.Correlation[i] {
			matrix[i][j] = jsonFloat(s.Correlation[i][j])
		}
	}
	return &SummaryResponse{
		Mean:   jsonFloat(s.Mean),
		Median: jsonFloat(s.Median),
		P90:    jsonFloat(s.P90),
		Count:  s.Count,
		Correlation: &Correlation{
			Fields: stats.CorrelationFields,
			Matrix: matrix,
		},
	}
}

// jsonFloat maps NaN to nil so undefined statistics serialize as null.
func jsonFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
