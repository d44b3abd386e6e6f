package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"deliverydash/internal/config"
	"deliverydash/internal/dataprocessing"
	"deliverydash/internal/exporter"
	"deliverydash/internal/infrastructure"
	"deliverydash/internal/query"
	"deliverydash/internal/stats"
	"deliverydash/pkg/contracts/domain"
)

// DeliveryService owns the delivery dataset and serves every query over it.
// The dataset is loaded lazily at most once and shared read-only afterwards;
// concurrent requests need no further synchronization because nothing
// mutates it. Each query re-evaluates filter and summary from scratch.
type DeliveryService struct {
	data     config.DataConfig
	logger   *slog.Logger
	validate *validator.Validate

	once    sync.Once
	dataset *domain.Dataset
	loadErr error
}

// NewDeliveryService creates a new delivery service with an injected logger,
// falling back to the global logger when none is given.
func NewDeliveryService(cfg *config.Config, logger *slog.Logger) *DeliveryService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &DeliveryService{
		data:     cfg.Data,
		logger:   logger.With(slog.String("component", "delivery_service")),
		validate: validator.New(),
	}
}

// Dataset returns the loaded dataset, loading it on first use. A load
// failure is sticky: every later call reports the same error without
// retrying, matching the fatal-at-startup contract.
func (s *DeliveryService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	s.once.Do(func() {
		s.dataset, s.loadErr = dataprocessing.LoadDataset(ctx, s.data, s.logger)
		if s.loadErr != nil {
			s.logger.ErrorContext(ctx, "dataset load failed",
				slog.String("error", s.loadErr.Error()))
		}
	})
	return s.dataset, s.loadErr
}

// Meta describes the dataset for the presentation layer: provenance, size,
// the selectable values per categorical dimension, and the observed bounds
// per numeric dimension.
type Meta struct {
	Provenance domain.Provenance      `json:"provenance"`
	Count      int                    `json:"count"`
	Options    map[string][]string    `json:"options"`
	Bounds     map[string]query.Range `json:"bounds"`
}

// Meta returns the dataset description used to populate filter controls.
func (s *DeliveryService) Meta(ctx context.Context) (*Meta, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	options := make(map[string][]string, len(domain.CategoricalColumns))
	for _, column := range domain.CategoricalColumns {
		values, err := query.AvailableValues(ds, column)
		if err != nil {
			return nil, err
		}
		options[column] = values
	}

	bounds := make(map[string]query.Range, 2)
	for _, column := range []string{domain.ColumnDistance, domain.ColumnExperience} {
		r, err := query.Bounds(ds, column)
		if err != nil {
			return nil, err
		}
		bounds[column] = r
	}

	return &Meta{
		Provenance: ds.Provenance,
		Count:      ds.Len(),
		Options:    options,
		Bounds:     bounds,
	}, nil
}

// QueryResult is one filter evaluation: the surviving records and their
// summary statistics. An empty view is a valid result with Count zero.
type QueryResult struct {
	Count   int
	Records []domain.Record
	Summary stats.Summary
}

// Query validates the spec, applies it, and summarizes the surviving view.
func (s *DeliveryService) Query(ctx context.Context, spec query.FilterSpec) (*QueryResult, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.StructCtx(ctx, spec); err != nil {
		return nil, err
	}

	view := query.Filter(ds, spec)
	observeQuery(len(view))

	s.logger.DebugContext(ctx, "query evaluated",
		slog.Int("matched", len(view)),
		slog.Int("total", ds.Len()))

	return &QueryResult{
		Count:   len(view),
		Records: view,
		Summary: stats.Summarize(view),
	}, nil
}

// MatchAll returns the maximal spec for the loaded dataset, used as the
// default selection state.
func (s *DeliveryService) MatchAll(ctx context.Context) (query.FilterSpec, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return query.FilterSpec{}, err
	}
	return query.MatchAll(ds), nil
}

// ExportCSV serializes the filtered view as a CSV byte stream.
func (s *DeliveryService) ExportCSV(ctx context.Context, spec query.FilterSpec) ([]byte, error) {
	result, err := s.Query(ctx, spec)
	if err != nil {
		return nil, err
	}
	return exporter.Serialize(result.Records)
}

// ExportXLSX writes the filtered view to w as an Excel workbook.
func (s *DeliveryService) ExportXLSX(ctx context.Context, w io.Writer, spec query.FilterSpec) error {
	result, err := s.Query(ctx, spec)
	if err != nil {
		return err
	}
	return exporter.WriteXLSX(w, result.Records)
}
