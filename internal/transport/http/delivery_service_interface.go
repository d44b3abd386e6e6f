package http

import (
	"context"
	"io"

	"deliverydash/internal/query"
	"deliverydash/internal/services"
)

// DeliveryServiceInterface defines the contract the delivery handler needs.
// Kept as an interface so handler tests can substitute the service.
type DeliveryServiceInterface interface {
	Meta(ctx context.Context) (*services.Meta, error)
	Query(ctx context.Context, spec query.FilterSpec) (*services.QueryResult, error)
	ExportCSV(ctx context.Context, spec query.FilterSpec) ([]byte, error)
	ExportXLSX(ctx context.Context, w io.Writer, spec query.FilterSpec) error
}
