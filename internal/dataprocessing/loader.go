package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"deliverydash/internal/config"
	"deliverydash/pkg/contracts/domain"
)

// LoadDataset runs the full loading pipeline: resolve the source file, parse
// it, clean it when the raw fallback was taken, and validate the required
// column contract. The returned dataset is complete and immutable; callers
// share it read-only.
func LoadDataset(ctx context.Context, data config.DataConfig, logger *slog.Logger) (*domain.Dataset, error) {
	source, err := ResolveSource(data)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "loading delivery dataset",
		slog.String("path", source.Path),
		slog.String("provenance", string(source.Provenance)))

	table, err := ReadTable(source.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source.Path, err)
	}

	records := ParseRecords(table)
	parsed := len(records)

	if source.Provenance == domain.ProvenanceAutoCleaned {
		records = Impute(Normalize(records))
		if dropped := parsed - len(records); dropped > 0 {
			logger.InfoContext(ctx, "dropped records without delivery time",
				slog.Int("dropped", dropped))
		}
	}

	if err := ValidateColumns(table.Headers); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "delivery dataset ready",
		slog.Int("records", len(records)),
		slog.String("provenance", string(source.Provenance)))

	return &domain.Dataset{
		Records:    records,
		Provenance: source.Provenance,
	}, nil
}
