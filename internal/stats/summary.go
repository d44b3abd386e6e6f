package stats

import (
	"deliverydash/pkg/contracts/domain"
)

// CorrelationFields lists the numeric columns of the correlation matrix,
// in matrix order.
var CorrelationFields = []string{
	domain.ColumnDistance,
	domain.ColumnExperience,
	domain.ColumnDeliveryTime,
}

// Summary holds the aggregate statistics of a delivery view. Mean, Median
// and P90 describe delivery time; the correlation matrix covers distance,
// experience and delivery time pairwise. Undefined entries are NaN.
type Summary struct {
	Mean        float64
	Median      float64
	P90         float64
	Count       int
	Correlation [3][3]float64
}

// Summarize computes the summary statistics of a view. The view may be the
// full dataset or any filtered subset, including an empty one.
func Summarize(records []domain.Record) Summary {
	times := column(records, domain.ColumnDeliveryTime)

	s := Summary{
		Mean:   Mean(times),
		Median: Median(times),
		P90:    Percentile(times, 90),
		Count:  len(records),
	}

	for i, fi := range CorrelationFields {
		for j, fj := range CorrelationFields {
			// Correlation pairs only use records where both fields are present.
			xi, xj := pairedColumns(records, fi, fj)
			s.Correlation[i][j] = Pearson(xi, xj)
		}
	}

	return s
}

// column extracts the non-missing values of one numeric field.
func column(records []domain.Record, field string) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		if v := rec.Numeric(field); v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}

// pairedColumns extracts aligned values of two numeric fields, keeping only
// records where both are present.
func pairedColumns(records []domain.Record, a, b string) ([]float64, []float64) {
	xa := make([]float64, 0, len(records))
	xb := make([]float64, 0, len(records))
	for _, rec := range records {
		va, vb := rec.Numeric(a), rec.Numeric(b)
		if va.Valid && vb.Valid {
			xa = append(xa, va.Float64)
			xb = append(xb, vb.Float64)
		}
	}
	return xa, xb
}
