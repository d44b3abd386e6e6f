// Package query implements the filtering interface over a delivery dataset:
// conjunctive categorical-membership and numeric-range predicates, plus the
// helpers the presentation layer needs to populate its controls.
package query

import (
	"fmt"

	"deliverydash/internal/stats"
	"deliverydash/pkg/contracts/domain"
)

// Range is a closed numeric interval [Lo, Hi].
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi" validate:"gtefield=Lo"`
}

// Contains reports whether v lies within the range, boundary-inclusive on
// both ends.
func (r Range) Contains(v float64) bool {
	return v >= r.Lo && v <= r.Hi
}

// FilterSpec selects a subset of a dataset: a set of accepted values per
// categorical dimension and an inclusive range per numeric dimension.
// An empty selection set is a valid degenerate spec that matches nothing
// on that dimension.
type FilterSpec struct {
	Weather    []string `json:"weather"`
	Traffic    []string `json:"traffic_level"`
	TimeOfDay  []string `json:"time_of_day"`
	Vehicle    []string `json:"vehicle_type"`
	Distance   Range    `json:"distance_km"`
	Experience Range    `json:"experience_yrs"`
}

// MatchAll builds the maximal spec for a dataset: every observed categorical
// value selected and both numeric ranges spanning the observed bounds.
// Filtering with it returns the full dataset.
func MatchAll(ds *domain.Dataset) FilterSpec {
	distLo, distHi := stats.MinMax(ds.NumericColumn(domain.ColumnDistance))
	expLo, expHi := stats.MinMax(ds.NumericColumn(domain.ColumnExperience))
	return FilterSpec{
		Weather:    ds.ObservedValues(domain.ColumnWeather),
		Traffic:    ds.ObservedValues(domain.ColumnTraffic),
		TimeOfDay:  ds.ObservedValues(domain.ColumnTimeOfDay),
		Vehicle:    ds.ObservedValues(domain.ColumnVehicle),
		Distance:   Range{Lo: distLo, Hi: distHi},
		Experience: Range{Lo: expLo, Hi: expHi},
	}
}

// Filter applies the spec to the dataset and returns the surviving records.
// The filter is pure and order-preserving: the source dataset is never
// mutated and survivors keep their relative order. An empty result is a
// normal outcome, not an error.
func Filter(ds *domain.Dataset, spec FilterSpec) []domain.Record {
	weather := toSet(spec.Weather)
	traffic := toSet(spec.Traffic)
	timeOfDay := toSet(spec.TimeOfDay)
	vehicle := toSet(spec.Vehicle)

	out := make([]domain.Record, 0, ds.Len())
	for _, rec := range ds.Records {
		if !member(weather, rec.Weather) ||
			!member(traffic, rec.Traffic) ||
			!member(timeOfDay, rec.TimeOfDay) ||
			!member(vehicle, rec.Vehicle) {
			continue
		}
		if !inRange(spec.Distance, rec.Distance) ||
			!inRange(spec.Experience, rec.Experience) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// AvailableValues returns the sorted observed values of a categorical
// column, for populating selection controls.
func AvailableValues(ds *domain.Dataset, column string) ([]string, error) {
	if !isCategorical(column) {
		return nil, fmt.Errorf("not a categorical column: %s", column)
	}
	return ds.ObservedValues(column), nil
}

// Bounds returns the observed min and max of a numeric column, for
// populating range controls.
func Bounds(ds *domain.Dataset, column string) (Range, error) {
	for _, c := range domain.NumericColumns {
		if c == column {
			lo, hi := stats.MinMax(ds.NumericColumn(column))
			return Range{Lo: lo, Hi: hi}, nil
		}
	}
	return Range{}, fmt.Errorf("not a numeric column: %s", column)
}

func isCategorical(column string) bool {
	for _, c := range domain.CategoricalColumns {
		if c == column {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// member reports whether a categorical value is in the selected set.
// A missing value belongs to no set.
func member(set map[string]struct{}, v domain.NullString) bool {
	if !v.Valid {
		return false
	}
	_, ok := set[v.String]
	return ok
}

// inRange reports whether a numeric value lies in the range. A missing
// value fails the predicate.
func inRange(r Range, v domain.NullFloat) bool {
	return v.Valid && r.Contains(v.Float64)
}
