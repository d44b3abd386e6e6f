package dataprocessing

import (
	"deliverydash/internal/stats"
	"deliverydash/pkg/contracts/domain"
)

// Impute repairs missing values so every downstream computation has a
// defined input. Records without a delivery time are dropped — delivery time
// is filtered, never filled, since it is the dependent variable everywhere.
// Distance and experience are filled with the column median; the categorical
// fields with the column mode. Statistics are computed once over the
// surviving records and applied in the same pass, so the rule is
// deterministic: same input, same output. A categorical column with no
// observed values at all is left unfilled.
func Impute(records []domain.Record) []domain.Record {
	kept := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if rec.DeliveryTime.Valid {
			kept = append(kept, rec)
		}
	}

	distMedian := stats.Median(numericValues(kept, domain.ColumnDistance))
	expMedian := stats.Median(numericValues(kept, domain.ColumnExperience))

	modes := make(map[string]domain.NullString, len(domain.CategoricalColumns))
	for _, column := range domain.CategoricalColumns {
		if mode, ok := stats.Mode(categoricalValues(kept, column)); ok {
			modes[column] = domain.Label(mode)
		}
	}

	for i := range kept {
		kept[i].Distance = fillFloat(kept[i].Distance, distMedian)
		kept[i].Experience = fillFloat(kept[i].Experience, expMedian)
		kept[i].Weather = fillLabel(kept[i].Weather, modes[domain.ColumnWeather])
		kept[i].Traffic = fillLabel(kept[i].Traffic, modes[domain.ColumnTraffic])
		kept[i].TimeOfDay = fillLabel(kept[i].TimeOfDay, modes[domain.ColumnTimeOfDay])
		kept[i].Vehicle = fillLabel(kept[i].Vehicle, modes[domain.ColumnVehicle])
	}
	return kept
}

// fillFloat fills a missing numeric value with the column median. The median
// of an all-missing column is NaN; in that case there is nothing to fill with.
func fillFloat(v domain.NullFloat, median float64) domain.NullFloat {
	if v.Valid || median != median {
		return v
	}
	return domain.Float(median)
}

// fillLabel fills a missing categorical value with the column mode, if any.
func fillLabel(v, mode domain.NullString) domain.NullString {
	if v.Valid || !mode.Valid {
		return v
	}
	return mode
}

func numericValues(records []domain.Record, column string) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		if v := rec.Numeric(column); v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}

func categoricalValues(records []domain.Record, column string) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if v := rec.Categorical(column); v.Valid {
			out = append(out, v.String)
		}
	}
	return out
}
