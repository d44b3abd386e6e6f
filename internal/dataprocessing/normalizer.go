package dataprocessing

import (
	"strings"

	"deliverydash/pkg/contracts/domain"
)

// labelMaps holds the lowercase-to-canonical dictionaries for the four
// categorical columns, built once from the canonical label sets.
var labelMaps = buildLabelMaps()

func buildLabelMaps() map[string]map[string]string {
	maps := make(map[string]map[string]string, len(domain.CanonicalLabels))
	for column, labels := range domain.CanonicalLabels {
		m := make(map[string]string, len(labels))
		for _, label := range labels {
			m[strings.ToLower(label)] = label
		}
		maps[column] = m
	}
	return maps
}

// normalizeLabel maps one raw categorical value onto its canonical label,
// case- and whitespace-insensitively. A value the dictionary does not know
// becomes missing so the imputer can repair it.
func normalizeLabel(column string, v domain.NullString) domain.NullString {
	if !v.Valid {
		return v
	}
	key := strings.ToLower(strings.TrimSpace(v.String))
	if canonical, ok := labelMaps[column][key]; ok {
		return domain.Label(canonical)
	}
	return domain.NullString{}
}

// Normalize canonicalizes the categorical fields of every record. It runs
// only on the auto-clean path; the pre-cleaned source is trusted as-is.
// Normalizing an already-canonical dataset is a no-op.
func Normalize(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, rec := range records {
		rec.Weather = normalizeLabel(domain.ColumnWeather, rec.Weather)
		rec.Traffic = normalizeLabel(domain.ColumnTraffic, rec.Traffic)
		rec.TimeOfDay = normalizeLabel(domain.ColumnTimeOfDay, rec.TimeOfDay)
		rec.Vehicle = normalizeLabel(domain.ColumnVehicle, rec.Vehicle)
		out[i] = rec
	}
	return out
}
