package domain

import (
	"encoding/json"
	"sort"
)

// Provenance tags which loading path produced a Dataset.
type Provenance string

const (
	// ProvenancePreCleaned means the trusted pre-cleaned file was loaded as-is.
	ProvenancePreCleaned Provenance = "pre-cleaned"
	// ProvenanceAutoCleaned means the raw file was loaded and repaired in-process.
	ProvenanceAutoCleaned Provenance = "auto-cleaned"
)

// Canonical column names of the delivery table. Extra input columns are ignored.
const (
	ColumnDeliveryTime = "Delivery_Time_min"
	ColumnDistance     = "Distance_km"
	ColumnExperience   = "Courier_Experience_yrs"
	ColumnWeather      = "Weather"
	ColumnTraffic      = "Traffic_Level"
	ColumnTimeOfDay    = "Time_of_Day"
	ColumnVehicle      = "Vehicle_Type"
)

// RequiredColumns lists the columns every usable dataset must carry,
// in canonical export order.
var RequiredColumns = []string{
	ColumnDeliveryTime,
	ColumnDistance,
	ColumnExperience,
	ColumnWeather,
	ColumnTraffic,
	ColumnTimeOfDay,
	ColumnVehicle,
}

// CategoricalColumns lists the four categorical dimensions.
var CategoricalColumns = []string{
	ColumnWeather,
	ColumnTraffic,
	ColumnTimeOfDay,
	ColumnVehicle,
}

// NumericColumns lists the numeric columns subject to lenient coercion.
var NumericColumns = []string{
	ColumnDeliveryTime,
	ColumnDistance,
	ColumnExperience,
}

// CanonicalLabels maps each categorical column to its fixed label set.
var CanonicalLabels = map[string][]string{
	ColumnWeather:   {"Sunny", "Rainy", "Snowy", "Foggy", "Windy"},
	ColumnTraffic:   {"Low", "Medium", "High"},
	ColumnTimeOfDay: {"Morning", "Afternoon", "Evening", "Night"},
	ColumnVehicle:   {"Bike", "Scooter", "Car"},
}

// NullFloat is an optional float64. Invalid means the value is missing,
// either absent in the input or dropped by lenient numeric coercion.
// A typed optional keeps repair logic honest; no magic sentinel values.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat.
func Float(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// MarshalJSON renders missing values as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts null as missing.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Float64); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// NullString is an optional categorical value. Invalid means missing or
// unmapped after normalization.
type NullString struct {
	String string
	Valid  bool
}

// Label returns a valid NullString.
func Label(v string) NullString { return NullString{String: v, Valid: true} }

// MarshalJSON renders missing values as null.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

// UnmarshalJSON accepts null as missing.
func (n *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullString{}
		return nil
	}
	if err := json.Unmarshal(data, &n.String); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Record represents a single delivery event. DeliveryTime is the dependent
// variable and may be missing only before cleaning; every other field
// tolerates absence.
type Record struct {
	DeliveryTime NullFloat  `json:"delivery_time_min"`
	Distance     NullFloat  `json:"distance_km"`
	Experience   NullFloat  `json:"courier_experience_yrs"`
	Weather      NullString `json:"weather"`
	Traffic      NullString `json:"traffic_level"`
	TimeOfDay    NullString `json:"time_of_day"`
	Vehicle      NullString `json:"vehicle_type"`
}

// Numeric returns the named numeric field of the record.
func (rec Record) Numeric(column string) NullFloat {
	switch column {
	case ColumnDeliveryTime:
		return rec.DeliveryTime
	case ColumnDistance:
		return rec.Distance
	case ColumnExperience:
		return rec.Experience
	}
	return NullFloat{}
}

// Categorical returns the named categorical field of the record.
func (rec Record) Categorical(column string) NullString {
	switch column {
	case ColumnWeather:
		return rec.Weather
	case ColumnTraffic:
		return rec.Traffic
	case ColumnTimeOfDay:
		return rec.TimeOfDay
	case ColumnVehicle:
		return rec.Vehicle
	}
	return NullString{}
}

// Dataset is an ordered, immutable collection of delivery records plus the
// provenance of its loading path. It is built once at startup and shared
// read-only afterwards; nothing may mutate it.
type Dataset struct {
	Records    []Record
	Provenance Provenance
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// NumericColumn extracts the non-missing values of a numeric column,
// in record order.
func (d *Dataset) NumericColumn(column string) []float64 {
	out := make([]float64, 0, len(d.Records))
	for _, rec := range d.Records {
		if v := rec.Numeric(column); v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}

// ObservedValues returns the sorted distinct non-missing values of a
// categorical column. Used to populate selection options.
func (d *Dataset) ObservedValues(column string) []string {
	seen := make(map[string]struct{})
	for _, rec := range d.Records {
		if v := rec.Categorical(column); v.Valid {
			seen[v.String] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
