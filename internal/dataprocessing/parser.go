package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"deliverydash/pkg/contracts/domain"
)

// Table is a raw delimited-text table: a header row plus data rows.
// Header names are trimmed on read; cell values are kept verbatim.
type Table struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// ReadTable reads a CSV file into a Table. Rows may have ragged lengths;
// short rows simply leave trailing columns missing.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF") // UTF-8 BOM from Excel exports
		}
		headers[i] = strings.TrimSpace(h)
	}

	t := &Table{
		Headers: headers,
		Rows:    rows[1:],
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		t.index[h] = i
	}
	return t, nil
}

// Column returns the position of a named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// cell returns the raw value at (row, column index), or "" past the row end.
func (t *Table) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ParseRecords converts table rows into delivery records. Numeric coercion
// is deliberately lenient: a token that fails to parse becomes a missing
// value, never a dropped row or an error. Categorical cells are carried
// verbatim with empty cells marked missing; canonicalization is the
// normalizer's job.
func ParseRecords(t *Table) []domain.Record {
	timeIdx, hasTime := t.Column(domain.ColumnDeliveryTime)
	distIdx, hasDist := t.Column(domain.ColumnDistance)
	expIdx, hasExp := t.Column(domain.ColumnExperience)
	weatherIdx, hasWeather := t.Column(domain.ColumnWeather)
	trafficIdx, hasTraffic := t.Column(domain.ColumnTraffic)
	todIdx, hasTod := t.Column(domain.ColumnTimeOfDay)
	vehicleIdx, hasVehicle := t.Column(domain.ColumnVehicle)

	parseFloat := func(row []string, idx int, ok bool) domain.NullFloat {
		if !ok {
			return domain.NullFloat{}
		}
		raw := strings.TrimSpace(t.cell(row, idx))
		if raw == "" {
			return domain.NullFloat{}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.NullFloat{}
		}
		return domain.Float(v)
	}

	parseString := func(row []string, idx int, ok bool) domain.NullString {
		if !ok {
			return domain.NullString{}
		}
		raw := t.cell(row, idx)
		if strings.TrimSpace(raw) == "" {
			return domain.NullString{}
		}
		return domain.Label(raw)
	}

	records := make([]domain.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, domain.Record{
			DeliveryTime: parseFloat(row, timeIdx, hasTime),
			Distance:     parseFloat(row, distIdx, hasDist),
			Experience:   parseFloat(row, expIdx, hasExp),
			Weather:      parseString(row, weatherIdx, hasWeather),
			Traffic:      parseString(row, trafficIdx, hasTraffic),
			TimeOfDay:    parseString(row, todIdx, hasTod),
			Vehicle:      parseString(row, vehicleIdx, hasVehicle),
		})
	}
	return records
}
