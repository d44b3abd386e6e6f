// Package exporter serializes delivery views for download, mirroring the
// input table format: canonical column order, header row included.
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"deliverydash/pkg/contracts/domain"
)

// WriteCSV writes a view to w as delimited text. Column order matches the
// input contract and missing values serialize as empty cells.
func WriteCSV(w io.Writer, records []domain.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(domain.RequiredColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Serialize renders a view as a CSV byte stream, for streaming downloads.
func Serialize(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSVFile writes a view to a CSV file, creating the directory if needed.
func WriteCSVFile(path string, records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, records)
}

// recordRow renders one record in canonical column order.
func recordRow(rec domain.Record) []string {
	return []string{
		formatFloat(rec.DeliveryTime),
		formatFloat(rec.Distance),
		formatFloat(rec.Experience),
		formatLabel(rec.Weather),
		formatLabel(rec.Traffic),
		formatLabel(rec.TimeOfDay),
		formatLabel(rec.Vehicle),
	}
}

func formatFloat(v domain.NullFloat) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func formatLabel(v domain.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
