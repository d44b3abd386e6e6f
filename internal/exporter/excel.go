package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"deliverydash/pkg/contracts/domain"
)

// SheetName is the worksheet holding the exported view.
const SheetName = "Deliveries"

// WriteXLSX writes a view to w as an Excel workbook with the same column
// layout as the CSV export. Numeric cells stay numeric; missing values
// become empty cells.
func WriteXLSX(w io.Writer, records []domain.Record) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteXLSXFile writes a view to an Excel file, creating the directory if
// needed.
func WriteXLSXFile(path string, records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func buildWorkbook(records []domain.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(domain.RequiredColumns))
	for i, col := range domain.RequiredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{
			cellFloat(rec.DeliveryTime),
			cellFloat(rec.Distance),
			cellFloat(rec.Experience),
			cellLabel(rec.Weather),
			cellLabel(rec.Traffic),
			cellLabel(rec.TimeOfDay),
			cellLabel(rec.Vehicle),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func cellFloat(v domain.NullFloat) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func cellLabel(v domain.NullString) interface{} {
	if !v.Valid {
		return nil
	}
	return v.String
}
