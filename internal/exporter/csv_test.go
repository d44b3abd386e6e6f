package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverydash/pkg/contracts/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			DeliveryTime: domain.Float(30),
			Distance:     domain.Float(5.5),
			Experience:   domain.Float(2),
			Weather:      domain.Label("Sunny"),
			Traffic:      domain.Label("Low"),
			TimeOfDay:    domain.Label("Morning"),
			Vehicle:      domain.Label("Bike"),
		},
		{
			DeliveryTime: domain.Float(45),
			Weather:      domain.Label("Rainy"),
		},
	}
}

func TestSerializeHeaderAndColumnOrder(t *testing.T) {
	data, err := Serialize(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.RequiredColumns, rows[0])
	assert.Equal(t, []string{"30", "5.5", "2", "Sunny", "Low", "Morning", "Bike"}, rows[1])
}

func TestSerializeMissingValuesAreEmptyCells(t *testing.T) {
	data, err := Serialize(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"45", "", "", "Rainy", "", "", ""}, rows[2])
}

func TestSerializeEmptyViewStillHasHeader(t *testing.T) {
	data, err := Serialize(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.RequiredColumns, rows[0])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "filtered.csv")

	require.NoError(t, WriteCSVFile(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Delivery_Time_min,"))
}
