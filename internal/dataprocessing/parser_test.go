package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverydash/pkg/contracts/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deliveries.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadTableTrimsHeaders(t *testing.T) {
	path := writeCSV(t, " Delivery_Time_min , Distance_km\n30,5.0\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Delivery_Time_min", "Distance_km"}, table.Headers)
	require.Len(t, table.Rows, 1)

	idx, ok := table.Column("Delivery_Time_min")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestReadTableStripsBOM(t *testing.T) {
	path := writeCSV(t, "\uFEFFDelivery_Time_min\n30\n")

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Delivery_Time_min"}, table.Headers)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestReadTableEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := ReadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParseRecordsLenientNumericCoercion(t *testing.T) {
	path := writeCSV(t,
		"Delivery_Time_min,Distance_km,Courier_Experience_yrs,Weather,Traffic_Level,Time_of_Day,Vehicle_Type\n"+
			"30,5.5,2,Sunny,Low,Morning,Bike\n"+
			"forty,junk,NaN,Rainy,High,Evening,Car\n"+
			"55,,3,,,Night,Scooter\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	records := ParseRecords(table)
	require.Len(t, records, 3)

	// Clean row parses fully.
	assert.Equal(t, domain.Float(30), records[0].DeliveryTime)
	assert.Equal(t, domain.Float(5.5), records[0].Distance)
	assert.Equal(t, domain.Label("Sunny"), records[0].Weather)

	// Malformed numerics become missing, never a dropped row or error.
	assert.False(t, records[1].DeliveryTime.Valid)
	assert.False(t, records[1].Distance.Valid)
	assert.False(t, records[1].Experience.Valid, "literal NaN token is a missing marker")
	assert.Equal(t, domain.Label("Rainy"), records[1].Weather)

	// Empty cells are missing.
	assert.False(t, records[2].Distance.Valid)
	assert.False(t, records[2].Weather.Valid)
	assert.Equal(t, domain.Float(55), records[2].DeliveryTime)
}

func TestParseRecordsToleratesShortRowsAndExtraColumns(t *testing.T) {
	path := writeCSV(t,
		"Delivery_Time_min,Distance_km,Order_ID,Weather\n"+
			"30,5.0,A1,Sunny\n"+
			"45\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	records := ParseRecords(table)
	require.Len(t, records, 2)

	// Extra column is ignored; known columns still land in the right fields.
	assert.Equal(t, domain.Label("Sunny"), records[0].Weather)

	// Short row leaves trailing columns missing.
	assert.Equal(t, domain.Float(45), records[1].DeliveryTime)
	assert.False(t, records[1].Distance.Valid)
	assert.False(t, records[1].Weather.Valid)
}

func TestParseRecordsMissingColumnsEntirely(t *testing.T) {
	path := writeCSV(t, "Delivery_Time_min\n30\n45\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	records := ParseRecords(table)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.True(t, rec.DeliveryTime.Valid)
		assert.False(t, rec.Distance.Valid)
		assert.False(t, rec.Vehicle.Valid)
	}
}
