package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverydash/internal/config"
	"deliverydash/pkg/contracts/domain"
)

const fullHeader = "Delivery_Time_min,Distance_km,Courier_Experience_yrs,Weather,Traffic_Level,Time_of_Day,Vehicle_Type"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dataConfigIn(dir string) config.DataConfig {
	return config.DataConfig{
		Dir:       dir,
		CleanFile: "Food_Delivery_Times_CLEAN.csv",
		RawFile:   "Food_Delivery_Times.csv",
	}
}

func TestResolveSourcePrefersCleanFile(t *testing.T) {
	dir := t.TempDir()
	data := dataConfigIn(dir)
	require.NoError(t, os.WriteFile(data.CleanPath(), []byte(fullHeader+"\n"), 0644))
	require.NoError(t, os.WriteFile(data.RawPath(), []byte(fullHeader+"\n"), 0644))

	source, err := ResolveSource(data)
	require.NoError(t, err)
	assert.Equal(t, data.CleanPath(), source.Path)
	assert.Equal(t, domain.ProvenancePreCleaned, source.Provenance)
}

func TestResolveSourceFallsBackToRaw(t *testing.T) {
	dir := t.TempDir()
	data := dataConfigIn(dir)
	require.NoError(t, os.WriteFile(data.RawPath(), []byte(fullHeader+"\n"), 0644))

	source, err := ResolveSource(data)
	require.NoError(t, err)
	assert.Equal(t, data.RawPath(), source.Path)
	assert.Equal(t, domain.ProvenanceAutoCleaned, source.Provenance)
}

func TestResolveSourceNeitherFileExists(t *testing.T) {
	data := dataConfigIn(t.TempDir())

	_, err := ResolveSource(data)
	require.ErrorIs(t, err, ErrNoSourceFile)
	assert.Contains(t, err.Error(), data.CleanPath())
	assert.Contains(t, err.Error(), data.RawPath())
}

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{
			name:    "all required present",
			headers: domain.RequiredColumns,
		},
		{
			name:    "extra columns tolerated",
			headers: append([]string{"Order_ID"}, domain.RequiredColumns...),
		},
		{
			name:        "missing columns named",
			headers:     []string{"Delivery_Time_min", "Distance_km"},
			wantMissing: []string{"Courier_Experience_yrs", "Weather", "Traffic_Level", "Time_of_Day", "Vehicle_Type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.headers)
			if len(tt.wantMissing) == 0 {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrMissingColumns)
			for _, col := range tt.wantMissing {
				assert.Contains(t, err.Error(), col)
			}
		})
	}
}

func TestLoadDatasetPreCleanedIsTrustedAsIs(t *testing.T) {
	dir := t.TempDir()
	data := dataConfigIn(dir)
	// A non-canonical label in the clean file must survive untouched.
	csv := fullHeader + "\n42,5.0,2,drizzle,Low,Morning,Bike\n"
	require.NoError(t, os.WriteFile(data.CleanPath(), []byte(csv), 0644))

	ds, err := LoadDataset(context.Background(), data, testLogger())
	require.NoError(t, err)

	assert.Equal(t, domain.ProvenancePreCleaned, ds.Provenance)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, domain.Label("drizzle"), ds.Records[0].Weather)
}

func TestLoadDatasetAutoCleanPath(t *testing.T) {
	dir := t.TempDir()
	data := dataConfigIn(dir)
	csv := fullHeader + "\n" +
		"30,5.0,2, RAINY ,low,morning,bike\n" +
		"45,not-a-number,3,storm,High,Evening,Car\n" +
		",7.0,1,Sunny,Low,Night,Scooter\n" // dropped: no delivery time
	require.NoError(t, os.WriteFile(data.RawPath(), []byte(csv), 0644))

	ds, err := LoadDataset(context.Background(), data, testLogger())
	require.NoError(t, err)

	assert.Equal(t, domain.ProvenanceAutoCleaned, ds.Provenance)
	require.Equal(t, 2, ds.Len())

	// Delivery time is never missing on the auto-clean path.
	for _, rec := range ds.Records {
		assert.True(t, rec.DeliveryTime.Valid)
	}

	// " RAINY " canonicalized; "storm" unmapped then mode-filled to Rainy.
	assert.Equal(t, domain.Label("Rainy"), ds.Records[0].Weather)
	assert.Equal(t, domain.Label("Rainy"), ds.Records[1].Weather)

	// Malformed distance median-filled from the surviving values {5.0}.
	assert.Equal(t, domain.Float(5.0), ds.Records[1].Distance)
}

func TestLoadDatasetNoSourceIsFatal(t *testing.T) {
	_, err := LoadDataset(context.Background(), dataConfigIn(t.TempDir()), testLogger())
	require.ErrorIs(t, err, ErrNoSourceFile)
}

func TestLoadDatasetMissingColumnsIsFatal(t *testing.T) {
	dir := t.TempDir()
	data := dataConfigIn(dir)
	csv := "Delivery_Time_min,Distance_km\n30,5\n"
	require.NoError(t, os.WriteFile(data.CleanPath(), []byte(csv), 0644))

	_, err := LoadDataset(context.Background(), data, testLogger())
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Weather")
}

func TestLoadDatasetMissingColumnsReportedAfterCleaning(t *testing.T) {
	dir := t.TempDir()
	data := dataConfigIn(dir)
	csv := "Delivery_Time_min,Weather\n30,sunny\n,rainy\n"
	require.NoError(t, os.WriteFile(data.RawPath(), []byte(csv), 0644))

	_, err := LoadDataset(context.Background(), data, testLogger())
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Distance_km")
	assert.NotContains(t, err.Error(), "Delivery_Time_min")
}

func TestLoadDatasetRespectsConfiguredFilenames(t *testing.T) {
	dir := t.TempDir()
	data := config.DataConfig{Dir: dir, CleanFile: "other.csv", RawFile: "raw.csv"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte(fullHeader+"\n30,5,2,Sunny,Low,Morning,Bike\n"), 0644))

	ds, err := LoadDataset(context.Background(), data, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}
