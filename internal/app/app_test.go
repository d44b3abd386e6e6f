package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCleanCSV = `Delivery_Time_min,Distance_km,Courier_Experience_yrs,Weather,Traffic_Level,Time_of_Day,Vehicle_Type
43,7.93,1,Windy,Low,Afternoon,Scooter
84,16.42,2,Clear,Medium,Evening,Bike
59,9.52,1,Foggy,Low,Night,Scooter
`

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Food_Delivery_Times_CLEAN.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCleanCSV), 0o644))
	return dir
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	t.Setenv("DELIVERY_DATA_DIR", writeDataset(t))
	t.Setenv("DELIVERY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DELIVERY_LOGGING_OUTPUT", "console")

	app, err := NewApplication()
	require.NoError(t, err)
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.Config)
	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.NotNil(t, app.DeliveryService)
	assert.NotNil(t, app.Logger)
}

func TestNewApplicationMissingDataset(t *testing.T) {
	t.Setenv("DELIVERY_DATA_DIR", t.TempDir())
	t.Setenv("DELIVERY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := NewApplication()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset")
}

func TestApplicationRoutes(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/api/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/api/health/ready", "", http.StatusOK},
		{"meta", http.MethodGet, "/api/delivery/meta", "", http.StatusOK},
		{"query", http.MethodPost, "/api/delivery/query", `{"weather":["Windy"],"traffic_level":["Low"],"time_of_day":["Afternoon"],"vehicle_type":["Scooter"],"distance_km":{"lo":0,"hi":20},"experience_yrs":{"lo":0,"hi":10}}`, http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApplication(t)
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestApplicationQueryEndToEnd(t *testing.T) {
	app := newTestApplication(t)

	body := `{"weather":["Windy","Foggy"],"traffic_level":["Low"],"time_of_day":["Afternoon","Night"],"vehicle_type":["Scooter"],"distance_km":{"lo":0,"hi":20},"experience_yrs":{"lo":0,"hi":10}}`
	req := httptest.NewRequest(http.MethodPost, "/api/delivery/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int `json:"count"`
		Summary *struct {
			Mean  *float64 `json:"mean"`
			Count int      `json:"count"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.Summary)
	require.NotNil(t, resp.Summary.Mean)
	assert.InDelta(t, 51, *resp.Summary.Mean, 1e-9)

	// X-Request-ID comes back on every response.
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
