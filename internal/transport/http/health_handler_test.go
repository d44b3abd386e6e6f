package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "deliverydash/internal/errors"
	"deliverydash/internal/services"
	"deliverydash/pkg/contracts/domain"
)

func newTestHealthHandler(service DeliveryServiceInterface) *HealthHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewHealthHandler(service, logger, apierrors.NewErrorHandler(logger), "test")
}

func TestHealthHandler_GetHealth(t *testing.T) {
	handler := newTestHealthHandler(new(MockDeliveryService))
	router := chi.NewRouter()
	router.Mount("/api/health", handler.Routes())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestHealthHandler_GetReady(t *testing.T) {
	t.Run("dataset loaded", func(t *testing.T) {
		mockService := new(MockDeliveryService)
		mockService.On("Meta").Return(&services.Meta{
			Provenance: domain.ProvenancePreCleaned,
			Count:      1000,
		}, nil)

		handler := newTestHealthHandler(mockService)
		router := chi.NewRouter()
		router.Mount("/api/health", handler.Routes())

		req := httptest.NewRequest(http.MethodGet, "/api/health/ready", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ReadyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, "pre-cleaned", resp.Provenance)
		assert.Equal(t, 1000, resp.Count)
		mockService.AssertExpectations(t)
	})

	t.Run("dataset load failed", func(t *testing.T) {
		mockService := new(MockDeliveryService)
		mockService.On("Meta").Return(nil, errors.New("missing columns"))

		handler := newTestHealthHandler(mockService)
		router := chi.NewRouter()
		router.Mount("/api/health", handler.Routes())

		req := httptest.NewRequest(http.MethodGet, "/api/health/ready", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		mockService.AssertExpectations(t)
	})
}
