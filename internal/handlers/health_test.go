package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	pingOK   = pingFunc(func(context.Context) error { return nil })
	pingDown = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		cache      Pinger
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "All ok",
			db:         pingOK,
			cache:      pingOK,
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "ok", Cache: "ok"},
		},
		{
			name:       "Memory backend without cache",
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "disabled", Cache: "disabled"},
		},
		{
			name:       "Cache down",
			db:         pingOK,
			cache:      pingDown,
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "ok", Cache: "unavailable"},
		},
		{
			name:       "Database down",
			db:         pingDown,
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "degraded", Database: "unavailable", Cache: "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.db, tt.cache, zap.NewNop())
			w := httptest.NewRecorder()

			handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, w.Code)

			var got HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewHealthHandler(pingOK, pingDown, zap.NewNop()).Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Database down", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewHealthHandler(pingDown, nil, zap.NewNop()).Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
