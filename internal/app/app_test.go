package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avc/points-ledger/internal/config"
	"github.com/avc/points-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		StorageDriver:              config.StorageMemory,
		JWTSecret:                  "test-secret",
		JWTTokenTTL:                time.Hour,
		AdminLogins:                []string{"ops"},
		PointsTTL:                  24 * time.Hour,
		LockTimeout:                time.Second,
		MaxConflictRetries:         3,
		SweepInterval:              time.Hour,
		SweeperWorkers:             1,
		SweeperQueueSize:           10,
		LeaderboardSize:            10,
		LeaderboardRefreshInterval: time.Nanosecond,
	}
	logger := zap.NewNop()

	store, err := initStorage(context.Background(), cfg, logger)
	require.NoError(t, err)

	deps := initDependencies(cfg, store, logger)
	srv := httptest.NewServer(setupRouter(deps, deps.jwtManager, logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func register(t *testing.T, srv *httptest.Server, login string) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/user/register", "", map[string]string{"login": login, "password": "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := resp.Header.Get("Authorization")
	require.NotEmpty(t, token)
	return token
}

func TestRouter_PointsFlow(t *testing.T) {
	srv := newTestServer(t)

	admin := register(t, srv, "ops")
	member := register(t, srv, "member")

	// id пользователя member - второй зарегистрированный
	const memberID = 2

	t.Run("Member cannot use admin endpoints", func(t *testing.T) {
		resp := do(t, srv, http.MethodPost, "/api/admin/points/grant", member, map[string]any{"user_id": memberID, "points": 100})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Anonymous is rejected", func(t *testing.T) {
		resp := do(t, srv, http.MethodGet, "/api/points/summary", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Earn, redeem and rank", func(t *testing.T) {
		resp := do(t, srv, http.MethodPost, "/api/admin/points/earn", admin, map[string]any{
			"user_id": memberID, "points": 600, "reason": "purchase", "reference_type": "order", "reference_id": "o-1",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, srv, http.MethodPost, "/api/points/redeem", member, map[string]any{
			"points": 200, "reason": "reward", "reference_type": "order", "reference_id": "r-1",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result domain.RedemptionResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Equal(t, int64(400), result.RemainingPoints)

		resp = do(t, srv, http.MethodPost, "/api/points/redeem", member, map[string]any{"points": 1000, "reason": "reward"})
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

		resp = do(t, srv, http.MethodGet, "/api/points/summary", member, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var summary map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
		assert.Equal(t, float64(600), summary["total_points"])
		assert.Equal(t, float64(400), summary["available_points"])
		assert.Equal(t, float64(200), summary["used_points"])
		assert.Equal(t, "SILVER", summary["level"])

		resp = do(t, srv, http.MethodGet, "/api/points/leaderboard?limit=5", member, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var top []domain.LeaderboardEntry
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&top))
		require.NotEmpty(t, top)
		assert.Equal(t, int64(memberID), top[0].UserID)
		assert.Equal(t, int64(600), top[0].TotalPoints)
	})

	t.Run("Default promotion catalog", func(t *testing.T) {
		resp := do(t, srv, http.MethodGet, "/api/points/promotions", member, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var promotions []domain.Promotion
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&promotions))
		require.Len(t, promotions, 3)
		assert.Equal(t, "WELCOME100", promotions[0].Code)

		resp = do(t, srv, http.MethodPost, "/api/points/promotions/welcome100/redeem", member, map[string]any{"reference_id": "welcome-1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result domain.RedemptionResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Equal(t, int64(300), result.RemainingPoints)
	})

	t.Run("Unknown promotion", func(t *testing.T) {
		resp := do(t, srv, http.MethodPost, "/api/points/promotions/NOPE/redeem", member, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Health on memory backend", func(t *testing.T) {
		resp := do(t, srv, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestInitLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.log")

	logger, err := initLogger("info", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("ledger ready", zap.Int("users", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"ledger ready"`)
	assert.Contains(t, string(data), `"users":3`)
	assert.NotContains(t, string(data), "hidden")
}
