package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avc/points-ledger/internal/utils/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthMiddleware(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	middleware := AuthMiddleware(jwtManager)

	t.Run("Valid token", func(t *testing.T) {
		token, err := jwtManager.Generate(123, true)
		require.NoError(t, err)

		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			assert.True(t, ok)
			assert.Equal(t, int64(123), userID)
			assert.True(t, IsAdmin(r.Context()))
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Rejected headers", func(t *testing.T) {
		foreign, err := jwt.NewManager("other-secret", time.Hour).Generate(123, false)
		require.NoError(t, err)

		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be called")
		}))

		for _, header := range []string{"", "Bearer", "Token abc", "Bearer " + foreign} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		}
	})
}

func TestAdminMiddleware(t *testing.T) {
	handler := AdminMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/points/grant", nil)
		ctx := context.WithValue(req.Context(), IsAdminKey, true)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Member", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/points/grant", nil), 7)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middleware := RequestIDMiddleware()

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := r.Context().Value(RequestIDKey).(string)
		assert.True(t, ok)
		assert.NotEmpty(t, requestID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoggingMiddleware(t *testing.T) {
	middleware := LoggingMiddleware(zap.NewNop())

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	middleware := RecoveryMiddleware(zap.NewNop())

	t.Run("No panic", func(t *testing.T) {
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("With panic", func(t *testing.T) {
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		}))

		w := httptest.NewRecorder()
		assert.NotPanics(t, func() {
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("User ID present", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, int64(123))

		userID, ok := GetUserID(ctx)
		assert.True(t, ok)
		assert.Equal(t, int64(123), userID)
	})

	t.Run("User ID not present", func(t *testing.T) {
		userID, ok := GetUserID(context.Background())
		assert.False(t, ok)
		assert.Equal(t, int64(0), userID)
	})

	t.Run("Wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, "not-an-int")

		userID, ok := GetUserID(ctx)
		assert.False(t, ok)
		assert.Equal(t, int64(0), userID)
	})
}
