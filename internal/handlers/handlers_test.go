package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	domainmocks "github.com/avc/points-ledger/internal/domain/mocks"
	"github.com/avc/points-ledger/internal/tier"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func withUser(req *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAuthHandler_Register(t *testing.T) {
	mockService := domainmocks.NewAuthServiceMock(t)
	handler := NewAuthHandler(mockService, zap.NewNop())

	tests := []struct {
		name       string
		body       string
		token      string
		err        error
		callsSvc   bool
		wantStatus int
	}{
		{name: "Success", body: `{"login":"user","password":"pass"}`, token: "token", callsSvc: true, wantStatus: http.StatusOK},
		{name: "User exists", body: `{"login":"user","password":"pass"}`, err: domain.ErrUserExists, callsSvc: true, wantStatus: http.StatusConflict},
		{name: "Empty password", body: `{"login":"user","password":""}`, err: domain.ErrInvalidInput, callsSvc: true, wantStatus: http.StatusBadRequest},
		{name: "Storage error", body: `{"login":"user","password":"pass"}`, err: fmt.Errorf("db down"), callsSvc: true, wantStatus: http.StatusInternalServerError},
		{name: "Invalid JSON", body: `{"login":}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.callsSvc {
				var req authRequest
				require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
				mockService.EXPECT().Register(mock.Anything, req.Login, req.Password).Return(tt.token, tt.err).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.token != "" {
				assert.Equal(t, "Bearer "+tt.token, w.Header().Get("Authorization"))
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	mockService := domainmocks.NewAuthServiceMock(t)
	handler := NewAuthHandler(mockService, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().Login(mock.Anything, "user", "pass").Return("token", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(`{"login":"user","password":"pass"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		mockService.EXPECT().Login(mock.Anything, "user", "wrong").Return("", domain.ErrInvalidCredentials).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(`{"login":"user","password":"wrong"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPointsHandler_GetSummary(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewPointsHandler(mockService, nil, zap.NewNop())

	t.Run("Success with next level", func(t *testing.T) {
		summary := &domain.UserPointSummary{UserID: 1, TotalPoints: 600, AvailablePoints: 400, UsedPoints: 200, Level: tier.Silver}
		mockService.EXPECT().GetSummary(mock.Anything, int64(1)).Return(summary, nil).Once()

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/points/summary", nil), 1)
		w := httptest.NewRecorder()

		handler.GetSummary(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, float64(600), body["total_points"])
		assert.Equal(t, float64(400), body["available_points"])
		assert.Equal(t, "SILVER", body["level"])
		assert.Equal(t, "GOLD", body["next_level"])
		assert.Equal(t, float64(1400), body["points_to_next_level"])
		assert.NotContains(t, body, "version")
	})

	t.Run("Storage unavailable", func(t *testing.T) {
		mockService.EXPECT().GetSummary(mock.Anything, int64(1)).
			Return(nil, fmt.Errorf("ledger service: %w", domain.ErrStorageUnavailable)).Once()

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/points/summary", nil), 1)
		w := httptest.NewRecorder()

		handler.GetSummary(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetSummary(w, httptest.NewRequest(http.MethodGet, "/api/points/summary", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPointsHandler_ListTransactions(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewPointsHandler(mockService, nil, zap.NewNop())

	t.Run("Passes paging", func(t *testing.T) {
		page := &domain.TransactionPage{
			Items: []*domain.PointTransaction{{ID: 3, UserID: 1, Points: -200, Kind: domain.KindRedeemed}},
			Page:  2,
			Size:  1,
			Total: 2,
		}
		mockService.EXPECT().ListTransactions(mock.Anything, int64(1), 2, 1).Return(page, nil).Once()

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/points/transactions?page=2&size=1", nil), 1)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var result domain.TransactionPage
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.Equal(t, int64(2), result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, domain.KindRedeemed, result.Items[0].Kind)
	})

	t.Run("Defaults", func(t *testing.T) {
		mockService.EXPECT().ListTransactions(mock.Anything, int64(1), 1, 0).
			Return(&domain.TransactionPage{Items: []*domain.PointTransaction{}, Page: 1, Size: 20}, nil).Once()

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/points/transactions", nil), 1)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid page", func(t *testing.T) {
		for _, query := range []string{"page=0", "page=abc", "size=-1"} {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/points/transactions?"+query, nil), 1)
			w := httptest.NewRecorder()

			handler.ListTransactions(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})

	t.Run("Page out of range", func(t *testing.T) {
		mockService.EXPECT().ListTransactions(mock.Anything, int64(1), 1<<60, 16).
			Return(nil, fmt.Errorf("%w: page %d is out of range", domain.ErrInvalidInput, 1<<60)).Once()

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/points/transactions?page=1152921504606846976&size=16", nil), 1)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPointsHandler_CheckBalance(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewPointsHandler(mockService, nil, zap.NewNop())

	t.Run("Enough", func(t *testing.T) {
		mockService.EXPECT().CheckBalance(mock.Anything, int64(1), int64(100)).
			Return(&domain.BalanceCheck{HasEnough: true, AvailablePoints: 400, RemainingPoints: 300}, nil).Once()

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/points/check", bytes.NewBufferString(`{"points":100}`)), 1)
		w := httptest.NewRecorder()

		handler.CheckBalance(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var result domain.BalanceCheck
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.True(t, result.HasEnough)
		assert.Equal(t, int64(300), result.RemainingPoints)
	})

	t.Run("Invalid amount", func(t *testing.T) {
		mockService.EXPECT().CheckBalance(mock.Anything, int64(1), int64(0)).Return(nil, domain.ErrInvalidAmount).Once()

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/points/check", bytes.NewBufferString(`{"points":0}`)), 1)
		w := httptest.NewRecorder()

		handler.CheckBalance(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPointsHandler_Redeem(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewPointsHandler(mockService, nil, zap.NewNop())

	body := `{"points":200,"reason":"reward","reference_type":"order","reference_id":"A-1"}`
	want := domain.RedemptionRequest{UserID: 1, Points: 200, Reason: "reward", ReferenceType: "order", ReferenceID: "A-1"}

	tests := []struct {
		name       string
		result     *domain.RedemptionResult
		err        error
		wantStatus int
	}{
		{
			name:       "Success",
			result:     &domain.RedemptionResult{Success: true, RemainingPoints: 400, Transaction: &domain.PointTransaction{ID: 2, Points: -200}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Insufficient balance",
			result:     &domain.RedemptionResult{RemainingPoints: 100, Shortfall: 100, Failure: domain.FailureInsufficientBalance},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "Invalid amount",
			result:     &domain.RedemptionResult{Failure: domain.FailureInvalidAmount},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Lock timeout",
			err:        fmt.Errorf("ledger service: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().Redeem(mock.Anything, want).Return(tt.result, tt.err).Once()

			req := withUser(httptest.NewRequest(http.MethodPost, "/api/points/redeem", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()

			handler.Redeem(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.result != nil {
				var result domain.RedemptionResult
				require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
				assert.Equal(t, tt.result.Success, result.Success)
				assert.Equal(t, tt.result.RemainingPoints, result.RemainingPoints)
				assert.Equal(t, tt.result.Failure, result.Failure)
			}
		})
	}
}

func TestPointsHandler_RedeemPromotion(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewPointsHandler(mockService, nil, zap.NewNop())

	tests := []struct {
		name       string
		body       string
		refID      string
		result     *domain.RedemptionResult
		err        error
		wantStatus int
	}{
		{
			name:       "Success",
			body:       `{"reference_id":"cart-7"}`,
			refID:      "cart-7",
			result:     &domain.RedemptionResult{Success: true, Promotion: &domain.Promotion{Code: "SPRING"}},
			wantStatus: http.StatusOK,
		},
		{name: "Without body", result: &domain.RedemptionResult{Success: true}, wantStatus: http.StatusOK},
		{name: "Not found", err: domain.ErrPromotionNotFound, wantStatus: http.StatusNotFound},
		{name: "Inactive", err: domain.ErrPromotionInactive, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().RedeemPromotion(mock.Anything, int64(1), "SPRING", tt.refID).Return(tt.result, tt.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/points/promotions/SPRING/redeem", bytes.NewBufferString(tt.body))
			req = withURLParam(withUser(req, 1), "code", "SPRING")
			w := httptest.NewRecorder()

			handler.RedeemPromotion(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestPointsHandler_ListPromotions(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewPointsHandler(mockService, nil, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		promotions := []*domain.Promotion{{ID: 1, Code: "SPRING", Title: "Spring", RequiredPoints: 300, IsActive: true}}
		mockService.EXPECT().ListPromotions(mock.Anything).Return(promotions, nil).Once()

		w := httptest.NewRecorder()
		handler.ListPromotions(w, httptest.NewRequest(http.MethodGet, "/api/points/promotions", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result []domain.Promotion
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		require.Len(t, result, 1)
		assert.Equal(t, "SPRING", result[0].Code)
		assert.Equal(t, int64(300), result[0].RequiredPoints)
	})

	t.Run("Storage unavailable", func(t *testing.T) {
		mockService.EXPECT().ListPromotions(mock.Anything).Return(nil, domain.ErrStorageUnavailable).Once()

		w := httptest.NewRecorder()
		handler.ListPromotions(w, httptest.NewRequest(http.MethodGet, "/api/points/promotions", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestPointsHandler_Leaderboard(t *testing.T) {
	mockBoard := domainmocks.NewLeaderboardMock(t)
	handler := NewPointsHandler(nil, mockBoard, zap.NewNop())

	t.Run("Default limit", func(t *testing.T) {
		entries := []domain.LeaderboardEntry{{Rank: 1, UserID: 1, TotalPoints: 600, Level: tier.Silver}}
		mockBoard.EXPECT().Top(mock.Anything, defaultLeaderboardLimit).Return(entries, nil).Once()

		w := httptest.NewRecorder()
		handler.Leaderboard(w, httptest.NewRequest(http.MethodGet, "/api/points/leaderboard", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result []domain.LeaderboardEntry
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.Equal(t, entries, result)
	})

	t.Run("Explicit limit", func(t *testing.T) {
		mockBoard.EXPECT().Top(mock.Anything, 3).Return([]domain.LeaderboardEntry{}, nil).Once()

		w := httptest.NewRecorder()
		handler.Leaderboard(w, httptest.NewRequest(http.MethodGet, "/api/points/leaderboard?limit=3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Bad limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Leaderboard(w, httptest.NewRequest(http.MethodGet, "/api/points/leaderboard?limit=x", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_Earn(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewAdminHandler(mockService, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		expires := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		want := domain.EarnRequest{
			UserID:        5,
			Points:        100,
			Kind:          domain.KindBonus,
			Reason:        "birthday",
			ReferenceType: "campaign",
			ReferenceID:   "bd-5",
			ExpiresAt:     &expires,
		}
		mockService.EXPECT().Earn(mock.Anything, want).
			Return(&domain.PointTransaction{ID: 9, UserID: 5, Points: 100, Kind: domain.KindBonus}, nil).Once()

		body := `{"user_id":5,"points":100,"kind":"BONUS","reason":"birthday","reference_type":"campaign","reference_id":"bd-5","expires_at":"2026-01-01T00:00:00Z"}`
		w := httptest.NewRecorder()
		handler.Earn(w, httptest.NewRequest(http.MethodPost, "/api/admin/points/earn", bytes.NewBufferString(body)))
		require.Equal(t, http.StatusOK, w.Code)

		var tx domain.PointTransaction
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tx))
		assert.Equal(t, int64(9), tx.ID)
	})

	t.Run("Invalid kind", func(t *testing.T) {
		mockService.EXPECT().Earn(mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidKind).Once()

		w := httptest.NewRecorder()
		handler.Earn(w, httptest.NewRequest(http.MethodPost, "/api/admin/points/earn",
			bytes.NewBufferString(`{"user_id":5,"points":100,"kind":"REDEEMED"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing user", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Earn(w, httptest.NewRequest(http.MethodPost, "/api/admin/points/earn", bytes.NewBufferString(`{"points":100}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_Grant(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewAdminHandler(mockService, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().AdminGrant(mock.Anything, int64(5), int64(50), "goodwill", "late delivery").
			Return(&domain.PointTransaction{ID: 1, Kind: domain.KindAdminGrant, Points: 50}, nil).Once()

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/points/grant",
			bytes.NewBufferString(`{"user_id":5,"points":50,"reason":"goodwill","description":"late delivery"}`)), 1)
		w := httptest.NewRecorder()

		handler.Grant(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid amount", func(t *testing.T) {
		mockService.EXPECT().AdminGrant(mock.Anything, int64(5), int64(-5), "", "").Return(nil, domain.ErrInvalidAmount).Once()

		w := httptest.NewRecorder()
		handler.Grant(w, httptest.NewRequest(http.MethodPost, "/api/admin/points/grant", bytes.NewBufferString(`{"user_id":5,"points":-5}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_Rebuild(t *testing.T) {
	mockService := domainmocks.NewPointsServiceMock(t)
	handler := NewAdminHandler(mockService, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().Rebuild(mock.Anything, int64(5)).
			Return(&domain.UserPointSummary{UserID: 5, TotalPoints: 10, AvailablePoints: 10, Level: tier.Bronze}, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/admin/points/5/rebuild", nil), "userID", "5")
		w := httptest.NewRecorder()

		handler.Rebuild(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Bad user id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/admin/points/x/rebuild", nil), "userID", "x")
		w := httptest.NewRecorder()

		handler.Rebuild(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
