package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/avc/points-ledger/internal/tier"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultLeaderboardLimit = 10

// PointsHandler API баллов для авторизованного пользователя
type PointsHandler struct {
	pointsService domain.PointsService
	leaderboard   domain.Leaderboard
	logger        *zap.Logger
}

func NewPointsHandler(pointsService domain.PointsService, leaderboard domain.Leaderboard, logger *zap.Logger) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
		leaderboard:   leaderboard,
		logger:        logger,
	}
}

type summaryResponse struct {
	*domain.UserPointSummary
	NextLevel         tier.Tier `json:"next_level,omitempty"`
	PointsToNextLevel int64     `json:"points_to_next_level,omitempty"`
}

// GetSummary GET /api/points/summary
func (h *PointsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.pointsService.GetSummary(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, "failed to get summary", err, zap.Int64("user_id", userID))
		return
	}

	resp := summaryResponse{UserPointSummary: summary}
	if next, remaining, ok := tier.Next(summary.TotalPoints); ok {
		resp.NextLevel = next
		resp.PointsToNextLevel = remaining
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// ListTransactions GET /api/points/transactions?page=&size=
func (h *PointsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, okPage := queryInt(r, "page", 1)
	size, okSize := queryInt(r, "size", 0)
	if !okPage || !okSize {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := h.pointsService.ListTransactions(r.Context(), userID, page, size)
	if err != nil {
		writeError(w, h.logger, "failed to list transactions", err, zap.Int64("user_id", userID))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

type checkRequest struct {
	Points int64 `json:"points"`
}

// CheckBalance POST /api/points/check
func (h *PointsHandler) CheckBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	check, err := h.pointsService.CheckBalance(r.Context(), userID, req.Points)
	if err != nil {
		writeError(w, h.logger, "failed to check balance", err, zap.Int64("user_id", userID))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, check)
}

type redeemRequest struct {
	Points        int64  `json:"points"`
	Reason        string `json:"reason"`
	Description   string `json:"description"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
}

// Redeem POST /api/points/redeem
func (h *PointsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := h.pointsService.Redeem(r.Context(), domain.RedemptionRequest{
		UserID:        userID,
		Points:        req.Points,
		Reason:        req.Reason,
		Description:   req.Description,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
	})
	if err != nil {
		writeError(w, h.logger, "failed to redeem points", err, zap.Int64("user_id", userID))
		return
	}
	h.writeRedemption(w, result)
}

type promotionRedeemRequest struct {
	ReferenceID string `json:"reference_id"`
}

// RedeemPromotion POST /api/points/promotions/{code}/redeem
func (h *PointsHandler) RedeemPromotion(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Тело необязательно
	var req promotionRedeemRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	code := chi.URLParam(r, "code")
	result, err := h.pointsService.RedeemPromotion(r.Context(), userID, code, req.ReferenceID)
	if err != nil {
		writeError(w, h.logger, "failed to redeem promotion", err,
			zap.Int64("user_id", userID),
			zap.String("code", code),
		)
		return
	}
	h.writeRedemption(w, result)
}

// ListPromotions GET /api/points/promotions
func (h *PointsHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.pointsService.ListPromotions(r.Context())
	if err != nil {
		writeError(w, h.logger, "failed to list promotions", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, promotions)
}

func (h *PointsHandler) writeRedemption(w http.ResponseWriter, result *domain.RedemptionResult) {
	status := http.StatusOK
	switch result.Failure {
	case domain.FailureInvalidAmount:
		status = http.StatusBadRequest
	case domain.FailureInsufficientBalance:
		status = http.StatusPaymentRequired
	}
	writeJSON(w, h.logger, status, result)
}

// Leaderboard GET /api/points/leaderboard?limit=
func (h *PointsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultLeaderboardLimit)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, "failed to get leaderboard", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, entries)
}
