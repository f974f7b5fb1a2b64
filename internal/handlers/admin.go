package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler операции начисления и обслуживания, доступные администраторам
type AdminHandler struct {
	pointsService domain.PointsService
	logger        *zap.Logger
}

func NewAdminHandler(pointsService domain.PointsService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		pointsService: pointsService,
		logger:        logger,
	}
}

type earnRequest struct {
	UserID        int64                  `json:"user_id"`
	Points        int64                  `json:"points"`
	Kind          domain.TransactionKind `json:"kind"`
	Reason        string                 `json:"reason"`
	Description   string                 `json:"description"`
	ReferenceType string                 `json:"reference_type"`
	ReferenceID   string                 `json:"reference_id"`
	ExpiresAt     *time.Time             `json:"expires_at"`
}

// Earn POST /api/admin/points/earn
func (h *AdminHandler) Earn(w http.ResponseWriter, r *http.Request) {
	var req earnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tx, err := h.pointsService.Earn(r.Context(), domain.EarnRequest{
		UserID:        req.UserID,
		Points:        req.Points,
		Kind:          req.Kind,
		Reason:        req.Reason,
		Description:   req.Description,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		writeError(w, h.logger, "failed to earn points", err, zap.Int64("user_id", req.UserID))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, tx)
}

type grantRequest struct {
	UserID      int64  `json:"user_id"`
	Points      int64  `json:"points"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Grant POST /api/admin/points/grant
func (h *AdminHandler) Grant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tx, err := h.pointsService.AdminGrant(r.Context(), req.UserID, req.Points, req.Reason, req.Description)
	if err != nil {
		writeError(w, h.logger, "failed to grant points", err, zap.Int64("user_id", req.UserID))
		return
	}

	adminID, _ := GetUserID(r.Context())
	h.logger.Info("points granted",
		zap.Int64("admin_id", adminID),
		zap.Int64("user_id", req.UserID),
		zap.Int64("points", req.Points),
		zap.String("reason", req.Reason),
	)
	writeJSON(w, h.logger, http.StatusOK, tx)
}

// Rebuild POST /api/admin/points/{userID}/rebuild
func (h *AdminHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	summary, err := h.pointsService.Rebuild(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, "failed to rebuild summary", err, zap.Int64("user_id", userID))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, summary)
}
