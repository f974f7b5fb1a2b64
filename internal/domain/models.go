package domain

import (
	"time"

	"github.com/avc/points-ledger/internal/tier"
	"github.com/shopspring/decimal"
)

// TransactionKind представляет тип операции с баллами
type TransactionKind string

const (
	KindEarned     TransactionKind = "EARNED"
	KindBonus      TransactionKind = "BONUS"
	KindReferral   TransactionKind = "REFERRAL"
	KindRedeemed   TransactionKind = "REDEEMED"
	KindExpired    TransactionKind = "EXPIRED"
	KindAdminGrant TransactionKind = "ADMIN_GRANT"
)

// CreditKinds типы операций, увеличивающие totalPoints
var CreditKinds = []TransactionKind{KindEarned, KindBonus, KindReferral, KindAdminGrant}

// Valid проверяет, что тип операции известен
func (k TransactionKind) Valid() bool {
	switch k {
	case KindEarned, KindBonus, KindReferral, KindRedeemed, KindExpired, KindAdminGrant:
		return true
	}
	return false
}

// IsCredit возвращает true для начислений
func (k TransactionKind) IsCredit() bool {
	switch k {
	case KindEarned, KindBonus, KindReferral, KindAdminGrant:
		return true
	}
	return false
}

// Expirable возвращает true для начислений, у которых может быть срок действия
func (k TransactionKind) Expirable() bool {
	switch k {
	case KindEarned, KindBonus, KindReferral:
		return true
	}
	return false
}

// Reference types, используемые самим леджером
const (
	ReferenceTypeTransaction = "point_transaction"
	ReferenceTypePromotion   = "promotion"
	ReferenceTypeAdmin       = "admin"
)

// PointTransaction неизменяемая запись журнала баллов
type PointTransaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Points        int64           `json:"points"`
	Kind          TransactionKind `json:"kind"`
	Reason        string          `json:"reason"`
	Description   string          `json:"description,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}

// HasReference возвращает true, если у операции есть ключ идемпотентности
func (t *PointTransaction) HasReference() bool {
	return t.ReferenceID != ""
}

// Magnitude возвращает модуль количества баллов
func (t *PointTransaction) Magnitude() int64 {
	if t.Points < 0 {
		return -t.Points
	}
	return t.Points
}

// UserPointSummary материализованная сводка по баллам пользователя
type UserPointSummary struct {
	UserID          int64     `json:"user_id"`
	TotalPoints     int64     `json:"total_points"`
	AvailablePoints int64     `json:"available_points"`
	UsedPoints      int64     `json:"used_points"`
	ExpiredPoints   int64     `json:"expired_points"`
	Level           tier.Tier `json:"level"`
	Version         int64     `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewSummary создает пустую сводку для пользователя без операций
func NewSummary(userID int64) *UserPointSummary {
	return &UserPointSummary{
		UserID: userID,
		Level:  tier.Bronze,
	}
}

// Clone возвращает копию сводки
func (s *UserPointSummary) Clone() *UserPointSummary {
	c := *s
	return &c
}

// Consistent проверяет инварианты сводки
func (s *UserPointSummary) Consistent() bool {
	return s.AvailablePoints >= 0 &&
		s.UsedPoints >= 0 &&
		s.ExpiredPoints >= 0 &&
		s.TotalPoints == s.UsedPoints+s.ExpiredPoints+s.AvailablePoints &&
		s.Level == tier.For(s.TotalPoints)
}

// SameBalance сравнивает балансовые поля двух сводок (без версии и дат)
func (s *UserPointSummary) SameBalance(other *UserPointSummary) bool {
	return s.UserID == other.UserID &&
		s.TotalPoints == other.TotalPoints &&
		s.AvailablePoints == other.AvailablePoints &&
		s.UsedPoints == other.UsedPoints &&
		s.ExpiredPoints == other.ExpiredPoints &&
		s.Level == other.Level
}

// EarnRequest запрос на начисление баллов
type EarnRequest struct {
	UserID        int64
	Points        int64
	Kind          TransactionKind
	Reason        string
	Description   string
	ReferenceType string
	ReferenceID   string
	ExpiresAt     *time.Time
}

// RedemptionRequest запрос на списание баллов
type RedemptionRequest struct {
	UserID        int64
	Points        int64
	Reason        string
	Description   string
	ReferenceType string
	ReferenceID   string
}

// RedemptionFailure причина отказа в списании
type RedemptionFailure string

const (
	FailureNone                RedemptionFailure = ""
	FailureInvalidAmount       RedemptionFailure = "INVALID_AMOUNT"
	FailureInsufficientBalance RedemptionFailure = "INSUFFICIENT_BALANCE"
)

// RedemptionResult результат списания
type RedemptionResult struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message"`
	RemainingPoints int64             `json:"remaining_points"`
	Shortfall       int64             `json:"shortfall,omitempty"`
	Failure         RedemptionFailure `json:"failure,omitempty"`
	Replayed        bool              `json:"replayed,omitempty"`
	Transaction     *PointTransaction `json:"transaction,omitempty"`
	Promotion       *Promotion        `json:"promotion,omitempty"`
}

// BalanceCheck результат предварительной проверки баланса
type BalanceCheck struct {
	HasEnough       bool  `json:"has_enough"`
	AvailablePoints int64 `json:"available_points"`
	RemainingPoints int64 `json:"remaining_points"`
}

// TransactionPage страница истории операций
type TransactionPage struct {
	Items []*PointTransaction `json:"items"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
	Total int64               `json:"total"`
}

// LeaderboardEntry строка рейтинга
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      int64     `json:"user_id"`
	TotalPoints int64     `json:"total_points"`
	Level       tier.Tier `json:"level"`
}

// ExpirationReport итог прохода по истекшим баллам пользователя
type ExpirationReport struct {
	UserID        int64 `json:"user_id"`
	Transactions  int   `json:"transactions"`
	ExpiredPoints int64 `json:"expired_points"`
}

// PromotionType тип акции каталога
type PromotionType string

const (
	PromotionDiscount    PromotionType = "DISCOUNT"
	PromotionFreeService PromotionType = "FREE_SERVICE"
	PromotionCashback    PromotionType = "CASHBACK"
	PromotionOther       PromotionType = "OTHER"
)

// Promotion позиция каталога, за которую можно списать баллы
type Promotion struct {
	ID                int64               `json:"id"`
	Code              string              `json:"code"`
	Title             string              `json:"title"`
	RequiredPoints    int64               `json:"required_points"`
	PromotionType     PromotionType       `json:"promotion_type"`
	DiscountPercent   decimal.NullDecimal `json:"discount_percent"`
	MaxDiscountAmount decimal.NullDecimal `json:"max_discount_amount"`
	ValidFrom         *time.Time          `json:"valid_from,omitempty"`
	ValidTo           *time.Time          `json:"valid_to,omitempty"`
	IsActive          bool                `json:"is_active"`
}

// ActiveAt проверяет, действует ли акция в момент at
func (p *Promotion) ActiveAt(at time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ValidFrom != nil && at.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && at.After(*p.ValidTo) {
		return false
	}
	return true
}

// DiscountFor вычисляет скидку для суммы заказа с учетом максимального размера
func (p *Promotion) DiscountFor(amount decimal.Decimal) decimal.Decimal {
	if p.PromotionType != PromotionDiscount || !p.DiscountPercent.Valid || amount.Sign() <= 0 {
		return decimal.Zero
	}
	discount := amount.Mul(p.DiscountPercent.Decimal).Div(decimal.NewFromInt(100)).Round(2)
	if p.MaxDiscountAmount.Valid && discount.GreaterThan(p.MaxDiscountAmount.Decimal) {
		discount = p.MaxDiscountAmount.Decimal
	}
	return discount
}

// User представляет пользователя системы
type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"` // Не отправляем хеш в JSON
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
