package domain

import (
	"time"

	"github.com/avc/points-ledger/internal/tier"
)

// EventType тип события леджера
type EventType string

const (
	EventPointsCommitted EventType = "points_committed"
	EventTierChanged     EventType = "tier_changed"
	EventPointsExpired   EventType = "points_expired"
)

// LedgerEvent событие, публикуемое после фиксации изменений
type LedgerEvent struct {
	Type            EventType       `json:"type"`
	UserID          int64           `json:"user_id"`
	TransactionIDs  []int64         `json:"transaction_ids,omitempty"`
	Kind            TransactionKind `json:"kind,omitempty"`
	Points          int64           `json:"points"`
	AvailablePoints int64           `json:"available_points"`
	TotalPoints     int64           `json:"total_points"`
	PreviousLevel   tier.Tier       `json:"previous_level,omitempty"`
	Level           tier.Tier       `json:"level"`
	OccurredAt      time.Time       `json:"occurred_at"`
}
