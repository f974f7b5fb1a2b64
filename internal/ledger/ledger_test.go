package ledger

import (
	"testing"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/avc/points-ledger/internal/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func txAt(id int64, kind domain.TransactionKind, points int64, offset time.Duration) *domain.PointTransaction {
	return &domain.PointTransaction{
		ID:        id,
		UserID:    1,
		Points:    points,
		Kind:      kind,
		Reason:    "test",
		CreatedAt: baseTime.Add(offset),
	}
}

func withExpiry(tx *domain.PointTransaction, at time.Time) *domain.PointTransaction {
	tx.ExpiresAt = &at
	return tx
}

func TestApply(t *testing.T) {
	t.Run("Credit increases total and available", func(t *testing.T) {
		s := domain.NewSummary(1)
		require.NoError(t, Apply(s, txAt(1, domain.KindEarned, 600, 0)))

		assert.Equal(t, int64(600), s.TotalPoints)
		assert.Equal(t, int64(600), s.AvailablePoints)
		assert.Equal(t, tier.Silver, s.Level)
		assert.Equal(t, baseTime, s.CreatedAt)
		assert.True(t, s.Consistent())
	})

	t.Run("Redemption moves points to used", func(t *testing.T) {
		s := domain.NewSummary(1)
		require.NoError(t, Apply(s, txAt(1, domain.KindEarned, 600, 0)))
		require.NoError(t, Apply(s, txAt(2, domain.KindRedeemed, -200, time.Minute)))

		assert.Equal(t, int64(600), s.TotalPoints)
		assert.Equal(t, int64(200), s.UsedPoints)
		assert.Equal(t, int64(400), s.AvailablePoints)
		assert.Equal(t, tier.Silver, s.Level)
		assert.Equal(t, baseTime.Add(time.Minute), s.UpdatedAt)
	})

	t.Run("Overdraw rejected without mutation", func(t *testing.T) {
		s := domain.NewSummary(1)
		require.NoError(t, Apply(s, txAt(1, domain.KindEarned, 100, 0)))
		before := s.Clone()

		err := Apply(s, txAt(2, domain.KindRedeemed, -101, time.Minute))
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, before, s)
	})

	t.Run("Wrong sign rejected", func(t *testing.T) {
		s := domain.NewSummary(1)
		assert.ErrorIs(t, Apply(s, txAt(1, domain.KindEarned, -5, 0)), domain.ErrInvalidAmount)
		assert.ErrorIs(t, Apply(s, txAt(1, domain.KindRedeemed, 5, 0)), domain.ErrInvalidAmount)
		assert.ErrorIs(t, Apply(s, txAt(1, domain.KindBonus, 0, 0)), domain.ErrInvalidAmount)
	})

	t.Run("Unknown kind rejected", func(t *testing.T) {
		s := domain.NewSummary(1)
		assert.ErrorIs(t, Apply(s, txAt(1, domain.TransactionKind("GIFT"), 5, 0)), domain.ErrInvalidKind)
	})

	t.Run("Foreign user rejected", func(t *testing.T) {
		s := domain.NewSummary(2)
		assert.ErrorIs(t, Apply(s, txAt(1, domain.KindEarned, 5, 0)), domain.ErrInvariantViolation)
	})
}

func TestFold(t *testing.T) {
	txs := []*domain.PointTransaction{
		txAt(1, domain.KindEarned, 1000, 0),
		txAt(2, domain.KindBonus, 250, time.Hour),
		txAt(3, domain.KindRedeemed, -300, 2*time.Hour),
		txAt(4, domain.KindExpired, -100, 3*time.Hour),
		txAt(5, domain.KindAdminGrant, 900, 4*time.Hour),
	}

	t.Run("Full fold", func(t *testing.T) {
		s, err := Fold(1, txs)
		require.NoError(t, err)
		assert.Equal(t, int64(2150), s.TotalPoints)
		assert.Equal(t, int64(300), s.UsedPoints)
		assert.Equal(t, int64(100), s.ExpiredPoints)
		assert.Equal(t, int64(1750), s.AvailablePoints)
		assert.Equal(t, tier.Gold, s.Level)
		assert.True(t, s.Consistent())
	})

	t.Run("Fold until transaction", func(t *testing.T) {
		s, err := FoldUntil(1, txs, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(950), s.AvailablePoints)
		assert.Equal(t, int64(1250), s.TotalPoints)
	})

	t.Run("Incremental equals fold", func(t *testing.T) {
		incremental := domain.NewSummary(1)
		for _, tx := range txs {
			require.NoError(t, Apply(incremental, tx))
		}
		folded, err := Fold(1, txs)
		require.NoError(t, err)
		assert.True(t, incremental.SameBalance(folded))
	})

	t.Run("Corrupted ledger reports failing transaction", func(t *testing.T) {
		_, err := Fold(1, []*domain.PointTransaction{txAt(9, domain.KindRedeemed, -1, 0)})
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Contains(t, err.Error(), "transaction 9")
	})
}

func TestLots(t *testing.T) {
	t.Run("Redemption consumes earliest lot first", func(t *testing.T) {
		lots := Lots([]*domain.PointTransaction{
			txAt(1, domain.KindEarned, 100, 0),
			txAt(2, domain.KindEarned, 200, time.Hour),
			txAt(3, domain.KindRedeemed, -150, 2*time.Hour),
		})

		require.Len(t, lots, 2)
		assert.Equal(t, int64(0), lots[0].Remaining)
		assert.Equal(t, int64(150), lots[1].Remaining)
	})

	t.Run("Expired entry zeroes referenced lot only", func(t *testing.T) {
		expired := txAt(3, domain.KindExpired, -200, 2*time.Hour)
		expired.ReferenceType = domain.ReferenceTypeTransaction
		expired.ReferenceID = "2"

		lots := Lots([]*domain.PointTransaction{
			txAt(1, domain.KindEarned, 100, 0),
			txAt(2, domain.KindEarned, 200, time.Hour),
			expired,
		})

		assert.Equal(t, int64(100), lots[0].Remaining)
		assert.Equal(t, int64(0), lots[1].Remaining)
	})

	t.Run("Unreferenced expiry consumes FIFO", func(t *testing.T) {
		lots := Lots([]*domain.PointTransaction{
			txAt(1, domain.KindEarned, 100, 0),
			txAt(2, domain.KindEarned, 200, time.Hour),
			txAt(3, domain.KindExpired, -120, 2*time.Hour),
		})

		assert.Equal(t, int64(0), lots[0].Remaining)
		assert.Equal(t, int64(180), lots[1].Remaining)
	})
}

func TestExpirationEntries(t *testing.T) {
	now := baseTime.Add(48 * time.Hour)

	t.Run("Expires only unconsumed remainder", func(t *testing.T) {
		txs := []*domain.PointTransaction{
			withExpiry(txAt(1, domain.KindEarned, 1000, 0), baseTime.Add(24*time.Hour)),
			txAt(2, domain.KindRedeemed, -300, time.Hour),
		}

		entries := ExpirationEntries(1, txs, now)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(-700), entries[0].Points)
		assert.Equal(t, domain.KindExpired, entries[0].Kind)
		assert.Equal(t, domain.ReferenceTypeTransaction, entries[0].ReferenceType)
		assert.Equal(t, "1", entries[0].ReferenceID)
		assert.Equal(t, now, entries[0].CreatedAt)
	})

	t.Run("Fully consumed lot produces nothing", func(t *testing.T) {
		txs := []*domain.PointTransaction{
			withExpiry(txAt(1, domain.KindEarned, 100, 0), baseTime.Add(24*time.Hour)),
			txAt(2, domain.KindRedeemed, -100, time.Hour),
		}
		assert.Empty(t, ExpirationEntries(1, txs, now))
	})

	t.Run("Lot not yet due is kept", func(t *testing.T) {
		txs := []*domain.PointTransaction{
			withExpiry(txAt(1, domain.KindEarned, 100, 0), now.Add(time.Second)),
		}
		assert.Empty(t, ExpirationEntries(1, txs, now))
	})

	t.Run("Expiry exactly at now is due", func(t *testing.T) {
		txs := []*domain.PointTransaction{
			withExpiry(txAt(1, domain.KindEarned, 100, 0), now),
		}
		assert.Len(t, ExpirationEntries(1, txs, now), 1)
	})

	t.Run("Applying entries makes the pass idempotent", func(t *testing.T) {
		txs := []*domain.PointTransaction{
			withExpiry(txAt(1, domain.KindEarned, 1000, 0), baseTime.Add(time.Hour)),
			txAt(2, domain.KindAdminGrant, 50, time.Minute),
		}
		entries := ExpirationEntries(1, txs, now)
		require.Len(t, entries, 1)
		entries[0].ID = 3
		txs = append(txs, entries[0])

		assert.Empty(t, ExpirationEntries(1, txs, now))

		s, err := Fold(1, txs)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), s.ExpiredPoints)
		assert.Equal(t, int64(50), s.AvailablePoints)
	})
}
