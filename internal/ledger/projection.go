// Package ledger содержит чистые функции над журналом баллов:
// инкрементальное применение операции к сводке, свертку журнала
// и учет партий начислений для сгорания в порядке FIFO.
package ledger

import (
	"fmt"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/avc/points-ledger/internal/tier"
)

// ValidateSign проверяет знак количества баллов для типа операции
func ValidateSign(tx *domain.PointTransaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, tx.Kind)
	}
	if tx.Points == 0 {
		return fmt.Errorf("%w: zero points for %s", domain.ErrInvalidAmount, tx.Kind)
	}
	if tx.Kind.IsCredit() && tx.Points < 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", domain.ErrInvalidAmount, tx.Kind, tx.Points)
	}
	if !tx.Kind.IsCredit() && tx.Points > 0 {
		return fmt.Errorf("%w: %s must be negative, got %d", domain.ErrInvalidAmount, tx.Kind, tx.Points)
	}
	return nil
}

// Apply применяет операцию к сводке. Сводка не изменяется, если результат
// нарушает инварианты.
func Apply(summary *domain.UserPointSummary, tx *domain.PointTransaction) error {
	if err := ValidateSign(tx); err != nil {
		return err
	}
	if summary.UserID != tx.UserID {
		return fmt.Errorf("%w: transaction user %d applied to summary of user %d",
			domain.ErrInvariantViolation, tx.UserID, summary.UserID)
	}

	total, used, expired := summary.TotalPoints, summary.UsedPoints, summary.ExpiredPoints
	switch tx.Kind {
	case domain.KindRedeemed:
		used += tx.Magnitude()
	case domain.KindExpired:
		expired += tx.Magnitude()
	default:
		total += tx.Points
	}

	available := total - used - expired
	if available < 0 {
		return fmt.Errorf("%w: user %d available would become %d after %s %d",
			domain.ErrInvariantViolation, tx.UserID, available, tx.Kind, tx.Points)
	}

	summary.TotalPoints = total
	summary.UsedPoints = used
	summary.ExpiredPoints = expired
	summary.AvailablePoints = available
	summary.Level = tier.For(total)
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = tx.CreatedAt
	}
	summary.UpdatedAt = tx.CreatedAt
	return nil
}

// Fold восстанавливает сводку сверткой всех операций пользователя
func Fold(userID int64, txs []*domain.PointTransaction) (*domain.UserPointSummary, error) {
	return FoldUntil(userID, txs, 0)
}

// FoldUntil сворачивает операции с ID <= lastID (0 - все операции).
// Используется для воспроизведения результата ранее выполненного списания.
func FoldUntil(userID int64, txs []*domain.PointTransaction, lastID int64) (*domain.UserPointSummary, error) {
	summary := domain.NewSummary(userID)
	for _, tx := range txs {
		if lastID > 0 && tx.ID > lastID {
			break
		}
		if err := Apply(summary, tx); err != nil {
			return nil, fmt.Errorf("ledger: fold failed at transaction %d: %w", tx.ID, err)
		}
	}
	return summary, nil
}
