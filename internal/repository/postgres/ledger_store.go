package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

// WithUserLock выполняет fn в одной транзакции под advisory lock пользователя.
// Все записи fn фиксируются вместе или не фиксируются вовсе.
func (s *LedgerStore) WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context, ledger domain.UserLedger) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction for user %d: %w", userID, classify(err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	// Блокировка по user_id сериализует все изменения леджера пользователя
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return fmt.Errorf("repository: failed to acquire lock for user %d: %w", userID, classify(err))
	}

	if err := fn(ctx, &userLedger{db: tx, userID: userID}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit transaction for user %d: %w", userID, classify(err))
	}
	return nil
}

// userLedger операции над леджером одного пользователя внутри транзакции
type userLedger struct {
	db     DBTX
	userID int64
}

func (l *userLedger) Summary(ctx context.Context) (*domain.UserPointSummary, error) {
	summary, err := querySummary(ctx, l.db, l.userID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return domain.NewSummary(l.userID), nil
	}
	return summary, nil
}

// Transactions возвращает все записи пользователя в порядке добавления
func (l *userLedger) Transactions(ctx context.Context) ([]*domain.PointTransaction, error) {
	rows, err := l.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM point_transactions
		 WHERE user_id = $1
		 ORDER BY id`,
		l.userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to load ledger for user %d: %w", l.userID, classify(err))
	}
	return scanTransactions(rows)
}

func (l *userLedger) FindByReference(ctx context.Context, kind domain.TransactionKind, referenceType, referenceID string) (*domain.PointTransaction, error) {
	if referenceID == "" {
		return nil, nil
	}

	tx := &domain.PointTransaction{}
	err := l.db.QueryRow(ctx,
		`SELECT `+transactionColumns+`
		 FROM point_transactions
		 WHERE user_id = $1 AND kind = $2 AND reference_type = $3 AND reference_id = $4`,
		l.userID, kind, referenceType, referenceID,
	).Scan(&tx.ID, &tx.UserID, &tx.Points, &tx.Kind, &tx.Reason, &tx.Description,
		&tx.ReferenceType, &tx.ReferenceID, &tx.CreatedAt, &tx.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find transaction by reference %s/%s: %w",
			referenceType, referenceID, classify(err))
	}
	return tx, nil
}

func (l *userLedger) Append(ctx context.Context, tx *domain.PointTransaction) error {
	if tx.UserID != l.userID {
		return fmt.Errorf("repository: transaction for user %d appended under lock of user %d", tx.UserID, l.userID)
	}

	err := l.db.QueryRow(ctx,
		`INSERT INTO point_transactions
		 (user_id, points, kind, reason, description, reference_type, reference_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		tx.UserID, tx.Points, tx.Kind, tx.Reason, tx.Description,
		tx.ReferenceType, tx.ReferenceID, tx.CreatedAt, tx.ExpiresAt,
	).Scan(&tx.ID)
	if err != nil {
		// Повторная операция с той же ссылкой
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRequest
		}
		return fmt.Errorf("repository: failed to append transaction for user %d: %w", l.userID, classify(err))
	}
	return nil
}

func (l *userLedger) SaveSummary(ctx context.Context, summary *domain.UserPointSummary) error {
	return saveSummary(ctx, l.db, summary)
}
