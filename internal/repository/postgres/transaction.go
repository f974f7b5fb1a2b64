package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, user_id, points, kind, reason, description, reference_type, reference_id, created_at, expires_at`

// LedgerStore реализует domain.LedgerStore поверх PostgreSQL
type LedgerStore struct {
	db DBTX
}

// NewLedgerStore создает новый LedgerStore
func NewLedgerStore(db DBTX) *LedgerStore {
	return &LedgerStore{db: db}
}

// ListTransactions получает страницу истории операций пользователя (новые первыми)
func (s *LedgerStore) ListTransactions(ctx context.Context, userID int64, page, size int) ([]*domain.PointTransaction, int64, error) {
	var total int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM point_transactions WHERE user_id = $1`,
		userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count transactions for user %d: %w", userID, classify(err))
	}

	if page < 1 {
		page = 1
	}
	// смещение за концом истории или переполнение
	if size > 0 && page > 1 && (page-1 > math.MaxInt/size || int64(page-1)*int64(size) >= total) {
		return []*domain.PointTransaction{}, total, nil
	}
	offset := (page - 1) * size

	rows, err := s.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM point_transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, size, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list transactions for user %d: %w", userID, classify(err))
	}

	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// SumByUserAndKind суммирует баллы пользователя по типам операций
func (s *LedgerStore) SumByUserAndKind(ctx context.Context, userID int64, kinds ...domain.TransactionKind) (int64, error) {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	var sum int64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0)
		 FROM point_transactions
		 WHERE user_id = $1 AND kind = ANY($2)`,
		userID, names,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to sum transactions for user %d: %w", userID, classify(err))
	}
	return sum, nil
}

// ExpirationCandidates находит пользователей с просроченными и еще не сгоревшими начислениями
func (s *LedgerStore) ExpirationCandidates(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT t.user_id
		 FROM point_transactions t
		 JOIN user_point_summaries s ON s.user_id = t.user_id
		 WHERE t.expires_at IS NOT NULL
		   AND t.expires_at <= $1
		   AND s.available_points > 0
		   AND NOT EXISTS (
		       SELECT 1 FROM point_transactions e
		       WHERE e.user_id = t.user_id
		         AND e.kind = $2
		         AND e.reference_type = $3
		         AND e.reference_id = t.id::text
		   )
		 ORDER BY t.user_id`,
		now, domain.KindExpired, domain.ReferenceTypeTransaction,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to find expiration candidates: %w", classify(err))
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("repository: failed to scan expiration candidate: %w", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating expiration candidates: %w", classify(err))
	}
	return users, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.PointTransaction, error) {
	defer rows.Close()

	var txs []*domain.PointTransaction
	for rows.Next() {
		tx := &domain.PointTransaction{}
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Points, &tx.Kind, &tx.Reason, &tx.Description,
			&tx.ReferenceType, &tx.ReferenceID, &tx.CreatedAt, &tx.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating transactions: %w", classify(err))
	}
	return txs, nil
}
