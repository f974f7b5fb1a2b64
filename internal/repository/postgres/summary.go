package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

const summaryColumns = `user_id, total_points, available_points, used_points, expired_points, level, version, created_at, updated_at`

// GetSummary получает зафиксированную сводку пользователя
func (s *LedgerStore) GetSummary(ctx context.Context, userID int64) (*domain.UserPointSummary, error) {
	summary, err := querySummary(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrSummaryNotFound
	}
	return summary, nil
}

// TopSummaries получает сводки с наибольшей суммой баллов.
// При равенстве выше стоит пользователь с более ранним счетом.
func (s *LedgerStore) TopSummaries(ctx context.Context, limit int) ([]*domain.UserPointSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+summaryColumns+`
		 FROM user_point_summaries
		 ORDER BY total_points DESC, created_at ASC, user_id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get top summaries: %w", classify(err))
	}
	defer rows.Close()

	var summaries []*domain.UserPointSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating summaries: %w", classify(err))
	}
	return summaries, nil
}

// querySummary возвращает nil без ошибки, если сводки нет
func querySummary(ctx context.Context, db DBTX, userID int64) (*domain.UserPointSummary, error) {
	row := db.QueryRow(ctx,
		`SELECT `+summaryColumns+`
		 FROM user_point_summaries
		 WHERE user_id = $1`,
		userID,
	)
	summary, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to get summary for user %d: %w", userID, classify(err))
	}
	return summary, nil
}

func scanSummary(row pgx.Row) (*domain.UserPointSummary, error) {
	summary := &domain.UserPointSummary{}
	err := row.Scan(&summary.UserID, &summary.TotalPoints, &summary.AvailablePoints, &summary.UsedPoints,
		&summary.ExpiredPoints, &summary.Level, &summary.Version, &summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// saveSummary вставляет новую сводку или обновляет существующую с проверкой версии
func saveSummary(ctx context.Context, db DBTX, summary *domain.UserPointSummary) error {
	if summary.Version == 0 {
		tag, err := db.Exec(ctx,
			`INSERT INTO user_point_summaries (`+summaryColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $8)
			 ON CONFLICT (user_id) DO NOTHING`,
			summary.UserID, summary.TotalPoints, summary.AvailablePoints, summary.UsedPoints,
			summary.ExpiredPoints, summary.Level, summary.CreatedAt, summary.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to insert summary for user %d: %w", summary.UserID, classify(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("repository: summary for user %d already exists: %w", summary.UserID, domain.ErrConcurrentModification)
		}
		summary.Version = 1
		return nil
	}

	tag, err := db.Exec(ctx,
		`UPDATE user_point_summaries
		 SET total_points = $1, available_points = $2, used_points = $3, expired_points = $4,
		     level = $5, version = version + 1, updated_at = $6
		 WHERE user_id = $7 AND version = $8`,
		summary.TotalPoints, summary.AvailablePoints, summary.UsedPoints, summary.ExpiredPoints,
		summary.Level, summary.UpdatedAt, summary.UserID, summary.Version,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update summary for user %d: %w", summary.UserID, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository: summary for user %d changed since version %d: %w",
			summary.UserID, summary.Version, domain.ErrConcurrentModification)
	}
	summary.Version++
	return nil
}
