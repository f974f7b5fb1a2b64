package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

const promotionColumns = `id, code, title, required_points, promotion_type, discount_percent, max_discount_amount, valid_from, valid_to, is_active`

// PromotionRepository каталог акций в PostgreSQL
type PromotionRepository struct {
	db DBTX
}

// NewPromotionRepository создает новый PromotionRepository
func NewPromotionRepository(db DBTX) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// GetPromotionByCode получает акцию по коду без учета регистра
func (r *PromotionRepository) GetPromotionByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+`
		 FROM promotions
		 WHERE code = $1`,
		strings.ToUpper(strings.TrimSpace(code)),
	)

	p, err := scanPromotion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("repository: failed to get promotion %q: %w", code, classify(err))
	}
	return p, nil
}

// ListActivePromotions получает акции, доступные в момент at
func (r *PromotionRepository) ListActivePromotions(ctx context.Context, at time.Time) ([]*domain.Promotion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+promotionColumns+`
		 FROM promotions
		 WHERE is_active
		   AND (valid_from IS NULL OR valid_from <= $1)
		   AND (valid_to IS NULL OR valid_to >= $1)
		 ORDER BY required_points, id`,
		at,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list promotions: %w", classify(err))
	}
	defer rows.Close()

	var promotions []*domain.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating promotions: %w", classify(err))
	}
	return promotions, nil
}

func scanPromotion(row pgx.Row) (*domain.Promotion, error) {
	p := &domain.Promotion{}
	err := row.Scan(&p.ID, &p.Code, &p.Title, &p.RequiredPoints, &p.PromotionType,
		&p.DiscountPercent, &p.MaxDiscountAmount, &p.ValidFrom, &p.ValidTo, &p.IsActive)
	if err != nil {
		return nil, err
	}
	return p, nil
}
