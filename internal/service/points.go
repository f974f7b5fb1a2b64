package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/avc/points-ledger/internal/ledger"
	"github.com/avc/points-ledger/internal/tier"
	"go.uber.org/zap"
)

// Значения по умолчанию для страниц истории
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// conflictBackoff базовая пауза между повторами при конфликте версий
const conflictBackoff = 10 * time.Millisecond

// errRedemptionDeclined прерывает единицу работы без записи
var errRedemptionDeclined = errors.New("redemption declined")

// LedgerOptions параметры LedgerService
type LedgerOptions struct {
	// PointsTTL срок действия начислений; 0 - бессрочно
	PointsTTL time.Duration
	// LockTimeout ограничивает ожидание критической секции пользователя
	LockTimeout time.Duration
	// MaxConflictRetries число повторов при ErrConcurrentModification
	MaxConflictRetries int
	// Clock источник времени, по умолчанию time.Now
	Clock func() time.Time
}

// LedgerService реализует domain.PointsService
type LedgerService struct {
	store      domain.LedgerStore
	promotions domain.PromotionRepository
	publisher  domain.EventPublisher
	logger     *zap.Logger
	opts       LedgerOptions
}

// NewLedgerService создает новый LedgerService.
// promotions и publisher могут быть nil.
func NewLedgerService(
	store domain.LedgerStore,
	promotions domain.PromotionRepository,
	publisher domain.EventPublisher,
	logger *zap.Logger,
	opts LedgerOptions,
) *LedgerService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		store:      store,
		promotions: promotions,
		publisher:  publisher,
		logger:     logger,
		opts:       opts,
	}
}

func (s *LedgerService) now() time.Time {
	return s.opts.Clock().UTC()
}

// mutation итог изменения леджера пользователя для публикации событий
type mutation struct {
	before   tier.Tier
	after    *domain.UserPointSummary
	appended []*domain.PointTransaction
	expired  []*domain.PointTransaction
}

// Earn начисляет баллы. Повтор с тем же ReferenceID возвращает исходную операцию.
func (s *LedgerService) Earn(ctx context.Context, req domain.EarnRequest) (*domain.PointTransaction, error) {
	if req.Points <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, req.Points)
	}
	if req.Kind == "" {
		req.Kind = domain.KindEarned
	}
	if !req.Kind.Expirable() {
		return nil, fmt.Errorf("%w: %q cannot be earned", domain.ErrInvalidKind, req.Kind)
	}

	now := s.now()
	expiresAt := req.ExpiresAt
	if expiresAt == nil && s.opts.PointsTTL > 0 {
		at := now.Add(s.opts.PointsTTL)
		expiresAt = &at
	}

	return s.credit(ctx, &domain.PointTransaction{
		UserID:        req.UserID,
		Points:        req.Points,
		Kind:          req.Kind,
		Reason:        req.Reason,
		Description:   req.Description,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		CreatedAt:     now,
		ExpiresAt:     expiresAt,
	})
}

// AdminGrant начисляет баллы вручную. Такие начисления не сгорают.
func (s *LedgerService) AdminGrant(ctx context.Context, userID, points int64, reason, description string) (*domain.PointTransaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, points)
	}

	return s.credit(ctx, &domain.PointTransaction{
		UserID:        userID,
		Points:        points,
		Kind:          domain.KindAdminGrant,
		Reason:        reason,
		Description:   description,
		ReferenceType: domain.ReferenceTypeAdmin,
		CreatedAt:     s.now(),
	})
}

func (s *LedgerService) credit(ctx context.Context, tx *domain.PointTransaction) (*domain.PointTransaction, error) {
	var (
		result *domain.PointTransaction
		m      mutation
	)

	err := s.inCriticalSection(ctx, tx.UserID, func(ctx context.Context, l domain.UserLedger) error {
		result, m = nil, mutation{}

		if tx.HasReference() {
			existing, err := l.FindByReference(ctx, tx.Kind, tx.ReferenceType, tx.ReferenceID)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
		}

		summary, err := l.Summary(ctx)
		if err != nil {
			return err
		}
		m.before = summary.Level

		entry := *tx
		if err := appendAndApply(ctx, l, summary, &entry); err != nil {
			return err
		}
		if err := l.SaveSummary(ctx, summary); err != nil {
			return err
		}

		result, m.after, m.appended = &entry, summary, []*domain.PointTransaction{&entry}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to credit %d %s to user %d: %w", tx.Points, tx.Kind, tx.UserID, err)
	}

	s.publish(ctx, tx.UserID, m)
	return result, nil
}

// Redeem списывает баллы. Недостаток баланса и неверное количество
// возвращаются в результате, а не ошибкой.
func (s *LedgerService) Redeem(ctx context.Context, req domain.RedemptionRequest) (*domain.RedemptionResult, error) {
	if req.Points <= 0 {
		return &domain.RedemptionResult{
			Message: fmt.Sprintf("points must be positive, got %d", req.Points),
			Failure: domain.FailureInvalidAmount,
		}, nil
	}

	var (
		result *domain.RedemptionResult
		m      mutation
	)

	err := s.inCriticalSection(ctx, req.UserID, func(ctx context.Context, l domain.UserLedger) error {
		result, m = nil, mutation{}

		if req.ReferenceID != "" {
			prior, err := l.FindByReference(ctx, domain.KindRedeemed, req.ReferenceType, req.ReferenceID)
			if err != nil {
				return err
			}
			if prior != nil {
				result, err = replayRedemption(ctx, l, prior)
				return err
			}
		}

		summary, err := l.Summary(ctx)
		if err != nil {
			return err
		}
		m.before = summary.Level

		// Просроченные баллы сгорают до списания
		now := s.now()
		m.expired, err = expireOverdue(ctx, l, summary, now)
		if err != nil {
			return err
		}

		if summary.AvailablePoints < req.Points {
			result = &domain.RedemptionResult{
				Message:         fmt.Sprintf("insufficient balance: %d available, %d requested", summary.AvailablePoints, req.Points),
				RemainingPoints: summary.AvailablePoints,
				Shortfall:       req.Points - summary.AvailablePoints,
				Failure:         domain.FailureInsufficientBalance,
			}
			return errRedemptionDeclined
		}

		entry := &domain.PointTransaction{
			UserID:        req.UserID,
			Points:        -req.Points,
			Kind:          domain.KindRedeemed,
			Reason:        req.Reason,
			Description:   req.Description,
			ReferenceType: req.ReferenceType,
			ReferenceID:   req.ReferenceID,
			CreatedAt:     now,
		}
		if err := appendAndApply(ctx, l, summary, entry); err != nil {
			return err
		}
		if err := l.SaveSummary(ctx, summary); err != nil {
			return err
		}

		m.after, m.appended = summary, []*domain.PointTransaction{entry}
		result = &domain.RedemptionResult{
			Success:         true,
			Message:         "points redeemed",
			RemainingPoints: summary.AvailablePoints,
			Transaction:     entry,
		}
		return nil
	})
	if errors.Is(err, errRedemptionDeclined) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to redeem %d points for user %d: %w", req.Points, req.UserID, err)
	}

	s.publish(ctx, req.UserID, m)
	return result, nil
}

// replayRedemption восстанавливает результат ранее выполненного списания
func replayRedemption(ctx context.Context, l domain.UserLedger, prior *domain.PointTransaction) (*domain.RedemptionResult, error) {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	at, err := ledger.FoldUntil(prior.UserID, txs, prior.ID)
	if err != nil {
		return nil, err
	}
	return &domain.RedemptionResult{
		Success:         true,
		Message:         "points redeemed",
		RemainingPoints: at.AvailablePoints,
		Replayed:        true,
		Transaction:     prior,
	}, nil
}

// RedeemPromotion списывает стоимость акции из каталога
func (s *LedgerService) RedeemPromotion(ctx context.Context, userID int64, code, referenceID string) (*domain.RedemptionResult, error) {
	if s.promotions == nil {
		return nil, domain.ErrPromotionNotFound
	}

	promotion, err := s.promotions.GetPromotionByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrPromotionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ledger service: failed to get promotion %q: %w", code, err)
	}
	if !promotion.ActiveAt(s.now()) {
		return nil, domain.ErrPromotionInactive
	}

	result, err := s.Redeem(ctx, domain.RedemptionRequest{
		UserID:        userID,
		Points:        promotion.RequiredPoints,
		Reason:        "promotion:" + strings.ToUpper(promotion.Code),
		Description:   promotion.Title,
		ReferenceType: domain.ReferenceTypePromotion,
		ReferenceID:   referenceID,
	})
	if err != nil {
		return nil, err
	}
	result.Promotion = promotion
	return result, nil
}

// ListPromotions возвращает акции, доступные сейчас
func (s *LedgerService) ListPromotions(ctx context.Context) ([]*domain.Promotion, error) {
	if s.promotions == nil {
		return []*domain.Promotion{}, nil
	}

	promotions, err := s.promotions.ListActivePromotions(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to list promotions: %w", err)
	}
	if promotions == nil {
		promotions = []*domain.Promotion{}
	}
	return promotions, nil
}

// CheckBalance предварительная проверка без изменений; результат не резервирует баллы
func (s *LedgerService) CheckBalance(ctx context.Context, userID, points int64) (*domain.BalanceCheck, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, points)
	}

	summary, err := s.GetSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := &domain.BalanceCheck{
		HasEnough:       summary.AvailablePoints >= points,
		AvailablePoints: summary.AvailablePoints,
	}
	if check.HasEnough {
		check.RemainingPoints = summary.AvailablePoints - points
	}
	return check, nil
}

// GetSummary получает сводку; для пользователя без операций - нулевую
func (s *LedgerService) GetSummary(ctx context.Context, userID int64) (*domain.UserPointSummary, error) {
	summary, err := s.store.GetSummary(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			return domain.NewSummary(userID), nil
		}
		return nil, fmt.Errorf("ledger service: failed to get summary for user %d: %w", userID, err)
	}
	return summary, nil
}

// ListTransactions получает страницу истории, новые операции первыми
func (s *LedgerService) ListTransactions(ctx context.Context, userID int64, page, size int) (*domain.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)
	if page-1 > math.MaxInt/size {
		return nil, fmt.Errorf("%w: page %d is out of range", domain.ErrInvalidInput, page)
	}

	items, total, err := s.store.ListTransactions(ctx, userID, page, size)
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to list transactions for user %d: %w", userID, err)
	}
	if items == nil {
		items = []*domain.PointTransaction{}
	}

	return &domain.TransactionPage{Items: items, Page: page, Size: size, Total: total}, nil
}

// SumByKind суммирует баллы пользователя по типам операций
func (s *LedgerService) SumByKind(ctx context.Context, userID int64, kinds ...domain.TransactionKind) (int64, error) {
	sum, err := s.store.SumByUserAndKind(ctx, userID, kinds...)
	if err != nil {
		return 0, fmt.Errorf("ledger service: failed to sum %v for user %d: %w", kinds, userID, err)
	}
	return sum, nil
}

// Rebuild пересчитывает сводку сверткой журнала и сохраняет результат
func (s *LedgerService) Rebuild(ctx context.Context, userID int64) (*domain.UserPointSummary, error) {
	var rebuilt *domain.UserPointSummary

	err := s.inCriticalSection(ctx, userID, func(ctx context.Context, l domain.UserLedger) error {
		rebuilt = nil

		txs, err := l.Transactions(ctx)
		if err != nil {
			return err
		}
		current, err := l.Summary(ctx)
		if err != nil {
			return err
		}

		folded, err := ledger.Fold(userID, txs)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			rebuilt = folded
			return nil
		}

		if !current.SameBalance(folded) {
			s.logger.Warn("summary drift repaired",
				zap.Int64("user_id", userID),
				zap.Int64("stored_available", current.AvailablePoints),
				zap.Int64("rebuilt_available", folded.AvailablePoints),
				zap.Int64("stored_total", current.TotalPoints),
				zap.Int64("rebuilt_total", folded.TotalPoints),
			)
		}

		folded.Version = current.Version
		if err := l.SaveSummary(ctx, folded); err != nil {
			return err
		}
		rebuilt = folded
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to rebuild summary for user %d: %w", userID, err)
	}
	return rebuilt, nil
}

// ExpireUser списывает остатки всех просроченных партий пользователя.
// Повторный вызов в том же окне ничего не записывает.
func (s *LedgerService) ExpireUser(ctx context.Context, userID int64) (*domain.ExpirationReport, error) {
	var (
		report *domain.ExpirationReport
		m      mutation
	)

	err := s.inCriticalSection(ctx, userID, func(ctx context.Context, l domain.UserLedger) error {
		report, m = &domain.ExpirationReport{UserID: userID}, mutation{}

		summary, err := l.Summary(ctx)
		if err != nil {
			return err
		}
		m.before = summary.Level

		m.expired, err = expireOverdue(ctx, l, summary, s.now())
		if err != nil {
			return err
		}
		if len(m.expired) == 0 {
			return nil
		}
		if err := l.SaveSummary(ctx, summary); err != nil {
			return err
		}

		m.after = summary
		report.Transactions = len(m.expired)
		for _, tx := range m.expired {
			report.ExpiredPoints += tx.Magnitude()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to expire points for user %d: %w", userID, err)
	}

	s.publish(ctx, userID, m)
	return report, nil
}

// ExpirationCandidates находит пользователей с просроченными партиями
func (s *LedgerService) ExpirationCandidates(ctx context.Context) ([]int64, error) {
	users, err := s.store.ExpirationCandidates(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to find expiration candidates: %w", err)
	}
	return users, nil
}

// expireOverdue добавляет операции сгорания для просроченных партий и применяет их к сводке
func expireOverdue(ctx context.Context, l domain.UserLedger, summary *domain.UserPointSummary, now time.Time) ([]*domain.PointTransaction, error) {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}

	entries := ledger.ExpirationEntries(summary.UserID, txs, now)
	for _, entry := range entries {
		if err := appendAndApply(ctx, l, summary, entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// appendAndApply проверяет операцию на сводке до записи, затем добавляет ее в журнал
func appendAndApply(ctx context.Context, l domain.UserLedger, summary *domain.UserPointSummary, tx *domain.PointTransaction) error {
	next := summary.Clone()
	if err := ledger.Apply(next, tx); err != nil {
		return err
	}
	if err := l.Append(ctx, tx); err != nil {
		return err
	}
	*summary = *next
	return nil
}

// inCriticalSection выполняет fn под блокировкой пользователя с ограничением
// ожидания и повторами при конфликте версий
func (s *LedgerService) inCriticalSection(ctx context.Context, userID int64, fn func(ctx context.Context, l domain.UserLedger) error) error {
	if s.opts.LockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LockTimeout)
		defer cancel()
	}

	for attempt := 0; ; attempt++ {
		err := s.store.WithUserLock(ctx, userID, fn)
		if err == nil || !errors.Is(err, domain.ErrConcurrentModification) || attempt >= s.opts.MaxConflictRetries {
			return err
		}

		s.logger.Warn("ledger conflict, retrying",
			zap.Int64("user_id", userID),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		select {
		case <-time.After(conflictBackoff * time.Duration(attempt+1)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// publish отправляет события после фиксации; ошибки доставки не влияют на результат
func (s *LedgerService) publish(ctx context.Context, userID int64, m mutation) {
	if s.publisher == nil || m.after == nil {
		return
	}

	var events []domain.LedgerEvent
	base := domain.LedgerEvent{
		UserID:          userID,
		AvailablePoints: m.after.AvailablePoints,
		TotalPoints:     m.after.TotalPoints,
		Level:           m.after.Level,
		OccurredAt:      m.after.UpdatedAt,
	}

	if len(m.expired) > 0 {
		ev := base
		ev.Type = domain.EventPointsExpired
		ev.Kind = domain.KindExpired
		for _, tx := range m.expired {
			ev.TransactionIDs = append(ev.TransactionIDs, tx.ID)
			ev.Points += tx.Points
		}
		events = append(events, ev)
	}
	for _, tx := range m.appended {
		ev := base
		ev.Type = domain.EventPointsCommitted
		ev.Kind = tx.Kind
		ev.Points = tx.Points
		ev.TransactionIDs = []int64{tx.ID}
		events = append(events, ev)
	}
	if m.before != m.after.Level {
		ev := base
		ev.Type = domain.EventTierChanged
		ev.PreviousLevel = m.before
		events = append(events, ev)
	}

	for _, ev := range events {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Warn("failed to publish ledger event",
				zap.String("type", string(ev.Type)),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}
}
