// Package memory реализует хранилище леджера в памяти процесса.
// Записи внутри WithUserLock видны читателям только после фиксации.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avc/points-ledger/internal/domain"
)

// Store потокобезопасный LedgerStore в памяти
type Store struct {
	mu        sync.RWMutex
	txs       map[int64][]*domain.PointTransaction // по пользователю, в порядке добавления
	summaries map[int64]*domain.UserPointSummary

	locksMu sync.Mutex
	locks   map[int64]chan struct{}

	nextID atomic.Int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		txs:       make(map[int64][]*domain.PointTransaction),
		summaries: make(map[int64]*domain.UserPointSummary),
		locks:     make(map[int64]chan struct{}),
	}
}

func (s *Store) lockFor(userID int64) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = make(chan struct{}, 1)
		s.locks[userID] = lock
	}
	return lock
}

// WithUserLock выполняет fn в критической секции пользователя.
// Ожидание секции прерывается ctx; при ошибке fn записи отбрасываются.
func (s *Store) WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context, ledger domain.UserLedger) error) error {
	lock := s.lockFor(userID)
	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("memory store: waiting for user %d lock: %w", userID, ctx.Err())
	}
	defer func() { <-lock }()

	ul := &userLedger{store: s, userID: userID}
	if err := fn(ctx, ul); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory store: commit for user %d: %w", userID, err)
	}

	s.commit(ul)
	return nil
}

func (s *Store) commit(ul *userLedger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[ul.userID] = append(s.txs[ul.userID], ul.staged...)
	if ul.summary != nil {
		s.summaries[ul.userID] = ul.summary
	}
}

// ListTransactions возвращает страницу транзакций, новые первыми
func (s *Store) ListTransactions(_ context.Context, userID int64, page, size int) ([]*domain.PointTransaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.txs[userID]
	total := int64(len(all))
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = max(len(all), 1)
	}

	pages := 0
	if len(all) > 0 {
		pages = (len(all)-1)/size + 1
	}
	// страница за концом истории
	if page-1 >= pages {
		return []*domain.PointTransaction{}, total, nil
	}

	// обходим с конца
	start := (page - 1) * size
	result := make([]*domain.PointTransaction, 0, min(size, len(all)-start))
	for i := len(all) - 1 - start; i >= 0 && len(result) < size; i-- {
		result = append(result, cloneTx(all[i]))
	}
	return result, total, nil
}

// SumByUserAndKind суммирует баллы указанных типов
func (s *Store) SumByUserAndKind(_ context.Context, userID int64, kinds ...domain.TransactionKind) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for _, tx := range s.txs[userID] {
		for _, k := range kinds {
			if tx.Kind == k {
				sum += tx.Points
				break
			}
		}
	}
	return sum, nil
}

// GetSummary возвращает зафиксированную сводку пользователя
func (s *Store) GetSummary(_ context.Context, userID int64) (*domain.UserPointSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[userID]
	if !ok {
		return nil, domain.ErrSummaryNotFound
	}
	return summary.Clone(), nil
}

// TopSummaries возвращает сводки по убыванию total_points; при равенстве раньше идет старший аккаунт
func (s *Store) TopSummaries(_ context.Context, limit int) ([]*domain.UserPointSummary, error) {
	s.mu.RLock()
	all := make([]*domain.UserPointSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		all = append(all, summary.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.UserID < b.UserID
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ExpirationCandidates возвращает пользователей с просроченными неизрасходованными начислениями
func (s *Store) ExpirationCandidates(_ context.Context, now time.Time) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []int64
	for userID, txs := range s.txs {
		if summary, ok := s.summaries[userID]; !ok || summary.AvailablePoints <= 0 {
			continue
		}
		expired := make(map[string]bool)
		for _, tx := range txs {
			if tx.Kind == domain.KindExpired && tx.ReferenceType == domain.ReferenceTypeTransaction {
				expired[tx.ReferenceID] = true
			}
		}
		for _, tx := range txs {
			if tx.Kind.Expirable() && tx.ExpiresAt != nil && !tx.ExpiresAt.After(now) &&
				!expired[fmt.Sprintf("%d", tx.ID)] {
				users = append(users, userID)
				break
			}
		}
	}

	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users, nil
}

// userLedger незафиксированное представление леджера внутри WithUserLock
type userLedger struct {
	store   *Store
	userID  int64
	staged  []*domain.PointTransaction
	summary *domain.UserPointSummary
}

func (l *userLedger) Summary(_ context.Context) (*domain.UserPointSummary, error) {
	if l.summary != nil {
		return l.summary.Clone(), nil
	}
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	if summary, ok := l.store.summaries[l.userID]; ok {
		return summary.Clone(), nil
	}
	return domain.NewSummary(l.userID), nil
}

func (l *userLedger) Transactions(_ context.Context) ([]*domain.PointTransaction, error) {
	l.store.mu.RLock()
	committed := l.store.txs[l.userID]
	out := make([]*domain.PointTransaction, 0, len(committed)+len(l.staged))
	for _, tx := range committed {
		out = append(out, cloneTx(tx))
	}
	l.store.mu.RUnlock()

	for _, tx := range l.staged {
		out = append(out, cloneTx(tx))
	}
	return out, nil
}

func (l *userLedger) FindByReference(ctx context.Context, kind domain.TransactionKind, referenceType, referenceID string) (*domain.PointTransaction, error) {
	if referenceID == "" {
		return nil, nil
	}
	txs, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if tx.Kind == kind && tx.ReferenceType == referenceType && tx.ReferenceID == referenceID {
			return tx, nil
		}
	}
	return nil, nil
}

func (l *userLedger) Append(ctx context.Context, tx *domain.PointTransaction) error {
	if tx.UserID != l.userID {
		return fmt.Errorf("memory store: transaction for user %d appended under lock of user %d", tx.UserID, l.userID)
	}
	if tx.HasReference() {
		existing, err := l.FindByReference(ctx, tx.Kind, tx.ReferenceType, tx.ReferenceID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateRequest
		}
	}

	tx.ID = l.store.nextID.Add(1)
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	l.staged = append(l.staged, cloneTx(tx))
	return nil
}

func (l *userLedger) SaveSummary(ctx context.Context, summary *domain.UserPointSummary) error {
	current, err := l.Summary(ctx)
	if err != nil {
		return err
	}
	if current.Version != summary.Version {
		return fmt.Errorf("memory store: summary of user %d has version %d, expected %d: %w",
			l.userID, current.Version, summary.Version, domain.ErrConcurrentModification)
	}

	summary.Version++
	l.summary = summary.Clone()
	return nil
}

func cloneTx(tx *domain.PointTransaction) *domain.PointTransaction {
	c := *tx
	if tx.ExpiresAt != nil {
		at := *tx.ExpiresAt
		c.ExpiresAt = &at
	}
	return &c
}
