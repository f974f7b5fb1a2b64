package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// PromotionCatalog каталог акций в памяти
type PromotionCatalog struct {
	mu     sync.RWMutex
	byCode map[string]*domain.Promotion
	nextID atomic.Int64
}

// NewPromotionCatalog создает каталог с начальными акциями
func NewPromotionCatalog(promotions ...*domain.Promotion) *PromotionCatalog {
	c := &PromotionCatalog{byCode: make(map[string]*domain.Promotion)}
	for _, p := range promotions {
		c.Add(p)
	}
	return c
}

// Add добавляет акцию и присваивает ID, если его нет
func (c *PromotionCatalog) Add(p *domain.Promotion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *p
	if cp.ID == 0 {
		cp.ID = c.nextID.Add(1)
	}
	c.byCode[normalizeCode(cp.Code)] = &cp
}

// DefaultPromotions стартовый каталог для драйвера memory
func DefaultPromotions() []*domain.Promotion {
	return []*domain.Promotion{
		{
			Code:           "WELCOME100",
			Title:          "Welcome gift",
			RequiredPoints: 100,
			PromotionType:  domain.PromotionOther,
			IsActive:       true,
		},
		{
			Code:           "FREESHIP",
			Title:          "Free delivery",
			RequiredPoints: 300,
			PromotionType:  domain.PromotionFreeService,
			IsActive:       true,
		},
		{
			Code:              "DISCOUNT10",
			Title:             "10% off, up to 50",
			RequiredPoints:    500,
			PromotionType:     domain.PromotionDiscount,
			DiscountPercent:   decimal.NewNullDecimal(decimal.NewFromInt(10)),
			MaxDiscountAmount: decimal.NewNullDecimal(decimal.NewFromInt(50)),
			IsActive:          true,
		},
	}
}

func (c *PromotionCatalog) GetPromotionByCode(_ context.Context, code string) (*domain.Promotion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byCode[normalizeCode(code)]
	if !ok {
		return nil, domain.ErrPromotionNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *PromotionCatalog) ListActivePromotions(_ context.Context, at time.Time) ([]*domain.Promotion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*domain.Promotion
	for _, p := range c.byCode {
		if p.ActiveAt(at) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequiredPoints < out[j].RequiredPoints })
	return out, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// UserRepository хранит пользователей в памяти
type UserRepository struct {
	mu      sync.RWMutex
	byLogin map[string]*domain.User
	byID    map[int64]*domain.User
	nextID  atomic.Int64
}

// NewUserRepository создает пустой репозиторий
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byLogin: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
	}
}

func (r *UserRepository) CreateUser(_ context.Context, login, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byLogin[login]; exists {
		return nil, domain.ErrUserExists
	}
	user := &domain.User{
		ID:           r.nextID.Add(1),
		Login:        login,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byLogin[login] = user
	r.byID[user.ID] = user
	cp := *user
	return &cp, nil
}

func (r *UserRepository) GetUserByLogin(_ context.Context, login string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byLogin[login]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}
