package domain

import (
	"context"
	"time"
)

// UserLedger операции над журналом одного пользователя внутри критической секции.
// Все записи становятся видимыми только после фиксации всей единицы работы.
type UserLedger interface {
	// Summary возвращает сводку; для нового пользователя - пустую с Version == 0
	Summary(ctx context.Context) (*UserPointSummary, error)
	// Transactions возвращает все операции пользователя в порядке добавления
	Transactions(ctx context.Context) ([]*PointTransaction, error)
	// FindByReference ищет операцию по ключу идемпотентности, nil если не найдена
	FindByReference(ctx context.Context, kind TransactionKind, referenceType, referenceID string) (*PointTransaction, error)
	// Append добавляет операцию и заполняет ее ID
	Append(ctx context.Context, tx *PointTransaction) error
	// SaveSummary сохраняет сводку с проверкой версии и увеличивает Version
	SaveSummary(ctx context.Context, summary *UserPointSummary) error
}

// LedgerStore хранилище журнала операций и сводок
type LedgerStore interface {
	WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context, ledger UserLedger) error) error
	ListTransactions(ctx context.Context, userID int64, page, size int) ([]*PointTransaction, int64, error)
	SumByUserAndKind(ctx context.Context, userID int64, kinds ...TransactionKind) (int64, error)
	GetSummary(ctx context.Context, userID int64) (*UserPointSummary, error)
	TopSummaries(ctx context.Context, limit int) ([]*UserPointSummary, error)
	ExpirationCandidates(ctx context.Context, now time.Time) ([]int64, error)
}

// PromotionRepository каталог акций (только чтение)
type PromotionRepository interface {
	GetPromotionByCode(ctx context.Context, code string) (*Promotion, error)
	ListActivePromotions(ctx context.Context, at time.Time) ([]*Promotion, error)
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	CreateUser(ctx context.Context, login, passwordHash string) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// AuthService определяет методы аутентификации
type AuthService interface {
	Register(ctx context.Context, login, password string) (string, error)
	Login(ctx context.Context, login, password string) (string, error)
}

// PointsService синхронный API леджера для внешних потребителей
type PointsService interface {
	Earn(ctx context.Context, req EarnRequest) (*PointTransaction, error)
	AdminGrant(ctx context.Context, userID, points int64, reason, description string) (*PointTransaction, error)
	Redeem(ctx context.Context, req RedemptionRequest) (*RedemptionResult, error)
	RedeemPromotion(ctx context.Context, userID int64, code, referenceID string) (*RedemptionResult, error)
	ListPromotions(ctx context.Context) ([]*Promotion, error)
	CheckBalance(ctx context.Context, userID, points int64) (*BalanceCheck, error)
	GetSummary(ctx context.Context, userID int64) (*UserPointSummary, error)
	ListTransactions(ctx context.Context, userID int64, page, size int) (*TransactionPage, error)
	Rebuild(ctx context.Context, userID int64) (*UserPointSummary, error)
}

// Leaderboard рейтинг пользователей по сумме заработанных баллов
type Leaderboard interface {
	Top(ctx context.Context, n int) ([]LeaderboardEntry, error)
}

// EventPublisher публикует события леджера после фиксации
type EventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}

// PointsExpirer списание просроченных баллов для фонового обхода
type PointsExpirer interface {
	ExpirationCandidates(ctx context.Context) ([]int64, error)
	ExpireUser(ctx context.Context, userID int64) (*ExpirationReport, error)
}
