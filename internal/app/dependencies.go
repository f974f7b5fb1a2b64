package app

import (
	"github.com/avc/points-ledger/internal/cache"
	"github.com/avc/points-ledger/internal/config"
	"github.com/avc/points-ledger/internal/handlers"
	"github.com/avc/points-ledger/internal/leaderboard"
	"github.com/avc/points-ledger/internal/queue"
	"github.com/avc/points-ledger/internal/service"
	"github.com/avc/points-ledger/internal/utils/jwt"
	"github.com/avc/points-ledger/internal/utils/password"
	"github.com/avc/points-ledger/internal/worker"
	"go.uber.org/zap"
)

// services содержит все сервисы приложения
type services struct {
	auth        *service.AuthService
	points      *service.LedgerService
	leaderboard *leaderboard.Index
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	auth   *handlers.AuthHandler
	points *handlers.PointsHandler
	admin  *handlers.AdminHandler
	health *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
	sweeper    *worker.Sweeper
	publisher  *queue.Publisher
	consumer   *queue.Consumer
	cache      *cache.RedisCache
}

// initDependencies создает все зависимости приложения
func initDependencies(cfg *config.Config, store *storage, logger *zap.Logger) *dependencies {
	// Redis необязателен: без адреса кэш и очередь отключены
	redisCache := cache.NewRedisCache(cache.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB), cache.DefaultPrefix)
	publisher := queue.NewPublisher(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
	consumer := queue.NewConsumer(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, 1, logger.Named("events"))

	// Создание утилит
	passwordHasher := password.NewBCryptHasher(password.DefaultCost, cfg.MinPasswordLength)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	// Создание сервисов
	points := service.NewLedgerService(store.ledger, store.promotions, publisher, logger.Named("ledger"), service.LedgerOptions{
		PointsTTL:          cfg.PointsTTL,
		LockTimeout:        cfg.LockTimeout,
		MaxConflictRetries: cfg.MaxConflictRetries,
	})
	svcs := &services{
		auth:   service.NewAuthService(store.users, passwordHasher, jwtManager, cfg.AdminLogins...),
		points: points,
		leaderboard: leaderboard.NewIndex(store.ledger, redisCache, logger.Named("leaderboard"), leaderboard.Options{
			Size:            cfg.LeaderboardSize,
			RefreshInterval: cfg.LeaderboardRefreshInterval,
		}),
	}

	// Нулевые интерфейсы означают, что зависимость не настроена
	var dbPinger, cachePinger handlers.Pinger
	if store.db != nil {
		dbPinger = store.db
	}
	if redisCache.Enabled() {
		cachePinger = redisCache
	}

	// Создание handlers
	hdlrs := &handlerSet{
		auth:   handlers.NewAuthHandler(svcs.auth, logger),
		points: handlers.NewPointsHandler(svcs.points, svcs.leaderboard, logger),
		admin:  handlers.NewAdminHandler(svcs.points, logger),
		health: handlers.NewHealthHandler(dbPinger, cachePinger, logger),
	}

	sweeper := worker.NewSweeper(cfg.SweeperWorkers, cfg.SweeperQueueSize, cfg.SweepInterval, svcs.points, logger.Named("sweeper"))

	return &dependencies{
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		sweeper:    sweeper,
		publisher:  publisher,
		consumer:   consumer,
		cache:      redisCache,
	}
}
