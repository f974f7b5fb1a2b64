package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avc/points-ledger/internal/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App представляет приложение
type App struct {
	config  *config.Config
	logger  *zap.Logger
	storage *storage
	deps    *dependencies
	router  *chi.Mux
	server  *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	// Инициализация хранилища (для postgres - с миграциями)
	store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Инициализация зависимостей
	deps := initDependencies(cfg, store, logger)

	// Настройка роутера
	router := setupRouter(deps, deps.jwtManager, logger)

	// Создание HTTP сервера
	server := createServer(cfg.RunAddress, router)

	return &App{
		config:  cfg,
		logger:  logger,
		storage: store,
		deps:    deps,
		router:  router,
		server:  server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Фоновое сгорание баллов
	a.deps.sweeper.Start(ctx)
	a.logger.Info("expiration sweeper started", zap.Duration("interval", a.config.SweepInterval))

	// Потребитель событий леджера, если настроен Redis
	if err := a.deps.consumer.Start(); err != nil {
		return err
	}

	// Запуск HTTP сервера и ожидание сигнала завершения
	if err := a.runServer(ctx); err != nil {
		return err
	}

	// Graceful shutdown
	a.shutdown(cancel)

	return nil
}
