package app

import (
	"context"
	"fmt"

	"github.com/avc/points-ledger/internal/config"
	"github.com/avc/points-ledger/internal/domain"
	"github.com/avc/points-ledger/internal/repository/memory"
	"github.com/avc/points-ledger/internal/repository/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// storage хранилища приложения; db == nil для драйвера memory
type storage struct {
	ledger     domain.LedgerStore
	users      domain.UserRepository
	promotions domain.PromotionRepository
	db         *pgxpool.Pool
}

// initStorage создает хранилища выбранного драйвера
func initStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return &storage{
			ledger:     memory.NewStore(),
			users:      memory.NewUserRepository(),
			promotions: memory.NewPromotionCatalog(memory.DefaultPromotions()...),
		}, nil
	}

	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	return &storage{
		ledger:     postgres.NewLedgerStore(dbPool),
		users:      postgres.NewUserRepository(dbPool),
		promotions: postgres.NewPromotionRepository(dbPool),
		db:         dbPool,
	}, nil
}

func (s *storage) close() {
	if s.db != nil {
		s.db.Close()
	}
}

// initDatabase создает пул соединений с базой данных и выполняет миграции
func initDatabase(ctx context.Context, databaseURI string, logger *zap.Logger) (*pgxpool.Pool, error) {
	dbPool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, dbPool, logger); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations completed successfully")

	return dbPool, nil
}
