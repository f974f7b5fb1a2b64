package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Consumer обрабатывает события леджера из очереди
type Consumer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewServeMux регистрирует обработчики событий леджера
func NewServeMux(logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	h := &eventHandler{logger: logger}
	mux.HandleFunc(TaskPointsCommitted, h.handle)
	mux.HandleFunc(TaskTierChanged, h.handle)
	mux.HandleFunc(TaskPointsExpired, h.handle)
	return mux
}

// NewConsumer создает потребителя; nil, если адрес Redis не задан
func NewConsumer(addr, password string, db, concurrency int, logger *zap.Logger) *Consumer {
	opt := RedisOpt(addr, password, db)
	if opt.Addr == "" {
		return nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{DefaultQueue: 1},
		Logger:      logger.Sugar(),
	})
	return &Consumer{server: server, mux: NewServeMux(logger), logger: logger}
}

// Start запускает обработку в фоне
func (c *Consumer) Start() error {
	if c == nil {
		return nil
	}
	if err := c.server.Start(c.mux); err != nil {
		return fmt.Errorf("queue: failed to start consumer: %w", err)
	}
	c.logger.Info("Ledger event consumer started", zap.String("queue", DefaultQueue))
	return nil
}

// Shutdown останавливает обработку
func (c *Consumer) Shutdown() {
	if c == nil {
		return
	}
	c.server.Shutdown()
}

type eventHandler struct {
	logger *zap.Logger
}

func (h *eventHandler) handle(_ context.Context, task *asynq.Task) error {
	event, err := ParseLedgerEvent(task)
	if err != nil {
		// Повтор не поможет
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	h.logger.Info("Ledger event",
		zap.String("type", string(event.Type)),
		zap.Int64("user_id", event.UserID),
		zap.Int64s("transaction_ids", event.TransactionIDs),
		zap.Int64("points", event.Points),
		zap.Int64("available_points", event.AvailablePoints),
		zap.String("level", string(event.Level)),
		zap.String("previous_level", string(event.PreviousLevel)),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
