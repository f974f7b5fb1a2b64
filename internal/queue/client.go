// Package queue публикует события леджера в очередь asynq после фиксации.
package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/hibiken/asynq"
)

// DefaultQueue очередь событий леджера
const DefaultQueue = "ledger"

const defaultMaxRetry = 5

// Publisher реализует domain.EventPublisher поверх asynq.
// Без адреса Redis публикация ничего не делает.
type Publisher struct {
	client *asynq.Client
	queue  string
}

// RedisOpt собирает параметры подключения asynq
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     strings.TrimSpace(addr),
		Password: password,
		DB:       db,
	}
}

// NewPublisher создает издателя; пустой addr отключает очередь
func NewPublisher(addr, password string, db int) *Publisher {
	if strings.TrimSpace(addr) == "" {
		return &Publisher{queue: DefaultQueue}
	}
	return &Publisher{
		client: asynq.NewClient(RedisOpt(addr, password, db)),
		queue:  DefaultQueue,
	}
}

// Enabled возвращает true, если очередь подключена
func (p *Publisher) Enabled() bool {
	return p != nil && p.client != nil
}

// Publish ставит событие в очередь
func (p *Publisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	if !p.Enabled() {
		return nil
	}
	task, err := NewLedgerEventTask(event)
	if err != nil {
		return err
	}
	if _, err := p.client.EnqueueContext(ctx, task, asynq.Queue(p.queue), asynq.MaxRetry(defaultMaxRetry)); err != nil {
		return fmt.Errorf("queue: failed to enqueue %s for user %d: %w", event.Type, event.UserID, err)
	}
	return nil
}

// Close закрывает соединение
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.client.Close()
}
