package queue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/hibiken/asynq"
)

const taskPrefix = "ledger:"

const (
	TaskPointsCommitted = taskPrefix + string(domain.EventPointsCommitted)
	TaskTierChanged     = taskPrefix + string(domain.EventTierChanged)
	TaskPointsExpired   = taskPrefix + string(domain.EventPointsExpired)
)

// TaskType возвращает тип задачи asynq для события
func TaskType(eventType domain.EventType) string {
	return taskPrefix + string(eventType)
}

// NewLedgerEventTask упаковывает событие в задачу
func NewLedgerEventTask(event domain.LedgerEvent) (*asynq.Task, error) {
	if event.Type == "" {
		return nil, fmt.Errorf("queue: event type is empty")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("queue: failed to encode %s event: %w", event.Type, err)
	}
	return asynq.NewTask(TaskType(event.Type), body), nil
}

// ParseLedgerEvent распаковывает событие из задачи
func ParseLedgerEvent(task *asynq.Task) (domain.LedgerEvent, error) {
	var event domain.LedgerEvent
	if !strings.HasPrefix(task.Type(), taskPrefix) {
		return event, fmt.Errorf("queue: unexpected task type %q", task.Type())
	}
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return event, fmt.Errorf("queue: failed to decode %q payload: %w", task.Type(), err)
	}
	if TaskType(event.Type) != task.Type() {
		return event, fmt.Errorf("queue: payload type %q does not match task %q", event.Type, task.Type())
	}
	return event, nil
}
