package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

// Enqueuer schedules push deliveries on the redis-backed task queue.
// Enqueueing is the detachment point: the mutation that triggered the
// push returns as soon as the task is queued, and the worker picks it
// up on its own schedule regardless of what happens to the request.
type Enqueuer struct {
	client   *asynq.Client
	maxRetry int
}

func NewEnqueuer(client *asynq.Client, maxRetry int) *Enqueuer {
	return &Enqueuer{client: client, maxRetry: maxRetry}
}

func (e *Enqueuer) Enqueue(ctx context.Context, recipientID uuid.UUID, payload domain.Payload) error {
	body, err := json.Marshal(DeliverTaskPayload{
		RecipientID: recipientID,
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push task: %w", err)
	}

	task := asynq.NewTask(TaskTypeDeliver, body)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueuePush),
		asynq.MaxRetry(e.maxRetry),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue push task: %w", err)
	}
	return nil
}
