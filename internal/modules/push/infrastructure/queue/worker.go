package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/lendly/lendly-backend/internal/modules/push/application"
)

// Worker consumes push delivery tasks. It runs in-process next to the
// HTTP server but on its own redis-fed loop, so deliveries survive the
// request that queued them.
type Worker struct {
	server    *asynq.Server
	deliverer *application.Deliverer
	logger    *slog.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, concurrency int, deliverer *application.Deliverer, logger *slog.Logger) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueuePush: 10,
		},
	})

	return &Worker{
		server:    server,
		deliverer: deliverer,
		logger:    logger,
	}
}

// Start begins processing tasks in background goroutines.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeDeliver, w.handleDeliver)

	if err := w.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start push worker: %w", err)
	}
	w.logger.Info("push worker started", "queue", QueuePush)
	return nil
}

// Shutdown waits for in-flight deliveries to finish.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.logger.Info("push worker stopped")
}

func (w *Worker) handleDeliver(ctx context.Context, t *asynq.Task) error {
	var payload DeliverTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never become deliverable; don't retry.
		w.logger.Error("dropping malformed push task", "error", err)
		return nil
	}
	return w.deliverer.Deliver(ctx, payload.RecipientID, payload.Payload)
}
