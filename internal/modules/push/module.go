package push

import (
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/push/application"
	"github.com/lendly/lendly-backend/internal/modules/push/domain"
	"github.com/lendly/lendly-backend/internal/modules/push/infrastructure/persistence/postgres"
	"github.com/lendly/lendly-backend/internal/modules/push/infrastructure/queue"
	push_http "github.com/lendly/lendly-backend/internal/modules/push/interfaces/http"
)

type Module struct {
	tokenService *application.TokenService
	deliverer    *application.Deliverer
	enqueuer     *queue.Enqueuer
	worker       *queue.Worker
	client       *asynq.Client
	handler      *push_http.TokenHandler
}

// NewModule wires the push pipeline: token registry, redis task queue
// and the in-process worker that drains it. provider may be nil when
// FCM credentials are absent; the pipeline then runs but deliveries are
// no-ops.
func NewModule(db *sqlx.DB, redisOpt asynq.RedisClientOpt, provider domain.Provider, concurrency, maxRetry int, logger *slog.Logger) *Module {
	repo := postgres.NewPgDeviceTokenRepository(db)

	client := asynq.NewClient(redisOpt)
	enqueuer := queue.NewEnqueuer(client, maxRetry)

	deliverer := application.NewDeliverer(repo, provider, logger)
	worker := queue.NewWorker(redisOpt, concurrency, deliverer, logger)

	tokenService := application.NewTokenService(repo)
	handler := push_http.NewTokenHandler(tokenService)

	return &Module{
		tokenService: tokenService,
		deliverer:    deliverer,
		enqueuer:     enqueuer,
		worker:       worker,
		client:       client,
		handler:      handler,
	}
}

func (m *Module) Enqueuer() *queue.Enqueuer {
	return m.enqueuer
}

func (m *Module) Worker() *queue.Worker {
	return m.worker
}

func (m *Module) HTTPHandler() *push_http.TokenHandler {
	return m.handler
}

// Close releases the queue client connection.
func (m *Module) Close() error {
	return m.client.Close()
}
