package notification

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/notification/application"
	"github.com/lendly/lendly-backend/internal/modules/notification/infrastructure/persistence/postgres"
	notification_http "github.com/lendly/lendly-backend/internal/modules/notification/interfaces/http"
)

type Module struct {
	repository *postgres.PgNotificationRepository
	service    *application.NotificationService
	handler    *notification_http.NotificationHandler
}

func NewModule(db *sqlx.DB, dispatcher application.Dispatcher, logger *slog.Logger) *Module {
	repo := postgres.NewPgNotificationRepository(db)
	messages := postgres.NewPgMessageRepository(db)

	service := application.NewNotificationService(repo, messages, dispatcher, logger)
	handler := notification_http.NewNotificationHandler(service)

	return &Module{
		repository: repo,
		service:    service,
		handler:    handler,
	}
}

func (m *Module) Service() *application.NotificationService {
	return m.service
}

// Repository exposes the notification store to the booking module,
// which flips the unread flag after resolutions.
func (m *Module) Repository() *postgres.PgNotificationRepository {
	return m.repository
}

func (m *Module) HTTPHandler() *notification_http.NotificationHandler {
	return m.handler
}
