package booking

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/booking/application"
	"github.com/lendly/lendly-backend/internal/modules/booking/infrastructure/directory"
	"github.com/lendly/lendly-backend/internal/modules/booking/infrastructure/persistence/postgres"
	booking_http "github.com/lendly/lendly-backend/internal/modules/booking/interfaces/http"
	catalogdomain "github.com/lendly/lendly-backend/internal/modules/catalog/domain"
)

type Module struct {
	service *application.BookingService
	handler *booking_http.BookingHandler
}

func NewModule(
	db *sqlx.DB,
	notifications application.NotificationFlipper,
	posts catalogdomain.PostRepository,
	dispatcher application.Dispatcher,
	logger *slog.Logger,
) *Module {
	repo := postgres.NewPgBookingRepository(db)
	dir := directory.NewCatalogDirectory(posts)

	service := application.NewBookingService(repo, notifications, dir, dispatcher, logger)
	handler := booking_http.NewBookingHandler(service)

	return &Module{
		service: service,
		handler: handler,
	}
}

func (m *Module) Service() *application.BookingService {
	return m.service
}

func (m *Module) HTTPHandler() *booking_http.BookingHandler {
	return m.handler
}
