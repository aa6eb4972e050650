package catalog

import (
	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/catalog/application"
	"github.com/lendly/lendly-backend/internal/modules/catalog/domain"
	"github.com/lendly/lendly-backend/internal/modules/catalog/infrastructure/persistence/postgres"
	catalog_http "github.com/lendly/lendly-backend/internal/modules/catalog/interfaces/http"
)

type Module struct {
	repository *postgres.PgPostRepository
	service    *application.PostService
	handler    *catalog_http.PostHandler
}

func NewModule(db *sqlx.DB) *Module {
	repo := postgres.NewPgPostRepository(db)
	service := application.NewPostService(repo)
	handler := catalog_http.NewPostHandler(service)

	return &Module{
		repository: repo,
		service:    service,
		handler:    handler,
	}
}

func (m *Module) Service() *application.PostService {
	return m.service
}

// PostRepository exposes post lookups to the booking module.
func (m *Module) PostRepository() domain.PostRepository {
	return m.repository
}

func (m *Module) HTTPHandler() *catalog_http.PostHandler {
	return m.handler
}
