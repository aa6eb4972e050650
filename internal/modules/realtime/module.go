package realtime

import (
	"log/slog"

	"github.com/lendly/lendly-backend/internal/modules/realtime/application"
	"github.com/lendly/lendly-backend/internal/modules/realtime/domain"
	"github.com/lendly/lendly-backend/internal/modules/realtime/infrastructure/websocket"
	realtime_http "github.com/lendly/lendly-backend/internal/modules/realtime/interfaces/http"
)

type Module struct {
	hub        *websocket.Hub
	dispatcher *application.Dispatcher
	handler    *realtime_http.WsHandler
}

// NewModule wires the live fan-out path: broker-backed hub for
// websocket subscribers and the dispatcher other modules hand their
// committed writes to.
func NewModule(broker domain.Broker, push application.PushEnqueuer, logger *slog.Logger) *Module {
	hub := websocket.NewHub(broker, logger)
	dispatcher := application.NewDispatcher(broker, hub, push, logger)
	handler := realtime_http.NewWsHandler(hub)

	return &Module{
		hub:        hub,
		dispatcher: dispatcher,
		handler:    handler,
	}
}

func (m *Module) Dispatcher() *application.Dispatcher {
	return m.dispatcher
}

func (m *Module) Hub() *websocket.Hub {
	return m.hub
}

func (m *Module) HTTPHandler() *realtime_http.WsHandler {
	return m.handler
}

func (m *Module) Close() {
	m.hub.Close()
}
