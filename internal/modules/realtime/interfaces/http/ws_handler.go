package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	ws "github.com/lendly/lendly-backend/internal/modules/realtime/infrastructure/websocket"
	"github.com/lendly/lendly-backend/internal/shared/utils"
)

type WsHandler struct {
	hub *ws.Hub
}

func NewWsHandler(hub *ws.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Subscribe handles GET /ws. The connection stays open until the client
// goes away; topic membership is driven by control frames on the
// socket itself.
func (h *WsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	ws.ServeWs(h.hub, w, r, userID)
}
