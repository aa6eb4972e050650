package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	booking_http "github.com/lendly/lendly-backend/internal/modules/booking/interfaces/http"
	catalog_http "github.com/lendly/lendly-backend/internal/modules/catalog/interfaces/http"
	notification_http "github.com/lendly/lendly-backend/internal/modules/notification/interfaces/http"
	push_http "github.com/lendly/lendly-backend/internal/modules/push/interfaces/http"
	realtime_http "github.com/lendly/lendly-backend/internal/modules/realtime/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleWare
	NotificationHandler *notification_http.NotificationHandler
	BookingHandler      *booking_http.BookingHandler
	PostHandler         *catalog_http.PostHandler
	TokenHandler        *push_http.TokenHandler
	WsHandler           *realtime_http.WsHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	auth := config.AuthMiddleware

	// Notification Routes
	mux.Handle("POST /chats", auth.RequireAuth(http.HandlerFunc(config.NotificationHandler.StartChat)))
	mux.Handle("POST /requests", auth.RequireAuth(http.HandlerFunc(config.NotificationHandler.CreateRequestNotification)))
	mux.Handle("GET /communities/{id}/notifications", auth.RequireAuth(http.HandlerFunc(config.NotificationHandler.ListForCommunity)))
	mux.Handle("POST /notifications/{id}/messages", auth.RequireAuth(http.HandlerFunc(config.NotificationHandler.CreateMessage)))
	mux.Handle("GET /notifications/{id}/messages", auth.RequireAuth(http.HandlerFunc(config.NotificationHandler.ListMessages)))
	mux.Handle("PATCH /notifications/{id}/read", auth.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkRead)))

	// Booking Routes
	mux.Handle("POST /bookings", auth.RequireAuth(http.HandlerFunc(config.BookingHandler.Create)))
	mux.Handle("GET /bookings/{id}", auth.RequireAuth(http.HandlerFunc(config.BookingHandler.Get)))
	mux.Handle("PATCH /bookings/{id}/status", auth.RequireAuth(http.HandlerFunc(config.BookingHandler.UpdateStatus)))

	// Post Routes
	mux.Handle("POST /posts", auth.RequireAuth(http.HandlerFunc(config.PostHandler.Create)))
	mux.HandleFunc("GET /posts/{id}", config.PostHandler.Get)
	mux.HandleFunc("GET /communities/{id}/posts", config.PostHandler.ListByCommunity)

	// Device Token Routes
	mux.Handle("POST /push/tokens", auth.RequireAuth(http.HandlerFunc(config.TokenHandler.Register)))
	mux.Handle("DELETE /push/tokens", auth.RequireAuth(http.HandlerFunc(config.TokenHandler.Unregister)))

	// Realtime
	mux.Handle("GET /ws", auth.RequireAuth(http.HandlerFunc(config.WsHandler.Subscribe)))

	return mux
}
