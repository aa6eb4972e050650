package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/lendly/lendly-backend/internal/gateway"
	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	"github.com/lendly/lendly-backend/internal/modules/booking"
	"github.com/lendly/lendly-backend/internal/modules/catalog"
	"github.com/lendly/lendly-backend/internal/modules/notification"
	"github.com/lendly/lendly-backend/internal/modules/push"
	pushdomain "github.com/lendly/lendly-backend/internal/modules/push/domain"
	"github.com/lendly/lendly-backend/internal/modules/push/infrastructure/fcm"
	"github.com/lendly/lendly-backend/internal/modules/realtime"
	redisbroker "github.com/lendly/lendly-backend/internal/modules/realtime/infrastructure/redis"
	"github.com/lendly/lendly-backend/internal/shared/infrastructure/config"
	"github.com/lendly/lendly-backend/internal/shared/infrastructure/database"
	"github.com/lendly/lendly-backend/pkg/migration"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	if cfg.RunMigrations {
		runner := migration.NewRunner("migrations", cfg.Database.URL(), logger)
		if err := runner.Up(); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("postgres connected", "host", cfg.Database.Host)

	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("redis connected", "addr", cfg.Redis.Addr())

	// Push provider is optional; without credentials the pipeline runs
	// but deliveries are no-ops.
	var provider pushdomain.Provider
	if cfg.Firebase.CredentialsJSON != "" {
		fcmProvider, err := fcm.NewProvider(context.Background(), cfg.Firebase.ProjectID, cfg.Firebase.CredentialsJSON)
		if err != nil {
			logger.Error("fcm initialization failed", "error", err)
			os.Exit(1)
		}
		provider = fcmProvider
	} else {
		logger.Warn("push disabled: no firebase credentials configured")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Module wiring. Push first so realtime can enqueue deliveries,
	// realtime next so the write-path modules can fan out.
	pushModule := push.NewModule(db, redisOpt, provider, cfg.Push.Concurrency, cfg.Push.MaxRetry, logger)
	defer pushModule.Close()

	broker := redisbroker.NewBroker(redisClient)
	realtimeModule := realtime.NewModule(broker, pushModule.Enqueuer(), logger)
	defer realtimeModule.Close()

	notificationModule := notification.NewModule(db, realtimeModule.Dispatcher(), logger)
	catalogModule := catalog.NewModule(db)
	bookingModule := booking.NewModule(db, notificationModule.Repository(), catalogModule.PostRepository(), realtimeModule.Dispatcher(), logger)

	if err := pushModule.Worker().Start(); err != nil {
		logger.Error("push worker failed to start", "error", err)
		os.Exit(1)
	}
	defer pushModule.Worker().Shutdown()

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthMiddleware:      authMiddleware,
		NotificationHandler: notificationModule.HTTPHandler(),
		BookingHandler:      bookingModule.HTTPHandler(),
		PostHandler:         catalogModule.HTTPHandler(),
		TokenHandler:        pushModule.HTTPHandler(),
		WsHandler:           realtimeModule.HTTPHandler(),
	})

	var handler http.Handler = mux
	handler = middleware.PrometheusMiddleware(handler)
	handler = middleware.CORSMiddleware(handler, cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler, logger)
	if err := server.Start(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
