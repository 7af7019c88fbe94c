// Package storerating собирает приложение: хранилище, миграции, лимитеры,
// публикацию событий, сервисы и HTTP-сервер.
package storerating

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/store-rating/internal/config"
	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/lib/events"
	customjwt "github.com/magabrotheeeer/store-rating/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating/internal/lib/ratelimit"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/migrations"
	adminservice "github.com/magabrotheeeer/store-rating/internal/services/admin"
	authservice "github.com/magabrotheeeer/store-rating/internal/services/auth"
	ownerservice "github.com/magabrotheeeer/store-rating/internal/services/owner"
	userservice "github.com/magabrotheeeer/store-rating/internal/services/user"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — собранное приложение.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	closers []io.Closer
}

// New подключается к зависимостям и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{logger: logger, db: db}

	authLimiter, err := app.authLimiter(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	publisher, err := app.publisher(cfg)
	if err != nil {
		app.close()
		return nil, err
	}

	jwtMaker := customjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	deps := Deps{
		Logger:         logger,
		Health:         db,
		Auth:           authservice.NewAuthService(db, jwtMaker, publisher, logger),
		Admin:          adminservice.NewAdminService(db, publisher, logger),
		User:           userservice.NewUserService(db, publisher, logger),
		Owner:          ownerservice.NewOwnerService(db, logger),
		GeneralLimiter: ratelimit.NewLocal(rate.Limit(cfg.GeneralRPS), cfg.GeneralBurst),
		AuthLimiter:    authLimiter,
		Metrics:        middlewarectx.NewMetrics(prometheus.DefaultRegisterer),
		AllowedOrigins: cfg.AllowedOrigins,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, deps)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// authLimiter выбирает общее окно в Redis, если адрес задан, иначе локальное.
func (a *App) authLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.AddressRedis == "" {
		a.logger.Warn("redis address is empty, auth rate limit is per instance")
		return ratelimit.NewLocalWindow(cfg.AuthRequests, cfg.AuthWindow), nil
	}
	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client)
	return ratelimit.NewWindow(client, "ratelimit:auth", cfg.AuthRequests, cfg.AuthWindow), nil
}

// publisher подключается к RabbitMQ, если URL задан, иначе события не публикуются.
func (a *App) publisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		a.logger.Info("rabbitmq url is empty, domain events are disabled")
		return events.Noop{}, nil
	}
	conn, err := events.Connect(cfg.RabbitMQ.URL, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	pub, err := events.NewAMQPPublisher(conn, cfg.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.closers = append(a.closers, pub)
	return pub, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
