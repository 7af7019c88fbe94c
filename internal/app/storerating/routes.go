package storerating

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/recentactivity"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/storecreate"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/storelist"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/usercreate"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/userread"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/health"
	ownerdashboard "github.com/magabrotheeeer/store-rating/internal/http/handlers/owner/dashboard"
	ownerratings "github.com/magabrotheeeer/store-rating/internal/http/handlers/owner/ratings"
	ratingcreate "github.com/magabrotheeeer/store-rating/internal/http/handlers/rating/create"
	ratingupdate "github.com/magabrotheeeer/store-rating/internal/http/handlers/rating/update"
	storelistuser "github.com/magabrotheeeer/store-rating/internal/http/handlers/store/list"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/lib/ratelimit"
	"github.com/magabrotheeeer/store-rating/internal/models"

	_ "github.com/magabrotheeeer/store-rating/docs"
)

// AuthService — всё, что маршрутам нужно от сервиса аутентификации.
type AuthService interface {
	login.Service
	register.Service
	changepassword.Service
	usercreate.Service
	middlewarectx.Authenticator
}

// AdminService — операции панели администратора.
type AdminService interface {
	dashboard.Service
	recentactivity.Service
	userlist.Service
	userread.Service
	storelist.Service
	storecreate.Service
}

// UserService — операции обычного пользователя.
type UserService interface {
	storelistuser.Service
	ratingcreate.Service
	ratingupdate.Service
	profile.Service
}

// OwnerService — операции владельца магазина.
type OwnerService interface {
	ownerdashboard.Service
	ownerratings.Service
}

// Deps — зависимости маршрутов.
type Deps struct {
	Logger         *slog.Logger
	Health         health.Pinger
	Auth           AuthService
	Admin          AdminService
	User           UserService
	Owner          OwnerService
	GeneralLimiter ratelimit.Limiter
	AuthLimiter    ratelimit.Limiter
	Metrics        *middlewarectx.Metrics
	AllowedOrigins []string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	log := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		d.Metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Get("/health", health.New(log, d.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimit(d.GeneralLimiter, log, "too many requests from this IP, please try again later"))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimit(d.AuthLimiter, log, "too many authentication attempts, please try again later"))
				r.Post("/login", login.New(log, d.Auth).ServeHTTP)
				r.Post("/register", register.New(log, d.Auth).ServeHTTP)
			})
			r.With(middlewarectx.JWTMiddleware(d.Auth, log)).
				Put("/change-password", changepassword.New(log, d.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Auth, log))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(log, models.RoleSystemAdmin))
				r.Get("/dashboard", dashboard.New(log, d.Admin).ServeHTTP)
				r.Get("/recent-activity", recentactivity.New(log, d.Admin).ServeHTTP)
				r.Get("/users", userlist.New(log, d.Admin).ServeHTTP)
				r.Post("/users", usercreate.New(log, d.Auth).ServeHTTP)
				r.Get("/users/{id}", userread.New(log, d.Admin).ServeHTTP)
				r.Get("/stores", storelist.New(log, d.Admin).ServeHTTP)
				r.Post("/stores", storecreate.New(log, d.Admin).ServeHTTP)
			})

			r.Get("/stores", storelistuser.New(log, d.User).ServeHTTP)
			r.Post("/ratings", ratingcreate.New(log, d.User).ServeHTTP)
			r.Put("/ratings/{id}", ratingupdate.New(log, d.User).ServeHTTP)
			r.Get("/user/profile", profile.New(log, d.User).ServeHTTP)

			r.Route("/store-owner", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(log, models.RoleStoreOwner))
				r.Get("/dashboard", ownerdashboard.New(log, d.Owner).ServeHTTP)
				r.Get("/ratings", ownerratings.New(log, d.Owner).ServeHTTP)
			})
		})
	})
}
