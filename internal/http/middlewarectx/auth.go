// Package middlewarectx содержит HTTP middleware приложения: проверку JWT,
// ограничение по ролям, rate limiting и сбор метрик.
//
// JWTMiddleware проверяет токен из заголовка Authorization, заново загружает
// пользователя из хранилища и кладёт его идентификатор, email и роль в контекст.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ идентификатора пользователя в контексте
	UserID Key = "user_id"
	// Email — ключ email пользователя в контексте
	Email Key = "email"
	// Role — ключ роли пользователя в контексте
	Role Key = "role"
)

// Authenticator проверяет токен и возвращает актуального пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает middleware, который пропускает только запросы
// с валидным Bearer-токеном существующего пользователя.
func JWTMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				response.Fail(w, r, http.StatusUnauthorized, "access token required")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.Fail(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserID, user.ID)
			ctx = context.WithValue(ctx, Email, user.Email)
			ctx = context.WithValue(ctx, Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom возвращает идентификатор пользователя, положенный JWTMiddleware.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(UserID).(string)
	return id
}

// RoleFrom возвращает роль пользователя, положенную JWTMiddleware.
func RoleFrom(ctx context.Context) models.Role {
	role, _ := ctx.Value(Role).(models.Role)
	return role
}

// RequireRole пропускает запрос, только если роль пользователя входит в roles.
func RequireRole(log *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFrom(r.Context())
			if role == "" {
				response.Fail(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Warn("access denied",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("role", string(role)),
			)
			response.Fail(w, r, http.StatusForbidden, "insufficient permissions")
		})
	}
}
