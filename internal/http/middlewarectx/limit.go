package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/ratelimit"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
)

// RateLimit ограничивает число запросов с одного адреса.
// Ключом служит IP клиента (после middleware.RealIP). Если лимитер недоступен,
// запрос пропускается.
func RateLimit(limiter ratelimit.Limiter, log *slog.Logger, msg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				log.Error("rate limiter unavailable", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				log.Warn("too many requests", slog.String("ip", clientIP(r)))
				response.Fail(w, r, http.StatusTooManyRequests, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
