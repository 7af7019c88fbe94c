// Package health реализует проверку состояния сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
)

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status — ответ проверки состояния.
type Status struct {
	Status    string    `json:"status"`
	DB        string    `json:"db"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler отвечает на /health.
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{log: log, db: db}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} Status
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st := Status{Status: "OK", DB: "connected", Timestamp: time.Now().UTC()}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("database ping failed", sl.Err(err))
		st.Status = "Error"
		st.DB = "disconnected"
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, st)
}
