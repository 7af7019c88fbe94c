// Package recentactivity реализует ленту последних событий для администратора.
package recentactivity

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/activity"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
)

// Service собирает ленту активности.
type Service interface {
	RecentActivity(ctx context.Context) ([]activity.Activity, error)
}

// Feed — тело ответа ленты.
type Feed struct {
	Activities []activity.Activity `json:"activities"`
}

// Handler обрабатывает GET /api/admin/recent-activity.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Последняя активность
// @Description До 10 последних регистраций, магазинов и оценок, новые первыми.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Feed}
// @Router /api/admin/recent-activity [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.activity"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	feed, err := h.service.RecentActivity(r.Context())
	if err != nil {
		log.Error("failed to load recent activity", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	log.Debug("recent activity loaded", slog.Int("count", len(feed)))
	response.JSON(w, r, http.StatusOK, response.OKWithData(Feed{Activities: feed}))
}
