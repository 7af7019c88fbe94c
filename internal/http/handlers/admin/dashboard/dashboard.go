// Package dashboard реализует сводку для администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Service возвращает общие счётчики.
type Service interface {
	Dashboard(ctx context.Context) (models.AdminDashboard, error)
}

// Handler обрабатывает GET /api/admin/dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка администратора
// @Description Количество пользователей, магазинов и оценок.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.AdminDashboard}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error("failed to load dashboard", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(d))
}
