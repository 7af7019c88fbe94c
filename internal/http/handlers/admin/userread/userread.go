// Package userread реализует просмотр пользователя администратором.
package userread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/store-rating/internal/http/request"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/admin"
)

// Service возвращает пользователя и рейтинг его первого магазина.
type Service interface {
	GetUser(ctx context.Context, id string) (models.UserDetails, error)
}

// Handler обрабатывает GET /api/admin/users/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пользователь по id
// @Description storeRating: неокруглённое среднее первого магазина, отсутствует, если оценок нет.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID пользователя"
// @Success 200 {object} response.Response{data=models.UserDetails}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.UUIDParam(w, r, log, "id")
	if !ok {
		return
	}

	details, err := h.service.GetUser(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		response.Fail(w, r, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Error("failed to load user", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(details))
}
