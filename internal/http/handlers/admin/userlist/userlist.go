// Package userlist реализует список пользователей для администратора
// с поиском, фильтром по роли и сортировкой.
package userlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating/internal/http/request"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Service возвращает пользователей со статистикой оценок.
type Service interface {
	ListUsers(ctx context.Context, f models.ListFilter) (models.UserList, error)
}

// Handler обрабатывает GET /api/admin/users.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validate.New()}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Для владельцев магазинов averageRating считается по всем их магазинам и округляется до десятых.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по имени, email, адресу"
// @Param role query string false "Роль" Enums(SYSTEM_ADMIN, NORMAL_USER, STORE_OWNER)
// @Param sortBy query string false "Поле сортировки" Enums(name, email, createdAt)
// @Param sortOrder query string false "Направление" Enums(asc, desc)
// @Success 200 {object} response.Response{data=models.UserList}
// @Failure 422 {object} response.ErrorResponse
// @Router /api/admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, ok := request.ListQuery(w, r, log, h.validate)
	if !ok {
		return
	}

	list, err := h.service.ListUsers(r.Context(), q.Filter())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(list))
}
