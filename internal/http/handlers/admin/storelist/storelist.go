// Package storelist реализует список магазинов для администратора.
package storelist

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

// Service возвращает магазины с владельцами и статистикой.
type Service interface {
	ListStores(ctx context.Context, f models.ListFilter) (models.StoreList, error)
}

// Handler обрабатывает GET /api/admin/stores.
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
// @Summary Список магазинов
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по названию и адресу"
// @Param sortBy query string false "Поле сортировки" Enums(name, email, createdAt)
// @Param sortOrder query string false "Направление" Enums(asc, desc)
// @Success 200 {object} response.Response{data=models.StoreList}
// @Failure 422 {object} response.ErrorResponse
// @Router /api/admin/stores [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.storelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, ok := request.ListQuery(w, r, log, h.validate)
	if !ok {
		return
	}
	f := q.Filter()
	f.Role = ""

	list, err := h.service.ListStores(r.Context(), f)
	if err != nil {
		log.Error("failed to list stores", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(list))
}
