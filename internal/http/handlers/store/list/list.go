// Package list реализует каталог магазинов для авторизованного пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/http/request"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Service возвращает магазины с оценкой текущего пользователя.
type Service interface {
	ListStores(ctx context.Context, userID, search string) ([]models.StoreCard, error)
}

// Handler обрабатывает GET /api/stores.
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
// @Summary Каталог магазинов
// @Description Магазины со средней оценкой, числом оценок и оценкой текущего пользователя.
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по названию и адресу"
// @Success 200 {object} response.Response{data=[]models.StoreCard}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/stores [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, ok := request.ListQuery(w, r, log, h.validate)
	if !ok {
		return
	}

	cards, err := h.service.ListStores(r.Context(), middlewarectx.UserIDFrom(r.Context()), q.Search)
	if err != nil {
		log.Error("failed to list stores", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(cards))
}
