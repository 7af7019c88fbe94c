// Package storecreate реализует создание магазина администратором.
package storecreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating/internal/http/request"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/admin"
)

// Service создаёт магазин.
type Service interface {
	CreateStore(ctx context.Context, req models.CreateStoreRequest) (models.StoreWithOwner, error)
}

// Handler обрабатывает POST /api/admin/stores.
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
// @Summary Создание магазина
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateStoreRequest true "Магазин"
// @Success 201 {object} response.Response{data=models.StoreWithOwner}
// @Failure 400 {object} response.ErrorResponse "Владелец не STORE_OWNER"
// @Failure 404 {object} response.ErrorResponse "Владелец не найден"
// @Failure 422 {object} response.ErrorResponse
// @Router /api/admin/stores [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.storecreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateStoreRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	store, err := h.service.CreateStore(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrOwnerNotFound):
		response.Fail(w, r, http.StatusNotFound, "store owner not found")
		return
	case errors.Is(err, services.ErrNotStoreOwner):
		response.Fail(w, r, http.StatusBadRequest, "user must be a store owner")
		return
	case err != nil:
		log.Error("failed to create store", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("store created", slog.String("store_id", store.ID))
	response.JSON(w, r, http.StatusCreated, response.OKWithData(store))
}
