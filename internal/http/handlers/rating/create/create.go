// Package create реализует выставление оценки магазину.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/http/request"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/stats"
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/user"
)

// Service сохраняет новую оценку.
type Service interface {
	CreateRating(ctx context.Context, userID string, req models.CreateRatingRequest) (models.Rating, error)
}

// Handler обрабатывает POST /api/ratings.
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
// @Summary Оценить магазин
// @Description Пользователь может оценить магазин только один раз, дальше оценку можно изменить.
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateRatingRequest true "Оценка 1..5"
// @Success 201 {object} response.Response{data=models.Rating}
// @Failure 404 {object} response.ErrorResponse "Магазин не найден"
// @Failure 409 {object} response.ErrorResponse "Оценка уже есть"
// @Failure 422 {object} response.ErrorResponse
// @Router /api/ratings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rating.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateRatingRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	rating, err := h.service.CreateRating(r.Context(), middlewarectx.UserIDFrom(r.Context()), req)
	switch {
	case errors.Is(err, services.ErrStoreNotFound):
		response.Fail(w, r, http.StatusNotFound, "store not found")
		return
	case errors.Is(err, services.ErrAlreadyRated):
		response.Fail(w, r, http.StatusConflict, "you have already rated this store")
		return
	case errors.Is(err, stats.ErrValueOutOfRange):
		response.Fail(w, r, http.StatusUnprocessableEntity, "rating must be between 1 and 5")
		return
	case err != nil:
		log.Error("failed to create rating", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("rating created", slog.String("rating_id", rating.ID))
	response.JSON(w, r, http.StatusCreated, response.OKWithData(rating))
}
