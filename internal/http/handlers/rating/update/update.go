// Package update реализует изменение собственной оценки.
package update

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

// Service меняет значение оценки.
type Service interface {
	UpdateRating(ctx context.Context, userID, ratingID string, value int) (models.Rating, error)
}

// Handler обрабатывает PUT /api/ratings/{id}.
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
// @Summary Изменить оценку
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID оценки"
// @Param request body models.UpdateRatingRequest true "Новое значение 1..5"
// @Success 200 {object} response.Response{data=models.Rating}
// @Failure 403 {object} response.ErrorResponse "Чужая оценка"
// @Failure 404 {object} response.ErrorResponse "Оценка не найдена"
// @Failure 422 {object} response.ErrorResponse
// @Router /api/ratings/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rating.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.UUIDParam(w, r, log, "id")
	if !ok {
		return
	}

	var req models.UpdateRatingRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	rating, err := h.service.UpdateRating(r.Context(), middlewarectx.UserIDFrom(r.Context()), id, req.Rating)
	switch {
	case errors.Is(err, services.ErrRatingNotFound):
		response.Fail(w, r, http.StatusNotFound, "rating not found")
		return
	case errors.Is(err, services.ErrNotRatingOwner):
		response.Fail(w, r, http.StatusForbidden, "you can only update your own ratings")
		return
	case errors.Is(err, stats.ErrValueOutOfRange):
		response.Fail(w, r, http.StatusUnprocessableEntity, "rating must be between 1 and 5")
		return
	case err != nil:
		log.Error("failed to update rating", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("rating updated", slog.String("rating_id", rating.ID), slog.Int("value", rating.Value))
	response.JSON(w, r, http.StatusOK, response.OKWithData(rating))
}
