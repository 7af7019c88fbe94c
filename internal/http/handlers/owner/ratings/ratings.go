// Package ratings возвращает оценки магазина владельца вместе с авторами.
package ratings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/owner"
)

type Service interface {
	Ratings(ctx context.Context, ownerID string) ([]models.RatingWithUser, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Оценки магазина владельца
// @Tags StoreOwner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.RatingWithUser}
// @Failure 404 {object} response.ErrorResponse "У владельца нет магазина"
// @Router /api/store-owner/ratings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.owner.ratings"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ratings, err := h.service.Ratings(r.Context(), middlewarectx.UserIDFrom(r.Context()))
	if errors.Is(err, services.ErrNoStoreForOwner) {
		response.Fail(w, r, http.StatusNotFound, "no store found for this owner")
		return
	}
	if err != nil {
		log.Error("failed to load ratings", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(ratings))
}
