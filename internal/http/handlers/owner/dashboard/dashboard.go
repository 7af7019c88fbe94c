// Package dashboard реализует сводку владельца магазина.
package dashboard

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

// Service считает сводку по первому магазину владельца.
type Service interface {
	Dashboard(ctx context.Context, ownerID string) (models.OwnerDashboard, error)
}

// Handler обрабатывает GET /api/store-owner/dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка владельца
// @Description Средняя оценка (до десятых), число отзывов и тренд за 30 дней.
// @Tags StoreOwner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.OwnerDashboard}
// @Failure 404 {object} response.ErrorResponse "У владельца нет магазина"
// @Router /api/store-owner/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.owner.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	d, err := h.service.Dashboard(r.Context(), middlewarectx.UserIDFrom(r.Context()))
	if errors.Is(err, services.ErrNoStoreForOwner) {
		response.Fail(w, r, http.StatusNotFound, "no store found for this owner")
		return
	}
	if err != nil {
		log.Error("failed to build owner dashboard", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	response.JSON(w, r, http.StatusOK, response.OKWithData(d))
}
