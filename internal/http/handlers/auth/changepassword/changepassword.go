// Package changepassword реализует HTTP-обработчик смены пароля текущего пользователя.
package changepassword

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
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/auth"
)

// Service описывает смену пароля.
type Service interface {
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// Handler обрабатывает смену пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ChangePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Неверный текущий пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/auth/change-password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.changepassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ChangePasswordRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	userID := middlewarectx.UserIDFrom(r.Context())
	err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrIncorrectPassword):
		log.Warn("current password mismatch", slog.String("user_id", userID))
		response.Fail(w, r, http.StatusUnauthorized, "current password is incorrect")
		return
	case errors.Is(err, services.ErrUserNotFound):
		response.Fail(w, r, http.StatusNotFound, "user not found")
		return
	case err != nil:
		log.Error("failed to change password", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("password changed", slog.String("user_id", userID))
	response.JSON(w, r, http.StatusOK, response.OKWithData(map[string]string{"message": "password updated successfully"}))
}
