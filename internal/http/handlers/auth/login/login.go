// Package login реализует HTTP-обработчик входа по email и паролю.
// При успехе возвращает пользователя и JWT.
package login

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
	services "github.com/magabrotheeeer/store-rating/internal/services/auth"
)

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, email, password string) (models.AuthResult, error)
}

// Handler обрабатывает HTTP-запросы на вход.
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
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает пользователя и JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginRequest true "Учетные данные"
// @Success 200 {object} response.Response{data=models.AuthResult}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Warn("invalid credentials")
		response.Fail(w, r, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("login success", slog.String("user_id", res.User.ID))
	response.JSON(w, r, http.StatusOK, response.OKWithData(res))
}
