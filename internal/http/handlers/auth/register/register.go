// Package register реализует HTTP-обработчик регистрации обычного пользователя.
package register

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

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
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
// @Summary Регистрация пользователя
// @Description Создаёт пользователя с ролью NORMAL_USER и сразу выдаёт JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.RegisterRequest true "Данные пользователя"
// @Success 201 {object} response.Response{data=models.AuthResult}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if errors.Is(err, services.ErrEmailTaken) {
		log.Warn("email already registered")
		response.Fail(w, r, http.StatusConflict, "user with this email already exists")
		return
	}
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("user registered", slog.String("user_id", res.User.ID))
	response.JSON(w, r, http.StatusCreated, response.OKWithData(res))
}
