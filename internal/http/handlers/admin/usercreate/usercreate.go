// Package usercreate реализует создание пользователя администратором.
package usercreate

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

// Service создаёт пользователя с любой ролью.
type Service interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
}

// Handler обрабатывает POST /api/admin/users.
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
// @Summary Создание пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateUserRequest true "Пользователь"
// @Success 201 {object} response.Response{data=models.User}
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 422 {object} response.ErrorResponse
// @Router /api/admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usercreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateUserRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if errors.Is(err, services.ErrEmailTaken) {
		response.Fail(w, r, http.StatusConflict, "user with this email already exists")
		return
	}
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("user created", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	response.JSON(w, r, http.StatusCreated, response.OKWithData(user))
}
