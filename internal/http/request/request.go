// Package request разбирает и валидирует тела и параметры входящих запросов.
// При ошибке ответ клиенту уже записан, обработчику остаётся только выйти.
package request

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Decode читает JSON-тело в dst и проверяет его валидатором v.
// Некорректный JSON даёт 400, нарушение правил полей даёт 422.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *validator.Validate, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return Validate(w, r, log, v, dst)
}

// Validate проверяет структуру валидатором v.
func Validate(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *validator.Validate, dst any) bool {
	err := v.Struct(dst)
	if err == nil {
		return true
	}
	log.Error("validation failed", sl.Err(err))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.JSON(w, r, http.StatusUnprocessableEntity, response.ValidationError(verrs))
		return false
	}
	response.Fail(w, r, http.StatusBadRequest, "invalid request")
	return false
}

// UUIDParam возвращает параметр пути name, если это корректный UUID.
func UUIDParam(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Error("invalid id in path", slog.String(name, raw), sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid "+name)
		return "", false
	}
	return id.String(), true
}

// ListQuery читает параметры search, role, sortBy и sortOrder из строки запроса.
func ListQuery(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *validator.Validate) (models.ListQuery, bool) {
	q := r.URL.Query()
	lq := models.ListQuery{
		Search:    q.Get("search"),
		Role:      q.Get("role"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if !Validate(w, r, log, v, &lq) {
		return models.ListQuery{}, false
	}
	return lq, true
}
