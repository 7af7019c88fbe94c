// Package response содержит единый формат JSON-ответов HTTP-обработчиков:
// успешные ответы, ошибки и сообщения валидации.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// JSON пишет ответ с указанным HTTP-статусом.
func JSON(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// Fail пишет ответ с ошибкой и указанным HTTP-статусом.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, Error(msg))
}

// ValidationError формирует Response на основе ошибок валидации.
// Нарушения объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid uuid", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "password":
			msgs = append(msgs, fmt.Sprintf("field %s must be 8-16 characters with at least one uppercase letter and one special character", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}
