// Package validate настраивает валидатор входящих запросов
// и регистрирует правила, которых нет в go-playground/validator.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 16
	// passwordSpecials — символы, одного из которых достаточно для правила password.
	passwordSpecials = `!@#$%^&*(),.?":{}|<>`
)

// New возвращает валидатор с зарегистрированным правилом "password".
func New() *validator.Validate {
	v := validator.New()
	// Ошибка возможна только при пустом теге или nil-функции.
	_ = v.RegisterValidation("password", passwordRule)
	return v
}

func passwordRule(fl validator.FieldLevel) bool {
	return Password(fl.Field().String())
}

// Password проверяет пароль: от 8 до 16 символов, минимум одна заглавная
// буква и один спецсимвол.
func Password(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < passwordMinLen || n > passwordMaxLen {
		return false
	}

	var upper, special bool
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			special = true
		}
	}
	return upper && special
}
