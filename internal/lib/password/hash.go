// Package password реализует функции для безопасного хеширования и проверки паролей.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, если пароль не соответствует хэшу.
var ErrMismatch = errors.New("password does not match")

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil при совпадении, ErrMismatch при неверном пароле
// и обёрнутую ошибку bcrypt, если хэш повреждён.
func Compare(hash, password string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
