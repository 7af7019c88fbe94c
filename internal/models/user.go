// Package models содержит доменные модели сервиса оценок магазинов:
// пользователей, магазины, оценки, а также проекции, которые
// хранилище отдаёт бизнес-логике, и DTO входящих запросов.
package models

import "time"

// Role — роль пользователя в системе. Назначается при создании и не меняется.
type Role string

const (
	// RoleSystemAdmin — администратор системы.
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
	// RoleNormalUser — обычный пользователь, может оценивать магазины.
	RoleNormalUser Role = "NORMAL_USER"
	// RoleStoreOwner — владелец магазина.
	RoleStoreOwner Role = "STORE_OWNER"
)

// Valid сообщает, является ли значение одной из известных ролей.
func (r Role) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleNormalUser, RoleStoreOwner:
		return true
	}
	return false
}

// User представляет зарегистрированного пользователя.
// PasswordHash никогда не сериализуется в ответы.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Address      *string   `json:"address"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserWithRating — пользователь вместе со статистикой оценок его магазинов.
// Для не-владельцев оба поля равны нулю.
type UserWithRating struct {
	User
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// UserDetails — карточка пользователя для администратора.
// StoreRating отсутствует, если у пользователя нет магазина или оценок первого магазина.
type UserDetails struct {
	User        User     `json:"user"`
	StoreRating *float64 `json:"storeRating,omitempty"`
}

// UserList — страница списка пользователей.
type UserList struct {
	Users []UserWithRating `json:"users"`
	Total int              `json:"total"`
}

// RecentUser — проекция недавно зарегистрированного пользователя для ленты активности.
type RecentUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
