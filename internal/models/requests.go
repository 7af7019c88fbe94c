package models

// LoginRequest — тело запроса на вход.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=16"`
}

// RegisterRequest — тело запроса на регистрацию обычного пользователя.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=20,max=60"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,password"`
	Address  *string `json:"address" validate:"omitempty,max=400"`
}

// ChangePasswordRequest — тело запроса на смену пароля.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
}

// CreateUserRequest — создание пользователя администратором с произвольной ролью.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=20,max=60"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,password"`
	Address  *string `json:"address" validate:"omitempty,max=400"`
	Role     Role    `json:"role" validate:"required,oneof=SYSTEM_ADMIN NORMAL_USER STORE_OWNER"`
}

// CreateStoreRequest — создание магазина администратором.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,min=1,max=400"`
	OwnerID string `json:"ownerId" validate:"required,uuid"`
}

// CreateRatingRequest — новая оценка магазина.
type CreateRatingRequest struct {
	StoreID string `json:"storeId" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// UpdateRatingRequest — изменение собственной оценки.
type UpdateRatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// AuthResult — пользователь и выданный ему токен.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ListQuery — параметры строки запроса для списков администратора.
type ListQuery struct {
	Search    string `validate:"omitempty,max=255"`
	Role      string `validate:"omitempty,oneof=SYSTEM_ADMIN NORMAL_USER STORE_OWNER"`
	SortBy    string `validate:"omitempty,oneof=name email createdAt"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// Filter преобразует параметры запроса в фильтр хранилища.
func (q ListQuery) Filter() ListFilter {
	return ListFilter{
		Search:    q.Search,
		Role:      Role(q.Role),
		SortBy:    q.SortBy,
		SortOrder: SortOrder(q.SortOrder),
	}
}
