package models

import "time"

// Store — магазин, принадлежащий пользователю с ролью StoreOwner.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreOwner — краткие сведения о владельце, встраиваемые в ответы.
type StoreOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreWithOwner — магазин вместе с данными владельца.
type StoreWithOwner struct {
	Store
	Owner StoreOwner `json:"owner"`
}

// StoreSummary — магазин со статистикой оценок для списка администратора.
type StoreSummary struct {
	StoreWithOwner
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// StoreList — список магазинов для администратора.
type StoreList struct {
	Stores []StoreSummary `json:"stores"`
	Total  int            `json:"total"`
}

// StoreCard — магазин в каталоге обычного пользователя.
// UserRating — оценка текущего пользователя, если она есть.
type StoreCard struct {
	Store
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	UserRating    *int    `json:"userRating,omitempty"`
}

// StoreRatings — магазин вместе со всеми значениями его оценок.
type StoreRatings struct {
	StoreWithOwner
	Ratings []RatingValue
}

// RecentStore — проекция недавно добавленного магазина для ленты активности.
type RecentStore struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	OwnerName string    `json:"ownerName"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnerDashboard — сводка для владельца магазина.
type OwnerDashboard struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
	Trend         string  `json:"trend"`
}

// AdminDashboard — общие счётчики для администратора.
type AdminDashboard struct {
	TotalUsers   int `json:"totalUsers"`
	TotalStores  int `json:"totalStores"`
	TotalRatings int `json:"totalRatings"`
}
