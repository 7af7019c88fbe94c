package models

import "time"

// Rating — оценка магазина пользователем. На пару (UserID, StoreID)
// допускается не более одной оценки.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingValue — значение оценки и момент её создания.
type RatingValue struct {
	UserID    string
	Value     int
	CreatedAt time.Time
}

// Rater — автор оценки в ответе владельцу магазина.
type Rater struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RatingWithUser — оценка вместе с её автором.
type RatingWithUser struct {
	Rating
	User Rater `json:"user"`
}

// RecentRating — проекция недавней оценки для ленты активности.
type RecentRating struct {
	ID        string    `json:"id"`
	Value     int       `json:"rating"`
	UserName  string    `json:"userName"`
	StoreName string    `json:"storeName"`
	CreatedAt time.Time `json:"createdAt"`
}
