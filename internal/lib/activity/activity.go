// Package activity собирает ленту последних событий для администратора
// из трёх независимых потоков: новых пользователей, магазинов и оценок.
package activity

import (
	"fmt"
	"slices"
	"time"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// FeedSize — максимальная длина ленты и размер выборки каждого потока.
const FeedSize = 10

// Type — вид события в ленте.
type Type string

const (
	// UserCreated — регистрация пользователя.
	UserCreated Type = "user_created"
	// StoreCreated — добавление магазина.
	StoreCreated Type = "store_created"
	// RatingCreated — новая оценка.
	RatingCreated Type = "rating_created"
)

// Activity — единая запись ленты. Не хранится, пересчитывается на каждый запрос.
type Activity struct {
	Type        Type      `json:"type"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Data        any       `json:"data"`
}

// FromUsers преобразует пользователей в записи ленты.
func FromUsers(users []models.RecentUser) []Activity {
	res := make([]Activity, 0, len(users))
	for _, u := range users {
		res = append(res, Activity{
			Type:        UserCreated,
			ID:          u.ID,
			Title:       "New user registered",
			Description: fmt.Sprintf("%s joined the platform", u.Name),
			Timestamp:   u.CreatedAt,
			Data:        u,
		})
	}
	return res
}

// FromStores преобразует магазины в записи ленты.
func FromStores(stores []models.RecentStore) []Activity {
	res := make([]Activity, 0, len(stores))
	for _, s := range stores {
		res = append(res, Activity{
			Type:        StoreCreated,
			ID:          s.ID,
			Title:       "Store added",
			Description: fmt.Sprintf("%s was registered by %s", s.Name, s.OwnerName),
			Timestamp:   s.CreatedAt,
			Data:        s,
		})
	}
	return res
}

// FromRatings преобразует оценки в записи ленты.
func FromRatings(ratings []models.RecentRating) []Activity {
	res := make([]Activity, 0, len(ratings))
	for _, r := range ratings {
		res = append(res, Activity{
			Type:        RatingCreated,
			ID:          r.ID,
			Title:       "New rating submitted",
			Description: fmt.Sprintf("%s gave %d stars to %s", r.UserName, r.Value, r.StoreName),
			Timestamp:   r.CreatedAt,
			Data:        r,
		})
	}
	return res
}

// Merge объединяет три потока в одну ленту по убыванию времени и
// обрезает её до FeedSize записей. При равных метках времени сохраняется
// порядок конкатенации: пользователи, магазины, оценки.
func Merge(users []models.RecentUser, stores []models.RecentStore, ratings []models.RecentRating) []Activity {
	feed := make([]Activity, 0, len(users)+len(stores)+len(ratings))
	feed = append(feed, FromUsers(users)...)
	feed = append(feed, FromStores(stores)...)
	feed = append(feed, FromRatings(ratings)...)

	slices.SortStableFunc(feed, func(a, b Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if len(feed) > FeedSize {
		feed = feed[:FeedSize]
	}
	return feed
}
