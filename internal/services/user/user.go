// Package services реализует сценарии обычного пользователя: каталог магазинов,
// выставление и изменение оценок, просмотр профиля.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/store-rating/internal/lib/events"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/stats"
	"github.com/magabrotheeeer/store-rating/internal/models"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrStoreNotFound  = errors.New("store not found")
	ErrAlreadyRated   = errors.New("you have already rated this store")
	ErrRatingNotFound = errors.New("rating not found")
	ErrNotRatingOwner = errors.New("you can only update your own ratings")
)

// Repository — хранилище магазинов, оценок и пользователей.
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListStores(ctx context.Context, f models.ListFilter) ([]models.StoreWithOwner, error)
	GetStore(ctx context.Context, id string) (*models.Store, error)
	RatingValuesByStores(ctx context.Context, storeIDs []string) (map[string][]models.RatingValue, error)
	CreateRating(ctx context.Context, rating models.Rating) (models.Rating, error)
	GetRating(ctx context.Context, id string) (*models.Rating, error)
	UpdateRatingValue(ctx context.Context, id string, value int) (models.Rating, error)
}

// UserService — сервис для обычных пользователей.
type UserService struct {
	repo      Repository
	publisher events.Publisher
	log       *slog.Logger
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(repo Repository, publisher events.Publisher, log *slog.Logger) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ListStores возвращает каталог магазинов с неокруглённым средним
// и оценкой, которую поставил userID, если она есть.
func (s *UserService) ListStores(ctx context.Context, userID, search string) ([]models.StoreCard, error) {
	const op = "services.user.ListStores"

	stores, err := s.repo.ListStores(ctx, models.ListFilter{Search: search})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	storeIDs := make([]string, 0, len(stores))
	for _, st := range stores {
		storeIDs = append(storeIDs, st.ID)
	}
	ratingsByStore, err := s.repo.RatingValuesByStores(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cards := make([]models.StoreCard, 0, len(stores))
	for _, st := range stores {
		ratings := ratingsByStore[st.ID]
		vals := make([]int, 0, len(ratings))
		card := models.StoreCard{Store: st.Store}
		for _, r := range ratings {
			vals = append(vals, r.Value)
			if r.UserID == userID {
				v := r.Value
				card.UserRating = &v
			}
		}
		summary, err := stats.Aggregate(vals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		card.AverageRating = summary.Average
		card.TotalRatings = summary.Count
		cards = append(cards, card)
	}
	return cards, nil
}

// CreateRating сохраняет первую оценку пользователя для магазина.
func (s *UserService) CreateRating(ctx context.Context, userID string, req models.CreateRatingRequest) (models.Rating, error) {
	const op = "services.user.CreateRating"

	if err := stats.Validate(req.Rating); err != nil {
		return models.Rating{}, err
	}

	_, err := s.repo.GetStore(ctx, req.StoreID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Rating{}, ErrStoreNotFound
	}
	if err != nil {
		return models.Rating{}, fmt.Errorf("%s: %w", op, err)
	}

	rating, err := s.repo.CreateRating(ctx, models.Rating{
		UserID:  userID,
		StoreID: req.StoreID,
		Value:   req.Rating,
	})
	switch {
	case errors.Is(err, repository.ErrConflict):
		return models.Rating{}, ErrAlreadyRated
	case errors.Is(err, repository.ErrInvalidReference):
		return models.Rating{}, ErrStoreNotFound
	case err != nil:
		return models.Rating{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("rating created",
		slog.String("id", rating.ID),
		slog.String("store_id", rating.StoreID),
		slog.Int("value", rating.Value),
	)
	s.publish(ctx, events.RatingCreated, rating)
	return rating, nil
}

// UpdateRating меняет значение оценки. Изменять можно только свою оценку.
func (s *UserService) UpdateRating(ctx context.Context, userID, ratingID string, value int) (models.Rating, error) {
	const op = "services.user.UpdateRating"

	if err := stats.Validate(value); err != nil {
		return models.Rating{}, err
	}

	existing, err := s.repo.GetRating(ctx, ratingID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Rating{}, ErrRatingNotFound
	}
	if err != nil {
		return models.Rating{}, fmt.Errorf("%s: %w", op, err)
	}
	if existing.UserID != userID {
		return models.Rating{}, ErrNotRatingOwner
	}

	rating, err := s.repo.UpdateRatingValue(ctx, ratingID, value)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Rating{}, ErrRatingNotFound
	}
	if err != nil {
		return models.Rating{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.RatingUpdated, rating)
	return rating, nil
}

// Profile возвращает данные текущего пользователя.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	const op = "services.user.Profile"

	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, t events.Type, rating models.Rating) {
	if err := s.publisher.Publish(ctx, events.New(t, rating.ID, rating)); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", string(t)), sl.Err(err))
	}
}
