// Package services реализует панель владельца магазина.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/store-rating/internal/lib/stats"
	"github.com/magabrotheeeer/store-rating/internal/models"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

// ErrNoStoreForOwner — у владельца нет ни одного магазина.
var ErrNoStoreForOwner = errors.New("no store found for this owner")

// Repository — хранилище магазинов и оценок владельца.
type Repository interface {
	FirstStoreByOwner(ctx context.Context, ownerID string) (*models.Store, error)
	RatingValuesByStores(ctx context.Context, storeIDs []string) (map[string][]models.RatingValue, error)
	RatingsByStore(ctx context.Context, storeID string) ([]models.RatingWithUser, error)
}

// OwnerService — сервис панели владельца. Учитывается только
// самый ранний магазин владельца.
type OwnerService struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewOwnerService создаёт новый экземпляр OwnerService.
func NewOwnerService(repo Repository, log *slog.Logger) *OwnerService {
	return &OwnerService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (s *OwnerService) WithClock(now func() time.Time) *OwnerService {
	s.now = now
	return s
}

// Dashboard возвращает среднюю оценку (округлённую до десятых),
// число отзывов и тренд за последние 30 дней относительно предыдущих 30.
func (s *OwnerService) Dashboard(ctx context.Context, ownerID string) (models.OwnerDashboard, error) {
	const op = "services.owner.Dashboard"

	store, err := s.firstStore(ctx, ownerID)
	if err != nil {
		return models.OwnerDashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	ratingsByStore, err := s.repo.RatingValuesByStores(ctx, []string{store.ID})
	if err != nil {
		return models.OwnerDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	ratings := ratingsByStore[store.ID]
	samples := make([]stats.Sample, 0, len(ratings))
	for _, r := range ratings {
		samples = append(samples, stats.Sample{Value: r.Value, CreatedAt: r.CreatedAt})
	}

	summary, err := stats.Aggregate(stats.Values(samples))
	if err != nil {
		return models.OwnerDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	trend, err := stats.ClassifyTrend(s.now(), samples)
	if err != nil {
		return models.OwnerDashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("owner dashboard computed",
		slog.String("store_id", store.ID),
		slog.Int("total", summary.Count),
		slog.String("trend", string(trend)),
	)

	return models.OwnerDashboard{
		AverageRating: stats.RoundTenth(summary.Average),
		TotalReviews:  summary.Count,
		Trend:         string(trend),
	}, nil
}

// Ratings возвращает все оценки магазина владельца с авторами, новые первыми.
func (s *OwnerService) Ratings(ctx context.Context, ownerID string) ([]models.RatingWithUser, error) {
	const op = "services.owner.Ratings"

	store, err := s.firstStore(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ratings, err := s.repo.RatingsByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ratings, nil
}

func (s *OwnerService) firstStore(ctx context.Context, ownerID string) (*models.Store, error) {
	store, err := s.repo.FirstStoreByOwner(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoStoreForOwner
	}
	return store, err
}
