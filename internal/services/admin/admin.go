// Package services содержит бизнес-логику панели администратора:
// счётчики, ленту активности, списки пользователей и магазинов со статистикой оценок.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/store-rating/internal/lib/activity"
	"github.com/magabrotheeeer/store-rating/internal/lib/events"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/stats"
	"github.com/magabrotheeeer/store-rating/internal/models"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

var (
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrOwnerNotFound — указанный владелец магазина не существует.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrNotStoreOwner — указанный владелец не имеет роли STORE_OWNER.
	ErrNotStoreOwner = errors.New("user must be a store owner")
)

// Repository — данные, которые нужны панели администратора.
type Repository interface {
	Dashboard(ctx context.Context) (models.AdminDashboard, error)
	RecentUsers(ctx context.Context, limit int) ([]models.RecentUser, error)
	RecentStores(ctx context.Context, limit int) ([]models.RecentStore, error)
	RecentRatings(ctx context.Context, limit int) ([]models.RecentRating, error)
	ListUsers(ctx context.Context, f models.ListFilter) ([]models.User, error)
	CountUsers(ctx context.Context, f models.ListFilter) (int, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	StoresByOwners(ctx context.Context, ownerIDs []string) (map[string][]string, error)
	RatingValuesByStores(ctx context.Context, storeIDs []string) (map[string][]models.RatingValue, error)
	ListStores(ctx context.Context, f models.ListFilter) ([]models.StoreWithOwner, error)
	CountStores(ctx context.Context, f models.ListFilter) (int, error)
	CreateStore(ctx context.Context, store models.Store) (models.StoreWithOwner, error)
}

// AdminService реализует операции администратора.
type AdminService struct {
	repo      Repository
	publisher events.Publisher
	log       *slog.Logger
}

// NewAdminService создаёт новый экземпляр AdminService.
func NewAdminService(repo Repository, publisher events.Publisher, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Dashboard возвращает общее количество пользователей, магазинов и оценок.
func (s *AdminService) Dashboard(ctx context.Context) (models.AdminDashboard, error) {
	const op = "services.admin.Dashboard"
	d, err := s.repo.Dashboard(ctx)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// RecentActivity собирает ленту из последних пользователей, магазинов и оценок.
func (s *AdminService) RecentActivity(ctx context.Context) ([]activity.Activity, error) {
	const op = "services.admin.RecentActivity"

	users, err := s.repo.RecentUsers(ctx, activity.FeedSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stores, err := s.repo.RecentStores(ctx, activity.FeedSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ratings, err := s.repo.RecentRatings(ctx, activity.FeedSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return activity.Merge(users, stores, ratings), nil
}

// ListUsers возвращает пользователей со статистикой. Для владельцев магазинов
// среднее считается по всем оценкам всех их магазинов и округляется до десятых.
func (s *AdminService) ListUsers(ctx context.Context, f models.ListFilter) (models.UserList, error) {
	const op = "services.admin.ListUsers"

	users, err := s.repo.ListUsers(ctx, f)
	if err != nil {
		return models.UserList{}, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.repo.CountUsers(ctx, f)
	if err != nil {
		return models.UserList{}, fmt.Errorf("%s: %w", op, err)
	}

	var ownerIDs []string
	for _, u := range users {
		if u.Role == models.RoleStoreOwner {
			ownerIDs = append(ownerIDs, u.ID)
		}
	}
	storesByOwner, err := s.repo.StoresByOwners(ctx, ownerIDs)
	if err != nil {
		return models.UserList{}, fmt.Errorf("%s: %w", op, err)
	}
	var storeIDs []string
	for _, ids := range storesByOwner {
		storeIDs = append(storeIDs, ids...)
	}
	ratingsByStore, err := s.repo.RatingValuesByStores(ctx, storeIDs)
	if err != nil {
		return models.UserList{}, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.UserWithRating, 0, len(users))
	for _, u := range users {
		item := models.UserWithRating{User: u}
		if u.Role == models.RoleStoreOwner {
			var all []int
			for _, storeID := range storesByOwner[u.ID] {
				all = append(all, values(ratingsByStore[storeID])...)
			}
			summary, err := stats.Aggregate(all)
			if err != nil {
				return models.UserList{}, fmt.Errorf("%s: %w", op, err)
			}
			summary = summary.Rounded()
			item.AverageRating = summary.Average
			item.TotalRatings = summary.Count
		}
		result = append(result, item)
	}

	return models.UserList{Users: result, Total: total}, nil
}

// GetUser возвращает пользователя и неокруглённое среднее оценок его первого магазина.
func (s *AdminService) GetUser(ctx context.Context, id string) (models.UserDetails, error) {
	const op = "services.admin.GetUser"

	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.UserDetails{}, ErrUserNotFound
	}
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	details := models.UserDetails{User: *user}

	storesByOwner, err := s.repo.StoresByOwners(ctx, []string{user.ID})
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("%s: %w", op, err)
	}
	storeIDs := storesByOwner[user.ID]
	if len(storeIDs) == 0 {
		return details, nil
	}

	first := storeIDs[0]
	ratingsByStore, err := s.repo.RatingValuesByStores(ctx, []string{first})
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("%s: %w", op, err)
	}
	summary, err := stats.Aggregate(values(ratingsByStore[first]))
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("%s: %w", op, err)
	}
	if summary.Count > 0 {
		details.StoreRating = &summary.Average
	}
	return details, nil
}

// ListStores возвращает магазины с владельцами и статистикой оценок.
func (s *AdminService) ListStores(ctx context.Context, f models.ListFilter) (models.StoreList, error) {
	const op = "services.admin.ListStores"

	stores, err := s.repo.ListStores(ctx, f)
	if err != nil {
		return models.StoreList{}, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.repo.CountStores(ctx, f)
	if err != nil {
		return models.StoreList{}, fmt.Errorf("%s: %w", op, err)
	}

	storeIDs := make([]string, 0, len(stores))
	for _, st := range stores {
		storeIDs = append(storeIDs, st.ID)
	}
	ratingsByStore, err := s.repo.RatingValuesByStores(ctx, storeIDs)
	if err != nil {
		return models.StoreList{}, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.StoreSummary, 0, len(stores))
	for _, st := range stores {
		summary, err := stats.Aggregate(values(ratingsByStore[st.ID]))
		if err != nil {
			return models.StoreList{}, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, models.StoreSummary{
			StoreWithOwner: st,
			AverageRating:  summary.Average,
			TotalRatings:   summary.Count,
		})
	}
	return models.StoreList{Stores: result, Total: total}, nil
}

// CreateStore создаёт магазин. Владелец должен существовать и иметь роль STORE_OWNER;
// это проверяется только в момент создания.
func (s *AdminService) CreateStore(ctx context.Context, req models.CreateStoreRequest) (models.StoreWithOwner, error) {
	const op = "services.admin.CreateStore"

	owner, err := s.repo.GetUserByID(ctx, req.OwnerID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.StoreWithOwner{}, ErrOwnerNotFound
	}
	if err != nil {
		return models.StoreWithOwner{}, fmt.Errorf("%s: %w", op, err)
	}
	if owner.Role != models.RoleStoreOwner {
		return models.StoreWithOwner{}, ErrNotStoreOwner
	}

	store, err := s.repo.CreateStore(ctx, models.Store{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if errors.Is(err, repository.ErrInvalidReference) {
		return models.StoreWithOwner{}, ErrOwnerNotFound
	}
	if err != nil {
		return models.StoreWithOwner{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("store created", slog.String("id", store.ID), slog.String("owner_id", store.OwnerID))
	if err := s.publisher.Publish(ctx, events.New(events.StoreCreated, store.ID, store)); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", string(events.StoreCreated)), sl.Err(err))
	}
	return store, nil
}

func values(rs []models.RatingValue) []int {
	res := make([]int, 0, len(rs))
	for _, r := range rs {
		res = append(res, r.Value)
	}
	return res
}
