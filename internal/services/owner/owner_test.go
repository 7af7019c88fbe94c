package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/owner"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) FirstStoreByOwner(ctx context.Context, ownerID string) (*models.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *RepoMock) RatingValuesByStores(ctx context.Context, storeIDs []string) (map[string][]models.RatingValue, error) {
	args := m.Called(ctx, storeIDs)
	return args.Get(0).(map[string][]models.RatingValue), args.Error(1)
}

func (m *RepoMock) RatingsByStore(ctx context.Context, storeID string) ([]models.RatingWithUser, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]models.RatingWithUser), args.Error(1)
}

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.AddDate(0, 0, -d)
}

func TestOwnerService_Dashboard(t *testing.T) {
	tests := []struct {
		name    string
		ratings []models.RatingValue
		want    models.OwnerDashboard
	}{
		{
			name: "rising",
			ratings: []models.RatingValue{
				{Value: 5, CreatedAt: daysAgo(1)},
				{Value: 5, CreatedAt: daysAgo(2)},
				{Value: 4, CreatedAt: daysAgo(40)},
				{Value: 4, CreatedAt: daysAgo(45)},
				{Value: 3, CreatedAt: daysAgo(50)},
			},
			want: models.OwnerDashboard{AverageRating: 4.2, TotalReviews: 5, Trend: "up"},
		},
		{
			name: "falling",
			ratings: []models.RatingValue{
				{Value: 2, CreatedAt: daysAgo(3)},
				{Value: 5, CreatedAt: daysAgo(35)},
			},
			want: models.OwnerDashboard{AverageRating: 3.5, TotalReviews: 2, Trend: "down"},
		},
		{
			name: "only old ratings",
			ratings: []models.RatingValue{
				{Value: 4, CreatedAt: daysAgo(90)},
			},
			want: models.OwnerDashboard{AverageRating: 4, TotalReviews: 1, Trend: "stable"},
		},
		{
			name:    "no ratings",
			ratings: nil,
			want:    models.OwnerDashboard{AverageRating: 0, TotalReviews: 0, Trend: "stable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := services.NewOwnerService(repo, sl.Discard()).WithClock(func() time.Time { return now })

			repo.On("FirstStoreByOwner", mock.Anything, "o1").Return(&models.Store{ID: "s1"}, nil).Once()
			repo.On("RatingValuesByStores", mock.Anything, []string{"s1"}).
				Return(map[string][]models.RatingValue{"s1": tt.ratings}, nil).Once()

			got, err := svc.Dashboard(context.Background(), "o1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestOwnerService_NoStore(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewOwnerService(repo, sl.Discard())

	repo.On("FirstStoreByOwner", mock.Anything, "o1").Return(nil, repository.ErrNotFound).Twice()

	_, err := svc.Dashboard(context.Background(), "o1")
	assert.ErrorIs(t, err, services.ErrNoStoreForOwner)

	_, err = svc.Ratings(context.Background(), "o1")
	assert.ErrorIs(t, err, services.ErrNoStoreForOwner)
}

func TestOwnerService_Ratings(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewOwnerService(repo, sl.Discard())

	want := []models.RatingWithUser{
		{Rating: models.Rating{ID: "r2", Value: 3}, User: models.Rater{ID: "u2", Name: "Bob"}},
		{Rating: models.Rating{ID: "r1", Value: 5}, User: models.Rater{ID: "u1", Name: "Alice"}},
	}
	repo.On("FirstStoreByOwner", mock.Anything, "o1").Return(&models.Store{ID: "s1"}, nil).Once()
	repo.On("RatingsByStore", mock.Anything, "s1").Return(want, nil).Once()

	got, err := svc.Ratings(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
