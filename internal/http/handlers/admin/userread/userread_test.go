package userread

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/admin"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetUser(ctx context.Context, id string) (models.UserDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UserDetails), args.Error(1)
}

const userID = "4b3f8a8e-3c1d-4f4e-9a57-0c6c7e3b2f10"

func serve(svc Service, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/admin/users/{id}", New(sl.Discard(), svc).ServeHTTP)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/"+id, nil))
	return rec
}

func TestUserReadHandler(t *testing.T) {
	t.Run("owner with rating", func(t *testing.T) {
		svc := new(ServiceMock)
		rating := 13.0 / 3.0
		svc.On("GetUser", mock.Anything, userID).Return(models.UserDetails{
			User:        models.User{ID: userID, Role: models.RoleStoreOwner},
			StoreRating: &rating,
		}, nil).Once()

		rec := serve(svc, userID)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.InDelta(t, rating, got.Data["storeRating"], 1e-9)
	})

	t.Run("storeRating omitted", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("GetUser", mock.Anything, userID).Return(models.UserDetails{
			User: models.User{ID: userID, Role: models.RoleNormalUser},
		}, nil).Once()

		rec := serve(svc, userID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "storeRating")
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("GetUser", mock.Anything, userID).Return(models.UserDetails{}, services.ErrUserNotFound).Once()

		rec := serve(svc, userID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(ServiceMock)
		rec := serve(svc, "123")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}
