package create

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/user"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CreateRating(ctx context.Context, userID string, req models.CreateRatingRequest) (models.Rating, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(models.Rating), args.Error(1)
}

const storeID = "4b3f8a8e-3c1d-4f4e-9a57-0c6c7e3b2f10"

func TestCreateRatingHandler(t *testing.T) {
	valid := `{"storeId":"` + storeID + `","rating":4}`

	tests := []struct {
		name     string
		body     string
		mockErr  error
		call     bool
		wantCode int
	}{
		{name: "created", body: valid, call: true, wantCode: http.StatusCreated},
		{name: "store not found", body: valid, call: true, mockErr: services.ErrStoreNotFound, wantCode: http.StatusNotFound},
		{name: "already rated", body: valid, call: true, mockErr: services.ErrAlreadyRated, wantCode: http.StatusConflict},
		{name: "rating above range", body: `{"storeId":"` + storeID + `","rating":6}`, wantCode: http.StatusUnprocessableEntity},
		{name: "rating below range", body: `{"storeId":"` + storeID + `","rating":0}`, wantCode: http.StatusUnprocessableEntity},
		{name: "fractional rating", body: `{"storeId":"` + storeID + `","rating":4.5}`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.call {
				svc.On("CreateRating", mock.Anything, "u1", models.CreateRatingRequest{StoreID: storeID, Rating: 4}).
					Return(models.Rating{ID: "r1", UserID: "u1", StoreID: storeID, Value: 4}, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "u1"))
			rec := httptest.NewRecorder()
			New(sl.Discard(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
