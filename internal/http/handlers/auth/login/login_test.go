package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	services "github.com/magabrotheeeer/store-rating/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.AuthResult), args.Error(1)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	valid := models.LoginRequest{Email: "user@test.com", Password: "Secret1!"}

	tests := []struct {
		name           string
		requestBody    any
		mockResp       models.AuthResult
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid login",
			requestBody: valid,
			mockResp: models.AuthResult{
				User:  models.User{ID: "u1", Email: "user@test.com", Role: models.RoleNormalUser},
				Token: "tok",
			},
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing password",
			requestBody:    models.LoginRequest{Email: "user@test.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "wrong credentials",
			requestBody:    valid,
			mockErr:        services.ErrInvalidCredentials,
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid email or password",
			wantStatus:     "Error",
		},
		{
			name:           "storage failure",
			requestBody:    valid,
			mockErr:        errors.New("db down"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal error",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			handler := New(sl.Discard(), svc)

			if tt.callService {
				r := tt.requestBody.(models.LoginRequest)
				svc.On("Login", mock.Anything, r.Email, r.Password).Return(tt.mockResp, tt.mockErr).Once()
			}

			bodyBytes, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				assert.Nil(t, got["data"])
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "tok", data["token"])
				user, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "u1", user["id"])
				assert.NotContains(t, user, "passwordHash")
			}

			svc.AssertExpectations(t)
		})
	}
}
