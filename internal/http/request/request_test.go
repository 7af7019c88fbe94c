package request_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/store-rating/internal/http/request"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
	}{
		{name: "valid", body: `{"rating":4}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "broken json", body: `{"rating":`, wantStatus: http.StatusBadRequest},
		{name: "out of range", body: `{"rating":9}`, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))

			var dst models.UpdateRatingRequest
			ok := request.Decode(rr, req, sl.Discard(), validate.New(), &dst)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUUIDParam(t *testing.T) {
	tests := []struct {
		name   string
		param  string
		wantOK bool
	}{
		{name: "valid", param: "4b3f8a8e-3c1d-4f4e-9a57-0c6c7e3b2f10", wantOK: true},
		{name: "invalid", param: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.param)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			id, ok := request.UUIDParam(rr, req, sl.Discard(), "id")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.param, id)
			} else {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
			}
		})
	}
}

func TestListQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users?search=ann&role=STORE_OWNER&sortBy=email&sortOrder=asc", nil)

		q, ok := request.ListQuery(rr, req, sl.Discard(), validate.New())
		assert.True(t, ok)
		assert.Equal(t, models.ListFilter{
			Search:    "ann",
			Role:      models.RoleStoreOwner,
			SortBy:    "email",
			SortOrder: models.SortAsc,
		}, q.Filter())
	})

	t.Run("unknown sort column", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users?sortBy=password_hash", nil)

		_, ok := request.ListQuery(rr, req, sl.Discard(), validate.New())
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}
