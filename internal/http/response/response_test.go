package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/validate"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	StoreID  string `json:"storeId" validate:"required,uuid"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	SortBy   string `json:"sortBy" validate:"omitempty,oneof=name email createdAt"`
	Password string `json:"password" validate:"required,password"`
}

func TestValidationError(t *testing.T) {
	v := validate.New()
	err := v.Struct(sample{
		Name:     "short",
		Email:    "not-an-email",
		StoreID:  "42",
		Rating:   7,
		SortBy:   "rating",
		Password: "password",
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := response.ValidationError(verrs)
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name must be at least 20")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field StoreID must be a valid uuid")
	assert.Contains(t, resp.Error, "field Rating must be at most 5")
	assert.Contains(t, resp.Error, "field SortBy must be one of [name email createdAt]")
	assert.Contains(t, resp.Error, "field Password must be 8-16 characters")
}

func TestFail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	response.Fail(rr, req, http.StatusConflict, "email already registered")

	assert.Equal(t, http.StatusConflict, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Error", body["status"])
	assert.Equal(t, "email already registered", body["error"])
	assert.NotContains(t, body, "data")
}

func TestOKWithData(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	response.JSON(rr, req, http.StatusCreated, response.OKWithData(map[string]int{"total": 3}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"total":3}}`, rr.Body.String())
}
