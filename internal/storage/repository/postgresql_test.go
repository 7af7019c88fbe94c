package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name   string
		filter models.ListFilter
		want   string
	}{
		{
			name:   "default",
			filter: models.ListFilter{},
			want:   " ORDER BY u.created_at DESC, u.id",
		},
		{
			name:   "name ascending",
			filter: models.ListFilter{SortBy: "name", SortOrder: models.SortAsc},
			want:   " ORDER BY u.name ASC, u.id",
		},
		{
			name:   "email descending",
			filter: models.ListFilter{SortBy: "email", SortOrder: models.SortDesc},
			want:   " ORDER BY u.email DESC, u.id",
		},
		{
			name:   "unknown column falls back",
			filter: models.ListFilter{SortBy: "password_hash; DROP TABLE users", SortOrder: models.SortAsc},
			want:   " ORDER BY u.created_at ASC, u.id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderBy("u", tt.filter))
		})
	}
}

func TestUserFilter(t *testing.T) {
	cond, args := userFilter(models.ListFilter{})
	assert.Empty(t, cond)
	assert.Empty(t, args)

	cond, args = userFilter(models.ListFilter{Search: "50%_off", Role: models.RoleStoreOwner})
	assert.Equal(t, " WHERE (u.name ILIKE $1 OR u.email ILIKE $1 OR u.address ILIKE $1) AND u.role = $2", cond)
	assert.Equal(t, []any{`%50\%\_off%`, models.RoleStoreOwner}, args)
}

func TestStoreFilter(t *testing.T) {
	cond, args := storeFilter(models.ListFilter{Search: "tech"})
	assert.Equal(t, " WHERE (s.name ILIKE $1 OR s.address ILIKE $1)", cond)
	assert.Equal(t, []any{"%tech%"}, args)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: ErrConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, want: ErrInvalidReference},
		{name: "wrapped unique violation", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), want: ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrap("storage.Test", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "storage.Test")
		})
	}

	other := errors.New("connection reset")
	err := wrap("storage.Test", other)
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict))
}
