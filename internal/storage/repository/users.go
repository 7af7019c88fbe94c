package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

const userColumns = `u.id, u.name, u.email, u.address, u.role, u.password_hash, u.created_at, u.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u       models.User
		address sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &address, &u.Role, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return models.User{}, err
	}
	if address.Valid {
		u.Address = &address.String
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя. Занятый email даёт ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.CreateUser"

	query := `INSERT INTO users AS u (name, email, password_hash, address, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + userColumns
	created, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Address, user.Role))
	if err != nil {
		return models.User{}, wrap(op, err)
	}
	return created, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"

	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &u, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const op = "storage.UpdatePassword"

	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func userFilter(f models.ListFilter) (string, []any) {
	var args []any
	search, args := searchClause("u", f.Search, args, "name", "email", "address")
	role := ""
	if f.Role != "" {
		args = append(args, f.Role)
		role = fmt.Sprintf("u.role = $%d", len(args))
	}
	return where(search, role), args
}

// ListUsers возвращает пользователей, подходящих под фильтр.
func (s *Storage) ListUsers(ctx context.Context, f models.ListFilter) ([]models.User, error) {
	const op = "storage.ListUsers"

	cond, args := userFilter(f)
	query := `SELECT ` + userColumns + ` FROM users u` + cond + orderBy("u", f)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// CountUsers возвращает количество пользователей, подходящих под фильтр.
func (s *Storage) CountUsers(ctx context.Context, f models.ListFilter) (int, error) {
	const op = "storage.CountUsers"

	cond, args := userFilter(f)
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+cond, args...).Scan(&total); err != nil {
		return 0, wrap(op, err)
	}
	return total, nil
}

// RecentUsers возвращает limit последних зарегистрированных пользователей.
func (s *Storage) RecentUsers(ctx context.Context, limit int) ([]models.RecentUser, error) {
	const op = "storage.RecentUsers"

	query := `SELECT id, name, email, role, created_at
			  FROM users
			  ORDER BY created_at DESC, id
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.RecentUser
	for rows.Next() {
		var u models.RecentUser
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}
