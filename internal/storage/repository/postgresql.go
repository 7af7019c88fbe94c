// Package repository реализует хранилище пользователей, магазинов и оценок
// на PostgreSQL. Уникальность email и пары (пользователь, магазин)
// обеспечивается ограничениями схемы, нарушения которых возвращаются как ErrConflict.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrConflict — нарушено ограничение уникальности.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference — внешний ключ ссылается на несуществующую запись.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет доступность базы данных.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// wrap переводит ошибки драйвера в ошибки пакета и добавляет имя операции.
func wrap(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// sortColumns — допустимые поля сортировки и соответствующие им колонки.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

// orderBy формирует ORDER BY только из известных колонок, по умолчанию created_at DESC.
func orderBy(alias string, f models.ListFilter) string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == models.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s.%s %s, %s.id", alias, column, direction, alias)
}

// searchClause строит условие ILIKE по переданным колонкам.
// Возвращает пустую строку, если поиск не задан.
func searchClause(alias, search string, args []any, columns ...string) (string, []any) {
	if search == "" {
		return "", args
	}
	args = append(args, "%"+escapeLike(search)+"%")
	placeholder := fmt.Sprintf("$%d", len(args))

	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, fmt.Sprintf("%s.%s ILIKE %s", alias, c, placeholder))
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func where(conds ...string) string {
	var nonEmpty []string
	for _, c := range conds {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(nonEmpty, " AND ")
}

// Dashboard возвращает общее количество пользователей, магазинов и оценок.
func (s *Storage) Dashboard(ctx context.Context) (models.AdminDashboard, error) {
	const op = "storage.Dashboard"

	var d models.AdminDashboard
	query := `SELECT
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(*) FROM stores),
			      (SELECT COUNT(*) FROM ratings)`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&d.TotalUsers, &d.TotalStores, &d.TotalRatings); err != nil {
		return models.AdminDashboard{}, wrap(op, err)
	}
	return d, nil
}

// Reset удаляет все оценки, магазины и пользователей.
func (s *Storage) Reset(ctx context.Context) error {
	const op = "storage.Reset"

	if _, err := s.DB.ExecContext(ctx, `TRUNCATE ratings, stores, users`); err != nil {
		return wrap(op, err)
	}
	return nil
}
