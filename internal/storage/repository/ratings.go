package repository

import (
	"context"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

const ratingColumns = `r.id, r.user_id, r.store_id, r.value, r.created_at, r.updated_at`

func scanRating(row rowScanner, extra ...any) (models.Rating, error) {
	var r models.Rating
	dest := append([]any{&r.ID, &r.UserID, &r.StoreID, &r.Value, &r.CreatedAt, &r.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Rating{}, err
	}
	return r, nil
}

// CreateRating сохраняет оценку. Повторная оценка того же магазина
// тем же пользователем даёт ErrConflict.
func (s *Storage) CreateRating(ctx context.Context, rating models.Rating) (models.Rating, error) {
	const op = "storage.CreateRating"

	query := `INSERT INTO ratings AS r (user_id, store_id, value)
			  VALUES ($1, $2, $3)
			  RETURNING ` + ratingColumns
	created, err := scanRating(s.DB.QueryRowContext(ctx, query, rating.UserID, rating.StoreID, rating.Value))
	if err != nil {
		return models.Rating{}, wrap(op, err)
	}
	return created, nil
}

// GetRating возвращает оценку по идентификатору.
func (s *Storage) GetRating(ctx context.Context, id string) (*models.Rating, error) {
	const op = "storage.GetRating"

	query := `SELECT ` + ratingColumns + ` FROM ratings r WHERE r.id = $1`
	r, err := scanRating(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &r, nil
}

// UpdateRatingValue меняет значение оценки и возвращает обновлённую запись.
func (s *Storage) UpdateRatingValue(ctx context.Context, id string, value int) (models.Rating, error) {
	const op = "storage.UpdateRatingValue"

	query := `UPDATE ratings AS r SET value = $1, updated_at = NOW()
			  WHERE r.id = $2
			  RETURNING ` + ratingColumns
	r, err := scanRating(s.DB.QueryRowContext(ctx, query, value, id))
	if err != nil {
		return models.Rating{}, wrap(op, err)
	}
	return r, nil
}

// RatingsByStore возвращает оценки магазина с авторами, новые первыми.
func (s *Storage) RatingsByStore(ctx context.Context, storeID string) ([]models.RatingWithUser, error) {
	const op = "storage.RatingsByStore"

	query := `SELECT ` + ratingColumns + `, u.id, u.name, u.email
			  FROM ratings r JOIN users u ON u.id = r.user_id
			  WHERE r.store_id = $1
			  ORDER BY r.created_at DESC, r.id`
	rows, err := s.DB.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.RatingWithUser{}
	for rows.Next() {
		var item models.RatingWithUser
		r, err := scanRating(rows, &item.User.ID, &item.User.Name, &item.User.Email)
		if err != nil {
			return nil, wrap(op, err)
		}
		item.Rating = r
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// RatingValuesByStores возвращает значения оценок с датами для каждого магазина.
// Магазины без оценок в результат не попадают.
func (s *Storage) RatingValuesByStores(ctx context.Context, storeIDs []string) (map[string][]models.RatingValue, error) {
	const op = "storage.RatingValuesByStores"

	result := make(map[string][]models.RatingValue, len(storeIDs))
	if len(storeIDs) == 0 {
		return result, nil
	}

	query := `SELECT store_id, user_id, value, created_at
			  FROM ratings
			  WHERE store_id = ANY($1::uuid[])
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, storeIDs)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			storeID string
			v       models.RatingValue
		)
		if err = rows.Scan(&storeID, &v.UserID, &v.Value, &v.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		result[storeID] = append(result[storeID], v)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// RecentRatings возвращает limit последних оценок с именами автора и магазина.
func (s *Storage) RecentRatings(ctx context.Context, limit int) ([]models.RecentRating, error) {
	const op = "storage.RecentRatings"

	query := `SELECT r.id, r.value, u.name, st.name, r.created_at
			  FROM ratings r
			  JOIN users u ON u.id = r.user_id
			  JOIN stores st ON st.id = r.store_id
			  ORDER BY r.created_at DESC, r.id
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.RecentRating
	for rows.Next() {
		var r models.RecentRating
		if err = rows.Scan(&r.ID, &r.Value, &r.UserName, &r.StoreName, &r.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}
