package repository

import (
	"context"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

const storeColumns = `s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at`

func scanStore(row rowScanner, extra ...any) (models.Store, error) {
	var st models.Store
	dest := append([]any{&st.ID, &st.Name, &st.Email, &st.Address, &st.OwnerID,
		&st.CreatedAt, &st.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Store{}, err
	}
	return st, nil
}

// CreateStore сохраняет магазин и возвращает его вместе с данными владельца.
// Несуществующий владелец даёт ErrInvalidReference.
func (s *Storage) CreateStore(ctx context.Context, store models.Store) (models.StoreWithOwner, error) {
	const op = "storage.CreateStore"

	query := `WITH s AS (
			      INSERT INTO stores (name, email, address, owner_id)
			      VALUES ($1, $2, $3, $4)
			      RETURNING *
			  )
			  SELECT ` + storeColumns + `, u.name, u.email
			  FROM s JOIN users u ON u.id = s.owner_id`
	var res models.StoreWithOwner
	st, err := scanStore(s.DB.QueryRowContext(ctx, query, store.Name, store.Email, store.Address, store.OwnerID),
		&res.Owner.Name, &res.Owner.Email)
	if err != nil {
		return models.StoreWithOwner{}, wrap(op, err)
	}
	res.Store = st
	return res, nil
}

// GetStore возвращает магазин по идентификатору.
func (s *Storage) GetStore(ctx context.Context, id string) (*models.Store, error) {
	const op = "storage.GetStore"

	query := `SELECT ` + storeColumns + ` FROM stores s WHERE s.id = $1`
	st, err := scanStore(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &st, nil
}

// FirstStoreByOwner возвращает самый ранний магазин владельца.
func (s *Storage) FirstStoreByOwner(ctx context.Context, ownerID string) (*models.Store, error) {
	const op = "storage.FirstStoreByOwner"

	query := `SELECT ` + storeColumns + `
			  FROM stores s
			  WHERE s.owner_id = $1
			  ORDER BY s.created_at, s.id
			  LIMIT 1`
	st, err := scanStore(s.DB.QueryRowContext(ctx, query, ownerID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &st, nil
}

func storeFilter(f models.ListFilter) (string, []any) {
	cond, args := searchClause("s", f.Search, nil, "name", "address")
	return where(cond), args
}

// ListStores возвращает магазины с данными владельцев, подходящие под фильтр.
func (s *Storage) ListStores(ctx context.Context, f models.ListFilter) ([]models.StoreWithOwner, error) {
	const op = "storage.ListStores"

	cond, args := storeFilter(f)
	query := `SELECT ` + storeColumns + `, u.name, u.email
			  FROM stores s JOIN users u ON u.id = s.owner_id` + cond + orderBy("s", f)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.StoreWithOwner{}
	for rows.Next() {
		var item models.StoreWithOwner
		st, err := scanStore(rows, &item.Owner.Name, &item.Owner.Email)
		if err != nil {
			return nil, wrap(op, err)
		}
		item.Store = st
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// CountStores возвращает количество магазинов, подходящих под фильтр.
func (s *Storage) CountStores(ctx context.Context, f models.ListFilter) (int, error) {
	const op = "storage.CountStores"

	cond, args := storeFilter(f)
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores s`+cond, args...).Scan(&total); err != nil {
		return 0, wrap(op, err)
	}
	return total, nil
}

// StoresByOwners возвращает идентификаторы магазинов для каждого владельца.
func (s *Storage) StoresByOwners(ctx context.Context, ownerIDs []string) (map[string][]string, error) {
	const op = "storage.StoresByOwners"

	result := make(map[string][]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	query := `SELECT owner_id, id FROM stores
			  WHERE owner_id = ANY($1::uuid[])
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, ownerIDs)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var ownerID, storeID string
		if err = rows.Scan(&ownerID, &storeID); err != nil {
			return nil, wrap(op, err)
		}
		result[ownerID] = append(result[ownerID], storeID)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// RecentStores возвращает limit последних магазинов с именами владельцев.
func (s *Storage) RecentStores(ctx context.Context, limit int) ([]models.RecentStore, error) {
	const op = "storage.RecentStores"

	query := `SELECT s.id, s.name, s.email, u.name, s.created_at
			  FROM stores s JOIN users u ON u.id = s.owner_id
			  ORDER BY s.created_at DESC, s.id
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.RecentStore
	for rows.Next() {
		var st models.RecentStore
		if err = rows.Scan(&st.ID, &st.Name, &st.Email, &st.OwnerName, &st.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, st)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}
