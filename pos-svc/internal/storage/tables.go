package storage

import (
	"context"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const tableColumns = `id, restaurant_id, name, capacity, token, created_at`

func scanTable(row interface{ Scan(...interface{}) error }) (*domain.Table, error) {
	var t domain.Table
	if err := row.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.Token, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func uuidStrings(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// ListTables returns the restaurant's tables oldest first.
func (r *PostgresRepository) ListTables(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error) {
	rows, err := r.getDB(ctx).QueryContext(ctx,
		"SELECT "+tableColumns+" FROM tables WHERE restaurant_id = $1 ORDER BY created_at, id", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	t, err := scanTable(r.getDB(ctx).QueryRowContext(ctx,
		"SELECT "+tableColumns+" FROM tables WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) GetTableByToken(ctx context.Context, token string) (*domain.Table, error) {
	t, err := scanTable(r.getDB(ctx).QueryRowContext(ctx,
		"SELECT "+tableColumns+" FROM tables WHERE token = $1", token))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	err := r.getDB(ctx).QueryRowContext(ctx,
		"INSERT INTO tables (restaurant_id, name, capacity, token) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		t.RestaurantID, t.Name, t.Capacity, t.Token,
	).Scan(&t.ID, &t.CreatedAt)
	return mapError(err)
}

func (r *PostgresRepository) DeleteTables(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"DELETE FROM tables WHERE restaurant_id = $1 AND id = ANY($2::uuid[])",
		restaurantID, uuidStrings(ids))
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}

func (r *PostgresRepository) CountOpenOrders(ctx context.Context, tableIDs []uuid.UUID) (int, error) {
	var n int
	err := r.getDB(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE status = 'open' AND table_id = ANY($1::uuid[])",
		uuidStrings(tableIDs)).Scan(&n)
	return n, err
}

func (r *PostgresRepository) UpdateTableCapacity(ctx context.Context, id uuid.UUID, capacity int) error {
	_, err := r.getDB(ctx).ExecContext(ctx,
		"UPDATE tables SET capacity = $1 WHERE id = $2", capacity, id)
	return err
}

func (r *PostgresRepository) UpdateTableToken(ctx context.Context, restaurantID, id uuid.UUID, token string) error {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"UPDATE tables SET token = $1 WHERE id = $2 AND restaurant_id = $3", token, id, restaurantID)
	if err != nil {
		return mapError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
