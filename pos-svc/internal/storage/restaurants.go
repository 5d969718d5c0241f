package storage

import (
	"context"
	"fmt"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
)

const restaurantColumns = `id, name, slug, waitlist_token, created_at`

func scanRestaurant(row interface{ Scan(...interface{}) error }) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	if err := row.Scan(&rest.ID, &rest.Name, &rest.Slug, &rest.WaitlistToken, &rest.CreatedAt); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.getDB(ctx).QueryRowContext(ctx,
		"INSERT INTO restaurants (name, slug, waitlist_token) VALUES ($1, $2, $3) RETURNING id, created_at",
		rest.Name, rest.Slug, rest.WaitlistToken,
	).Scan(&rest.ID, &rest.CreatedAt)
	return mapError(err)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.getDB(ctx).QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.getDB(ctx).QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err)
	}
	return rest, nil
}

func (r *PostgresRepository) UpdateWaitlistToken(ctx context.Context, id uuid.UUID, token string) error {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"UPDATE restaurants SET waitlist_token = $1 WHERE id = $2", token, id)
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

// Children first, parent last. Profiles are detached rather than deleted.
var restaurantCascade = []string{
	"DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE restaurant_id = $1)",
	"DELETE FROM orders WHERE restaurant_id = $1",
	"DELETE FROM waitlist WHERE restaurant_id = $1",
	"DELETE FROM menu_options WHERE restaurant_id = $1",
	"DELETE FROM menu_option_groups WHERE restaurant_id = $1",
	"DELETE FROM menu_items WHERE restaurant_id = $1",
	"DELETE FROM menu_categories WHERE restaurant_id = $1",
	"DELETE FROM tables WHERE restaurant_id = $1",
	"UPDATE user_profile SET restaurant_id = NULL WHERE restaurant_id = $1",
}

func (r *PostgresRepository) DeleteRestaurantCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.InTx(ctx, func(ctx context.Context) error {
		db := r.getDB(ctx)
		for _, stmt := range restaurantCascade {
			if _, err := db.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade %q: %w", stmt, err)
			}
		}

		res, err := db.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
		if err != nil {
			return err
		}
		deleted, err = rowsAffected(res)
		return err
	})
	return deleted, err
}
