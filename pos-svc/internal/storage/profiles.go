package storage

import (
	"context"
	"strings"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
)

const profileSelect = `
	SELECT p.id, COALESCE(u.email, ''), p.role, p.restaurant_id, p.display_name, p.created_at
	FROM user_profile p
	LEFT JOIN auth_users u ON u.id = p.id`

func scanProfile(row interface{ Scan(...interface{}) error }) (*domain.Profile, error) {
	var (
		p   domain.Profile
		rid uuid.NullUUID
	)
	if err := row.Scan(&p.ID, &p.Email, &p.Role, &rid, &p.DisplayName, &p.CreatedAt); err != nil {
		return nil, err
	}
	if rid.Valid {
		p.RestaurantID = &rid.UUID
	}
	return &p, nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := scanProfile(r.getDB(ctx).QueryRowContext(ctx, profileSelect+" WHERE p.id = $1", id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// ListProfiles returns every profile when restaurantID is nil.
func (r *PostgresRepository) ListProfiles(ctx context.Context, restaurantID *uuid.UUID) ([]domain.Profile, error) {
	query := profileSelect + " ORDER BY p.created_at"
	args := []interface{}{}
	if restaurantID != nil {
		query = profileSelect + " WHERE p.restaurant_id = $1 ORDER BY p.created_at"
		args = append(args, *restaurantID)
	}

	rows, err := r.getDB(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *PostgresRepository) CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.getDB(ctx).QueryRowContext(ctx,
		"INSERT INTO auth_users (email, password_hash) VALUES ($1, $2) RETURNING id",
		strings.ToLower(strings.TrimSpace(email)), passwordHash,
	).Scan(&id)
	return id, mapError(err)
}

func (r *PostgresRepository) GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var ident domain.Identity
	err := r.getDB(ctx).QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM auth_users WHERE email = $1",
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&ident.ID, &ident.Email, &ident.PasswordHash, &ident.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &ident, nil
}

func (r *PostgresRepository) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	_, err := r.getDB(ctx).ExecContext(ctx, "DELETE FROM auth_users WHERE id = $1", id)
	return err
}

func (r *PostgresRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	err := r.getDB(ctx).QueryRowContext(ctx,
		"INSERT INTO user_profile (id, role, restaurant_id, display_name) VALUES ($1, $2, $3, $4) RETURNING created_at",
		p.ID, p.Role, p.RestaurantID, p.DisplayName,
	).Scan(&p.CreatedAt)
	return mapError(err)
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"UPDATE user_profile SET role = $1, restaurant_id = $2, display_name = $3 WHERE id = $4",
		p.Role, p.RestaurantID, p.DisplayName, p.ID)
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

func (r *PostgresRepository) DeleteProfile(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.getDB(ctx).ExecContext(ctx, "DELETE FROM user_profile WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
