package storage

import (
	"context"
	"time"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const waitlistColumns = `id, restaurant_id, name, phone, party_size, status, table_id, created_at, updated_at`

func scanWaitlist(row interface{ Scan(...interface{}) error }) (*domain.WaitlistEntry, error) {
	var (
		e       domain.WaitlistEntry
		tableID uuid.NullUUID
	)
	if err := row.Scan(&e.ID, &e.RestaurantID, &e.Name, &e.Phone, &e.PartySize, &e.Status,
		&tableID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if tableID.Valid {
		e.TableID = &tableID.UUID
	}
	return &e, nil
}

func (r *PostgresRepository) CreateWaitlistEntry(ctx context.Context, e *domain.WaitlistEntry) error {
	err := r.getDB(ctx).QueryRowContext(ctx, `
		INSERT INTO waitlist (restaurant_id, name, phone, party_size, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		e.RestaurantID, e.Name, e.Phone, e.PartySize, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapError(err)
}

func (r *PostgresRepository) GetWaitlistEntry(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error) {
	e, err := scanWaitlist(r.getDB(ctx).QueryRowContext(ctx,
		"SELECT "+waitlistColumns+" FROM waitlist WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

// ListWaitlist returns entries oldest first; an empty status list means every status.
func (r *PostgresRepository) ListWaitlist(ctx context.Context, restaurantID uuid.UUID, statuses []domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	query := "SELECT " + waitlistColumns + " FROM waitlist WHERE restaurant_id = $1"
	args := []interface{}{restaurantID}
	if len(statuses) > 0 {
		names := make(pq.StringArray, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		query += " AND status = ANY($2)"
		args = append(args, names)
	}
	query += " ORDER BY created_at, id"

	rows, err := r.getDB(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.WaitlistEntry{}
	for rows.Next() {
		e, err := scanWaitlist(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// TransitionWaitlist moves the entry to `to` only if its current status is one of from.
// A non-nil tableID is recorded on the row.
func (r *PostgresRepository) TransitionWaitlist(ctx context.Context, id uuid.UUID, from []domain.WaitlistStatus, to domain.WaitlistStatus, tableID *uuid.UUID) (bool, error) {
	names := make(pq.StringArray, len(from))
	for i, s := range from {
		names[i] = string(s)
	}
	res, err := r.getDB(ctx).ExecContext(ctx, `
		UPDATE waitlist
		SET status = $1, table_id = COALESCE($2, table_id), updated_at = now()
		WHERE id = $3 AND status = ANY($4)`,
		to, tableID, id, names)
	if err != nil {
		return false, err
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// WaitlistPosition counts the restaurant's waiting entries created at or before createdAt.
func (r *PostgresRepository) WaitlistPosition(ctx context.Context, restaurantID uuid.UUID, createdAt time.Time) (int, error) {
	var n int
	err := r.getDB(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM waitlist
		WHERE restaurant_id = $1 AND status = 'waiting' AND created_at <= $2`,
		restaurantID, createdAt).Scan(&n)
	return n, err
}
