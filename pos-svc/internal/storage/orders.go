package storage

import (
	"context"
	"database/sql"
	"errors"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orderSelect = `
	SELECT o.id, o.restaurant_id, o.table_id, COALESCE(t.name, ''), o.status, o.total_amount, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN tables t ON t.id = o.table_id`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var (
		o       domain.Order
		tableID uuid.NullUUID
	)
	if err := row.Scan(&o.ID, &o.RestaurantID, &tableID, &o.TableName, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.TableID = tableID.UUID
	o.Items = []domain.OrderItem{}
	return &o, nil
}

func orderStatuses(statuses []domain.OrderStatus) pq.StringArray {
	out := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *PostgresRepository) FindOpenOrder(ctx context.Context, tableID uuid.UUID) (*domain.Order, error) {
	o, err := scanOrder(r.getDB(ctx).QueryRowContext(ctx,
		orderSelect+" WHERE o.table_id = $1 AND o.status = 'open'", tableID))
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

// InsertOpenOrder returns ErrDuplicateKey when another open order for the table
// already exists.
func (r *PostgresRepository) InsertOpenOrder(ctx context.Context, restaurantID, tableID uuid.UUID) (*domain.Order, error) {
	o := domain.Order{
		RestaurantID: restaurantID,
		TableID:      tableID,
		Status:       domain.OrderOpen,
		Items:        []domain.OrderItem{},
	}
	err := r.getDB(ctx).QueryRowContext(ctx, `
		INSERT INTO orders (restaurant_id, table_id, status)
		VALUES ($1, $2, 'open')
		ON CONFLICT (table_id) WHERE status = 'open' DO NOTHING
		RETURNING id, total_amount, created_at, updated_at`,
		restaurantID, tableID,
	).Scan(&o.ID, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateKey
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := scanOrder(r.getDB(ctx).QueryRowContext(ctx, orderSelect+" WHERE o.id = $1", id))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.attachItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListActiveOrders returns the restaurant's open and sent orders, oldest first, with items.
func (r *PostgresRepository) ListActiveOrders(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.getDB(ctx).QueryContext(ctx,
		orderSelect+" WHERE o.restaurant_id = $1 AND o.status IN ('open', 'sent') ORDER BY o.created_at",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ptrs []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, ptrs); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, len(ptrs))
	for i, o := range ptrs {
		orders[i] = *o
	}
	return orders, nil
}

func (r *PostgresRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[uuid.UUID]*domain.Order, len(orders))
	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		index[o.ID] = o
		ids[i] = o.ID
	}

	rows, err := r.getDB(ctx).QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, menu_item_name, quantity, unit_price, option_names, note, created_at
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at, id`, uuidStrings(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item   domain.OrderItem
			menuID uuid.NullUUID
			names  pq.StringArray
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &menuID, &item.MenuItemName, &item.Quantity,
			&item.UnitPrice, &names, &item.Note, &item.CreatedAt); err != nil {
			return err
		}
		item.MenuItemID = menuID.UUID
		item.OptionNames = []string(names)
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// InsertOrderItem adds the line total to the order and stores the snapshot row. The
// order update runs first and only matches an open order, so its row lock holds off a
// concurrent send or complete until the caller's transaction ends. It returns
// ErrOrderNotOpen when the order has left the open status.
func (r *PostgresRepository) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	db := r.getDB(ctx)
	if item.OptionNames == nil {
		item.OptionNames = []string{}
	}

	res, err := db.ExecContext(ctx,
		"UPDATE orders SET total_amount = total_amount + $1, updated_at = now() WHERE id = $2 AND status = 'open'",
		item.LineTotal(), item.OrderID)
	if err != nil {
		return err
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotOpen
	}

	err = db.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, menu_item_name, quantity, unit_price, option_names, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		item.OrderID, item.MenuItemID, item.MenuItemName, item.Quantity, item.UnitPrice,
		pq.StringArray(item.OptionNames), item.Note,
	).Scan(&item.ID, &item.CreatedAt)
	return mapError(err)
}

// TransitionOrder moves the order to `to` only if its current status is one of from.
// It reports whether a row changed.
func (r *PostgresRepository) TransitionOrder(ctx context.Context, id uuid.UUID, from []domain.OrderStatus, to domain.OrderStatus) (bool, error) {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = ANY($3)",
		to, id, orderStatuses(from))
	if err != nil {
		return false, err
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// CompleteOpenOrderForTable closes the table's open order, if any, and returns its id.
func (r *PostgresRepository) CompleteOpenOrderForTable(ctx context.Context, tableID uuid.UUID) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.getDB(ctx).QueryRowContext(ctx, `
		UPDATE orders SET status = 'completed', updated_at = now()
		WHERE table_id = $1 AND status = 'open'
		RETURNING id`, tableID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}
