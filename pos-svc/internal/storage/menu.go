package storage

import (
	"context"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
)

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]domain.MenuCategory, error) {
	rows, err := r.getDB(ctx).QueryContext(ctx, `
		SELECT id, restaurant_id, name, sort_order, created_at
		FROM menu_categories
		WHERE restaurant_id = $1
		ORDER BY sort_order, created_at`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.MenuCategory{}
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuCategory, error) {
	var c domain.MenuCategory
	err := r.getDB(ctx).QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, sort_order, created_at
		FROM menu_categories
		WHERE id = $1 AND restaurant_id = $2`, id, restaurantID).
		Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *domain.MenuCategory) error {
	err := r.getDB(ctx).QueryRowContext(ctx,
		"INSERT INTO menu_categories (restaurant_id, name, sort_order) VALUES ($1, $2, $3) RETURNING id, created_at",
		c.RestaurantID, c.Name, c.SortOrder,
	).Scan(&c.ID, &c.CreatedAt)
	return mapError(err)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *domain.MenuCategory) error {
	err := r.getDB(ctx).QueryRowContext(ctx, `
		UPDATE menu_categories SET name = $1, sort_order = $2
		WHERE id = $3 AND restaurant_id = $4
		RETURNING created_at`,
		c.Name, c.SortOrder, c.ID, c.RestaurantID,
	).Scan(&c.CreatedAt)
	return mapError(err)
}

func (r *PostgresRepository) CountItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	err := r.getDB(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM menu_items WHERE category_id = $1", categoryID).Scan(&n)
	return n, err
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, restaurantID, id uuid.UUID) (int64, error) {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"DELETE FROM menu_categories WHERE id = $1 AND restaurant_id = $2", id, restaurantID)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}

const itemColumns = `id, restaurant_id, category_id, name, description, price, is_active, image_url, created_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*domain.MenuItem, error) {
	var (
		item domain.MenuItem
		cat  uuid.NullUUID
	)
	if err := row.Scan(&item.ID, &item.RestaurantID, &cat, &item.Name, &item.Description,
		&item.Price, &item.IsActive, &item.ImageURL, &item.CreatedAt); err != nil {
		return nil, err
	}
	if cat.Valid {
		item.CategoryID = &cat.UUID
	}
	return &item, nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]domain.MenuItem, error) {
	query := "SELECT " + itemColumns + " FROM menu_items WHERE restaurant_id = $1"
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY created_at"

	rows, err := r.getDB(ctx).QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetItem only finds items owned by restaurantID.
func (r *PostgresRepository) GetItem(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error) {
	item, err := scanItem(r.getDB(ctx).QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM menu_items WHERE id = $1 AND restaurant_id = $2", id, restaurantID))
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.getDB(ctx).QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, category_id, name, description, price, is_active, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		item.RestaurantID, item.CategoryID, item.Name, item.Description, item.Price, item.IsActive, item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt)
	return mapError(err)
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	res, err := r.getDB(ctx).ExecContext(ctx, `
		UPDATE menu_items
		SET category_id = $1, name = $2, description = $3, price = $4, is_active = $5, image_url = $6
		WHERE id = $7 AND restaurant_id = $8`,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsActive, item.ImageURL,
		item.ID, item.RestaurantID)
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

// DeleteItem removes the item together with its option groups and options.
func (r *PostgresRepository) DeleteItem(ctx context.Context, restaurantID, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.InTx(ctx, func(ctx context.Context) error {
		db := r.getDB(ctx)
		if _, err := db.ExecContext(ctx, `
			DELETE FROM menu_options WHERE group_id IN (
				SELECT id FROM menu_option_groups WHERE menu_item_id = $1 AND restaurant_id = $2)`,
			id, restaurantID); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			"DELETE FROM menu_option_groups WHERE menu_item_id = $1 AND restaurant_id = $2", id, restaurantID); err != nil {
			return err
		}
		res, err := db.ExecContext(ctx,
			"DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2", id, restaurantID)
		if err != nil {
			return err
		}
		deleted, err = rowsAffected(res)
		return err
	})
	return deleted, err
}

// ListOptionGroups loads the groups of the given items with their options attached.
func (r *PostgresRepository) ListOptionGroups(ctx context.Context, itemIDs []uuid.UUID) ([]domain.OptionGroup, error) {
	if len(itemIDs) == 0 {
		return []domain.OptionGroup{}, nil
	}
	db := r.getDB(ctx)

	rows, err := db.QueryContext(ctx, `
		SELECT id, restaurant_id, menu_item_id, name, min_select, max_select, is_required
		FROM menu_option_groups
		WHERE menu_item_id = ANY($1::uuid[])
		ORDER BY name, id`, uuidStrings(itemIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.OptionGroup{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var g domain.OptionGroup
		if err := rows.Scan(&g.ID, &g.RestaurantID, &g.MenuItemID, &g.Name, &g.MinSelect, &g.MaxSelect, &g.IsRequired); err != nil {
			return nil, err
		}
		g.Options = []domain.Option{}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	groupIDs := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}
	optRows, err := db.QueryContext(ctx, `
		SELECT id, restaurant_id, group_id, name, price_delta
		FROM menu_options
		WHERE group_id = ANY($1::uuid[])
		ORDER BY name, id`, uuidStrings(groupIDs))
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var o domain.Option
		if err := optRows.Scan(&o.ID, &o.RestaurantID, &o.GroupID, &o.Name, &o.PriceDelta); err != nil {
			return nil, err
		}
		if i, ok := index[o.GroupID]; ok {
			groups[i].Options = append(groups[i].Options, o)
		}
	}
	return groups, optRows.Err()
}

func (r *PostgresRepository) GetOptionGroup(ctx context.Context, restaurantID, id uuid.UUID) (*domain.OptionGroup, error) {
	var g domain.OptionGroup
	err := r.getDB(ctx).QueryRowContext(ctx, `
		SELECT id, restaurant_id, menu_item_id, name, min_select, max_select, is_required
		FROM menu_option_groups
		WHERE id = $1 AND restaurant_id = $2`, id, restaurantID).
		Scan(&g.ID, &g.RestaurantID, &g.MenuItemID, &g.Name, &g.MinSelect, &g.MaxSelect, &g.IsRequired)
	if err != nil {
		return nil, mapError(err)
	}
	return &g, nil
}

func (r *PostgresRepository) CreateOptionGroup(ctx context.Context, g *domain.OptionGroup) error {
	err := r.getDB(ctx).QueryRowContext(ctx, `
		INSERT INTO menu_option_groups (restaurant_id, menu_item_id, name, min_select, max_select, is_required)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		g.RestaurantID, g.MenuItemID, g.Name, g.MinSelect, g.MaxSelect, g.IsRequired,
	).Scan(&g.ID)
	return mapError(err)
}

func (r *PostgresRepository) DeleteOptionGroup(ctx context.Context, restaurantID, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.InTx(ctx, func(ctx context.Context) error {
		db := r.getDB(ctx)
		if _, err := db.ExecContext(ctx,
			"DELETE FROM menu_options WHERE group_id = $1 AND restaurant_id = $2", id, restaurantID); err != nil {
			return err
		}
		res, err := db.ExecContext(ctx,
			"DELETE FROM menu_option_groups WHERE id = $1 AND restaurant_id = $2", id, restaurantID)
		if err != nil {
			return err
		}
		deleted, err = rowsAffected(res)
		return err
	})
	return deleted, err
}

func (r *PostgresRepository) CreateOption(ctx context.Context, o *domain.Option) error {
	err := r.getDB(ctx).QueryRowContext(ctx,
		"INSERT INTO menu_options (restaurant_id, group_id, name, price_delta) VALUES ($1, $2, $3, $4) RETURNING id",
		o.RestaurantID, o.GroupID, o.Name, o.PriceDelta,
	).Scan(&o.ID)
	return mapError(err)
}

func (r *PostgresRepository) DeleteOption(ctx context.Context, restaurantID, id uuid.UUID) (int64, error) {
	res, err := r.getDB(ctx).ExecContext(ctx,
		"DELETE FROM menu_options WHERE id = $1 AND restaurant_id = $2", id, restaurantID)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
