package service

import (
	"context"
	"errors"
	"fmt"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// managerScope resolves the restaurant a manager-level read acts on. Managers default
// to their own restaurant, admins must name one.
func managerScope(p auth.Principal, explicit *uuid.UUID) (uuid.UUID, error) {
	if err := auth.Require(p, domain.RoleManager, nil); err != nil {
		return uuid.Nil, err
	}
	target := p.Scope(explicit)
	if target == nil {
		return uuid.Nil, invalid("restaurant_id is required")
	}
	if err := auth.Require(p, domain.RoleManager, target); err != nil {
		return uuid.Nil, err
	}
	return *target, nil
}

// getOrCreateOpenOrder returns the table's open order, inserting one if absent. A lost
// insert race against the partial unique index falls back to the winner's row.
func getOrCreateOpenOrder(ctx context.Context, orders OrderRepository, table *domain.Table) (*domain.Order, bool, error) {
	order, err := orders.FindOpenOrder(ctx, table.ID)
	if err == nil {
		return order, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, err
	}

	order, err = orders.InsertOpenOrder(ctx, table.RestaurantID, table.ID)
	if errors.Is(err, storage.ErrDuplicateKey) {
		log.Debug().Str("table_id", table.ID.String()).Msg("open order created concurrently, reusing")
		order, err = orders.FindOpenOrder(ctx, table.ID)
		return order, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return order, true, nil
}

func errNotFound(what string) error {
	return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
}

func invalidateMenu(ctx context.Context, cache MenuCache, restaurantID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateMenu(ctx, restaurantID); err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID.String()).Msg("menu cache invalidation failed")
	}
}
