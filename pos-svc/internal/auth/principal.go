package auth

import (
	"context"
	"errors"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// Principal is the resolved caller. UserID is nil for anonymous guests.
type Principal struct {
	UserID       *uuid.UUID  `json:"user_id"`
	Role         domain.Role `json:"role"`
	RestaurantID *uuid.UUID  `json:"restaurant_id"`
}

func Guest() Principal {
	return Principal{Role: domain.RoleGuest}
}

func (p Principal) Authenticated() bool {
	return p.UserID != nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// Scope returns the restaurant a request acts on: the explicit one when given,
// otherwise the caller's own restaurant.
func (p Principal) Scope(explicit *uuid.UUID) *uuid.UUID {
	if explicit != nil {
		return explicit
	}
	return p.RestaurantID
}

// Require allows p when its role ranks at least minRole and, for manager-level
// checks against a target restaurant, p is an admin or that restaurant's manager.
func Require(p Principal, minRole domain.Role, target *uuid.UUID) error {
	if p.Role.Rank() < minRole.Rank() {
		if !p.Authenticated() {
			return ErrUnauthenticated
		}
		return ErrForbidden
	}

	if minRole == domain.RoleManager && target != nil {
		if p.Role == domain.RoleAdmin {
			return nil
		}
		if p.Role != domain.RoleManager || p.RestaurantID == nil || *p.RestaurantID != *target {
			return ErrForbidden
		}
	}
	return nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by the auth middleware, or a guest.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Guest()
}
