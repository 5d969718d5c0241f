package auth

import (
	"context"
	"errors"
	"fmt"

	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ProfileSource interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type Resolver struct {
	profiles ProfileSource
	tokens   TokenVerifier
}

func NewResolver(profiles ProfileSource, tokens TokenVerifier) *Resolver {
	return &Resolver{profiles: profiles, tokens: tokens}
}

// Resolve maps a bearer token to a principal. A missing or invalid token yields an
// anonymous guest and an identity without a profile yields an authenticated guest.
// Only store failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, bearer string) (Principal, error) {
	if bearer == "" {
		return Guest(), nil
	}

	userID, err := r.tokens.Verify(bearer)
	if err != nil {
		log.Debug().Err(err).Msg("rejected bearer token")
		return Guest(), nil
	}

	return r.ResolveIdentity(ctx, userID)
}

func (r *Resolver) ResolveIdentity(ctx context.Context, userID uuid.UUID) (Principal, error) {
	profile, err := r.profiles.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return Principal{UserID: &userID, Role: domain.RoleGuest}, nil
	}
	if err != nil {
		return Principal{}, fmt.Errorf("load profile: %w", err)
	}

	role := profile.Role
	if !role.Valid() {
		role = domain.RoleGuest
	}
	return Principal{UserID: &userID, Role: role, RestaurantID: profile.RestaurantID}, nil
}
