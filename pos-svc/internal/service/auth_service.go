package service

import (
	"context"
	"errors"
	"strings"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	UserID       uuid.UUID   `json:"user_id"`
	Role         domain.Role `json:"role"`
	RestaurantID *uuid.UUID  `json:"restaurant_id"`
}

type AuthServiceInterface interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type AuthService struct {
	profiles ProfileRepository
	tokens   TokenIssuer
	resolver *auth.Resolver
}

func NewAuthService(profiles ProfileRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		profiles: profiles,
		tokens:   tokens,
		resolver: auth.NewResolver(profiles, nil),
	}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	ident, err := s.profiles.GetIdentityByEmail(ctx, in.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(in.Password, ident.PasswordHash) {
		log.Info().Str("user_id", ident.ID.String()).Msg("login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	principal, err := s.resolver.ResolveIdentity(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Generate(ident.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
		UserID:       ident.ID,
		Role:         principal.Role,
		RestaurantID: principal.RestaurantID,
	}, nil
}

var _ AuthServiceInterface = (*AuthService)(nil)
