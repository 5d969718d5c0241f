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

type CreateStaffInput struct {
	Email       string      `json:"email" validate:"required,email,max=254"`
	Password    string      `json:"password" validate:"required,min=8,max=72"`
	DisplayName string      `json:"display_name" validate:"max=100"`
	Role        domain.Role `json:"role" validate:"omitempty,oneof=manager admin"`
}

type UpdateStaffInput struct {
	Role         *domain.Role `json:"role" validate:"omitempty,oneof=manager admin"`
	RestaurantID *uuid.UUID   `json:"restaurant_id"`
	DisplayName  *string      `json:"display_name" validate:"omitempty,max=100"`
}

type StaffServiceInterface interface {
	List(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.Profile, error)
	Create(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in CreateStaffInput) (*domain.Profile, error)
	Update(ctx context.Context, p auth.Principal, restaurantID, userID uuid.UUID, in UpdateStaffInput) (*domain.Profile, error)
	Delete(ctx context.Context, p auth.Principal, restaurantID, userID uuid.UUID) error
	EnsureAdmin(ctx context.Context, email, password string) error
}

type StaffService struct {
	tx          TxRunner
	profiles    ProfileRepository
	restaurants RestaurantRepository
}

func NewStaffService(tx TxRunner, profiles ProfileRepository, restaurants RestaurantRepository) *StaffService {
	return &StaffService{tx: tx, profiles: profiles, restaurants: restaurants}
}

func (s *StaffService) List(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.Profile, error) {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return nil, err
	}
	return s.profiles.ListProfiles(ctx, &restaurantID)
}

// Create writes the login identity and then the profile. The identity is removed again
// when the profile insert fails so no orphan credential is left behind.
func (s *StaffService) Create(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in CreateStaffInput) (*domain.Profile, error) {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.Role == "" {
		in.Role = domain.RoleManager
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Role == domain.RoleAdmin && !p.IsAdmin() {
		return nil, auth.ErrForbidden
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Email:        in.Email,
		Role:         in.Role,
		RestaurantID: &restaurantID,
		DisplayName:  in.DisplayName,
	}
	if in.Role == domain.RoleAdmin {
		profile.RestaurantID = nil
	}
	if err := s.createAccount(ctx, profile, in.Password); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *StaffService) createAccount(ctx context.Context, profile *domain.Profile, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	id, err := s.profiles.CreateIdentity(ctx, profile.Email, hash)
	if err != nil {
		return err
	}
	profile.ID = id

	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		if cerr := s.profiles.DeleteIdentity(ctx, id); cerr != nil {
			log.Error().Err(cerr).Str("user_id", id.String()).Msg("failed to remove identity after profile insert failed")
		}
		return err
	}
	log.Info().Str("user_id", id.String()).Str("role", string(profile.Role)).Msg("staff account created")
	return nil
}

// target loads a profile the caller is allowed to manage. Managers only manage managers
// of their own restaurant.
func (s *StaffService) target(ctx context.Context, p auth.Principal, restaurantID, userID uuid.UUID) (*domain.Profile, error) {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return profile, nil
	}
	if profile.RestaurantID == nil || *profile.RestaurantID != restaurantID {
		return nil, errNotFound("user")
	}
	if profile.Role != domain.RoleManager {
		return nil, auth.ErrForbidden
	}
	return profile, nil
}

func (s *StaffService) Update(ctx context.Context, p auth.Principal, restaurantID, userID uuid.UUID, in UpdateStaffInput) (*domain.Profile, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	profile, err := s.target(ctx, p, restaurantID, userID)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if *in.Role == domain.RoleAdmin && !p.IsAdmin() {
			return nil, auth.ErrForbidden
		}
		profile.Role = *in.Role
	}
	if in.RestaurantID != nil {
		if !p.IsAdmin() && *in.RestaurantID != restaurantID {
			return nil, auth.ErrForbidden
		}
		if _, err := s.restaurants.GetRestaurant(ctx, *in.RestaurantID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, invalid("restaurant_id does not exist")
			}
			return nil, err
		}
		rid := *in.RestaurantID
		profile.RestaurantID = &rid
	}
	if in.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*in.DisplayName)
	}

	switch profile.Role {
	case domain.RoleAdmin:
		profile.RestaurantID = nil
	case domain.RoleManager:
		if profile.RestaurantID == nil {
			rid := restaurantID
			profile.RestaurantID = &rid
		}
	}

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *StaffService) Delete(ctx context.Context, p auth.Principal, restaurantID, userID uuid.UUID) error {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return err
	}
	if p.UserID != nil && *p.UserID == userID {
		return invalid("cannot delete your own account")
	}
	if _, err := s.target(ctx, p, restaurantID, userID); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		n, err := s.profiles.DeleteProfile(ctx, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return errNotFound("user")
		}
		return s.profiles.DeleteIdentity(ctx, userID)
	})
}

// EnsureAdmin creates the bootstrap admin account unless the email is already registered.
func (s *StaffService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	_, err := s.profiles.GetIdentityByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return s.createAccount(ctx, &domain.Profile{Email: email, Role: domain.RoleAdmin, DisplayName: "Administrator"}, password)
}

var _ StaffServiceInterface = (*StaffService)(nil)
