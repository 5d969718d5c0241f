package service_test

import (
	"context"
	"testing"
	"time"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/mocks"
	"mfood/pos-svc/internal/service"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	userID := uuid.New()
	restID := uuid.New()
	ident := &domain.Identity{ID: userID, Email: "m@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		tokens := mocks.NewTokenIssuer(t)
		svc := service.NewAuthService(profiles, tokens)

		profiles.On("GetIdentityByEmail", mock.Anything, "m@example.com").Return(ident, nil).Once()
		profiles.On("GetProfile", mock.Anything, userID).
			Return(&domain.Profile{ID: userID, Role: domain.RoleManager, RestaurantID: &restID}, nil).Once()
		tokens.On("Generate", userID).Return("jwt", nil).Once()
		tokens.On("TTL").Return(2 * time.Hour).Once()

		result, err := svc.Login(context.Background(), service.LoginInput{Email: "m@example.com", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, "jwt", result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, int64(7200), result.ExpiresIn)
		assert.Equal(t, domain.RoleManager, result.Role)
		assert.Equal(t, &restID, result.RestaurantID)
	})

	t.Run("wrong password", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		svc := service.NewAuthService(profiles, mocks.NewTokenIssuer(t))
		profiles.On("GetIdentityByEmail", mock.Anything, "m@example.com").Return(ident, nil).Once()

		_, err := svc.Login(context.Background(), service.LoginInput{Email: "m@example.com", Password: "nope"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		svc := service.NewAuthService(profiles, mocks.NewTokenIssuer(t))
		profiles.On("GetIdentityByEmail", mock.Anything, "x@example.com").Return(nil, storage.ErrNotFound).Once()

		_, err := svc.Login(context.Background(), service.LoginInput{Email: "x@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
