package service_test

import (
	"context"
	"testing"

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

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Seoul Kitchen", "seoul-kitchen"},
		{"  Bob's  Burgers!! ", "bob-s-burgers"},
		{"카페 모카", "카페-모카"},
		{"---", ""},
	}
	for _, testCase := range tests {
		t.Run(testCase.in, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.Slugify(testCase.in))
		})
	}
}

func TestRestaurantService_Create(t *testing.T) {
	tests := []struct {
		name      string
		principal auth.Principal
		input     service.CreateRestaurantInput
		wantSlug  string
		mockError error
		wantErr   error
	}{
		{
			name:      "derives slug from name",
			principal: admin(),
			input:     service.CreateRestaurantInput{Name: "Seoul Kitchen"},
			wantSlug:  "seoul-kitchen",
		},
		{
			name:      "explicit slug",
			principal: admin(),
			input:     service.CreateRestaurantInput{Name: "Seoul Kitchen", Slug: "SK Gangnam"},
			wantSlug:  "sk-gangnam",
		},
		{
			name:      "duplicate slug",
			principal: admin(),
			input:     service.CreateRestaurantInput{Name: "Seoul Kitchen"},
			wantSlug:  "seoul-kitchen",
			mockError: storage.ErrDuplicateKey,
			wantErr:   storage.ErrDuplicateKey,
		},
		{
			name:      "manager cannot create",
			principal: managerOf(uuid.New()),
			input:     service.CreateRestaurantInput{Name: "Seoul Kitchen"},
			wantErr:   auth.ErrForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewRestaurantRepository(t)
			svc := service.NewRestaurantService(repo, nil, nil)

			if testCase.wantSlug != "" {
				repo.On("CreateRestaurant", mock.Anything, mock.MatchedBy(func(r *domain.Restaurant) bool {
					return r.Slug == testCase.wantSlug && r.WaitlistToken != ""
				})).Return(testCase.mockError).Once()
			}

			result, err := svc.Create(context.Background(), testCase.principal, testCase.input)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.wantSlug, result.Slug)
			}
		})
	}
}

func TestRestaurantService_Delete(t *testing.T) {
	restID := uuid.New()

	t.Run("cascade and invalidate", func(t *testing.T) {
		repo := mocks.NewRestaurantRepository(t)
		cache := mocks.NewMenuCache(t)
		svc := service.NewRestaurantService(repo, cache, nil)
		repo.On("DeleteRestaurantCascade", mock.Anything, restID).Return(int64(1), nil).Once()
		cache.On("InvalidateMenu", mock.Anything, restID).Return(nil).Once()

		require.NoError(t, svc.Delete(context.Background(), admin(), restID))
	})

	t.Run("missing", func(t *testing.T) {
		repo := mocks.NewRestaurantRepository(t)
		svc := service.NewRestaurantService(repo, nil, nil)
		repo.On("DeleteRestaurantCascade", mock.Anything, restID).Return(int64(0), nil).Once()

		assert.ErrorIs(t, svc.Delete(context.Background(), admin(), restID), storage.ErrNotFound)
	})

	t.Run("manager", func(t *testing.T) {
		svc := service.NewRestaurantService(mocks.NewRestaurantRepository(t), nil, nil)
		assert.ErrorIs(t, svc.Delete(context.Background(), managerOf(restID), restID), auth.ErrForbidden)
	})
}

func TestRestaurantService_GetOwnOnly(t *testing.T) {
	restID := uuid.New()
	repo := mocks.NewRestaurantRepository(t)
	svc := service.NewRestaurantService(repo, nil, nil)
	repo.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()

	_, err := svc.Get(context.Background(), managerOf(restID), restID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), managerOf(uuid.New()), restID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestRestaurantService_DailyStats(t *testing.T) {
	restID := uuid.New()
	stats := mocks.NewStatsReader(t)
	svc := service.NewRestaurantService(mocks.NewRestaurantRepository(t), nil, stats)

	stats.On("DailyStats", mock.Anything, restID, "2026-10-18").Return(&domain.DailyStats{
		RestaurantID: restID, Date: "2026-10-18", Counters: map[string]int64{domain.EventOrderOpened: 4},
	}, nil).Once()

	result, err := svc.DailyStats(context.Background(), managerOf(restID), nil, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Counters[domain.EventOrderOpened])

	_, err = svc.DailyStats(context.Background(), managerOf(restID), nil, "18/10/2026")
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
}
