package mocks

import (
	"context"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MenuCache is a testify mock for service.MenuCache.
type MenuCache struct {
	mock.Mock
}

func (_m *MenuCache) GetMenu(ctx context.Context, restaurantID uuid.UUID) (*domain.MenuCatalog, error) {
	ret := _m.Called(ctx, restaurantID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.MenuCatalog, error)); ok {
		return rf(ctx, restaurantID)
	}

	var r0 *domain.MenuCatalog
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuCatalog)
	}

	return r0, ret.Error(1)
}

func (_m *MenuCache) SetMenu(ctx context.Context, catalog *domain.MenuCatalog) error {
	ret := _m.Called(ctx, catalog)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.MenuCatalog) error); ok {
		return rf(ctx, catalog)
	}

	return ret.Error(0)
}

func (_m *MenuCache) InvalidateMenu(ctx context.Context, restaurantID uuid.UUID) error {
	ret := _m.Called(ctx, restaurantID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		return rf(ctx, restaurantID)
	}

	return ret.Error(0)
}

// NewMenuCache creates a MenuCache mock and asserts its expectations on cleanup.
func NewMenuCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// StatsReader is a testify mock for service.StatsReader.
type StatsReader struct {
	mock.Mock
}

func (_m *StatsReader) DailyStats(ctx context.Context, restaurantID uuid.UUID, date string) (*domain.DailyStats, error) {
	ret := _m.Called(ctx, restaurantID, date)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) (*domain.DailyStats, error)); ok {
		return rf(ctx, restaurantID, date)
	}

	var r0 *domain.DailyStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.DailyStats)
	}

	return r0, ret.Error(1)
}

// NewStatsReader creates a StatsReader mock and asserts its expectations on cleanup.
func NewStatsReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatsReader {
	m := &StatsReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
