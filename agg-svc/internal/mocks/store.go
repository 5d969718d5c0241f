package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// StoreInterface is a testify mock for service.StoreInterface.
type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) IncrementDaily(ctx context.Context, restaurantID uuid.UUID, date string, counters map[string]int64) error {
	ret := _m.Called(ctx, restaurantID, date, counters)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, map[string]int64) error); ok {
		return rf(ctx, restaurantID, date, counters)
	}

	return ret.Error(0)
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
