package mocks

import (
	"context"
	"time"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// EventPublisher is a testify mock for service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	ret := _m.Called(ctx, event)

	if rf, ok := ret.Get(0).(func(context.Context, domain.Event) error); ok {
		return rf(ctx, event)
	}

	return ret.Error(0)
}

// NewEventPublisher creates an EventPublisher mock and asserts its expectations on cleanup.
func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// QRGenerator is a testify mock for service.QRGenerator.
type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(content string) ([]byte, error) {
	ret := _m.Called(content)

	if rf, ok := ret.Get(0).(func(string) ([]byte, error)); ok {
		return rf(content)
	}

	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}

	return r0, ret.Error(1)
}

// NewQRGenerator creates a QRGenerator mock and asserts its expectations on cleanup.
func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// TokenIssuer is a testify mock for service.TokenIssuer.
type TokenIssuer struct {
	mock.Mock
}

func (_m *TokenIssuer) Generate(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)

	if rf, ok := ret.Get(0).(func(uuid.UUID) (string, error)); ok {
		return rf(userID)
	}

	var r0 string
	if v := ret.Get(0); v != nil {
		r0 = v.(string)
	}

	return r0, ret.Error(1)
}

func (_m *TokenIssuer) TTL() time.Duration {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() time.Duration); ok {
		return rf()
	}

	var r0 time.Duration
	if v := ret.Get(0); v != nil {
		r0 = v.(time.Duration)
	}

	return r0
}

// NewTokenIssuer creates a TokenIssuer mock and asserts its expectations on cleanup.
func NewTokenIssuer(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenIssuer {
	m := &TokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
