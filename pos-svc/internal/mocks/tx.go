package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TxRunner is a testify mock for service.TxRunner.
type TxRunner struct {
	mock.Mock
}

func (_m *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	ret := _m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// NewTxRunner creates a TxRunner mock and asserts its expectations on cleanup.
func NewTxRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *TxRunner {
	m := &TxRunner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewPassThroughTx returns a TxRunner whose InTx simply invokes fn with the caller's context.
func NewPassThroughTx(t interface {
	mock.TestingT
	Cleanup(func())
}) *TxRunner {
	m := NewTxRunner(t)
	m.On("InTx", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	}).Maybe()
	return m
}
