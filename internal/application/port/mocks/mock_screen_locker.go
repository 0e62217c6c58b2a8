// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockScreenLocker is a testify mock of port.ScreenLocker.
type MockScreenLocker struct {
	mock.Mock
}

func NewMockScreenLocker(t testingT) *MockScreenLocker {
	m := &MockScreenLocker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockScreenLocker) Lock(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScreenLocker) Name() string {
	args := m.Called()
	return args.String(0)
}

var _ port.ScreenLocker = (*MockScreenLocker)(nil)
