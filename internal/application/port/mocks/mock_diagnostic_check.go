package mocks

import (
	"context"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/stretchr/testify/mock"
)

// MockDiagnosticCheck is a testify mock of port.DiagnosticCheck.
type MockDiagnosticCheck struct {
	mock.Mock
}

func NewMockDiagnosticCheck(t testingT) *MockDiagnosticCheck {
	m := &MockDiagnosticCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDiagnosticCheck) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDiagnosticCheck) Check(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ port.DiagnosticCheck = (*MockDiagnosticCheck)(nil)
