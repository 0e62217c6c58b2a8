package mocks

import (
	"context"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/stretchr/testify/mock"
)

// MockDesktopIntegration is a testify mock of port.DesktopIntegration.
type MockDesktopIntegration struct {
	mock.Mock
}

func NewMockDesktopIntegration(t testingT) *MockDesktopIntegration {
	m := &MockDesktopIntegration{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDesktopIntegration) GetStatus(ctx context.Context) (*port.DesktopIntegrationStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(*port.DesktopIntegrationStatus)
	return status, args.Error(1)
}

func (m *MockDesktopIntegration) InstallDesktopFile(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDesktopIntegration) InstallAutostart(ctx context.Context, execArgs []string) (string, error) {
	args := m.Called(ctx, execArgs)
	return args.String(0), args.Error(1)
}

func (m *MockDesktopIntegration) InstallIcon(ctx context.Context, svgData []byte) (string, error) {
	args := m.Called(ctx, svgData)
	return args.String(0), args.Error(1)
}

func (m *MockDesktopIntegration) RemoveDesktopFile(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDesktopIntegration) RemoveAutostart(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDesktopIntegration) RemoveIcon(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ port.DesktopIntegration = (*MockDesktopIntegration)(nil)
