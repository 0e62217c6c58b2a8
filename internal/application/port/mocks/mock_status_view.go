package mocks

import (
	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockStatusView is a testify mock of port.StatusView.
type MockStatusView struct {
	mock.Mock
}

func NewMockStatusView(t testingT) *MockStatusView {
	m := &MockStatusView{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStatusView) ShowStatus(event entity.StatusEvent) {
	m.Called(event)
}

func (m *MockStatusView) SetRunning(running bool) {
	m.Called(running)
}

func (m *MockStatusView) ShowError(title, message string) {
	m.Called(title, message)
}

var _ port.StatusView = (*MockStatusView)(nil)
