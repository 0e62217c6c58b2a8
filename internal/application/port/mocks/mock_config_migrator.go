package mocks

import (
	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/stretchr/testify/mock"
)

// MockConfigMigrator is a testify mock of port.ConfigMigrator.
type MockConfigMigrator struct {
	mock.Mock
}

func NewMockConfigMigrator(t testingT) *MockConfigMigrator {
	m := &MockConfigMigrator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConfigMigrator) CheckMigration() (*port.MigrationResult, error) {
	args := m.Called()
	result, _ := args.Get(0).(*port.MigrationResult)
	return result, args.Error(1)
}

func (m *MockConfigMigrator) Migrate() ([]string, error) {
	args := m.Called()
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

func (m *MockConfigMigrator) GetKeyInfo(key string) port.KeyInfo {
	args := m.Called(key)
	return args.Get(0).(port.KeyInfo)
}

var _ port.ConfigMigrator = (*MockConfigMigrator)(nil)
