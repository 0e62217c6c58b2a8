package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/application/port/mocks"
	"github.com/bnema/lockbreak/internal/application/usecase"
)

func TestMigrateConfigUseCase_Check_NoMigrationNeeded(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.On("CheckMigration").Return(nil, nil).Once()

	result, err := usecase.NewMigrateConfigUseCase(mockMigrator).Check(testContext())

	require.NoError(t, err)
	assert.False(t, result.NeedsMigration)
	assert.Empty(t, result.MissingKeys)
}

func TestMigrateConfigUseCase_Check_MigrationNeeded(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.On("CheckMigration").Return(&port.MigrationResult{
		MissingKeys: []string{"ui.color_scheme", "system.resume_on_unlock"},
		ConfigFile:  "/path/to/config.toml",
	}, nil).Once()
	mockMigrator.On("GetKeyInfo", "ui.color_scheme").Return(port.KeyInfo{
		Key: "ui.color_scheme", Type: "string", DefaultValue: `"default"`,
	}).Once()
	mockMigrator.On("GetKeyInfo", "system.resume_on_unlock").Return(port.KeyInfo{
		Key: "system.resume_on_unlock", Type: "bool", DefaultValue: "true",
	}).Once()

	result, err := usecase.NewMigrateConfigUseCase(mockMigrator).Check(testContext())

	require.NoError(t, err)
	assert.True(t, result.NeedsMigration)
	require.Len(t, result.MissingKeys, 2)
	assert.Equal(t, "bool", result.MissingKeys[1].Type)
	assert.Equal(t, "/path/to/config.toml", result.ConfigFile)
}

func TestMigrateConfigUseCase_Check_Error(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.On("CheckMigration").Return(nil, errors.New("parse error")).Once()

	_, err := usecase.NewMigrateConfigUseCase(mockMigrator).Check(testContext())
	assert.EqualError(t, err, "parse error")
}

func TestMigrateConfigUseCase_Execute_NoMigrationNeeded(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.On("CheckMigration").Return(nil, nil).Once()

	result, err := usecase.NewMigrateConfigUseCase(mockMigrator).Execute(testContext())

	require.NoError(t, err)
	assert.Empty(t, result.AddedKeys)
}

func TestMigrateConfigUseCase_Execute_Success(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.On("CheckMigration").Return(&port.MigrationResult{
		MissingKeys: []string{"ui.color_scheme"},
		ConfigFile:  "/path/to/config.toml",
	}, nil).Once()
	mockMigrator.On("Migrate").Return([]string{"ui.color_scheme"}, nil).Once()

	result, err := usecase.NewMigrateConfigUseCase(mockMigrator).Execute(testContext())

	require.NoError(t, err)
	assert.Equal(t, []string{"ui.color_scheme"}, result.AddedKeys)
	assert.Equal(t, "/path/to/config.toml", result.ConfigFile)
}

func TestMigrateConfigUseCase_Execute_MigrateError(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.On("CheckMigration").Return(&port.MigrationResult{
		MissingKeys: []string{"ui.color_scheme"},
	}, nil).Once()
	mockMigrator.On("Migrate").Return(nil, errors.New("read-only file system")).Once()

	_, err := usecase.NewMigrateConfigUseCase(mockMigrator).Execute(testContext())
	assert.EqualError(t, err, "read-only file system")
}
