package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/application/port/mocks"
	"github.com/bnema/lockbreak/internal/application/usecase"
)

func TestInstallDesktopUseCase_WithAutostart(t *testing.T) {
	ctx := testContext()
	desktop := mocks.NewMockDesktopIntegration(t)

	desktop.On("GetStatus", mock.Anything).Return(&port.DesktopIntegrationStatus{DesktopFileInstalled: true}, nil)
	desktop.On("InstallDesktopFile", mock.Anything).Return("/data/applications/lockbreak.desktop", nil)
	desktop.On("InstallIcon", mock.Anything, []byte("<svg/>")).Return("/data/icons/lockbreak.svg", nil)
	desktop.On("InstallAutostart", mock.Anything, []string{"run"}).Return("/config/autostart/lockbreak.desktop", nil)

	out, err := usecase.NewInstallDesktopUseCase(desktop).Execute(ctx, usecase.InstallDesktopInput{
		IconData:      []byte("<svg/>"),
		Autostart:     true,
		AutostartArgs: []string{"run"},
	})
	require.NoError(t, err)
	assert.True(t, out.WasDesktopExisting)
	assert.False(t, out.WasAutostartExisting)
	assert.Equal(t, "/data/applications/lockbreak.desktop", out.DesktopPath)
	assert.Equal(t, "/data/icons/lockbreak.svg", out.IconPath)
	assert.Equal(t, "/config/autostart/lockbreak.desktop", out.AutostartPath)
}

func TestInstallDesktopUseCase_WithoutAutostartOrIcon(t *testing.T) {
	ctx := testContext()
	desktop := mocks.NewMockDesktopIntegration(t)

	desktop.On("GetStatus", mock.Anything).Return(&port.DesktopIntegrationStatus{}, nil)
	desktop.On("InstallDesktopFile", mock.Anything).Return("/data/applications/lockbreak.desktop", nil)

	out, err := usecase.NewInstallDesktopUseCase(desktop).Execute(ctx, usecase.InstallDesktopInput{})
	require.NoError(t, err)
	assert.Empty(t, out.IconPath)
	assert.Empty(t, out.AutostartPath)
	desktop.AssertNotCalled(t, "InstallAutostart", mock.Anything, mock.Anything)
}

func TestRemoveDesktopUseCase(t *testing.T) {
	ctx := testContext()
	desktop := mocks.NewMockDesktopIntegration(t)

	desktop.On("GetStatus", mock.Anything).Return(&port.DesktopIntegrationStatus{
		DesktopFileInstalled: true,
		AutostartInstalled:   true,
	}, nil)
	desktop.On("RemoveAutostart", mock.Anything).Return(nil)
	desktop.On("RemoveDesktopFile", mock.Anything).Return(nil)
	desktop.On("RemoveIcon", mock.Anything).Return(nil)

	out, err := usecase.NewRemoveDesktopUseCase(desktop).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, out.WasDesktopInstalled)
	assert.True(t, out.WasAutostartInstalled)
	assert.False(t, out.WasIconInstalled)
}

func TestRemoveDesktopUseCase_StopsOnError(t *testing.T) {
	ctx := testContext()
	desktop := mocks.NewMockDesktopIntegration(t)
	boom := errors.New("permission denied")

	desktop.On("GetStatus", mock.Anything).Return(&port.DesktopIntegrationStatus{}, nil)
	desktop.On("RemoveAutostart", mock.Anything).Return(boom)

	_, err := usecase.NewRemoveDesktopUseCase(desktop).Execute(ctx)
	require.ErrorIs(t, err, boom)
}
