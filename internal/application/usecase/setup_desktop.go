package usecase

import (
	"context"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
)

// InstallDesktopInput contains the input for the install operation.
type InstallDesktopInput struct {
	IconData []byte
	// Autostart also installs the login entry, launched with AutostartArgs.
	Autostart     bool
	AutostartArgs []string
}

// InstallDesktopUseCase installs the launcher entry, the icon and optionally
// the autostart entry.
type InstallDesktopUseCase struct {
	desktop port.DesktopIntegration
}

// NewInstallDesktopUseCase creates a new InstallDesktopUseCase.
func NewInstallDesktopUseCase(desktop port.DesktopIntegration) *InstallDesktopUseCase {
	return &InstallDesktopUseCase{desktop: desktop}
}

// InstallDesktopOutput contains the result of the install operation.
type InstallDesktopOutput struct {
	DesktopPath          string
	IconPath             string
	AutostartPath        string
	WasDesktopExisting   bool
	WasIconExisting      bool
	WasAutostartExisting bool
}

// Execute installs the desktop integration files.
func (uc *InstallDesktopUseCase) Execute(ctx context.Context, input InstallDesktopInput) (*InstallDesktopOutput, error) {
	log := logging.FromContext(ctx)

	status, err := uc.desktop.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	output := &InstallDesktopOutput{
		WasDesktopExisting:   status.DesktopFileInstalled,
		WasIconExisting:      status.IconInstalled,
		WasAutostartExisting: status.AutostartInstalled,
	}

	output.DesktopPath, err = uc.desktop.InstallDesktopFile(ctx)
	if err != nil {
		return nil, err
	}

	if len(input.IconData) > 0 {
		output.IconPath, err = uc.desktop.InstallIcon(ctx, input.IconData)
		if err != nil {
			return nil, err
		}
	}

	if input.Autostart {
		output.AutostartPath, err = uc.desktop.InstallAutostart(ctx, input.AutostartArgs)
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("desktop_path", output.DesktopPath).
		Str("icon_path", output.IconPath).
		Str("autostart_path", output.AutostartPath).
		Msg("desktop install complete")

	return output, nil
}

// RemoveDesktopUseCase removes desktop integration files.
type RemoveDesktopUseCase struct {
	desktop port.DesktopIntegration
}

// NewRemoveDesktopUseCase creates a new RemoveDesktopUseCase.
func NewRemoveDesktopUseCase(desktop port.DesktopIntegration) *RemoveDesktopUseCase {
	return &RemoveDesktopUseCase{desktop: desktop}
}

// RemoveDesktopOutput contains the result of the remove operation.
type RemoveDesktopOutput struct {
	WasDesktopInstalled   bool
	WasIconInstalled      bool
	WasAutostartInstalled bool
}

// Execute removes every desktop integration file.
func (uc *RemoveDesktopUseCase) Execute(ctx context.Context) (*RemoveDesktopOutput, error) {
	status, err := uc.desktop.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	output := &RemoveDesktopOutput{
		WasDesktopInstalled:   status.DesktopFileInstalled,
		WasIconInstalled:      status.IconInstalled,
		WasAutostartInstalled: status.AutostartInstalled,
	}

	for _, remove := range []func(context.Context) error{
		uc.desktop.RemoveAutostart,
		uc.desktop.RemoveDesktopFile,
		uc.desktop.RemoveIcon,
	} {
		if err := remove(ctx); err != nil {
			return nil, err
		}
	}

	logging.FromContext(ctx).Info().
		Bool("was_desktop_installed", output.WasDesktopInstalled).
		Bool("was_autostart_installed", output.WasAutostartInstalled).
		Msg("desktop integration removed")

	return output, nil
}
