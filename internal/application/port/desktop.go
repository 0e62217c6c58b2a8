package port

import "context"

// DesktopIntegrationStatus represents the current state of desktop integration.
type DesktopIntegrationStatus struct {
	DesktopFileInstalled bool
	DesktopFilePath      string
	AutostartInstalled   bool
	AutostartFilePath    string
	IconInstalled        bool
	IconFilePath         string
	ExecutablePath       string
}

// DesktopIntegration installs the launcher entry, the login autostart entry
// and the icon. Every operation is idempotent.
type DesktopIntegration interface {
	// GetStatus checks the current desktop integration state.
	GetStatus(ctx context.Context) (*DesktopIntegrationStatus, error)

	// InstallDesktopFile writes the launcher entry to the XDG applications
	// directory and returns its path.
	InstallDesktopFile(ctx context.Context) (string, error)

	// InstallAutostart writes an entry to the XDG autostart directory so the
	// settings window opens at login. args are appended to the Exec line.
	InstallAutostart(ctx context.Context, args []string) (string, error)

	// InstallIcon writes the icon to the hicolor theme and returns its path.
	InstallIcon(ctx context.Context, svgData []byte) (string, error)

	// RemoveDesktopFile returns nil if the file doesn't exist.
	RemoveDesktopFile(ctx context.Context) error

	// RemoveAutostart returns nil if the file doesn't exist.
	RemoveAutostart(ctx context.Context) error

	// RemoveIcon returns nil if the file doesn't exist.
	RemoveIcon(ctx context.Context) error
}
