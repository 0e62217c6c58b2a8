// Package desktop provides desktop environment integration for Linux (XDG).
package desktop

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
)

const (
	appName         = "lockbreak"
	desktopFileName = "lockbreak.desktop"
	iconFileName    = "lockbreak.svg"
	filePerm        = 0o644
	dirPerm         = 0o755
)

// desktopFileTemplate is the freedesktop.org desktop entry format.
// The placeholders are the Exec line and the extra keys.
const desktopFileTemplate = `[Desktop Entry]
Version=1.1
Type=Application
Name=Lockbreak
GenericName=Break Timer
Comment=Lock the screen at a fixed interval to force breaks
Exec=%s
Icon=lockbreak
Terminal=false
Categories=Utility;
StartupNotify=false
StartupWMClass=io.github.bnema.lockbreak
%s`

// Adapter implements port.DesktopIntegration with plain files under the XDG
// data and config homes.
type Adapter struct {
	// DataHome and ConfigHome are the XDG base directories, without the
	// lockbreak suffix.
	DataHome   string
	ConfigHome string
	// Executable returns the path written to Exec lines.
	Executable func() (string, error)

	updateDesktopDB string
}

// New creates an adapter for the current user.
func New() (*Adapter, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}

	a := &Adapter{
		DataHome:   xdgBase("XDG_DATA_HOME", home, ".local", "share"),
		ConfigHome: xdgBase("XDG_CONFIG_HOME", home, ".config"),
		Executable: executablePath,
	}
	// update-desktop-database is optional; it helps some menus notice the entry.
	if path, err := exec.LookPath("update-desktop-database"); err == nil {
		a.updateDesktopDB = path
	}
	return a, nil
}

func xdgBase(env, home string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// executablePath returns the running binary, or lockbreak from PATH.
func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err == nil {
		if resolved, symlinkErr := filepath.EvalSymlinks(execPath); symlinkErr == nil {
			execPath = resolved
		}
		return execPath, nil
	}

	path, err := exec.LookPath(appName)
	if err != nil {
		return "", fmt.Errorf("cannot find %s executable: %w", appName, err)
	}
	return path, nil
}

func (a *Adapter) desktopFilePath() string {
	return filepath.Join(a.DataHome, "applications", desktopFileName)
}

func (a *Adapter) autostartFilePath() string {
	return filepath.Join(a.ConfigHome, "autostart", desktopFileName)
}

func (a *Adapter) iconFilePath() string {
	return filepath.Join(a.DataHome, "icons", "hicolor", "scalable", "apps", iconFileName)
}

// GetStatus checks the current desktop integration state.
func (a *Adapter) GetStatus(ctx context.Context) (*port.DesktopIntegrationStatus, error) {
	status := &port.DesktopIntegrationStatus{
		DesktopFilePath:   a.desktopFilePath(),
		AutostartFilePath: a.autostartFilePath(),
		IconFilePath:      a.iconFilePath(),
	}
	status.DesktopFileInstalled = fileExists(status.DesktopFilePath)
	status.AutostartInstalled = fileExists(status.AutostartFilePath)
	status.IconInstalled = fileExists(status.IconFilePath)

	if execPath, err := a.Executable(); err == nil {
		status.ExecutablePath = execPath
	}

	logging.FromContext(ctx).Debug().
		Bool("desktop_installed", status.DesktopFileInstalled).
		Bool("autostart_installed", status.AutostartInstalled).
		Bool("icon_installed", status.IconInstalled).
		Str("exec_path", status.ExecutablePath).
		Msg("desktop integration status")

	return status, nil
}

// InstallDesktopFile writes the launcher entry.
func (a *Adapter) InstallDesktopFile(ctx context.Context) (string, error) {
	path := a.desktopFilePath()
	if err := a.writeEntry(path, nil, ""); err != nil {
		return "", err
	}
	logging.FromContext(ctx).Info().Str("path", path).Msg("desktop file installed")

	if a.updateDesktopDB != "" {
		if err := exec.CommandContext(ctx, a.updateDesktopDB, filepath.Dir(path)).Run(); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("update-desktop-database failed (non-fatal)")
		}
	}
	return path, nil
}

// InstallAutostart writes the login autostart entry.
func (a *Adapter) InstallAutostart(ctx context.Context, args []string) (string, error) {
	path := a.autostartFilePath()
	if err := a.writeEntry(path, args, "X-GNOME-Autostart-enabled=true\n"); err != nil {
		return "", err
	}
	logging.FromContext(ctx).Info().Str("path", path).Strs("args", args).Msg("autostart entry installed")
	return path, nil
}

func (a *Adapter) writeEntry(path string, args []string, extra string) error {
	execPath, err := a.Executable()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	content := fmt.Sprintf(desktopFileTemplate, execLine(execPath, args), extra)
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

// execLine quotes arguments per the desktop entry spec.
func execLine(execPath string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, arg := range append([]string{execPath}, args...) {
		if strings.ContainsAny(arg, " \t\"'\\$`") {
			r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
			arg = `"` + r.Replace(arg) + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// InstallIcon writes the icon file to the hicolor theme.
func (a *Adapter) InstallIcon(ctx context.Context, svgData []byte) (string, error) {
	path := a.iconFilePath()
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("create icons dir: %w", err)
	}
	if err := os.WriteFile(path, svgData, filePerm); err != nil {
		return "", fmt.Errorf("write icon file: %w", err)
	}
	logging.FromContext(ctx).Info().Str("path", path).Msg("icon file installed")
	return path, nil
}

// RemoveDesktopFile removes the launcher entry.
func (a *Adapter) RemoveDesktopFile(ctx context.Context) error {
	return removeFile(ctx, a.desktopFilePath(), "desktop file")
}

// RemoveAutostart removes the login autostart entry.
func (a *Adapter) RemoveAutostart(ctx context.Context) error {
	return removeFile(ctx, a.autostartFilePath(), "autostart entry")
}

// RemoveIcon removes the icon file.
func (a *Adapter) RemoveIcon(ctx context.Context) error {
	return removeFile(ctx, a.iconFilePath(), "icon file")
}

func removeFile(ctx context.Context, path, what string) error {
	log := logging.FromContext(ctx)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msgf("%s not found (already removed)", what)
			return nil
		}
		return fmt.Errorf("remove %s: %w", what, err)
	}
	log.Info().Str("path", path).Msgf("%s removed", what)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var _ port.DesktopIntegration = (*Adapter)(nil)
