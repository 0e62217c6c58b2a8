package colorscheme

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const (
	detectorNameGsettings = "gsettings"
	priorityGsettings     = 10
	gsettingsTimeout      = 2 * time.Second
)

// GsettingsDetector asks GNOME's org.gnome.desktop.interface color-scheme.
type GsettingsDetector struct {
	LookPath func(string) (string, error)
	Output   func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewGsettingsDetector creates a detector that runs the gsettings binary.
func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{
		LookPath: exec.LookPath,
		Output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Name implements port.ColorSchemeDetector.
func (*GsettingsDetector) Name() string {
	return detectorNameGsettings
}

// Priority implements port.ColorSchemeDetector.
func (*GsettingsDetector) Priority() int {
	return priorityGsettings
}

// Available implements port.ColorSchemeDetector.
func (d *GsettingsDetector) Available() bool {
	_, err := d.LookPath("gsettings")
	return err == nil
}

// Detect implements port.ColorSchemeDetector. "default" is not an answer.
func (d *GsettingsDetector) Detect() (prefersDark, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), gsettingsTimeout)
	defer cancel()

	output, err := d.Output(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return false, false
	}

	// Output looks like "'prefer-dark'\n".
	switch strings.Trim(strings.TrimSpace(string(output)), "'\"") {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		return false, false
	}
}
