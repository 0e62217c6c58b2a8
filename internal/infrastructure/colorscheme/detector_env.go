package colorscheme

import (
	"os"
	"strings"
)

const (
	detectorNameEnv = "GTK_THEME"
	priorityEnv     = 20
)

// EnvDetector reads the GTK_THEME environment variable, e.g. "Adwaita:dark".
type EnvDetector struct {
	Getenv func(string) string
}

// NewEnvDetector creates a detector backed by os.Getenv.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{Getenv: os.Getenv}
}

// Name implements port.ColorSchemeDetector.
func (*EnvDetector) Name() string {
	return detectorNameEnv
}

// Priority implements port.ColorSchemeDetector.
func (*EnvDetector) Priority() int {
	return priorityEnv
}

// Available implements port.ColorSchemeDetector.
func (d *EnvDetector) Available() bool {
	return d.Getenv("GTK_THEME") != ""
}

// Detect implements port.ColorSchemeDetector. Any theme name containing
// "dark" counts as dark.
func (d *EnvDetector) Detect() (prefersDark, ok bool) {
	gtkTheme := d.Getenv("GTK_THEME")
	if gtkTheme == "" {
		return false, false
	}
	return strings.Contains(strings.ToLower(gtkTheme), "dark"), true
}
