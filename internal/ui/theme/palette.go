// Package theme provides GTK CSS styling for the settings window and the lock overlay.
package theme

import (
	"fmt"
	"regexp"
	"strings"
)

// Palette holds semantic color tokens for theming.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	Border     string

	// Status label colors.
	Idle    string // blue
	Running string // green
	Locking string // orange
	Stopped string // red

	// Overlay colors.
	OverlayBackground string
	OverlayText       string
}

// DefaultDarkPalette returns the default dark theme palette.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:        "#0a0a0b",
		Surface:           "#1a1a1b",
		Text:              "#ffffff",
		Muted:             "#909090",
		Accent:            "#4ade80",
		Border:            "#333333",
		Idle:              "#60a5fa",
		Running:           "#4ade80",
		Locking:           "#fb923c",
		Stopped:           "#ef4444",
		OverlayBackground: "#000000",
		OverlayText:       "#ffffff",
	}
}

// DefaultLightPalette returns the default light theme palette.
func DefaultLightPalette() Palette {
	return Palette{
		Background:        "#fafafa",
		Surface:           "#ffffff",
		Text:              "#1a1a1a",
		Muted:             "#666666",
		Accent:            "#22c55e",
		Border:            "#dddddd",
		Idle:              "#2563eb",
		Running:           "#16a34a",
		Locking:           "#ea580c",
		Stopped:           "#dc2626",
		OverlayBackground: "#000000",
		OverlayText:       "#ffffff",
	}
}

// hexColorRegex matches valid hex colors (#RGB, #RRGGBB, #RRGGBBAA).
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// ValidateHexColor checks if a string is a valid hex color.
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("invalid hex color: %q", color)
	}
	return nil
}

// Validate checks all palette colors are valid hex values.
func (p Palette) Validate() error {
	for _, c := range p.named() {
		if err := ValidateHexColor(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

type namedColor struct {
	name  string
	value string
}

func (p Palette) named() []namedColor {
	return []namedColor{
		{"bg", p.Background},
		{"surface", p.Surface},
		{"text", p.Text},
		{"muted", p.Muted},
		{"accent", p.Accent},
		{"border", p.Border},
		{"status-idle", p.Idle},
		{"status-running", p.Running},
		{"status-locking", p.Locking},
		{"status-stopped", p.Stopped},
		{"overlay-bg", p.OverlayBackground},
		{"overlay-text", p.OverlayText},
	}
}

// ToCSSVars generates GTK named color definitions (@define-color).
func (p Palette) ToCSSVars() string {
	var sb strings.Builder
	for _, c := range p.named() {
		sb.WriteString("@define-color " + strings.ReplaceAll(c.name, "-", "_") + " " + c.value + ";\n")
	}
	return sb.String()
}
