package theme

import (
	"strings"

	"github.com/bnema/lockbreak/internal/domain/entity"
)

// Style classes shared by the window, the overlay and the dialogs.
const (
	ClassSettingsWindow = "lockbreak-settings"
	ClassHeading        = "lockbreak-heading"
	ClassInfo           = "lockbreak-info"
	ClassStatus         = "lockbreak-status"
	ClassOverlay        = "lockbreak-overlay"
	ClassOverlayTitle   = "lockbreak-overlay-title"
	ClassCountdown      = "lockbreak-countdown"
	ClassOverlayHint    = "lockbreak-overlay-hint"
	ClassUnlockButton   = "lockbreak-unlock"
	ClassDialog         = "lockbreak-dialog"
)

// StatusClasses lists every class entity.Status.CSSClass can return.
var StatusClasses = []string{
	entity.StatusIdle.CSSClass(),
	entity.StatusRunning.CSSClass(),
	entity.StatusLocking.CSSClass(),
	entity.StatusStopped.CSSClass(),
}

// GenerateCSS creates GTK4 CSS for the palette.
func GenerateCSS(p Palette) string {
	var sb strings.Builder

	sb.WriteString(p.ToCSSVars())
	sb.WriteString("\n")

	sb.WriteString(".lockbreak-settings {\n")
	sb.WriteString("  background-color: @bg;\n")
	sb.WriteString("  color: @text;\n")
	sb.WriteString("}\n\n")

	sb.WriteString(".lockbreak-heading {\n")
	sb.WriteString("  font-size: 1.2em;\n")
	sb.WriteString("  font-weight: bold;\n")
	sb.WriteString("}\n\n")

	sb.WriteString(".lockbreak-info {\n")
	sb.WriteString("  color: @muted;\n")
	sb.WriteString("  font-size: 0.9em;\n")
	sb.WriteString("}\n\n")

	sb.WriteString(generateStatusCSS())
	sb.WriteString("\n")
	sb.WriteString(generateOverlayCSS())
	sb.WriteString("\n")

	sb.WriteString(".lockbreak-dialog {\n")
	sb.WriteString("  background-color: @surface;\n")
	sb.WriteString("  border: 1px solid @border;\n")
	sb.WriteString("}\n")

	return sb.String()
}

func generateStatusCSS() string {
	return `.lockbreak-status {
  font-weight: bold;
}
.lockbreak-status.status-idle {
  color: @status_idle;
}
.lockbreak-status.status-running {
  color: @status_running;
}
.lockbreak-status.status-locking {
  color: @status_locking;
}
.lockbreak-status.status-stopped {
  color: @status_stopped;
}
`
}

func generateOverlayCSS() string {
	return `.lockbreak-overlay {
  background-color: @overlay_bg;
  color: @overlay_text;
}
.lockbreak-overlay-title {
  font-size: 36pt;
  font-weight: bold;
}
.lockbreak-countdown {
  font-size: 72pt;
  font-weight: bold;
  font-family: monospace;
}
.lockbreak-overlay-hint {
  font-size: 14pt;
  color: @muted;
}
.lockbreak-unlock {
  font-size: 16pt;
  padding: 8px 24px;
}
`
}
