package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DoctorLevel mirrors the outcome of one diagnostic check.
type DoctorLevel int

const (
	DoctorOK DoctorLevel = iota
	DoctorWarning
	DoctorFailed
)

type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

type DoctorReport struct {
	OverallOK bool
	Checks    []DoctorCheck
}

type DoctorCheck struct {
	Name   string
	Level  DoctorLevel
	Detail string
	Error  string
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	header := r.renderHeader(report.OverallOK)

	lines := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		lines = append(lines, r.renderCheck(c))
	}
	body := r.theme.Box.Render(
		r.theme.BoxHeader.Render(fmt.Sprintf("%s Screen lock", r.theme.Highlight.Render(IconLock))) +
			"\n" + strings.Join(lines, "\n"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func (r *DoctorRenderer) renderHeader(ok bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "OK"
	if !ok {
		statusStyle = r.theme.ErrorStyle
		statusText = "Needs attention"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconDoctor), r.theme.Title.Render("Doctor"))
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
}

func (r *DoctorRenderer) renderCheck(c DoctorCheck) string {
	icon := IconCheck
	statusStyle := r.theme.SuccessStyle
	status := "OK"
	summary := c.Detail

	switch c.Level {
	case DoctorWarning:
		icon = IconWarning
		statusStyle = r.theme.WarningStyle
		status = "Warning"
		summary = joinNonEmpty(c.Detail, c.Error)
	case DoctorFailed:
		icon = IconX
		statusStyle = r.theme.ErrorStyle
		status = "Failed"
		summary = c.Error
	}

	name := r.theme.Normal.Render(c.Name)
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(status))
	line := fmt.Sprintf("%s %s %s", statusStyle.Render(icon), name, badge)
	if summary == "" {
		return line
	}
	return line + "\n  " + r.theme.Subtle.Render(summary)
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " · ")
}
