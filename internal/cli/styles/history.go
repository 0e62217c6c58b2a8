package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lockbreak/internal/domain/entity"
)

const historyTimeLayout = "2006-01-02 15:04"

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	// Static output: no row is highlighted.
	s.Selected = s.Cell.Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// LockHistoryColumns returns columns for the lock history table.
func LockHistoryColumns() []table.Column {
	return []table.Column{
		{Title: "Started", Width: 17},
		{Title: "Mode", Width: 8},
		{Title: "Duration", Width: 10},
		{Title: "Ended", Width: 10},
		{Title: "Error", Width: 30},
	}
}

// LockEventRow converts a recorded lock to a table row.
func LockEventRow(e *entity.LockEvent) table.Row {
	ended := string(e.Reason)
	duration := entity.FormatCountdown(e.Duration())
	if e.EndedAt == nil {
		ended = "active"
		duration = "-"
	}
	return table.Row{
		e.StartedAt.Local().Format(historyTimeLayout),
		string(e.Mode),
		duration,
		ended,
		e.Error,
	}
}

// HistoryRenderer renders the history command output.
type HistoryRenderer struct {
	theme *Theme
}

func NewHistoryRenderer(theme *Theme) *HistoryRenderer {
	return &HistoryRenderer{theme: theme}
}

// Render draws a table of events followed by stats. stats may be nil.
func (r *HistoryRenderer) Render(events []*entity.LockEvent, stats *entity.LockStats) string {
	if len(events) == 0 {
		return r.theme.Subtle.Render("  No breaks recorded yet.")
	}

	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, LockEventRow(e))
	}
	columns := LockHistoryColumns()
	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}
	t := NewStyledTable(r.theme, columns, rows, width, len(rows)+1)

	title := fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconClock), r.theme.Title.Render("Break history"))
	parts := []string{title, "", t.View()}
	if stats != nil {
		parts = append(parts, "", r.RenderStats(*stats))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderStats renders the summary badges.
func (r *HistoryRenderer) RenderStats(s entity.LockStats) string {
	badges := []string{
		r.theme.Badge.Render(fmt.Sprintf("%d breaks", s.Total)),
		r.theme.BadgeMuted.Render(fmt.Sprintf("%d expired", s.Expired)),
		r.theme.BadgeMuted.Render(fmt.Sprintf("%d unlocked", s.Unlocked)),
		r.theme.BadgeMuted.Render(fmt.Sprintf("%d stopped", s.Stopped)),
	}
	if s.Failed > 0 {
		badges = append(badges, r.theme.BadgeMuted.Render(r.theme.ErrorStyle.Render(fmt.Sprintf("%d failed", s.Failed))))
	}
	total := r.theme.Subtle.Render("total locked " + s.TotalTime.Round(time.Second).String())
	return strings.Join(badges, " ") + "  " + total
}
