package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lockbreak/internal/cli/styles"
)

// HistoryClearer deletes every recorded lock and returns how many were removed.
type HistoryClearer interface {
	Clear(ctx context.Context) (int64, error)
}

// CleanupModel asks for confirmation, then clears the lock history.
type CleanupModel struct {
	ctx      context.Context
	confirm  styles.ConfirmModel
	spinner  spinner.Model
	cleaned  bool
	cleaning bool
	removed  int64
	err      error

	clearer HistoryClearer
	theme   *styles.Theme
}

// NewCleanupModel creates a new cleanup command model.
func NewCleanupModel(ctx context.Context, theme *styles.Theme, clearer HistoryClearer) CleanupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	confirm := styles.NewConfirm(theme, "Delete the whole break history?")
	confirm.Detail = "This cannot be undone."

	return CleanupModel{
		ctx:     ctx,
		confirm: confirm,
		spinner: s,
		clearer: clearer,
		theme:   theme,
	}
}

// cleanupCompleteMsg is sent when cleanup is done.
type cleanupCompleteMsg struct {
	removed int64
	err     error
}

// Init implements tea.Model.
func (m CleanupModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CleanupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cleanupCompleteMsg:
		m.cleaning = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.cleaned = true
			m.removed = msg.removed
		}
		return m, nil

	case spinner.TickMsg:
		if !m.cleaning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If cleaned, any key exits
		if m.cleaned || m.err != nil {
			return m, tea.Quit
		}

		// If cleaning, ignore input
		if m.cleaning {
			return m, nil
		}
	}

	confirm, cmd := m.confirm.Update(msg)
	m.confirm = confirm

	if m.confirm.Done() {
		if !m.confirm.Result() {
			return m, tea.Quit
		}
		m.cleaning = true
		return m, tea.Batch(m.spinner.Tick, m.performCleanup())
	}

	return m, cmd
}

// performCleanup executes the cleanup operation.
func (m CleanupModel) performCleanup() tea.Cmd {
	ctx := m.ctx
	clearer := m.clearer
	return func() tea.Msg {
		removed, err := clearer.Clear(ctx)
		return cleanupCompleteMsg{removed: removed, err: err}
	}
}

// View implements tea.Model.
func (m CleanupModel) View() string {
	t := m.theme

	if m.cleaning {
		return t.Box.Render(m.spinner.View() + " " + t.Subtle.Render("Clearing history..."))
	}

	if m.err != nil {
		content := lipgloss.JoinVertical(
			lipgloss.Left,
			t.ErrorStyle.Render("Error: "+m.err.Error()),
			"",
			t.Subtle.Render("Press any key to exit"),
		)
		return t.Box.Render(content)
	}

	if m.cleaned {
		content := lipgloss.JoinVertical(
			lipgloss.Left,
			t.SuccessStyle.Render(fmt.Sprintf("Removed %d recorded breaks.", m.removed)),
			"",
			t.Subtle.Render("Press any key to exit"),
		)
		return t.Box.Render(content)
	}

	return m.confirm.View()
}

// Cleaned reports whether the history was cleared.
func (m CleanupModel) Cleaned() bool {
	return m.cleaned
}

// Err returns the clear error, if any.
func (m CleanupModel) Err() error {
	return m.err
}

// Ensure interface compliance.
var _ tea.Model = (*CleanupModel)(nil)
