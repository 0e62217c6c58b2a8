// Package model contains the Bubble Tea models of the terminal front-end.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/cli/styles"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/controller"
	"github.com/bnema/lockbreak/internal/ui/mainloop"
)

// errOverlayClosed is returned by a terminal overlay handle after Close.
var errOverlayClosed = errors.New("overlay closed")

// DrainMsg asks the model to run the tasks queued by worker goroutines.
type DrainMsg struct{}

// QuitMsg stops the session and exits without asking, e.g. on SIGTERM.
type QuitMsg struct{}

// ConfigMsg carries settings that changed while the form is open.
type ConfigMsg struct {
	Info          string
	ConfirmOnExit bool
}

// TimerOptions configures the terminal timer form.
type TimerOptions struct {
	DefaultMinutes string
	Info           string
	ConfirmOnExit  bool
}

// TimerModel is the terminal front-end: the interval form, the status line and
// the lock overlay. It runs on the Bubble Tea goroutine, which plays the role of
// the UI thread: worker events arrive through the queue and run on DrainMsg.
type TimerModel struct {
	ctx    context.Context
	logger *zerolog.Logger
	theme  *styles.Theme
	keys   styles.TimerKeyMap
	help   help.Model
	input  textinput.Model

	queue      *mainloop.Queue
	controller *controller.Controller

	info          string
	confirmOnExit bool
	confirm       styles.ConfirmModel
	confirming    bool

	status  entity.StatusEvent
	running bool

	errTitle   string
	errMessage string

	overlay *terminalOverlay

	width, height int
	quitting      bool
}

// NewTimerModel creates the form. Bind must be called before the program runs.
func NewTimerModel(ctx context.Context, theme *styles.Theme, opts TimerOptions) *TimerModel {
	ctx = logging.WithComponent(ctx, "tui")
	input := styles.NewIntervalInput(theme, opts.DefaultMinutes)
	input.Focus()

	confirm := styles.NewConfirm(theme, "Exit")
	confirm.Detail = controller.ConfirmExitMessage

	return &TimerModel{
		ctx:           ctx,
		logger:        logging.FromContext(ctx),
		theme:         theme,
		keys:          styles.DefaultTimerKeyMap(),
		help:          styles.NewStyledHelp(theme),
		input:         input,
		info:          opts.Info,
		confirmOnExit: opts.ConfirmOnExit,
		confirm:       confirm,
		status:        entity.StatusEvent{Status: entity.StatusIdle},
	}
}

// Bind attaches the dispatcher queue and the timer factory, and shows the idle state.
func (m *TimerModel) Bind(queue *mainloop.Queue, newTimer controller.TimerFactory) {
	m.queue = queue
	m.controller = controller.New(m.ctx, m, queue, newTimer)
	m.controller.Init()
}

// Init implements tea.Model. The first drain picks up tasks posted before the
// program could receive messages.
func (m *TimerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return DrainMsg{} })
}

// Update implements tea.Model.
func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DrainMsg:
		if m.queue != nil {
			m.queue.Drain()
		}
		return m, nil

	case QuitMsg:
		return m, m.quit()

	case ConfigMsg:
		m.info = msg.Info
		m.confirmOnExit = msg.ConfirmOnExit
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *TimerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The overlay swallows every key except unlock, including ctrl+c.
	if m.overlay != nil {
		if key.Matches(msg, m.keys.Unlock) {
			m.overlay.unlock()
		}
		return nil
	}

	if m.errTitle != "" {
		m.errTitle, m.errMessage = "", ""
		return nil
	}

	if m.confirming {
		m.confirm, _ = m.confirm.Update(msg)
		if !m.confirm.Done() {
			return nil
		}
		m.confirming = false
		if m.confirm.Result() {
			return m.quit()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.confirmOnExit {
			m.confirm.Reset()
			m.confirming = true
			return nil
		}
		return m.quit()
	case key.Matches(msg, m.keys.Start):
		if err := m.controller.Start(m.input.Value()); err != nil {
			m.logger.Debug().Err(err).Msg("start rejected")
		}
		return nil
	case key.Matches(msg, m.keys.Stop):
		m.controller.Stop()
		return nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	if m.running {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *TimerModel) quit() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	m.quitting = true
	if m.controller != nil {
		m.controller.RequestClose(nil)
	}
	// Tasks posted by the stopping worker must not touch a closed overlay.
	if m.queue != nil {
		m.queue.Drain()
		m.queue.Close()
	}
	return tea.Quit
}

// View implements tea.Model.
func (m *TimerModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.overlay != nil:
		content = m.overlayView()
	case m.errTitle != "":
		content = m.errorView()
	case m.confirming:
		content = m.confirm.View()
	default:
		content = m.formView()
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *TimerModel) formView() string {
	t := m.theme
	title := fmt.Sprintf("%s %s", t.Highlight.Render(styles.IconClock), t.Title.Render("lockbreak"))

	startStyle, stopStyle := t.ActiveButton, t.InactiveButton
	if m.running {
		startStyle, stopStyle = t.InactiveButton, t.ActiveButton
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		startStyle.Render("Start"), "  ", stopStyle.Render("Stop"))

	parts := []string{
		title,
		"",
		t.InputBox(m.input.View(), !m.running),
		"",
		buttons,
		"",
		m.theme.StatusStyle(m.status.Status).Render(m.status.Text()),
	}
	if m.info != "" {
		parts = append(parts, "", t.Subtle.Render(m.info))
	}
	parts = append(parts, "", m.help.View(m.keys))
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *TimerModel) errorView() string {
	t := m.theme
	return t.Box.BorderForeground(t.Error).Render(lipgloss.JoinVertical(lipgloss.Left,
		t.ErrorStyle.Bold(true).Render(fmt.Sprintf("%s %s", styles.IconWarning, m.errTitle)),
		"",
		t.Normal.Render(m.errMessage),
		"",
		t.Subtle.Render("press any key"),
	))
}

func (m *TimerModel) overlayView() string {
	t := m.theme
	o := m.overlay
	return lipgloss.JoinVertical(lipgloss.Center,
		t.OverlayTitle.Render(fmt.Sprintf("%s %s", styles.IconLock, o.spec.Title)),
		"",
		t.OverlayCountdown.Render(o.countdown),
		"",
		t.ActiveButton.Render(fmt.Sprintf("%s %s", styles.IconUnlock, o.spec.UnlockLabel)),
		"",
		t.OverlayHint.Render(hintWithKey(o.spec.Hint)),
	)
}

// ShowStatus implements port.StatusView.
func (m *TimerModel) ShowStatus(event entity.StatusEvent) {
	m.status = event
}

// SetRunning implements port.StatusView. The minutes input is read-only while running.
func (m *TimerModel) SetRunning(running bool) {
	m.running = running
	if running {
		m.input.Blur()
		return
	}
	m.input.Focus()
}

// ShowError implements port.StatusView with a box dismissed by any key.
func (m *TimerModel) ShowError(title, message string) {
	m.errTitle = title
	m.errMessage = message
}

// ShowOverlay implements port.OverlayPresenter by taking over the whole terminal.
func (m *TimerModel) ShowOverlay(spec port.OverlaySpec, onUnlock func()) (port.OverlayHandle, error) {
	if m.quitting {
		return nil, port.ErrOverlayUnavailable
	}
	if m.overlay != nil {
		m.overlay.close()
	}
	o := &terminalOverlay{
		model:     m,
		spec:      spec,
		countdown: spec.Countdown,
		onUnlock:  onUnlock,
	}
	m.overlay = o
	m.logger.Debug().Msg("terminal overlay shown")
	return o, nil
}

// Running reports whether a lock session is active.
func (m *TimerModel) Running() bool {
	return m.running
}

// terminalOverlay is the handle of the overlay drawn by TimerModel. Its methods
// run on the Bubble Tea goroutine like the rest of the model.
type terminalOverlay struct {
	model     *TimerModel
	spec      port.OverlaySpec
	countdown string
	onUnlock  func()
	closed    bool
}

func (o *terminalOverlay) SetCountdown(text string) error {
	if o.closed {
		return errOverlayClosed
	}
	o.countdown = text
	return nil
}

func (o *terminalOverlay) Close() error {
	o.close()
	return nil
}

func (o *terminalOverlay) close() {
	if o.closed {
		return
	}
	o.closed = true
	if o.model.overlay == o {
		o.model.overlay = nil
	}
}

func (o *terminalOverlay) unlock() {
	if o.closed || o.onUnlock == nil {
		return
	}
	o.onUnlock()
}

// Wake returns the queue wake function that nudges program to drain. Send runs
// on its own goroutine so a worker never blocks on the program's message channel.
func Wake(program func() *tea.Program) func() {
	return func() {
		p := program()
		if p == nil {
			return
		}
		go p.Send(DrainMsg{})
	}
}

// hintWithKey appends the unlock key to an overlay hint.
func hintWithKey(hint string) string {
	if strings.TrimSpace(hint) == "" {
		return "press u to unlock now"
	}
	return hint + " (press u to unlock now)"
}

var (
	_ tea.Model             = (*TimerModel)(nil)
	_ port.StatusView       = (*TimerModel)(nil)
	_ port.OverlayPresenter = (*TimerModel)(nil)
	_ port.OverlayHandle    = (*terminalOverlay)(nil)
)
