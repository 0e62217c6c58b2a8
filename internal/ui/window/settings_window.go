// Package window provides the GTK settings window.
package window

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/dialog"
	"github.com/bnema/lockbreak/internal/ui/theme"
)

const (
	defaultWidth  = 380
	defaultHeight = 220
	windowTitle   = "Screen Lock Timer"
	spacing       = 10
	margin        = 20
)

// Options configures the settings window.
type Options struct {
	// DefaultMinutes pre-fills the interval entry.
	DefaultMinutes string
	// Info is the line shown under the status label.
	Info string
	// OnStart receives the entry text when Start is pressed or Enter is hit.
	OnStart func(input string)
	OnStop  func()
}

// SettingsWindow is the interval form. It implements port.StatusView; all its
// methods must run on the GTK thread.
type SettingsWindow struct {
	window   *gtk.ApplicationWindow
	entry    *gtk.Entry
	startBtn *gtk.Button
	stopBtn  *gtk.Button
	status   *gtk.Label
	info     *gtk.Label

	statusClass string
	logger      zerolog.Logger
}

// New creates the settings window. The window is not shown until Present.
func New(ctx context.Context, app *gtk.Application, opts Options) (*SettingsWindow, error) {
	log := logging.FromContext(ctx)

	w := &SettingsWindow{
		logger: log.With().Str("component", "settings-window").Logger(),
	}

	w.window = gtk.NewApplicationWindow(app)
	if w.window == nil {
		return nil, ErrWindowCreationFailed
	}
	w.window.SetTitle(windowTitle)
	w.window.SetDefaultSize(defaultWidth, defaultHeight)
	w.window.SetResizable(false)
	w.window.AddCSSClass(theme.ClassSettingsWindow)

	root := gtk.NewBox(gtk.OrientationVertical, spacing)
	root.SetMarginTop(margin)
	root.SetMarginBottom(margin)
	root.SetMarginStart(margin)
	root.SetMarginEnd(margin)

	heading := gtk.NewLabel("Lock interval (minutes):")
	heading.AddCSSClass(theme.ClassHeading)
	heading.SetXAlign(0)
	root.Append(heading)

	w.entry = gtk.NewEntry()
	if w.entry == nil {
		return nil, ErrWidgetCreationFailed("entry")
	}
	w.entry.SetText(opts.DefaultMinutes)
	w.entry.SetInputPurpose(gtk.InputPurposeNumber)
	w.entry.SetPlaceholderText("30")
	root.Append(w.entry)

	buttons := gtk.NewBox(gtk.OrientationHorizontal, spacing)
	buttons.SetHomogeneous(true)
	w.startBtn = gtk.NewButtonWithLabel("Start")
	w.startBtn.AddCSSClass("suggested-action")
	w.stopBtn = gtk.NewButtonWithLabel("Stop")
	w.stopBtn.AddCSSClass("destructive-action")
	buttons.Append(w.startBtn)
	buttons.Append(w.stopBtn)
	root.Append(buttons)

	w.status = gtk.NewLabel("")
	w.status.AddCSSClass(theme.ClassStatus)
	w.status.SetXAlign(0)
	w.status.SetWrap(true)
	root.Append(w.status)

	w.info = gtk.NewLabel(opts.Info)
	w.info.AddCSSClass(theme.ClassInfo)
	w.info.SetXAlign(0)
	w.info.SetWrap(true)
	root.Append(w.info)

	if opts.OnStart != nil {
		start := func() { opts.OnStart(w.entry.Text()) }
		w.startBtn.ConnectClicked(start)
		w.entry.ConnectActivate(start)
	}
	if opts.OnStop != nil {
		w.stopBtn.ConnectClicked(opts.OnStop)
	}

	w.window.SetChild(root)
	return w, nil
}

// Window returns the underlying GTK window, the parent of modal dialogs.
func (w *SettingsWindow) Window() *gtk.Window {
	return &w.window.Window
}

// Present shows the window.
func (w *SettingsWindow) Present() {
	w.window.Present()
}

// Destroy closes the window without emitting close-request.
func (w *SettingsWindow) Destroy() {
	w.window.Destroy()
}

// ConnectCloseRequest registers the window close handler. Returning true keeps the window open.
func (w *SettingsWindow) ConnectCloseRequest(fn func() bool) {
	w.window.ConnectCloseRequest(fn)
}

// SetInfo replaces the info line.
func (w *SettingsWindow) SetInfo(text string) {
	w.info.SetText(text)
}

// ShowStatus implements port.StatusView.
func (w *SettingsWindow) ShowStatus(event entity.StatusEvent) {
	w.status.SetText(event.Text())

	class := event.Status.CSSClass()
	if class != w.statusClass {
		if w.statusClass != "" {
			w.status.RemoveCSSClass(w.statusClass)
		}
		w.status.AddCSSClass(class)
		w.statusClass = class
	}
	w.logger.Debug().Str("status", string(event.Status)).Msg("status updated")
}

// SetRunning implements port.StatusView.
func (w *SettingsWindow) SetRunning(running bool) {
	w.startBtn.SetSensitive(!running)
	w.stopBtn.SetSensitive(running)
	w.entry.SetSensitive(!running)
}

// ShowError implements port.StatusView.
func (w *SettingsWindow) ShowError(title, message string) {
	dialog.ShowMessage(w.Window(), title, message)
}

// WindowError represents a window-related error.
type WindowError struct {
	Message string
}

func (e WindowError) Error() string {
	return e.Message
}

// Error constants.
var (
	ErrWindowCreationFailed = WindowError{Message: "failed to create application window"}
)

// ErrWidgetCreationFailed creates an error for widget creation failure.
func ErrWidgetCreationFailed(name string) error {
	return WindowError{Message: "failed to create widget: " + name}
}

var _ port.StatusView = (*SettingsWindow)(nil)
