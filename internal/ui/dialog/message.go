// Package dialog provides the modal windows of the GTK front-end.
package dialog

import (
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/lockbreak/internal/ui/theme"
)

const (
	dialogWidth   = 360
	dialogSpacing = 12
	dialogMargin  = 18
)

// responder delivers a dialog result exactly once.
type responder struct {
	once     sync.Once
	onResult func(bool)
}

func newResponder(onResult func(bool)) *responder {
	return &responder{onResult: onResult}
}

func (r *responder) respond(result bool) {
	r.once.Do(func() {
		if r.onResult != nil {
			r.onResult(result)
		}
	})
}

// ShowMessage presents a modal message with an OK button.
func ShowMessage(parent *gtk.Window, title, message string) {
	win, buttons := newDialogWindow(parent, title, message)

	ok := gtk.NewButtonWithLabel("OK")
	ok.AddCSSClass("suggested-action")
	ok.ConnectClicked(win.Destroy)
	buttons.Append(ok)

	win.SetDefaultWidget(ok)
	win.Present()
	ok.GrabFocus()
}

// Confirm presents a modal Yes/No question. onResult runs once on the GTK thread;
// closing the window or pressing Escape answers no.
func Confirm(parent *gtk.Window, title, message string, onResult func(bool)) {
	win, buttons := newDialogWindow(parent, title, message)
	r := newResponder(onResult)

	answer := func(result bool) {
		r.respond(result)
		win.Destroy()
	}

	no := gtk.NewButtonWithLabel("No")
	no.ConnectClicked(func() { answer(false) })
	yes := gtk.NewButtonWithLabel("Yes")
	yes.AddCSSClass("destructive-action")
	yes.ConnectClicked(func() { answer(true) })
	buttons.Append(no)
	buttons.Append(yes)

	win.ConnectCloseRequest(func() bool {
		r.respond(false)
		return false
	})

	win.SetDefaultWidget(no)
	win.Present()
	no.GrabFocus()
}

// newDialogWindow builds the shared layout and returns the button row.
func newDialogWindow(parent *gtk.Window, title, message string) (*gtk.Window, *gtk.Box) {
	win := gtk.NewWindow()
	win.SetTitle(title)
	win.SetModal(true)
	win.SetResizable(false)
	win.SetDefaultSize(dialogWidth, -1)
	win.AddCSSClass(theme.ClassDialog)
	if parent != nil {
		win.SetTransientFor(parent)
	}

	content := gtk.NewBox(gtk.OrientationVertical, dialogSpacing)
	content.SetMarginTop(dialogMargin)
	content.SetMarginBottom(dialogMargin)
	content.SetMarginStart(dialogMargin)
	content.SetMarginEnd(dialogMargin)

	heading := gtk.NewLabel(title)
	heading.AddCSSClass(theme.ClassHeading)
	heading.SetXAlign(0)
	content.Append(heading)

	body := gtk.NewLabel(message)
	body.SetWrap(true)
	body.SetXAlign(0)
	content.Append(body)

	buttons := gtk.NewBox(gtk.OrientationHorizontal, dialogSpacing/2)
	buttons.SetHAlign(gtk.AlignEnd)
	content.Append(buttons)

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, _ uint, _ gdk.ModifierType) bool {
		if keyval == gdk.KEY_Escape {
			win.Close()
			return true
		}
		return false
	})
	win.AddController(keys)

	win.SetChild(content)
	return win, buttons
}
