package ui

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/component"
	"github.com/bnema/lockbreak/internal/ui/controller"
	"github.com/bnema/lockbreak/internal/ui/dialog"
	"github.com/bnema/lockbreak/internal/ui/mainloop"
	"github.com/bnema/lockbreak/internal/ui/theme"
	"github.com/bnema/lockbreak/internal/ui/window"
)

// AppID is the application identifier for GTK.
const AppID = "io.github.bnema.lockbreak"

// App wraps the GTK application and owns the settings window.
type App struct {
	deps   *Dependencies
	gtkApp *gtk.Application
	queue  *mainloop.Queue

	window     *window.SettingsWindow
	controller *controller.Controller
	theme      *theme.Manager

	// cfg is the latest configuration; only touched on the GTK thread.
	cfg     *config.Config
	closing bool
}

// New creates an App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		deps: deps,
		cfg:  deps.Overrides.Apply(deps.Config),
	}
	a.queue = mainloop.NewQueue(a.wake)
	return a, nil
}

// wake schedules a queue drain on the GTK main loop. Safe from any goroutine.
func (a *App) wake() {
	glib.IdleAdd(func() bool {
		a.queue.Drain()
		return false
	})
}

// Run starts the GTK application and blocks until it exits.
// Returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating GTK application")

	a.gtkApp = gtk.NewApplication(AppID, gio.ApplicationFlagsNone)
	if a.gtkApp == nil {
		log.Error().Msg("failed to create GTK application")
		return 1
	}

	a.gtkApp.ConnectActivate(func() { a.onActivate(ctx) })
	a.gtkApp.ConnectShutdown(func() { a.onShutdown(ctx) })

	log.Info().Msg("starting GTK main loop")
	return a.gtkApp.Run(args)
}

func (a *App) onActivate(ctx context.Context) {
	log := logging.FromContext(ctx)

	if a.window != nil {
		a.window.Present()
		return
	}
	log.Debug().Msg("GTK application activated")

	a.theme = theme.NewManager(ctx, a.cfg)
	a.theme.ApplyToDisplay(ctx, gdk.DisplayGetDefault())

	win, err := window.New(ctx, a.gtkApp, window.Options{
		DefaultMinutes: controller.FormatDefaultMinutes(a.cfg.Timer.DefaultMinutes),
		Info:           infoFor(a.cfg),
		OnStart: func(input string) {
			_ = a.controller.Start(input)
		},
		OnStop: func() {
			a.controller.Stop()
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create settings window")
		return
	}
	a.window = win

	overlay := component.NewLockOverlay(ctx, a.gtkApp)
	a.controller = controller.New(ctx, win, a.queue,
		a.deps.Stack.TimerFactory(a.deps.Overrides, overlay, a.queue))
	a.controller.Init()

	win.ConnectCloseRequest(a.onCloseRequest)

	if mgr := a.deps.ConfigManager; mgr != nil {
		mgr.OnConfigChange(func(cfg *config.Config) {
			a.queue.Post(func() { a.applyConfig(ctx, cfg) })
		})
	}

	win.Present()
}

// onCloseRequest asks for confirmation when configured, then stops the timer
// before the window goes away. Returning true keeps the window open.
func (a *App) onCloseRequest() bool {
	if a.closing {
		return false
	}

	if !a.cfg.UI.ConfirmOnExit {
		a.closing = a.controller.RequestClose(nil)
		return !a.closing
	}

	dialog.Confirm(a.window.Window(), "Exit", controller.ConfirmExitMessage, func(yes bool) {
		if !yes {
			return
		}
		a.closing = a.controller.RequestClose(nil)
		a.window.Destroy()
	})
	return true
}

// applyConfig runs on the GTK thread. Lock settings apply to the next Start
// through the timer factory; only the info line and theme change here.
func (a *App) applyConfig(ctx context.Context, cfg *config.Config) {
	a.cfg = a.deps.Overrides.Apply(cfg)
	if a.window != nil {
		a.window.SetInfo(infoFor(a.cfg))
	}
	if a.theme != nil {
		a.theme.UpdateFromConfig(ctx, a.cfg, gdk.DisplayGetDefault())
	}
	logging.FromContext(ctx).Debug().Msg("configuration change applied to settings window")
}

func (a *App) onShutdown(ctx context.Context) {
	if a.controller != nil {
		a.controller.RequestClose(nil)
	}
	a.queue.Close()
	logging.FromContext(ctx).Debug().Msg("GTK application shut down")
}

// Quit stops the timer and quits the application. Safe from any goroutine.
func (a *App) Quit() {
	a.queue.Post(func() {
		if a.controller != nil {
			a.controller.RequestClose(nil)
		}
		a.closing = true
		if a.gtkApp != nil {
			a.gtkApp.Quit()
		}
	})
}

func infoFor(cfg *config.Config) string {
	return controller.InfoText(entity.LockMode(cfg.Lock.Mode), cfg.Lock.Duration)
}
