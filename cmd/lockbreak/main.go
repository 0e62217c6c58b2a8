package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/bnema/lockbreak/internal/bootstrap"
	"github.com/bnema/lockbreak/internal/cli"
	"github.com/bnema/lockbreak/internal/cli/cmd"
	"github.com/bnema/lockbreak/internal/domain/build"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	// GTK must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	cmd.SetBuildInfo(build.Resolve(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
	}))
	cmd.SetGUIRunner(runGUI)

	cmd.Execute()
}

func runGUI(ctx context.Context, app *cli.App, overrides bootstrap.Overrides) int {
	log := logging.FromContext(ctx)

	if err := app.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch disabled")
	}

	gui, err := ui.New(&ui.Dependencies{
		Ctx:           ctx,
		Config:        app.CurrentConfig(),
		ConfigManager: app.ConfigManager,
		Stack:         app.Stack(),
		Overrides:     overrides,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create application")
		return 1
	}

	setupSignalHandler(ctx, gui)

	return gui.Run(ctx, os.Args[:1])
}

func setupSignalHandler(ctx context.Context, app *ui.App) {
	log := logging.FromContext(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		signal.Stop(sigCh)
		log.Info().Str("signal", sig.String()).Msg("received interrupt, quitting")
		app.Quit()
	}()
}
