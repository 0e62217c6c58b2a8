package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/cli/model"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/controller"
	"github.com/bnema/lockbreak/internal/ui/mainloop"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the lock timer in the terminal",
	Long: `Run the interval form and the lock overlay inside the terminal.

The overlay takes over the whole terminal until the lock ends or 'u' is pressed.
System mode locks the session through the configured backend.

Examples:
  lockbreak tui
  lockbreak tui --minutes 50 --mode system`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	overrides, err := overridesFromFlags()
	if err != nil {
		return err
	}

	ctx := app.Ctx()
	log := logging.FromContext(ctx)
	cfg := overrides.Apply(app.CurrentConfig())

	m := model.NewTimerModel(ctx, app.Theme, model.TimerOptions{
		DefaultMinutes: controller.FormatDefaultMinutes(cfg.Timer.DefaultMinutes),
		Info:           tuiInfo(cfg),
		ConfirmOnExit:  cfg.UI.ConfirmOnExit,
	})

	var program *tea.Program
	queue := mainloop.NewQueue(model.Wake(func() *tea.Program { return program }))
	m.Bind(queue, app.Stack().TimerFactory(overrides, m, queue))

	program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if mgr := app.ConfigManager; mgr != nil {
		mgr.OnConfigChange(func(changed *config.Config) {
			next := overrides.Apply(changed)
			program.Send(model.ConfigMsg{
				Info:          tuiInfo(next),
				ConfirmOnExit: next.UI.ConfirmOnExit,
			})
		})
		if err := mgr.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watch disabled")
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigCh)
		close(done)
	}()
	go func() {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("received interrupt, quitting")
			program.Send(model.QuitMsg{})
		case <-done:
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal front-end: %w", err)
	}
	return nil
}

func tuiInfo(cfg *config.Config) string {
	return controller.InfoText(entity.LockMode(cfg.Lock.Mode), cfg.Lock.Duration)
}
