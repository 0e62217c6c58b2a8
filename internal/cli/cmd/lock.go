package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/cli/styles"
	"github.com/bnema/lockbreak/internal/logging"
)

// lockRequestTimeout bounds the lock request (the D-Bus call or the command start).
const lockRequestTimeout = 10 * time.Second

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock the session once with the system backend",
	Long: `Lock the session right away through the configured system backend
(logind over D-Bus, or the lock command) and exit.

Useful to check the [system] settings before using system mode.`,
	RunE: runLock,
}

func init() {
	rootCmd.AddCommand(lockCmd)
}

func runLock(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx := logging.WithComponent(app.Ctx(), "lock")
	cfg := app.CurrentConfig()

	res, err := app.Stack().SystemLocker(ctx, cfg)
	if err != nil {
		return err
	}

	if err := requestLock(ctx, res.Locker); err != nil {
		return err
	}
	logging.FromContext(ctx).Info().Str("backend", res.Locker.Name()).Msg("session locked")

	icon := lipgloss.NewStyle().Foreground(app.Theme.Success).Render(styles.IconLock)
	fmt.Printf("\n  %s Locked with %s\n\n", icon, app.Theme.Highlight.Render(res.Locker.Name()))
	return nil
}

func requestLock(ctx context.Context, locker port.ScreenLocker) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockRequestTimeout)
	defer cancel()

	if err := locker.Lock(lockCtx); err != nil {
		return fmt.Errorf("lock with %s: %w", locker.Name(), err)
	}
	return nil
}
