// Package cli provides the lockbreak command line and its Bubble Tea front-end.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/bootstrap"
	"github.com/bnema/lockbreak/internal/cli/styles"
	"github.com/bnema/lockbreak/internal/domain/build"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/logging"
)

// AppOptions tunes NewApp per command.
type AppOptions struct {
	// LogOutput replaces stderr for console logs. The terminal front-end passes
	// io.Discard so log lines do not tear its screen.
	LogOutput io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	stackOnce sync.Once
	stack     *bootstrap.Stack

	// Context with logger
	ctx       context.Context
	logCloser io.Closer
}

// NewApp loads the configuration and sets up logging. The history database and
// the lock backend open lazily on first use.
func NewApp(opts AppOptions) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	if envLevel := os.Getenv("LOCKBREAK_LOG_LEVEL"); envLevel != "" {
		withLevel := *cfg
		withLevel.Logging.Level = envLevel
		cfg = &withLevel
	}

	logger, closer := bootstrap.NewLogger(cfg, opts.LogOutput)
	ctx := logging.WithContext(context.Background(), logger)
	if created := mgr.CreatedConfigFile(); created != "" {
		logger.Info().Str("path", created).Msg("wrote default config")
	}
	logger.Debug().Str("config", mgr.GetConfigFile()).Msg("config loaded")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		ctx:           ctx,
		logCloser:     closer,
	}, nil
}

// Stack returns the shared infrastructure, opening it on first call. The stack
// reads the live configuration so watched edits reach the next session.
func (a *App) Stack() *bootstrap.Stack {
	a.stackOnce.Do(func() {
		a.stack = bootstrap.NewStack(a.ctx, a.CurrentConfig)
	})
	return a.stack
}

// CurrentConfig returns the latest loaded configuration.
func (a *App) CurrentConfig() *config.Config {
	if a.ConfigManager != nil {
		if cfg := a.ConfigManager.Get(); cfg != nil {
			return cfg
		}
	}
	return a.Config
}

// HistoryUseCase returns the history use case, or nil when history is disabled
// or its database could not be opened.
func (a *App) HistoryUseCase() *usecase.ListLockHistoryUseCase {
	repo := a.Stack().History()
	if repo == nil {
		return nil
	}
	return usecase.NewListLockHistoryUseCase(repo)
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.stack != nil {
		err = a.stack.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
