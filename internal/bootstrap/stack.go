package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/domain/repository"
	"github.com/bnema/lockbreak/internal/infrastructure/clock"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/infrastructure/oslock"
	"github.com/bnema/lockbreak/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/lockbreak/internal/logging"
)

// ErrNoOverlay is returned when overlay mode is selected without a front-end to draw it.
var ErrNoOverlay = errors.New("overlay lock needs a front-end")

// ConfigSource returns the current configuration. It is read on every Start so
// edits to the config file apply to the next session.
type ConfigSource func() *config.Config

// Overrides are command-line values that win over the config file.
type Overrides struct {
	Minutes float64
	Mode    entity.LockMode
}

// Apply returns a copy of cfg with the overrides set.
func (o Overrides) Apply(cfg *config.Config) *config.Config {
	out := *cfg
	if o.Minutes > 0 {
		out.Timer.DefaultMinutes = o.Minutes
	}
	switch o.Mode {
	case entity.LockModeOverlay:
		out.Lock.Mode = config.LockModeOverlay
	case entity.LockModeSystem:
		out.Lock.Mode = config.LockModeSystem
	}
	return &out
}

// Stack holds the long-lived infrastructure of one process.
type Stack struct {
	ctx    context.Context
	config ConfigSource
	clock  port.Clock

	db      *sql.DB
	history repository.LockHistoryRepository

	newLocker  func(ctx context.Context, opts oslock.Options) (*oslock.Result, error)
	mu         sync.Mutex
	locker     *oslock.Result
	lockerOpts oslock.Options
}

// NewStack opens the history database when history is enabled. A database that
// cannot be opened only disables the history.
func NewStack(ctx context.Context, source ConfigSource) *Stack {
	s := &Stack{
		ctx:       logging.WithComponent(ctx, "bootstrap"),
		config:    source,
		clock:     clock.Real{},
		newLocker: oslock.New,
	}

	cfg := source()
	if !cfg.History.Enabled {
		return s
	}
	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		logging.FromContext(s.ctx).Warn().Err(err).Msg("lock history disabled")
		return s
	}
	s.db = db
	s.history = sqlite.NewLockHistoryRepository(db)
	return s
}

// History returns the lock history repository, or nil when disabled.
func (s *Stack) History() repository.LockHistoryRepository {
	return s.history
}

// Config returns the current configuration.
func (s *Stack) Config() *config.Config {
	return s.config()
}

// SystemLocker returns the OS lock backend for cfg. The backend is kept open
// and reused until its options change.
func (s *Stack) SystemLocker(ctx context.Context, cfg *config.Config) (*oslock.Result, error) {
	opts := oslock.Options{
		Backend: string(cfg.System.Backend),
		Command: cfg.System.Command,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locker != nil && s.lockerOpts == opts {
		return s.locker, nil
	}

	res, err := s.newLocker(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s lock backend: %w", opts.Backend, err)
	}
	if s.locker != nil {
		if err := s.locker.Close(); err != nil {
			logging.FromContext(s.ctx).Debug().Err(err).Msg("failed to close previous lock backend")
		}
	}
	s.locker = res
	s.lockerOpts = opts
	logging.FromContext(s.ctx).Info().Str("backend", res.Locker.Name()).Msg("system lock backend ready")
	return res, nil
}

// NewLockAction builds the lock action selected by cfg. presenter and
// dispatcher may be nil when no front-end can draw the overlay.
func (s *Stack) NewLockAction(
	ctx context.Context,
	cfg *config.Config,
	presenter port.OverlayPresenter,
	dispatcher port.UIDispatcher,
) (usecase.LockAction, error) {
	if cfg.Lock.Mode == config.LockModeSystem {
		res, err := s.SystemLocker(ctx, cfg)
		if err != nil {
			return nil, err
		}
		action := usecase.NewSystemLockAction(res.Locker, res.Watcher, s.clock)
		action.ResumeOnUnlock = cfg.System.ResumeOnUnlock && res.Watcher != nil
		if cfg.System.LockConfirmTimeout > 0 {
			action.ConfirmTimeout = cfg.System.LockConfirmTimeout
		}
		return action, nil
	}

	if presenter == nil || dispatcher == nil {
		return nil, ErrNoOverlay
	}
	return usecase.NewOverlayLockAction(presenter, dispatcher, s.clock), nil
}

// TimerFactory returns a constructor that reads the configuration, applies
// overrides, and builds a LockTimer for the next session.
func (s *Stack) TimerFactory(
	overrides Overrides,
	presenter port.OverlayPresenter,
	dispatcher port.UIDispatcher,
) func() (*usecase.LockTimer, error) {
	return func() (*usecase.LockTimer, error) {
		cfg := overrides.Apply(s.config())

		action, err := s.NewLockAction(s.ctx, cfg, presenter, dispatcher)
		if err != nil {
			return nil, err
		}

		limit := 0
		if cfg.History.Enabled {
			limit = cfg.History.MaxEntries
		}
		var history repository.LockHistoryRepository
		if cfg.History.Enabled {
			history = s.history
		}

		return usecase.NewLockTimer(action, s.clock, history, usecase.LockTimerConfig{
			LockDuration: cfg.Lock.Duration,
			HistoryLimit: limit,
		}), nil
	}
}

// Close releases the lock backend and the database.
func (s *Stack) Close() error {
	s.mu.Lock()
	locker := s.locker
	db := s.db
	s.locker = nil
	s.db = nil
	s.mu.Unlock()

	var errs []error
	if locker != nil {
		errs = append(errs, locker.Close())
	}
	if db != nil {
		errs = append(errs, sqlite.Close(db))
	}
	return errors.Join(errs...)
}
