package bootstrap

import (
	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/infrastructure/diagnostics"
	"github.com/bnema/lockbreak/internal/infrastructure/oslock"
)

// DiagnosticChecks returns the doctor checks for cfg.
func DiagnosticChecks(cfg *config.Config) []port.DiagnosticCheck {
	return []port.DiagnosticCheck{
		diagnostics.DisplayCheck{},
		diagnostics.LockBackendCheck{Options: oslock.Options{
			Backend: string(cfg.System.Backend),
			Command: cfg.System.Command,
		}},
		diagnostics.LockCommandCheck{Command: cfg.System.Command},
		diagnostics.DatabaseCheck{Path: cfg.Database.Path, Enabled: cfg.History.Enabled},
	}
}
