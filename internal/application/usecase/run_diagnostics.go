package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
)

const defaultCheckTimeout = 5 * time.Second

// ErrDiagnosticWarning marks a check result that degrades but does not break locking.
var ErrDiagnosticWarning = errors.New("warning")

// DiagnosticLevel classifies a check result.
type DiagnosticLevel string

const (
	DiagnosticOK      DiagnosticLevel = "ok"
	DiagnosticWarning DiagnosticLevel = "warning"
	DiagnosticFailed  DiagnosticLevel = "failed"
)

// DiagnosticResult is the outcome of one check.
type DiagnosticResult struct {
	Name     string          `json:"name"`
	Level    DiagnosticLevel `json:"level"`
	Detail   string          `json:"detail,omitempty"`
	Error    string          `json:"error,omitempty"`
	Duration time.Duration   `json:"duration"`
}

// RunDiagnosticsOutput contains all results in registration order.
type RunDiagnosticsOutput struct {
	OK      bool               `json:"ok"`
	Results []DiagnosticResult `json:"results"`
}

// RunDiagnosticsUseCase runs the doctor checks concurrently.
type RunDiagnosticsUseCase struct {
	checks  []port.DiagnosticCheck
	timeout time.Duration
}

func NewRunDiagnosticsUseCase(checks ...port.DiagnosticCheck) *RunDiagnosticsUseCase {
	return &RunDiagnosticsUseCase{checks: checks, timeout: defaultCheckTimeout}
}

// WithTimeout sets the per-check deadline.
func (uc *RunDiagnosticsUseCase) WithTimeout(d time.Duration) *RunDiagnosticsUseCase {
	if d > 0 {
		uc.timeout = d
	}
	return uc
}

// Execute runs every check. Failing checks never abort the others; the error
// return is reserved for a canceled context.
func (uc *RunDiagnosticsUseCase) Execute(ctx context.Context) (*RunDiagnosticsOutput, error) {
	log := logging.FromContext(ctx).With().Str("component", "doctor").Logger()

	results := make([]DiagnosticResult, len(uc.checks))
	g, gctx := errgroup.WithContext(ctx)
	for i, check := range uc.checks {
		g.Go(func() error {
			results[i] = uc.run(gctx, check)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ok := true
	for _, r := range results {
		if r.Level == DiagnosticFailed {
			ok = false
		}
		log.Debug().Str("check", r.Name).Str("level", string(r.Level)).Dur("took", r.Duration).Msg("diagnostic check done")
	}
	return &RunDiagnosticsOutput{OK: ok, Results: results}, nil
}

func (uc *RunDiagnosticsUseCase) run(ctx context.Context, check port.DiagnosticCheck) DiagnosticResult {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	detail, err := check.Check(ctx)
	result := DiagnosticResult{
		Name:     check.Name(),
		Level:    DiagnosticOK,
		Detail:   detail,
		Duration: time.Since(started),
	}
	switch {
	case err == nil:
	case errors.Is(err, ErrDiagnosticWarning):
		result.Level = DiagnosticWarning
		result.Error = err.Error()
	default:
		result.Level = DiagnosticFailed
		result.Error = err.Error()
	}
	return result
}
