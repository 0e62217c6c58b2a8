package port

import "context"

// DiagnosticCheck probes one runtime requirement for the doctor command.
type DiagnosticCheck interface {
	Name() string
	// Check returns a short human-readable detail on success.
	// A non-nil error marks the check as failed; ErrDiagnosticWarning-wrapped
	// errors are reported as warnings instead.
	Check(ctx context.Context) (string, error)
}
