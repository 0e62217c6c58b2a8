package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lockbreak/internal/application/port/mocks"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/cli/styles"
	"github.com/bnema/lockbreak/internal/domain/entity"
)

func setFlags(t *testing.T, minutes float64, mode string) {
	t.Helper()
	prevMinutes, prevMode := flagMinutes, flagMode
	flagMinutes, flagMode = minutes, mode
	t.Cleanup(func() { flagMinutes, flagMode = prevMinutes, prevMode })
}

func TestOverridesFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		mode    string
		want    entity.LockMode
		wantErr error
	}{
		{name: "none"},
		{name: "minutes and overlay", minutes: 45, mode: "overlay", want: entity.LockModeOverlay},
		{name: "system mode is case insensitive", mode: " System ", want: entity.LockModeSystem},
		{name: "negative minutes", minutes: -1, wantErr: entity.ErrInvalidInterval},
		{name: "unknown mode", mode: "hibernate", wantErr: entity.ErrInvalidLockMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlags(t, tt.minutes, tt.mode)

			o, err := overridesFromFlags()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, o.Minutes)
			assert.Equal(t, tt.want, o.Mode)
		})
	}
}

func TestDoctorReport_MapsLevels(t *testing.T) {
	report := doctorReport(&usecase.RunDiagnosticsOutput{
		OK: false,
		Results: []usecase.DiagnosticResult{
			{Name: "display", Level: usecase.DiagnosticOK, Detail: "wayland"},
			{Name: "lock backend", Level: usecase.DiagnosticWarning, Error: "no unlock notifications"},
			{Name: "history database", Level: usecase.DiagnosticFailed, Error: "locked"},
		},
	})

	assert.False(t, report.OverallOK)
	require.Len(t, report.Checks, 3)
	assert.Equal(t, styles.DoctorOK, report.Checks[0].Level)
	assert.Equal(t, "wayland", report.Checks[0].Detail)
	assert.Equal(t, styles.DoctorWarning, report.Checks[1].Level)
	assert.Equal(t, styles.DoctorFailed, report.Checks[2].Level)
	assert.Equal(t, "locked", report.Checks[2].Error)
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "tui", "lock", "history", "doctor", "config", "setup", "about"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRunGUI_WithoutRunner(t *testing.T) {
	prevApp, prevRunner := app, guiRunner
	t.Cleanup(func() { app, guiRunner = prevApp, prevRunner })

	app, guiRunner = nil, nil
	assert.Error(t, runGUI(rootCmd, nil))
}

func TestAutostartArgs(t *testing.T) {
	prevFrontend := setupAutostartMode
	t.Cleanup(func() { setupAutostartMode = prevFrontend })

	setupAutostartMode = "run"
	setFlags(t, 0, "")
	assert.Equal(t, []string{"run"}, autostartArgs())

	setupAutostartMode = "tui"
	setFlags(t, 42.5, "system")
	assert.Equal(t, []string{"tui", "--minutes", "42.5", "--mode", "system"}, autostartArgs())
}

func TestRequestLock_UsesRequestTimeout(t *testing.T) {
	locker := mocks.NewMockScreenLocker(t)
	locker.On("Lock", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) > lockRequestTimeout-time.Second
	})).Return(nil).Once()

	require.NoError(t, requestLock(context.Background(), locker))
}

func TestRequestLock_WrapsBackendError(t *testing.T) {
	locker := mocks.NewMockScreenLocker(t)
	locker.On("Lock", mock.Anything).Return(errors.New("access denied")).Once()
	locker.On("Name").Return("logind")

	err := requestLock(context.Background(), locker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock with logind")
	assert.Contains(t, err.Error(), "access denied")
}
