package styles

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/build"
	"github.com/bnema/lockbreak/internal/domain/entity"
)

func TestTheme_StatusColor(t *testing.T) {
	theme := NewTheme()

	assert.Equal(t, theme.Info, theme.StatusColor(entity.StatusIdle))
	assert.Equal(t, theme.Success, theme.StatusColor(entity.StatusRunning))
	assert.Equal(t, theme.Success, theme.StatusColor(entity.StatusWaiting))
	assert.Equal(t, theme.Warning, theme.StatusColor(entity.StatusLocking))
	assert.Equal(t, theme.Error, theme.StatusColor(entity.StatusStopped))
	assert.Equal(t, theme.Error, theme.StatusColor(entity.StatusLockFailed))
}

func TestConfirmModel_Keys(t *testing.T) {
	m := NewConfirm(NewTheme(), "Exit?")
	assert.False(t, m.Yes)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.True(t, m.Yes)
	assert.False(t, m.Done())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Done())
	assert.True(t, m.Result())

	m.Reset()
	assert.False(t, m.Done())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Done())
	assert.False(t, m.Result())
}

func TestLockEventRow(t *testing.T) {
	started := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	e := &entity.LockEvent{ID: "a", Mode: entity.LockModeOverlay, StartedAt: started}

	row := LockEventRow(e)
	assert.Equal(t, "overlay", row[1])
	assert.Equal(t, "-", row[2])
	assert.Equal(t, "active", row[3])

	e.End(started.Add(5*time.Minute), entity.EndReasonExpired, nil)
	row = LockEventRow(e)
	assert.Equal(t, entity.FormatCountdown(5*time.Minute), row[2])
	assert.Equal(t, "expired", row[3])
}

func TestHistoryRenderer_Empty(t *testing.T) {
	out := NewHistoryRenderer(NewTheme()).Render(nil, nil)
	assert.Contains(t, out, "No breaks recorded yet.")
}

func TestDoctorRenderer_Render(t *testing.T) {
	out := NewDoctorRenderer(NewTheme()).Render(DoctorReport{
		OverallOK: false,
		Checks: []DoctorCheck{
			{Name: "display", Level: DoctorOK, Detail: "wayland wayland-1"},
			{Name: "lock command", Level: DoctorWarning, Error: "swaylock not found"},
			{Name: "history database", Level: DoctorFailed, Error: "disk I/O error"},
		},
	})
	for _, want := range []string{"Doctor", "Needs attention", "display", "wayland wayland-1", "swaylock not found", "disk I/O error"} {
		assert.Contains(t, out, want)
	}
}

func TestAboutRenderer_Render(t *testing.T) {
	out := NewAboutRenderer(NewTheme()).Render(build.Info{Version: "v1.2.0", GoVersion: "go1.25.3"})
	assert.Contains(t, out, "v1.2.0")
	assert.Contains(t, out, "go1.25.3")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, build.RepoURL())
}

func TestConfigRenderer_MissingKeys(t *testing.T) {
	r := NewConfigRenderer(NewTheme())
	assert.Empty(t, r.RenderMissingKeys(nil))

	out := r.RenderMissingKeys([]port.KeyInfo{
		{Key: "system.resume_on_unlock", Type: "bool", DefaultValue: "true"},
	})
	assert.Contains(t, out, "Missing settings (1)")
	assert.Contains(t, out, "system.resume_on_unlock")

	assert.Contains(t, r.RenderMigrationSuccess(3, "/home/me/.config/lockbreak/config.toml"), "config.toml")
}
