package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateXDG points every XDG directory into a temp dir.
func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func loadManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	return mgr
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path, err := GetConfigFile()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "overlay", mgr.viper.GetString("lock.mode"))
	assert.Equal(t, 5*time.Minute, mgr.viper.GetDuration("lock.duration"))
	assert.InDelta(t, 30.0, mgr.viper.GetFloat64("timer.default_minutes"), 0)
	assert.True(t, mgr.viper.GetBool("system.resume_on_unlock"))
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	root := isolateXDG(t)

	mgr := loadManager(t)
	cfg := mgr.Get()

	created := mgr.CreatedConfigFile()
	assert.Equal(t, filepath.Join(root, "config", "lockbreak", "config.toml"), created)
	assert.FileExists(t, created)

	assert.Equal(t, LockModeOverlay, cfg.Lock.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Lock.Duration)
	assert.Equal(t, 5*time.Second, cfg.System.LockConfirmTimeout)
	assert.InDelta(t, 30.0, cfg.Timer.DefaultMinutes, 0)
	assert.Equal(t, filepath.Join(root, "data", "lockbreak", "lockbreak.sqlite"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "state", "lockbreak", "logs"), cfg.Logging.LogDir)

	// A second load reads the file instead of recreating it.
	again := loadManager(t)
	assert.Empty(t, again.CreatedConfigFile())
	assert.Equal(t, cfg.Lock, again.Get().Lock)
}

func TestLoad_ReadsFileValues(t *testing.T) {
	isolateXDG(t)
	writeConfig(t, `
[timer]
default_minutes = 45.5

[lock]
mode = "System"
duration = "90s"

[system]
backend = "command"
command = "  swaylock -f  "
resume_on_unlock = false

[history]
max_entries = 10
`)

	cfg := loadManager(t).Get()

	assert.InDelta(t, 45.5, cfg.Timer.DefaultMinutes, 0)
	assert.Equal(t, LockModeSystem, cfg.Lock.Mode)
	assert.Equal(t, 90*time.Second, cfg.Lock.Duration)
	assert.Equal(t, SystemBackendCommand, cfg.System.Backend)
	assert.Equal(t, "swaylock -f", cfg.System.Command)
	assert.False(t, cfg.System.ResumeOnUnlock)
	assert.Equal(t, 10, cfg.History.MaxEntries)
	// Keys absent from the file keep their defaults.
	assert.True(t, cfg.History.Enabled)
	assert.True(t, cfg.UI.ConfirmOnExit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateXDG(t)
	t.Setenv("LOCKBREAK_LOCK_MODE", "system")
	t.Setenv("LOCKBREAK_LOG_LEVEL", "debug")

	cfg := loadManager(t).Get()

	assert.Equal(t, LockModeSystem, cfg.Lock.Mode)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	isolateXDG(t)
	writeConfig(t, `
[lock]
duration = "10ms"

[history]
max_entries = -1
`)

	mgr, err := NewManager()
	require.NoError(t, err)
	err = mgr.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock.duration must be at least 1s")
	assert.Contains(t, err.Error(), "history.max_entries must be non-negative")
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateXDG(t)
	writeConfig(t, "[lock\nmode = ")

	mgr, err := NewManager()
	require.NoError(t, err)
	assert.ErrorContains(t, mgr.Load(), "failed to read config file")
}

func TestNormalizeConfig_UnknownEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lock.Mode = LockMode("hibernate")
	cfg.System.Backend = SystemBackend("xscreensaver")
	cfg.Logging.Format = "yaml"
	cfg.Logging.Level = " WARN "
	cfg.UI.ColorScheme = "solarized"

	normalizeConfig(cfg)

	assert.Equal(t, LockModeOverlay, cfg.Lock.Mode)
	assert.Equal(t, SystemBackendAuto, cfg.System.Backend)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "default", cfg.UI.ColorScheme)
}

func TestManager_GetReturnsCopy(t *testing.T) {
	isolateXDG(t)
	mgr := loadManager(t)

	cfg := mgr.Get()
	cfg.Lock.Duration = time.Hour

	assert.Equal(t, 5*time.Minute, mgr.Get().Lock.Duration)
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	isolateXDG(t)
	mgr := loadManager(t)

	var got *Config
	mgr.OnConfigChange(func(c *Config) { got = c })

	writeConfig(t, "[lock]\nmode = \"system\"\nduration = \"2m\"\n")
	require.NoError(t, mgr.Reload())

	require.NotNil(t, got)
	assert.Equal(t, LockModeSystem, got.Lock.Mode)
	assert.Equal(t, 2*time.Minute, mgr.Get().Lock.Duration)
}

func TestManager_ReloadKeepsPreviousOnError(t *testing.T) {
	isolateXDG(t)
	mgr := loadManager(t)

	writeConfig(t, "[lock]\nduration = \"1ms\"\n")
	require.Error(t, mgr.Reload())

	assert.Equal(t, 5*time.Minute, mgr.Get().Lock.Duration)
}

func TestGet_BeforeInitReturnsDefaults(t *testing.T) {
	if GetManager() != nil {
		t.Skip("global config already initialized")
	}
	assert.Equal(t, DefaultConfig(), Get())
}
