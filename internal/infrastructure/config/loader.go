// Package config loads, validates and watches the lockbreak TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	configDir string
	created   string
}

// NewManager creates a manager reading config.toml from the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return newManager(configDir)
}

func newManager(configDir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// LOCKBREAK_LOCK_MODE, LOCKBREAK_HISTORY_ENABLED, ... are handled by AutomaticEnv.
	v.SetEnvPrefix("LOCKBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names for the logging keys, shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "LOCKBREAK_LOG_LEVEL", "LOCKBREAK_LOGGING_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOCKBREAK_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "LOCKBREAK_LOG_FORMAT", "LOCKBREAK_LOGGING_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind LOCKBREAK_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
		configDir: configDir,
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w\nTry creating the directory manually or check permissions", m.configDir, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// decode unmarshals, normalizes and validates the current viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}

	if err := applyPathDefaults(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func applyPathDefaults(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

// normalizeConfig maps unknown enum values to their defaults.
func normalizeConfig(config *Config) {
	switch LockMode(strings.ToLower(string(config.Lock.Mode))) {
	case LockModeSystem:
		config.Lock.Mode = LockModeSystem
	default:
		config.Lock.Mode = LockModeOverlay
	}

	switch SystemBackend(strings.ToLower(string(config.System.Backend))) {
	case SystemBackendLogind:
		config.System.Backend = SystemBackendLogind
	case SystemBackendCommand:
		config.System.Backend = SystemBackendCommand
	default:
		config.System.Backend = SystemBackendAuto
	}
	config.System.Command = strings.TrimSpace(config.System.Command)

	switch scheme := strings.ToLower(strings.TrimSpace(config.UI.ColorScheme)); scheme {
	case "prefer-dark", "prefer-light":
		config.UI.ColorScheme = scheme
	default:
		config.UI.ColorScheme = "default"
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = "console"
	}
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// CreatedConfigFile returns the path of the default config file written by Load,
// or "" when the file already existed.
func (m *Manager) CreatedConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created
}

func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.configDir, "config.toml")
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	m.created = configFile
	return nil
}

// setDefaults sets default configuration values in Viper.
// Durations are stored as strings so the generated file stays readable.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("timer.default_minutes", defaults.Timer.DefaultMinutes)

	m.viper.SetDefault("lock.mode", string(defaults.Lock.Mode))
	m.viper.SetDefault("lock.duration", defaults.Lock.Duration.String())

	m.viper.SetDefault("system.backend", string(defaults.System.Backend))
	m.viper.SetDefault("system.command", defaults.System.Command)
	m.viper.SetDefault("system.resume_on_unlock", defaults.System.ResumeOnUnlock)
	m.viper.SetDefault("system.lock_confirm_timeout", defaults.System.LockConfirmTimeout.String())

	m.viper.SetDefault("ui.confirm_on_exit", defaults.UI.ConfirmOnExit)
	m.viper.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)

	m.viper.SetDefault("history.enabled", defaults.History.Enabled)
	m.viper.SetDefault("history.max_entries", defaults.History.MaxEntries)

	// Database.Path and Logging.LogDir are resolved in decode.
	m.viper.SetDefault("database.path", "")

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", "")
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

var (
	globalManager *Manager
	globalMu      sync.RWMutex
)

// Init loads the global configuration.
func Init() error {
	manager, err := NewManager()
	if err != nil {
		return err
	}
	if err := manager.Load(); err != nil {
		return err
	}

	globalMu.Lock()
	globalManager = manager
	globalMu.Unlock()
	return nil
}

// Get returns the global configuration, or the defaults before Init.
func Get() *Config {
	globalMu.RLock()
	manager := globalManager
	globalMu.RUnlock()

	if manager == nil {
		return DefaultConfig()
	}
	return manager.Get()
}

// GetManager returns the global manager, nil before Init.
func GetManager() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}
