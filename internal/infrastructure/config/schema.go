package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// Config represents the complete configuration for lockbreak.
type Config struct {
	Timer    TimerConfig    `mapstructure:"timer" toml:"timer" json:"timer"`
	Lock     LockConfig     `mapstructure:"lock" toml:"lock" json:"lock"`
	System   SystemConfig   `mapstructure:"system" toml:"system" json:"system"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui" json:"ui"`
	History  HistoryConfig  `mapstructure:"history" toml:"history" json:"history"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
}

// TimerConfig holds the form defaults.
type TimerConfig struct {
	// DefaultMinutes pre-fills the interval entry.
	DefaultMinutes float64 `mapstructure:"default_minutes" toml:"default_minutes" json:"default_minutes" jsonschema:"description=Interval pre-filled in the form in minutes,default=30"`
}

// LockMode selects the lock action.
type LockMode string

const (
	LockModeOverlay LockMode = "overlay"
	LockModeSystem  LockMode = "system"
)

// LockConfig controls what happens when the interval elapses.
type LockConfig struct {
	Mode     LockMode      `mapstructure:"mode" toml:"mode" json:"mode" jsonschema:"enum=overlay,enum=system,default=overlay"`
	Duration time.Duration `mapstructure:"duration" toml:"duration" json:"duration" jsonschema:"description=How long a lock lasts (Go duration string such as 5m)"`
}

// SystemBackend selects how the native lock is invoked.
type SystemBackend string

const (
	SystemBackendAuto    SystemBackend = "auto"
	SystemBackendLogind  SystemBackend = "logind"
	SystemBackendCommand SystemBackend = "command"
)

// SystemConfig configures the OS-delegated lock.
type SystemConfig struct {
	Backend SystemBackend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=auto,enum=logind,enum=command,default=auto"`
	// Command overrides the per-OS lock command, e.g. "swaylock -f".
	Command string `mapstructure:"command" toml:"command" json:"command"`
	// ResumeOnUnlock ends the break when the session is unlocked instead of after lock.duration.
	ResumeOnUnlock     bool          `mapstructure:"resume_on_unlock" toml:"resume_on_unlock" json:"resume_on_unlock"`
	LockConfirmTimeout time.Duration `mapstructure:"lock_confirm_timeout" toml:"lock_confirm_timeout" json:"lock_confirm_timeout"`
}

// UIConfig holds front-end settings.
type UIConfig struct {
	ConfirmOnExit bool `mapstructure:"confirm_on_exit" toml:"confirm_on_exit" json:"confirm_on_exit"`
	// ColorScheme picks the GTK palette: "default" follows the desktop.
	ColorScheme string `mapstructure:"color_scheme" toml:"color_scheme" json:"color_scheme" jsonschema:"enum=default,enum=prefer-dark,enum=prefer-light,default=default"`
}

// HistoryConfig controls the break history.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// MaxEntries caps the stored events; 0 keeps everything.
	MaxEntries int `mapstructure:"max_entries" toml:"max_entries" json:"max_entries" jsonschema:"minimum=0"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

// Schema reflects the JSON schema of the configuration file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/lockbreak/config.schema.json"
	schema.Title = "lockbreak configuration"
	schema.Description = "Configuration schema for lockbreak, a periodic screen lock for enforced breaks"
	return schema
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
