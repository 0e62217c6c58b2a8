package config

import "time"

const (
	defaultMinutes            = 30.0
	defaultLockDuration       = 5 * time.Minute
	defaultLockConfirmTimeout = 5 * time.Second
	defaultHistoryMaxEntries  = 1000
	defaultLogMaxSizeMB       = 10
	defaultLogMaxBackups      = 3
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			DefaultMinutes: defaultMinutes,
		},
		Lock: LockConfig{
			Mode:     LockModeOverlay,
			Duration: defaultLockDuration,
		},
		System: SystemConfig{
			Backend:            SystemBackendAuto,
			ResumeOnUnlock:     true,
			LockConfirmTimeout: defaultLockConfirmTimeout,
		},
		UI: UIConfig{
			ConfirmOnExit: true,
			ColorScheme:   "default",
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: defaultHistoryMaxEntries,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
