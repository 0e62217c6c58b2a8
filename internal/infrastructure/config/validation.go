package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/lockbreak/internal/logging"
)

// validateConfig collects every invalid value before failing.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateTimer(config)...)
	validationErrors = append(validationErrors, validateLock(config)...)
	validationErrors = append(validationErrors, validateSystem(config)...)
	validationErrors = append(validationErrors, validateHistory(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateTimer(config *Config) []string {
	m := config.Timer.DefaultMinutes
	if math.IsNaN(m) || math.IsInf(m, 0) || m*60 < 1 {
		return []string{"timer.default_minutes must be a positive number of at least 1 second"}
	}
	return nil
}

func validateLock(config *Config) []string {
	if config.Lock.Duration < time.Second {
		return []string{"lock.duration must be at least 1s"}
	}
	return nil
}

func validateSystem(config *Config) []string {
	var validationErrors []string
	if config.System.LockConfirmTimeout < 0 {
		validationErrors = append(validationErrors, "system.lock_confirm_timeout must be non-negative")
	}
	return validationErrors
}

func validateHistory(config *Config) []string {
	if config.History.MaxEntries < 0 {
		return []string{"history.max_entries must be non-negative"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level: %v", err))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}
