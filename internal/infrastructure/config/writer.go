package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlDocument mirrors Config with durations rendered as Go duration strings,
// the same form the loader accepts.
type tomlDocument struct {
	Timer    TimerConfig    `toml:"timer"`
	Lock     tomlLock       `toml:"lock"`
	System   tomlSystem     `toml:"system"`
	UI       UIConfig       `toml:"ui"`
	History  HistoryConfig  `toml:"history"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type tomlLock struct {
	Mode     LockMode `toml:"mode"`
	Duration string   `toml:"duration"`
}

type tomlSystem struct {
	Backend            SystemBackend `toml:"backend"`
	Command            string        `toml:"command"`
	ResumeOnUnlock     bool          `toml:"resume_on_unlock"`
	LockConfirmTimeout string        `toml:"lock_confirm_timeout"`
}

// MarshalTOML renders cfg as a TOML document.
func MarshalTOML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	doc := tomlDocument{
		Timer: cfg.Timer,
		Lock: tomlLock{
			Mode:     cfg.Lock.Mode,
			Duration: cfg.Lock.Duration.String(),
		},
		System: tomlSystem{
			Backend:            cfg.System.Backend,
			Command:            cfg.System.Command,
			ResumeOnUnlock:     cfg.System.ResumeOnUnlock,
			LockConfirmTimeout: cfg.System.LockConfirmTimeout.String(),
		},
		UI:       cfg.UI,
		History:  cfg.History,
		Database: cfg.Database,
		Logging:  cfg.Logging,
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
