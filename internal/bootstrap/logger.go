// Package bootstrap wires the infrastructure shared by the front-ends.
package bootstrap

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/logging"
)

const logTimeFormat = "15:04:05"

// NewLogger builds the process logger from the logging section. out replaces
// stderr when non-nil. A log file that cannot be opened is reported on the
// returned logger and otherwise ignored.
func NewLogger(cfg *config.Config, out io.Writer) (zerolog.Logger, io.Closer) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger, closer, fileErr := logging.NewWithFile(
		logging.Config{
			Level:      level,
			Format:     cfg.Logging.Format,
			TimeFormat: logTimeFormat,
			Output:     out,
		},
		logging.FileConfig{
			Enabled:    cfg.Logging.EnableFileLog,
			Dir:        cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	)
	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("dir", cfg.Logging.LogDir).Msg("file logging disabled")
	}
	return logger, closer
}
