// Package logger builds the zerolog loggers used throughout lottolab.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls the verbosity and output format of the process logger.
type Config struct {
	Level  string // one of debug, info, warn, error
	Pretty bool   // human-readable console output for local runs
}

// New builds the root logger. Unrecognized levels fall back to info.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetGlobalLogger installs l as zerolog's package-level logger, so code
// without an injected logger still writes through the same sink.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
