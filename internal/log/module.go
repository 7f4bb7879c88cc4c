package log

import (
	"os"
	"time"

	"github.com/ipfans/fxlogger"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// NewLogger creates a configured zerolog.Logger instance
func NewLogger() zerolog.Logger {
	logWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.InfoLevel
	if os.Getenv("DEBUG") == "true" {
		level = zerolog.DebugLevel
	}

	return zerolog.New(logWriter).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Module provides the application logger and routes fx events through it.
func Module() fx.Option {
	logger := NewLogger()

	return fx.Options(
		fx.WithLogger(fxlogger.WithZerolog(logger.With().Str("component", "fx").Logger())),
		fx.Module(
			"log",
			fx.Supply(logger),
		),
	)
}
