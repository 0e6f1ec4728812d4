package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger: human-readable console output in
// development, JSON at info level elsewhere.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
