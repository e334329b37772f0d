package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the service logger. Local runs get a human-readable console
// writer; deployed runs emit JSON for log aggregation.
func New(service string, local bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if local {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(out).With().Timestamp().Str("service", service).Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("service", service).Logger()
}
