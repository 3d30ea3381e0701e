// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"placecast/internal/env"
)

// New constructs a zerolog logger configured from the environment.
// LOG_LEVEL selects the minimum level (default info); LOG_PRETTY=true switches
// from JSON to the human-readable console writer.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(env.Get("LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if env.Get("LOG_PRETTY", "") == "true" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
