package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger for the CLI. Debug output is opt-in; the
// camera protocol is chatty at debug level (one line per control command).
func New(app string, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}
