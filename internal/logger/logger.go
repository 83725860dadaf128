// Package logger builds the process-level structured logger used by the
// command-line entrypoints. Battle events go through battle.BattleLog; this
// logger covers everything around a run: startup parameters, load failures
// and run summaries.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to stdout at the given level.
// Unknown level names fall back to info.
func New(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && parsed != zerolog.NoLevel {
		lvl = parsed
	}
	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}
