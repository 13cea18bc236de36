// Package logging builds the diagnostic logger used by sestmpl.
//
// Diagnostics go to stderr and are separate from the per-template outcome
// lines printed on stdout.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps routine progress quiet; outcome lines already cover it.
const DefaultLevel = "warn"

// New returns a logger writing to w at the named level.
// Console formatting is used when pretty is true, JSON lines otherwise.
func New(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel converts a level name to a zerolog level. Empty means DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: use trace, debug, info, warn, error or disabled", level)
	}
	return lvl, nil
}
