// Package logging builds the process logger and the HTTP middleware that
// tags every request with an id, logs it on completion and recovers panics.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Level is a zerolog level name. Empty picks info in production and
	// debug otherwise.
	Level   string
	Env     string
	AppName string
	// Writer defaults to stderr.
	Writer io.Writer
}

// New returns the root logger. Development output is human-readable; every
// other environment writes JSON lines.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	production := opts.Env == "production"
	if !production && opts.Env != "test" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	lvl := zerolog.DebugLevel
	if production {
		lvl = zerolog.InfoLevel
	}
	if opts.Level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level)); err == nil {
			lvl = parsed
		}
	}

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if opts.AppName != "" {
		ctx = ctx.Str("namespace", opts.AppName)
	}
	return ctx.Logger()
}
