// Package log is a thin zerolog wrapper used by the command line tools.
// Library packages never log.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// G is the process logger.
var G = New()

// Option configures a Logger.
type Option func(*options)

type options struct {
	w      io.Writer
	level  zerolog.Level
	caller bool
	json   bool
}

// WithWriter sets the output. The default is stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.w = w
	}
}

func WithLevel(level zerolog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

func WithCaller() Option {
	return func(o *options) {
		o.caller = true
	}
}

// WithJSON emits raw JSON lines instead of the console format.
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// New builds a Logger. Without options it writes human readable output to
// stderr at info level.
func New(opts ...Option) *Logger {
	o := &options{w: os.Stderr, level: zerolog.InfoLevel}
	for _, opt := range opts {
		opt(o)
	}

	w := o.w
	if !o.json {
		w = zerolog.ConsoleWriter{Out: o.w, TimeFormat: time.DateTime}
	}
	ctx := zerolog.New(w).Level(o.level).With().Timestamp()
	if o.caller {
		ctx = ctx.Caller()
	}
	return &Logger{Logger: ctx.Logger()}
}

// SetGlobal replaces G.
func SetGlobal(l *Logger) {
	if l != nil {
		G = l
	}
}

// ParseLevel accepts zerolog level names in any case.
func ParseLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log: %w", err)
	}
	return level, nil
}
