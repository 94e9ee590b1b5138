package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Level is the severity of a log message. It extends [slog.Level] with
// [LevelTrace], used for per-assignment diagnostics.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the level of a new [Logger].
const DefaultLevel = LevelInfo

// Levels yields the name of every level, most verbose first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel returns the level named by s, case-insensitively, or
// [DefaultLevel] when s names no level. Offsets such as "debug+2" are
// accepted as in [slog.Level.UnmarshalText].
func ParseLevel(s string) Level {
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects how log records are encoded.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format of a new [Logger]. Text reads best next to
// command output on a terminal.
const DefaultFormat = FormatText

// Formats yields the name of every format, the default first.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s, or [DefaultFormat].
func ParseFormat(s string) Format {
	for _, format := range []Format{FormatText, FormatJSON} {
		if strings.EqualFold(strings.TrimSpace(s), format.String()) {
			return format
		}
	}

	return DefaultFormat
}

// FormatTime renders a record timestamp. An empty result drops the time.
type FormatTime func(time.Time) string

const (
	// DefaultTimeLayout is the timestamp layout of a new [Logger].
	DefaultTimeLayout = time.RFC3339

	// DefaultCaller reports whether a new [Logger] records source locations.
	DefaultCaller = false

	// DefaultPretty reports whether a new [Logger] colorizes its output.
	DefaultPretty = true
)

// config is the immutable configuration of a [Logger]. Options return a
// modified copy, so a Logger never observes a change after it is made.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// makeConfig returns the defaults, writing to w (stderr when w is nil so
// diagnostics stay off stdout), with opts applied on top.
func makeConfig(w io.Writer, opts ...Option) config {
	if w == nil {
		w = os.Stderr
	}

	return apply(config{
		output:     w,
		formatTime: makeFormatTimeFunc(DefaultTimeLayout),
		level:      DefaultLevel,
		format:     DefaultFormat,
		caller:     DefaultCaller,
		pretty:     DefaultPretty,
	}, opts...)
}

// handler builds the [slog.Handler] described by c.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.format == FormatJSON && c.pretty:
		return newPrettyJSONHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.format == FormatText && c.pretty:
		return newPrettyTextHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	default:
		return slog.DiscardHandler
	}
}

// replaceAttr applies the time layout and names levels by [Level.String]
// so trace records read "TRACE" rather than "DEBUG-4".
func (c config) replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			s := c.formatTime(t)
			if s == "" {
				return slog.Attr{}
			}

			a.Value = slog.StringValue(s)
		}

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
		}
	}

	return a
}
