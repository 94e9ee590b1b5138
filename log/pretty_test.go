package log

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

// ansi matches the color escapes written by the pretty handlers.
var ansi = regexp.MustCompile("\033\\[[0-9;]*m")

// failure stands in for an error type that describes itself as a group.
type failure struct{ name string }

func (f failure) Error() string { return "missing " + f.name }

func (f failure) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("msg", f.Error()),
		slog.String("name", f.name),
	)
}

func prettyOutput(t *testing.T, format Format, opts []Option, log func(Logger)) string {
	t.Helper()

	var buf bytes.Buffer

	opts = append([]Option{WithFormat(format), WithPretty(true)}, opts...)
	log(Make(&buf, opts...))

	return ansi.ReplaceAllString(buf.String(), "")
}

func TestPretty_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []Option
		log    func(Logger)
		text   []string
		json   []string
		reject string
	}{
		{
			name: "time_layout",
			opts: []Option{WithTimeLayout("2006")},
			log:  func(l Logger) { l.Info("loaded") },
			text: []string{"level=INFO msg=loaded"},
			json: []string{"  level: INFO,\n  msg: loaded\n}"},
		},
		{
			name:   "time_none",
			opts:   []Option{WithTimeLayout("none")},
			log:    func(l Logger) { l.Info("loaded") },
			text:   []string{"level=INFO"},
			json:   []string{"{\n  level: INFO"},
			reject: "time",
		},
		{
			name: "trace_level",
			opts: []Option{WithLevel(LevelTrace)},
			log:  func(l Logger) { l.Trace("assignment committed", slog.Int("line", 3)) },
			text: []string{"level=TRACE", "line=3"},
			json: []string{"level: TRACE", "line: 3"},
		},
		{
			name: "log_valuer_expanded",
			log: func(l Logger) {
				l.Error("load failed", slog.Any("error", failure{"PORT"}))
			},
			text: []string{"error.msg=missing PORT", "error.name=PORT"},
			json: []string{"error.msg: missing PORT", "error.name: PORT"},
		},
		{
			name: "group_prefix",
			log: func(l Logger) {
				l.With(slog.String("source", ".env")).Info("loaded",
					slog.Group("value", slog.String("kind", "integer")))
			},
			text: []string{"source=.env", "value.kind=integer"},
			json: []string{"source: .env", "value.kind: integer"},
		},
		{
			name: "multi_line_quoted",
			log:  func(l Logger) { l.Info("loaded", slog.String("MOTD", "a\nb")) },
			text: []string{`MOTD="a\nb"`},
			json: []string{`MOTD: "a\nb"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := prettyOutput(t, FormatText, tt.opts, tt.log)
			if strings.Count(text, "\n") != 1 {
				t.Errorf("text output %q is not one line", text)
			}

			for _, s := range tt.text {
				if !strings.Contains(text, s) {
					t.Errorf("text output %q missing %q", text, s)
				}
			}

			json := prettyOutput(t, FormatJSON, tt.opts, tt.log)
			for _, s := range tt.json {
				if !strings.Contains(json, s) {
					t.Errorf("json output %q missing %q", json, s)
				}
			}

			if tt.reject != "" &&
				(strings.Contains(text, tt.reject) || strings.Contains(json, tt.reject)) {
				t.Errorf("output contains %q:\n%s\n%s", tt.reject, text, json)
			}
		})
	}
}

func TestPretty_TimeLayoutApplied(t *testing.T) {
	t.Parallel()

	text := prettyOutput(t, FormatText, []Option{WithTimeLayout("2006")}, func(l Logger) {
		l.Info("loaded")
	})

	if !regexp.MustCompile(`^time=\d{4} level=INFO`).MatchString(text) {
		t.Errorf("text output %q does not use the time layout", text)
	}
}

func TestPretty_EnabledFollowsLevel(t *testing.T) {
	t.Parallel()

	h := newPrettyTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{
		Level: slog.Level(LevelWarn),
	})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn")
	}

	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn")
	}

	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") returned a new handler")
	}
}
