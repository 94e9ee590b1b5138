package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// field is one rendered key/value pair of a record.
type field struct {
	key   string
	text  string
	color string
}

// prettyHandler is a colorized [slog.Handler]. Records are flattened into
// fields, group names joined to keys with '.', and then laid out either on
// one line (text) or as an indented object (JSON).
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	json   bool
	prefix string
	attrs  []field
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, json: true}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		c.attrs = h.flatten(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if t, ok := h.replace(slog.Time(slog.TimeKey, r.Time)); ok {
			fields = append(fields, field{t.Key, t.Value.String(), colorBlue})
		}
	}

	fields = append(fields, field{
		key:   slog.LevelKey,
		text:  strings.ToUpper(Level(r.Level).String()),
		color: levelColor(r.Level),
	})

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, field{
				key:   slog.SourceKey,
				text:  src.File + ":" + strconv.Itoa(src.Line),
				color: colorGray,
			})
		}
	}

	fields = append(fields, field{slog.MessageKey, r.Message, colorReset})
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.flatten(fields, h.prefix, a)

		return true
	})

	var buf bytes.Buffer

	if h.json {
		writeJSONFields(&buf, fields)
	} else {
		writeTextFields(&buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// replace applies the configured ReplaceAttr. It reports false when the
// attribute was dropped.
func (h *prettyHandler) replace(a slog.Attr) (slog.Attr, bool) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a, !a.Equal(slog.Attr{})
}

// flatten appends a, resolved through [slog.LogValuer], to dst. Groups are
// expanded with their key as a prefix.
func (h *prettyHandler) flatten(dst []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			dst = h.flatten(dst, prefix, g)
		}

		return dst
	}

	a, ok := h.replace(a)
	if !ok {
		return dst
	}

	text, color := formatValue(a.Value)

	return append(dst, field{prefix + a.Key, text, color})
}

// formatValue renders v and picks its color. Strings are written bare unless
// they hold control characters, such as a multi-line value, which are quoted
// so a record stays on its own line.
func formatValue(v slog.Value) (string, string) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsFunc(s, func(r rune) bool { return r < ' ' }) {
			s = strconv.Quote(s)
		}

		return s, colorCyan

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return v.String(), colorYellow

	case slog.KindBool:
		if v.Bool() {
			return "true", colorGreen
		}

		return "false", colorRed

	case slog.KindDuration:
		return v.Duration().String(), colorMagenta

	case slog.KindTime:
		return v.Time().Format(time.RFC3339), colorBlue

	default:
		switch x := v.Any().(type) {
		case nil:
			return "null", colorGray
		case slog.Level:
			return strings.ToUpper(Level(x).String()), levelColor(x)
		case error:
			return x.Error(), colorRed
		default:
			return fmt.Sprint(x), colorCyan
		}
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// writeTextFields writes key=value pairs on one line.
func writeTextFields(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray + f.key + colorReset + "=")
		buf.WriteString(f.color + f.text + colorReset)
	}

	buf.WriteByte('\n')
}

// writeJSONFields writes an object with one indented field per line.
func writeJSONFields(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{")

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  " + colorGray + f.key + colorReset + ": ")
		buf.WriteString(f.color + f.text + colorReset)
	}

	buf.WriteString("\n}\n")
}
