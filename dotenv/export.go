package dotenv

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"iter"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects the output syntax of [Export].
type Format int

const (
	FormatDotenv Format = iota // dotenv
	FormatShell                // shell
	FormatJSON                 // json
	FormatYAML                 // yaml
)

// DefaultFormat is the format used when none is given.
const DefaultFormat = FormatDotenv

var formatNames = [...]string{
	FormatDotenv: "dotenv",
	FormatShell:  "shell",
	FormatJSON:   "json",
	FormatYAML:   "yaml",
}

// String returns the format's name as accepted by [ParseFormat].
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}

	return formatNames[f]
}

// Formats returns an iterator over the names of all formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range formatNames {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseFormat returns the Format with the given case-insensitive name.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}

	return DefaultFormat, ErrInvalidFormat.For(s)
}

// exportIndent is the indent width of structured formats.
const exportIndent = 2

// Export writes values to w in format f.
//
//   - dotenv: NAME=value, double-quoted when the value contains a newline
//     or starts with '"'
//   - shell:  export NAME='value', single quotes escaped for POSIX shells
//   - json:   an object preserving order and scalar types
//   - yaml:   a mapping preserving order and scalar types
//
// The dotenv format has no escapes, so some values do not survive a reload:
// " #" on the first line starts a comment, '"' on a later line ends the
// value, blank lines are dropped and "${" is expanded again.
func Export(
	ctx context.Context,
	w io.Writer,
	f Format,
	values iter.Seq2[string, Value],
) error {
	switch f {
	case FormatDotenv:
		return writeLines(w, values, func(name string, v Value) string {
			return name + assignMarker + dotenvQuote(v.String())
		})

	case FormatShell:
		return writeLines(w, values, func(name string, v Value) string {
			return "export " + name + "=" + shellQuote(v.String())
		})

	case FormatJSON:
		return exportJSON(w, values)

	case FormatYAML:
		return exportYAML(ctx, w, values)

	default:
		return ErrInvalidFormat.For(f.String())
	}
}

func writeLines(
	w io.Writer,
	values iter.Seq2[string, Value],
	format func(string, Value) string,
) error {
	bw := bufio.NewWriter(w)

	for name, v := range values {
		if _, err := bw.WriteString(format(name, v) + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// dotenvQuote wraps s in double quotes when it would otherwise be read as
// the start of a quoted value or span several lines.
func dotenvQuote(s string) string {
	if quoted(s) || strings.Contains(s, "\n") {
		return quoteMarker + s + quoteMarker
	}

	return s
}

// shellQuote wraps s in single quotes, closing and reopening the quote
// around each embedded single quote.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func exportJSON(w io.Writer, values iter.Seq2[string, Value]) error {
	var sb strings.Builder

	indent := strings.Repeat(" ", exportIndent)
	count := 0

	sb.WriteString("{")

	for name, v := range values {
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}

		val, err := json.Marshal(v.Native())
		if err != nil {
			return err
		}

		if count > 0 {
			sb.WriteString(",")
		}

		sb.WriteString("\n" + indent)
		sb.Write(key)
		sb.WriteString(": ")
		sb.Write(val)

		count++
	}

	if count > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())

	return err
}

func exportYAML(
	ctx context.Context,
	w io.Writer,
	values iter.Seq2[string, Value],
) error {
	var doc yaml.MapSlice

	for name, v := range values {
		doc = append(doc, yaml.MapItem{Key: name, Value: v.Native()})
	}

	if len(doc) == 0 {
		_, err := io.WriteString(w, "{}\n")

		return err
	}

	data, err := yaml.MarshalContext(ctx, doc, yaml.Indent(exportIndent))
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
