package dotenv

import (
	"log/slog"
	"strings"
)

const quoteMarker = `"`

// quoted reports whether raw opens a double-quoted value.
func quoted(raw string) bool { return strings.HasPrefix(raw, quoteMarker) }

// spanQuote resolves a double-quoted value that starts on the current line of
// c. It returns the literal content between the quotes and the number of
// lines after the current one that belong to the value. The cursor is not
// moved; the caller advances past the consumed lines.
//
// Following lines are taken verbatim, joined with "\n", up to the first line
// containing '"'. Text after that quote is discarded.
func spanQuote(c *cursor, a assignment) (string, int, error) {
	value := strings.TrimPrefix(a.raw, quoteMarker)

	if strings.HasSuffix(value, quoteMarker) {
		return strings.TrimSuffix(value, quoteMarker), 0, nil
	}

	var sb strings.Builder

	sb.WriteString(value)

	for n := 1; ; n++ {
		line, ok := c.peek(n)
		if !ok {
			return "", 0, ErrUnterminatedQuote.
				For(a.name).
				With(slog.Int("line", a.line.Number))
		}

		sb.WriteByte('\n')

		if i := strings.Index(line.Text, quoteMarker); i >= 0 {
			sb.WriteString(line.Text[:i])

			return sb.String(), n, nil
		}

		sb.WriteString(line.Text)
	}
}
