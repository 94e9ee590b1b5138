package dotenv

import (
	"errors"
	"testing"
)

func linesOf(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Index: i, Number: i + 1, Text: text}
	}

	return lines
}

func TestSpanQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lines     []string
		wantValue string
		wantN     int
		wantErr   error
	}{
		{
			name:      "same_line",
			lines:     []string{`TEST="value"`},
			wantValue: "value",
		},
		{
			name:      "empty_quotes",
			lines:     []string{`TEST=""`},
			wantValue: "",
		},
		{
			name:      "multi_line",
			lines:     []string{`TEST="First`, "Second", `Third"`},
			wantValue: "First\nSecond\nThird",
			wantN:     2,
		},
		{
			name:      "closing_quote_first_char",
			lines:     []string{`TEST="First`, `"`},
			wantValue: "First\n",
			wantN:     1,
		},
		{
			name:      "text_after_closing_quote_dropped",
			lines:     []string{`TEST="First`, `Second" trailing`, "NEXT=1"},
			wantValue: "First\nSecond",
			wantN:     1,
		},
		{
			name:      "lines_kept_verbatim",
			lines:     []string{`TEST="a`, "B=c # not a comment", `d"`},
			wantValue: "a\nB=c # not a comment\nd",
			wantN:     2,
		},
		{
			name:      "lone_opening_quote",
			lines:     []string{`TEST="`, `x"`},
			wantValue: "\nx",
			wantN:     1,
		},
		{
			name:    "unterminated",
			lines:   []string{`TEST="unterminated`, "more"},
			wantErr: ErrUnterminatedQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCursor(linesOf(tt.lines...))
			line, _ := c.peek(0)

			a, ok := classify(line)
			if !ok || !quoted(a.raw) {
				t.Fatalf("first line %q is not a quoted assignment", line.Text)
			}

			value, n, err := spanQuote(c, a)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("spanQuote() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("spanQuote() error = %v", err)
			}

			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}

			if n != tt.wantN {
				t.Errorf("consumed = %d, want %d", n, tt.wantN)
			}

			if c.pos != 0 {
				t.Errorf("cursor moved to %d", c.pos)
			}
		})
	}
}

func TestSpanQuote_UnterminatedNamesVariable(t *testing.T) {
	t.Parallel()

	c := newCursor(linesOf(`TEST="unterminated`))
	a, _ := classify(c.lines[0])

	_, _, err := spanQuote(c, a)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not *Error", err)
	}

	if names := e.Names(); len(names) != 1 || names[0] != "TEST" {
		t.Errorf("Names() = %v, want [TEST]", names)
	}
}

func TestCursor(t *testing.T) {
	t.Parallel()

	c := newCursor(linesOf("a", "b", "c"))

	if line, ok := c.peek(2); !ok || line.Text != "c" {
		t.Errorf("peek(2) = %q, %v", line.Text, ok)
	}

	if _, ok := c.peek(3); ok {
		t.Error("peek(3) past end reported ok")
	}

	c.advance(2)

	if line, _ := c.peek(0); line.Text != "c" {
		t.Errorf("after advance(2), peek(0) = %q, want c", line.Text)
	}

	c.advance(5)

	if !c.done() {
		t.Error("cursor not done after advancing past end")
	}
}
