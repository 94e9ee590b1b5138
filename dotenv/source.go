package dotenv

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single physical line. Dotenv files routinely carry
// certificates and keys, so this is well above bufio's 64 KiB default.
const maxLineSize = 1 << 20

// Line is one raw line of input.
type Line struct {
	Index  int    // 0-based position in the line sequence
	Number int    // 1-based physical line number in the source
	Text   string // content without line terminator
}

// ReadLines reads r completely and returns its lines in order. Empty lines
// are removed and "\n" or "\r\n" terminators are stripped.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for number := 1; s.Scan(); number++ {
		text := strings.TrimSuffix(s.Text(), "\r")
		if text == "" {
			continue
		}

		lines = append(lines, Line{
			Index:  len(lines),
			Number: number,
			Text:   text,
		})
	}

	if err := s.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return lines, nil
}

// cursor walks a line sequence with bounded lookahead.
type cursor struct {
	lines []Line
	pos   int
}

func newCursor(lines []Line) *cursor { return &cursor{lines: lines} }

// done reports whether every line has been consumed.
func (c *cursor) done() bool { return c.pos >= len(c.lines) }

// peek returns the line offset positions ahead of the current one.
func (c *cursor) peek(offset int) (Line, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.lines) {
		return Line{}, false
	}

	return c.lines[i], true
}

// advance moves the cursor n lines forward.
func (c *cursor) advance(n int) { c.pos = min(c.pos+n, len(c.lines)) }
