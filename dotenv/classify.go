package dotenv

import "strings"

const (
	commentMarker       = "#"
	inlineCommentMarker = " #"
	assignMarker        = "="
)

// assignment is a candidate NAME=VALUE pair produced by [classify].
type assignment struct {
	name string
	raw  string
	line Line
}

// classify decides whether line is a candidate assignment.
//
// A line whose first character is '#' is a comment. Otherwise anything from
// the first " #" on is dropped along with the trailing whitespace it leaves,
// and the remainder is split on its first '='. Lines without '=' or with
// nothing before it are skipped.
func classify(line Line) (assignment, bool) {
	text := line.Text

	if strings.HasPrefix(text, commentMarker) {
		return assignment{}, false
	}

	if i := strings.Index(text, inlineCommentMarker); i >= 0 {
		text = strings.TrimRight(text[:i], " \t")
	}

	name, raw, ok := strings.Cut(text, assignMarker)
	if !ok || name == "" {
		return assignment{}, false
	}

	return assignment{name: name, raw: raw, line: line}, true
}
