package dotenv

import (
	"regexp"
	"strings"
)

const nestedMarker = "${"

// reference matches a nested variable reference such as ${APP_HOST} or
// ${app.host}. The submatch is the referenced name.
var reference = regexp.MustCompile(`\$\{([a-zA-Z0-9_.]+)\}`)

// resolver looks a referenced name up in one source.
type resolver func(name string) (string, bool)

// storeResolver resolves names against committed values.
func storeResolver(s Store) resolver {
	return func(name string) (string, bool) {
		v, ok := s.Lookup(name)
		if !ok {
			return "", false
		}

		return v.String(), true
	}
}

// replacement is a resolved reference span within a value.
type replacement struct {
	start, end int
	text       string
}

// expand substitutes every ${name} reference in value. Each name is resolved
// by the first resolver that knows it. If any name is unknown, nothing is
// substituted and the error names the first unresolved reference.
//
// A "${" without a matching "}" is not a reference and is left as is.
func expand(value string, sources ...resolver) (string, error) {
	if !strings.Contains(value, nestedMarker) {
		return value, nil
	}

	spans, err := collect(value, sources)
	if err != nil {
		return "", err
	}

	if len(spans) == 0 {
		return value, nil
	}

	var sb strings.Builder

	last := 0

	for _, r := range spans {
		sb.WriteString(value[last:r.start])
		sb.WriteString(r.text)
		last = r.end
	}

	sb.WriteString(value[last:])

	return sb.String(), nil
}

// collect resolves every reference in value without modifying it.
func collect(value string, sources []resolver) ([]replacement, error) {
	matches := reference.FindAllStringSubmatchIndex(value, -1)
	spans := make([]replacement, 0, len(matches))

	for _, m := range matches {
		name := value[m[2]:m[3]]

		text, ok := lookup(name, sources)
		if !ok {
			return nil, ErrNestedVariableNotFound.For(name)
		}

		spans = append(spans, replacement{start: m[0], end: m[1], text: text})
	}

	return spans, nil
}

func lookup(name string, sources []resolver) (string, bool) {
	for _, source := range sources {
		if text, ok := source(name); ok {
			return text, true
		}
	}

	return "", false
}
