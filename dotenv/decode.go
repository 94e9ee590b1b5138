package dotenv

import (
	"iter"

	"github.com/caarlos0/env/v11"
)

// Decode populates the struct pointed to by v from the string forms of
// values, using `env` struct tags.
//
// Only values are consulted; the process environment is not. Failures wrap
// [ErrDecode].
func Decode(values iter.Seq2[string, Value], v any) error {
	environment := make(map[string]string)

	for name, val := range values {
		environment[name] = val.String()
	}

	err := env.ParseWithOptions(v, env.Options{Environment: environment})
	if err != nil {
		return ErrDecode.Wrap(err)
	}

	return nil
}

// Decode populates v from the values this Loader committed.
// See the package-level [Decode].
func (l *Loader) Decode(v any) error { return Decode(l.Values(), v) }
