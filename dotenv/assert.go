package dotenv

import (
	"iter"

	"github.com/expr-lang/expr"
)

// Assert evaluates each boolean expression against values, exposed to the
// expression by name as their native scalars.
//
// An expression that fails to compile or run (for example, one referring to
// a name not in values) is returned immediately as [ErrAssertion] wrapping
// the cause. Otherwise every expression that yields false is named by a
// single [ErrAssertion], in the order given.
func Assert(values iter.Seq2[string, Value], exprs ...string) error {
	environment := make(map[string]any)

	for name, val := range values {
		environment[name] = val.Native()
	}

	var failed []string

	for _, src := range exprs {
		program, err := expr.Compile(src, expr.Env(environment), expr.AsBool())
		if err != nil {
			return ErrAssertion.For(src).Wrap(err)
		}

		out, err := expr.Run(program, environment)
		if err != nil {
			return ErrAssertion.For(src).Wrap(err)
		}

		if ok, _ := out.(bool); !ok {
			failed = append(failed, src)
		}
	}

	if len(failed) > 0 {
		return ErrAssertion.For(failed...)
	}

	return nil
}

// Assert evaluates exprs against the values this Loader committed.
// See the package-level [Assert].
func (l *Loader) Assert(exprs ...string) error {
	return Assert(l.Values(), exprs...)
}
