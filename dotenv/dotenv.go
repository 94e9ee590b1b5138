package dotenv

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
)

// readerSource names loaders constructed with [NewReader] in diagnostics.
const readerSource = "<reader>"

// Loader loads one dotenv source into a [Store].
type Loader struct {
	config

	source    string
	open      func() (io.ReadCloser, error)
	committed *Map
}

// New returns a Loader for the dotenv file at path.
//
// It fails with [ErrFileNotReadable] if path is empty, does not exist, is not
// a regular file, or cannot be opened for reading. An empty file is valid and
// loads nothing.
func New(path string, opts ...Option) (*Loader, error) {
	if path == "" {
		return nil, ErrFileNotReadable.With(slog.String("path", path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrFileNotReadable.For(path).Wrap(err)
	}

	if !info.Mode().IsRegular() {
		return nil, ErrFileNotReadable.For(path).
			With(slog.String("mode", info.Mode().String()))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrFileNotReadable.For(path).Wrap(err)
	}

	_ = f.Close()

	return &Loader{
		config:    makeConfig(opts...),
		source:    path,
		open:      func() (io.ReadCloser, error) { return os.Open(path) },
		committed: NewMap(),
	}, nil
}

// NewReader returns a Loader that reads dotenv content from r. The reader is
// consumed by the first call to [Loader.Load].
func NewReader(r io.Reader, opts ...Option) *Loader {
	return &Loader{
		config:    makeConfig(opts...),
		source:    readerSource,
		open:      func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
		committed: NewMap(),
	}
}

// Source returns the path the Loader reads, or "<reader>".
func (l *Loader) Source() string { return l.source }

// Load reads the source and commits each assignment to the store in order.
//
// Names already present in the store keep their value. A load that fails
// part way keeps everything committed before the failing line.
func (l *Loader) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rc, err := l.open()
	if err != nil {
		return ErrFileNotReadable.For(l.source).Wrap(err)
	}
	defer rc.Close()

	lines, err := ReadLines(rc)
	if err != nil {
		return err
	}

	l.logger.TraceContext(ctx, "dotenv read",
		slog.String("source", l.source),
		slog.Int("lines", len(lines)),
	)

	c := newCursor(lines)

	for ; !c.done(); c.advance(1) {
		line, _ := c.peek(0)

		a, ok := classify(line)
		if !ok {
			continue
		}

		value := a.raw

		if quoted(value) {
			var n int

			value, n, err = spanQuote(c, a)
			if err != nil {
				return err
			}

			c.advance(n)
		}

		value, err = expand(value, storeResolver(l.store), l.ambient.LookupEnv)
		if err != nil {
			return err
		}

		err = l.commit(ctx, a, Coerce(value))
		if err != nil {
			return err
		}
	}

	l.logger.DebugContext(ctx, "dotenv loaded",
		slog.String("source", l.source),
		slog.Int("committed", l.committed.Len()),
	)

	return nil
}

// commit writes v under a.name unless the store already holds that name.
func (l *Loader) commit(ctx context.Context, a assignment, v Value) error {
	if _, ok := l.store.Lookup(a.name); ok {
		l.logger.DebugContext(ctx, "dotenv assignment discarded",
			slog.String("name", a.name),
			slog.Int("line", a.line.Number),
		)

		return nil
	}

	err := l.store.Set(a.name, v)
	if err != nil {
		return ErrStoreWrite.For(a.name).
			With(slog.Int("line", a.line.Number)).
			Wrap(err)
	}

	l.logger.TraceContext(ctx, "dotenv assignment committed",
		slog.String("name", a.name),
		slog.String("kind", v.Kind.String()),
		slog.Int("line", a.line.Number),
	)

	return l.committed.Set(a.name, v)
}

// Required verifies that every name is present in the Loader's store.
// See the package-level [Required].
func (l *Loader) Required(names ...string) error {
	return Required(l.store, names...)
}

// Required verifies that every name is present in s. Missing names are
// reported by a single [ErrMissingRequiredVariables] in the order given,
// duplicates included. No names is always satisfied.
func Required(s Store, names ...string) error {
	var missing []string

	for _, name := range names {
		if _, ok := s.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return ErrMissingRequiredVariables.For(missing...)
	}

	return nil
}

// Values returns an iterator over the assignments this Loader committed, in
// source order. Names discarded by first-wins are not included.
func (l *Loader) Values() iter.Seq2[string, Value] {
	return l.committed.All()
}
