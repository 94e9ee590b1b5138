package cmd

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
	"github.com/ardnew/dotenv/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type sourcesKey struct{}

// Sources is the ordered list of dotenv inputs for one invocation.
type Sources struct {
	paths    []string
	hasStdin bool
}

// IsZero reports whether there are no sources.
func (s *Sources) IsZero() bool {
	return s == nil || (len(s.paths) == 0 && !s.hasStdin)
}

// Paths returns the file paths in load order, excluding stdin.
func (s *Sources) Paths() []string {
	if s == nil {
		return nil
	}

	return append([]string(nil), s.paths...)
}

// Loaders returns one [dotenv.Loader] per source, in load order.
// Stdin, if present, is always last.
func (s *Sources) Loaders(opts ...dotenv.Option) ([]*dotenv.Loader, error) {
	if s.IsZero() {
		return nil, pkg.ErrNoSource
	}

	loaders := make([]*dotenv.Loader, 0, len(s.paths)+1)

	for _, path := range s.paths {
		l, err := dotenv.New(path, opts...)
		if err != nil {
			return nil, err
		}

		loaders = append(loaders, l)
	}

	if s.hasStdin {
		loaders = append(loaders, dotenv.NewReader(os.Stdin, opts...))
	}

	return loaders, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSources returns a new context.Context containing the [Sources] built
// from the given paths.
//
// Paths naming the same file (through symlinks, relative paths or hard
// links) are loaded once, at their first position. All occurrences of "-",
// and any path that resolves to stdin, are replaced with a single stdin
// source placed last.
func WithSources(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, buildSources(paths))
}

func buildSources(paths []string) *Sources {
	if len(paths) == 0 {
		return nil
	}

	var srcs Sources

	seen := make(map[fileKey]struct{})

	stdinKey, stdinKnown := fileKey{}, false
	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, stdinKnown = makeFileKey(info)
	}

	for _, path := range paths {
		if path == stdinSource {
			srcs.hasStdin = true

			continue
		}

		key, ok := identify(path)
		if !ok {
			// Unresolvable paths are kept so loading reports them.
			srcs.paths = append(srcs.paths, path)

			continue
		}

		if stdinKnown && key == stdinKey {
			srcs.hasStdin = true

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		srcs.paths = append(srcs.paths, path)
	}

	return &srcs
}

// identify resolves path and returns the device/inode pair of its target.
func identify(path string) (fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sourcesFrom retrieves the [Sources] stored in ctx by [WithSources].
func sourcesFrom(ctx context.Context) *Sources {
	s, _ := ctx.Value(sourcesKey{}).(*Sources)

	return s
}

// load loads every source in ctx, in order, into store.
func load(ctx context.Context, store dotenv.Store) error {
	srcs := sourcesFrom(ctx)

	loaders, err := srcs.Loaders(
		dotenv.WithStore(store),
		dotenv.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	for _, l := range loaders {
		if err := l.Load(ctx); err != nil {
			return ErrLoad.With(slog.String("source", l.Source())).Wrap(err)
		}
	}

	return nil
}

// filter yields only the values whose names are in names, in store order.
// No names selects everything.
func filter(
	values iter.Seq2[string, dotenv.Value],
	names []string,
) iter.Seq2[string, dotenv.Value] {
	if len(names) == 0 {
		return values
	}

	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}

	return func(yield func(string, dotenv.Value) bool) {
		for name, v := range values {
			if _, ok := want[name]; !ok {
				continue
			}

			if !yield(name, v) {
				return
			}
		}
	}
}
