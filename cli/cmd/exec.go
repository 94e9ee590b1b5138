package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
)

// Exec loads the sources into the process environment and runs a command
// with it.
type Exec struct {
	Path    []string `help:"Prepend DIR to PATH, also when finding the command" placeholder:"DIR" type:"path"`
	Command []string `arg:""                                   help:"Command and arguments to run" passthrough:""`
}

// Run executes the exec command.
func (e *Exec) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if len(e.Command) == 0 {
		return ErrExec.Wrap(ErrNoCommand)
	}

	if err = load(ctx, dotenv.Process()); err != nil {
		return err
	}

	env := os.Environ()
	path := os.Getenv("PATH")

	if len(e.Path) > 0 {
		path = prefixPath(path, e.Path...)
		env = append(env, "PATH="+path)
	}

	name, err := lookPath(e.Command[0], path)
	if err != nil {
		return ErrExec.With(slog.String("command", e.Command[0])).Wrap(err)
	}

	//nolint:gosec
	c := exec.CommandContext(ctx, name, e.Command[1:]...)
	c.Env = env
	c.Stdin = os.Stdin
	c.Stdout = stdout(ctx)
	c.Stderr = os.Stderr

	log.DebugContext(ctx, "exec",
		slog.Any("command", e.Command),
		slog.Any("path", e.Path),
	)

	if err = c.Run(); err != nil {
		return ErrExec.With(slog.String("command", e.Command[0])).Wrap(err)
	}

	return nil
}

// lookPath finds the executable name in the directories of the PATH-like
// list path. Names containing a path separator are checked as given.
func lookPath(name, path string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) ||
		strings.ContainsRune(name, '/') {
		return exec.LookPath(name)
	}

	for _, dir := range filepath.SplitList(path) {
		file := filepath.Join(dir, name)
		if dir == "" || dir == "." {
			file = "." + string(filepath.Separator) + name
		}

		if found, err := exec.LookPath(file); err == nil {
			return found, nil
		}
	}

	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// prefixPath returns the PATH-like list path with dirs moved to the front.
func prefixPath(path string, dirs ...string) string {
	return mung.Make(
		mung.WithSubjectItems(path),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()
}
