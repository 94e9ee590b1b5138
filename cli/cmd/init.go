package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
	"github.com/ardnew/dotenv/pkg"
	"github.com/ardnew/dotenv/profile"
)

// Init generates a configuration file with current flag values.
//
// The file is itself a dotenv file. Flag names are written with
// underscores, so --log-level becomes log_level.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.OpenFile(confPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "# %s configuration\n", pkg.Name)
	if err == nil {
		err = dotenv.Export(ctx, file, dotenv.FormatDotenv, i.flagValues(ktx).All())
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// flagValues collects the current value of every configurable flag.
func (i *Init) flagValues(ktx *kong.Context) *dotenv.Map {
	values := dotenv.NewMap()

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		v, ok := flagValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		_ = values.Set(strings.ReplaceAll(flag.Name, "-", "_"), v)
	}

	return values
}

// flagValue converts a parsed flag value to a [dotenv.Value]. Unset and
// empty values report false.
func flagValue(val any) (dotenv.Value, bool) {
	switch v := val.(type) {
	case nil:
		return dotenv.Value{}, false

	case bool:
		return dotenv.Boolean(v), true

	case string:
		return dotenv.String(v), v != ""

	case int:
		return dotenv.Integer(int64(v)), true

	case int64:
		return dotenv.Integer(v), true

	case float64:
		return dotenv.Float(v), true

	case []string:
		return dotenv.String(strings.Join(v, ",")), len(v) > 0

	default:
		s := fmt.Sprint(v)

		return dotenv.String(s), s != ""
	}
}
