package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in dotenv format.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Each assignment supplies the default of the flag with the same name.
// Flag names with hyphens (e.g., "log-level") may use underscores in the
// config file (e.g., "log_level"). References such as ${HOME} are expanded
// from the process environment. Example config file:
//
//	# dotenv configuration
//	log_level=debug
//	log_format=text
//	log_pretty=false
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=text
//	--no-log-pretty
//
// Command-line flags override config file values. A config file that fails
// to load is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		store := dotenv.NewMap()

		err := dotenv.NewReader(r,
			dotenv.WithStore(store),
			dotenv.WithLogger(log.Default()),
		).Load(ctx)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		cfg := make(config, store.Len())

		for name, v := range store.All() {
			// Kong parses everything but booleans from strings.
			if v.Kind == dotenv.KindBoolean {
				cfg[name] = v.Bool
			} else {
				cfg[name] = v.String()
			}
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver] for dotenv configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
