package dotenv

import "github.com/ardnew/dotenv/log"

// Option applies a configuration option to config.
type Option func(config) config

// config holds the collaborators of a [Loader].
type config struct {
	store   Store
	ambient Lookuper
	logger  log.Logger
}

// makeConfig returns the default configuration overridden by opts.
// By default values are written to [Process] and references fall back to
// the process environment. The zero [log.Logger] discards all messages.
func makeConfig(opts ...Option) config {
	c := config{
		store:   Process(),
		ambient: Environ(),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithStore returns an option that writes resolved values into s instead of
// the process-wide store. A nil s is ignored.
func WithStore(s Store) Option {
	return func(c config) config {
		if s != nil {
			c.store = s
		}

		return c
	}
}

// WithAmbient returns an option that resolves nested references not found
// in the store against l instead of the process environment. A nil l
// disables ambient lookups.
func WithAmbient(l Lookuper) Option {
	return func(c config) config {
		if l == nil {
			l = LookupFunc(func(string) (string, bool) { return "", false })
		}

		c.ambient = l

		return c
	}
}

// WithLogger returns an option that sets the logger used for trace and debug
// diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
