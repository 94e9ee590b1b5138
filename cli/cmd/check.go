package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
)

// Check loads the sources and verifies required names and assertions.
type Check struct {
	Require []string `help:"Fail unless NAME is defined"                placeholder:"NAME" short:"r"`
	Assert  []string `help:"Fail unless boolean expression EXPR holds" placeholder:"EXPR" sep:"none" short:"a"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	store := dotenv.NewMap()

	if err = load(ctx, store); err != nil {
		return err
	}

	if err = dotenv.Required(store, c.Require...); err != nil {
		return ErrCheck.Wrap(err)
	}

	if err = dotenv.Assert(store.All(), c.Assert...); err != nil {
		return ErrCheck.Wrap(err)
	}

	log.InfoContext(ctx, "check passed",
		slog.Int("values", store.Len()),
		slog.Int("required", len(c.Require)),
		slog.Int("assertions", len(c.Assert)),
	)

	return nil
}
