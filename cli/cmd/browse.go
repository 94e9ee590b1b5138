package cmd

import (
	"context"

	"github.com/ardnew/dotenv/cli/cmd/browse"
	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
)

// Browse loads the sources and opens an interactive fuzzy finder over the
// values. The entry chosen with Enter is printed as NAME=value.
type Browse struct{}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	store := dotenv.NewMap()

	if err = load(ctx, store); err != nil {
		return err
	}

	err = browse.Run(ctx, store.All(), stdout(ctx), log.Default())
	if err != nil {
		return ErrBrowse.Wrap(err)
	}

	return nil
}
