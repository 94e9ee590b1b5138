package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
)

// Print loads the sources and writes the resulting values to stdout.
type Print struct {
	Format string   `default:"dotenv" enum:"${formatEnum}" help:"Output format (${enum})" short:"o"`
	Names  []string `arg:""           help:"Print only these names"                           optional:""`
}

// Run executes the print command.
func (p *Print) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := dotenv.ParseFormat(p.Format)
	if err != nil {
		return ErrExport.Wrap(err)
	}

	store := dotenv.NewMap()

	if err = load(ctx, store); err != nil {
		return err
	}

	if err = dotenv.Required(store, p.Names...); err != nil {
		return ErrExport.Wrap(err)
	}

	err = dotenv.Export(ctx, stdout(ctx), format, filter(store.All(), p.Names))
	if err != nil {
		return ErrExport.With(slog.String("format", format.String())).Wrap(err)
	}

	log.DebugContext(ctx, "printed values",
		slog.String("format", format.String()),
		slog.Int("count", store.Len()),
	)

	return nil
}
