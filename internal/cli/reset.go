package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"pdfshelf/internal/repository"
)

func resetCommand(env *Env) *Command {
	flagSet := flag.NewFlagSet("reset", flag.ContinueOnError)
	confirm := flagSet.Bool("yes", false, "Confirm dropping every library table")

	return &Command{
		Flags: flagSet,
		Usage: "reset --yes",
		Short: "Drop the library tables for the configured prefix (uploaded files are kept)",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if env.Config.Environment == "prod" {
				return errors.New("refusing to drop tables in the prod environment")
			}
			if !*confirm {
				return errors.New("--yes is required")
			}

			store, err := repository.Open(ctx, env.Config, env.Logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DropAll(ctx); err != nil {
				return err
			}

			o.Printf("Dropped %s (%s)\n", strings.Join(store.Tables.All(), ", "), store.Engine)
			return nil
		},
	}
}
