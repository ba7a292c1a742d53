package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"pdfshelf/internal/config"
	"pdfshelf/internal/repository"
	"pdfshelf/internal/service/library"
	"pdfshelf/internal/storage"
)

func auditCommand(env *Env) *Command {
	flagSet := flag.NewFlagSet("audit", flag.ContinueOnError)
	asJSON := flagSet.Bool("json", false, "Print the full report as JSON")
	missingOnly := flagSet.Bool("missing", false, "Only list records whose file is missing")

	return &Command{
		Flags: flagSet,
		Usage: "audit [--json] [--missing]",
		Short: "Resolve every record's file and report sizes; exits 1 when any file is missing",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			store, err := repository.Open(ctx, env.Config, env.Logger)
			if err != nil {
				return err
			}
			defer store.Close()

			byteStore := storage.NewDiskStore(config.UploadChunkSize)
			resolver := library.NewPathResolver(env.Config.UploadDir, env.Config.LegacyPDFDirs, byteStore)
			report, err := library.NewAuditor(store.PDFs, resolver, byteStore, env.Logger).Run(ctx)
			if err != nil {
				return err
			}

			if *asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				o.Println(string(data))
			} else {
				tw := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tFILENAME\tSIZE\tLOCATION")
				for _, entry := range report.Entries {
					if *missingOnly && !entry.Missing() {
						continue
					}
					size, location := "-", "MISSING ("+entry.Path+")"
					if !entry.Missing() {
						size = fmt.Sprintf("%d", *entry.Size)
						location = entry.ResolvedPath
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", entry.ID, entry.Filename, size, location)
				}
				tw.Flush()
				o.Printf("\n%d found, %d missing, %d bytes\n", report.Found, report.Missing, report.TotalBytes)
			}

			if report.Missing > 0 {
				return fmt.Errorf("%d file(s) missing", report.Missing)
			}
			return nil
		},
	}
}
