package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"pdfshelf/internal/service/library"
	"pdfshelf/internal/vocabulary"
)

func tagsCommand(env *Env) *Command {
	flagSet := flag.NewFlagSet("tags", flag.ContinueOnError)
	textFile := flagSet.StringP("text-file", "t", "", "File with extracted document text (- for stdin)")
	filename := flagSet.StringP("filename", "f", "", "Filename used when the text yields nothing")
	maxTags := flagSet.IntP("max", "n", 0, "Maximum number of tags (0 = configured default)")
	asJSON := flagSet.Bool("json", false, "Print a JSON array")

	return &Command{
		Flags: flagSet,
		Usage: "tags [--text-file F] [--filename N] [--max N]",
		Short: "Suggest tags for a document without touching the library",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if *textFile == "" && *filename == "" {
				return errors.New("--text-file or --filename is required")
			}

			text, err := readText(o, *textFile)
			if err != nil {
				return err
			}

			words, err := vocabulary.NewRegistry()
			if err != nil {
				return err
			}

			extractor := library.NewTagExtractor(words, env.Config.DefaultMaxTags)
			tags := extractor.Extract(text, *filename, *maxTags)

			if *asJSON {
				data, err := json.Marshal(tags)
				if err != nil {
					return err
				}
				o.Println(string(data))
				return nil
			}

			for _, tag := range tags {
				o.Println(tag)
			}
			return nil
		},
	}
}

func readText(o *IO, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(o.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(data), nil
	}
}
