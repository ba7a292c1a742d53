package cli

import (
	"context"
	"io"
	"log/slog"

	"pdfshelf/internal/config"
)

// Env is what every command may depend on
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

func commands(env *Env) []*Command {
	return []*Command{
		tagsCommand(env),
		auditCommand(env),
		resetCommand(env),
	}
}

// Run dispatches args (without the program name) and returns the exit code
func Run(ctx context.Context, env *Env, in io.Reader, out, errOut io.Writer, args []string) int {
	o := NewIO(in, out, errOut)
	cmds := commands(env)

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(o, cmds)
		return 0
	}

	for _, cmd := range cmds {
		if cmd.Name() == args[0] {
			return cmd.Run(ctx, o, args[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", args[0])
	o.ErrPrintln()
	printUsage(NewIO(in, errOut, errOut), cmds)
	return 1
}

func printUsage(o *IO, cmds []*Command) {
	o.Println("pdfctl - PDF library maintenance")
	o.Println()
	o.Println("Usage: pdfctl <command> [flags]")
	o.Println()
	o.Println("Commands:")
	for _, cmd := range cmds {
		o.Println(cmd.HelpLine())
	}
}
