// Package main provides pdfctl, the maintenance command line for the PDF library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pdfshelf/internal/cli"
	"pdfshelf/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// Logs go to stderr so command output stays pipeable
	logWriter, logCloser, err := config.SetupLogWriter(cfg.LogDir, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	env := &cli.Env{Config: cfg, Logger: config.NewLogger(cfg, logWriter)}
	exitCode := cli.Run(ctx, env, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])

	stop()
	logCloser.Close()
	os.Exit(exitCode)
}
