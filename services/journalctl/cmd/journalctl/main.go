package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tripjournal/libs/journal"
	"tripjournal/libs/logging"
	"tripjournal/services/journalctl/internal/app"
	"tripjournal/services/journalctl/internal/config"
)

func main() {
	envFile := flag.String("env-file", ".env", "dotenv file to read before the environment")
	verbose := flag.Bool("v", false, "log requests and session changes to stderr")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), app.Usage)
		fmt.Fprintln(flag.CommandLine.Output(), "\nflags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatalf("%v", err)
	}

	opts := logging.Options{Level: "warn", Encoding: "console", OutputPaths: []string{"stderr"}}
	if *verbose {
		opts.Level = "debug"
	}
	logger, err := logging.New(opts)
	if err != nil {
		fatalf("%v", err)
	}
	defer logger.Sync() // best-effort flush

	if err := app.New(cfg, logger, os.Stdout).Run(ctx, flag.Args()); err != nil {
		if errors.Is(err, app.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(1)
		}
		fatalf("%s", journal.Message(err))
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "journalctl: "+format+"\n", args...)
	os.Exit(1)
}
