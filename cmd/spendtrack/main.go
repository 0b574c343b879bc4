package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"spendtrack/internal/cli"
	applog "spendtrack/internal/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env-file", ".env", "optional file with environment variables")
	plain := flag.Bool("plain", false, "print raw markdown instead of styled output")
	flag.Parse()

	if err := cli.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *envFile, err)
		return int(subcommands.ExitFailure)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(subcommands.ExitFailure)
	}
	logger := cli.SetupLogger(cfg)

	app := &cli.App{
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Plain:  *plain,
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander, app)

	ctx := context.Background()
	status := commander.Execute(ctx)

	if err := app.Close(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to close storage", applog.FieldOperation, applog.OpShutdown, applog.FieldError, err)
		if status == subcommands.ExitSuccess {
			status = subcommands.ExitFailure
		}
	}
	return int(status)
}
