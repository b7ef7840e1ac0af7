package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/target/jokeboard/internal/bootstrap"
)

const defaultMigrationTimeout = 5 * time.Minute

type migrateOptions struct {
	Timeout time.Duration
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts migrateOptions
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum time to spend applying migrations")
	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, fmt.Errorf("--timeout must be positive, got %s", opts.Timeout)
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	in, err := connectInfra(ctx, cmdCtx, false)
	if err != nil {
		return err
	}
	defer in.close(cmdCtx)

	if err := bootstrap.RunMigrations(ctx, in.DB, cmdCtx.Logger); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "migrations applied\n")
}
