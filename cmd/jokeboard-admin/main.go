package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	// needsConfig loads and validates the app config (database, session secrets) first.
	needsConfig bool
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
	In     io.Reader
}

func main() {
	logger := bootstrap.InitLogger()
	os.Exit(runCLI(logger, os.Args[1:])) //nolint:forbidigo // CLI must propagate its exit status
}

func runCLI(logger *slog.Logger, args []string) int {
	if len(args) < 1 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		return 2
	}

	cmdName := args[0]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, Out: os.Stdout, In: os.Stdin}
	if cmd.needsConfig {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			logger.ErrorContext(ctx, "load config", "error", err)
			return 1
		}
		cmdCtx.Config = cfg
	}

	if err := cmd.run(cmdCtx, args[1:]); err != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", err)
		return 1
	}
	return 0
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			needsConfig: true,
			run:         runMigrations,
		},
		"create-user": {
			name:        "create-user",
			description: "Register a user with a username and password",
			needsConfig: true,
			run:         runCreateUser,
		},
		"delete-user": {
			name:        "delete-user",
			description: "Delete a user and their jokes; signs them out everywhere",
			needsConfig: true,
			run:         runDeleteUser,
		},
		"hash-password": {
			name:        "hash-password",
			description: "Print a bcrypt hash for a password",
			run:         runHashPassword,
		},
		"gen-secret": {
			name:        "gen-secret",
			description: "Generate a random value for SESSION_SECRET",
			run:         runGenSecret,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: jokeboard-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
