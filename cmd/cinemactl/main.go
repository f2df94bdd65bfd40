// Package main provides cinemactl, the box-office command line for the cinema
// graph: seeding, ticket sales, gate scans, search and snapshots.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/di"
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
	"github.com/marczakjulia/BYT-PROJECT/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, rest, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "cinemactl: %v\n", err)
		return 2
	}
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "cinemactl: unknown command %q\n", rest[0])
		usage(stderr)
		return 2
	}

	injector := di.NewContainer(cfg)
	defer func() { _ = injector.Shutdown() }()

	if err := di.Bootstrap(ctx, injector); err != nil {
		fmt.Fprintf(stderr, "cinemactl: %v\n", err)
		return domainerrors.CodeOf(err).ExitCode()
	}

	log := do.MustInvoke[*logger.Logger](injector)
	a := newApp(injector, stdout)

	if err := cmd.run(a, ctx, rest[1:]); err != nil {
		log.WithError(err).Debug("Command failed", "command", rest[0])
		fmt.Fprintf(stderr, "cinemactl %s: %v\n", rest[0], err)
		return domainerrors.CodeOf(err).ExitCode()
	}

	if cmd.mutates {
		if err := a.save(ctx); err != nil {
			fmt.Fprintf(stderr, "cinemactl: %v\n", err)
			return domainerrors.CodeOf(err).ExitCode()
		}
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: cinemactl [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].usage)
	}
}
