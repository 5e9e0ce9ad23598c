// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// rsvp is the terminal client of the guest list. It opens on the RSVP form
// by default, --route /guest_list opens the guest list administration.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/quixsi/guestlist/internal/client"
	"github.com/quixsi/guestlist/internal/clock"
	"github.com/quixsi/guestlist/internal/config"
	"github.com/quixsi/guestlist/internal/tui"
	"github.com/quixsi/guestlist/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("rsvp", pflag.ContinueOnError)
	var (
		serverURL   = flagSet.String("server", "http://localhost:8080", "guest list backend url")
		route       = flagSet.String("route", tui.RouteRSVP, "view to open, / or /guest_list")
		timeout     = flagSet.Duration("timeout", 10*time.Second, "timeout of a single backend request")
		serviceName = flagSet.String("service-name", "guestlist-rsvp", "otel service name")
		otlpAddr    = flagSet.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg = flagSet.String("log-level", "INFO", "log level")
		logOutput   = flagSet.String("log-output", "", "write JSON log records to this file, discarded if empty")
	)
	if err := config.Parse(flagSet, os.Args[1:]); err != nil {
		return err
	}

	// the terminal belongs to the TUI
	var w io.Writer = io.Discard
	if *logOutput != "" {
		f, err := os.OpenFile(*logOutput, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger, err := config.NewLogger(w, *logLevelArg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := config.SetupTracing(ctx, *otlpAddr, *serviceName)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	c, err := client.New(*serverURL, client.WithTimeout(*timeout))
	if err != nil {
		return err
	}
	logger.Info("starting rsvp client", "server", *serverURL, "route", *route)

	clk := clock.Real()
	model := tui.New(
		workflow.NewRSVPForm(ctx, c.Guest, c.RSVP, clk),
		workflow.NewGuestList(ctx, c.Guest, clk),
		*route,
	)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
