// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/quixsi/guestlist/internal/config"
	"github.com/quixsi/guestlist/internal/db/conn"
	"github.com/quixsi/guestlist/internal/seed"
	"github.com/quixsi/guestlist/internal/server"
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
	flagSet := pflag.NewFlagSet("guestlist-server", pflag.ContinueOnError)
	var (
		serviceName    = flagSet.String("service-name", "guestlist", "otel service name")
		addr           = flagSet.String("addr", "0.0.0.0:8080", "default server address")
		dbStr          = flagSet.String("db", "kvdb://testdata/guests.db", "database connection string, one of kvdb://, jsondb:// or sqlite://")
		otlpAddr       = flagSet.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg    = flagSet.String("log-level", "INFO", "log level")
		deadlineArg    = flagSet.String("deadline", "", "deadline in format: 01 May 24 10:00 CET")
		allowedOrigins = flagSet.StringSlice("allowed-origins", nil, "CORS origins, all origins are allowed if empty")
		seedFile       = flagSet.String("seed", "", "guest list backup (.json, .yaml) loaded when the store is empty. Example value: testdata/guest_list_backup.json")
	)
	if err := config.Parse(flagSet, os.Args[1:]); err != nil {
		return err
	}

	logger, err := config.NewLogger(os.Stdout, *logLevelArg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Info("start and listen", "address", *addr)
	logger.Info("otlp/gRPC", "address", *otlpAddr, "service", *serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := config.SetupTracing(ctx, *otlpAddr, *serviceName)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("flush traces", "error", err)
		}
	}()

	deadline, err := config.ParseDeadline(*deadlineArg)
	if err != nil {
		return err
	}
	if !deadline.IsZero() {
		logger.Info("deadline set to", "date", deadline)
	}

	store, err := conn.Open(*dbStr)
	if err != nil {
		return fmt.Errorf("could not initialize guest store: %w", err)
	}
	defer store.Close()
	if *seedFile != "" {
		res, err := seed.IfEmpty(ctx, store, *seedFile)
		if err != nil {
			return fmt.Errorf("seed guest store: %w", err)
		}
		if res.Created > 0 {
			logger.Info("seeded guest store", "file", *seedFile, "created", res.Created)
		}
	}
	logger.Info("guest store ready", "backend", store.Scheme)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.NewServer(*serviceName, deadline, *allowedOrigins, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error during listen and serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("shutdown")
	return nil
}
