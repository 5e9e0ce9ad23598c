// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// convert seeds a guest store. The source is either another store given as
// connection string or a JSON/YAML guest list backup file.
//
//	convert --from testdata/guest_list_backup.json --to kvdb://testdata/guests.db
//	convert --from kvdb://testdata/guests.db --to sqlite://testdata/guests.sqlite
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/quixsi/guestlist/internal/config"
	"github.com/quixsi/guestlist/internal/db/conn"
	"github.com/quixsi/guestlist/internal/seed"
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
	flagSet := pflag.NewFlagSet("guestlist-convert", pflag.ContinueOnError)
	var (
		from        = flagSet.String("from", "testdata/guest_list_backup.json", "source connection string or backup file (.json, .yaml)")
		to          = flagSet.String("to", "kvdb://testdata/guests.db", "destination connection string")
		logLevelArg = flagSet.String("log-level", "INFO", "log level")
	)
	if err := config.Parse(flagSet, os.Args[1:]); err != nil {
		return err
	}

	logger, err := config.NewLogger(os.Stdout, *logLevelArg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx := context.Background()

	dst, err := conn.Open(*to)
	if err != nil {
		return fmt.Errorf("open destination: %w", err)
	}
	defer dst.Close()

	logger.Info("start converting", "from", *from, "to", *to)
	var res seed.Result
	if strings.Contains(*from, "://") {
		src, err := conn.Open(*from)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()
		res, err = seed.Copy(ctx, dst, src)
		if err != nil {
			return err
		}
	} else {
		guests, err := seed.ReadFile(*from)
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		res, err = seed.Into(ctx, dst, guests)
		if err != nil {
			return err
		}
	}
	logger.Info("finished converting", "created", res.Created, "skipped", res.Skipped)
	return nil
}
