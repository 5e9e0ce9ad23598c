// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package config holds the command line plumbing shared by the binaries:
// flag parsing with environment fallback, logger and tracer setup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const EnvPrefix = "GUESTLIST"

// LoadEnv reads the given .env files into the process environment.
// Missing files are skipped, variables already set win.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// EnvName maps a flag name onto its environment variable,
// e.g. otlp-grpc becomes GUESTLIST_OTLP_GRPC.
func EnvName(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// BindEnv assigns every flag not given on the command line from its
// environment variable.
func BindEnv(flagSet *pflag.FlagSet) error {
	var errs []error
	flagSet.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		value, ok := os.LookupEnv(EnvName(f.Name))
		if !ok {
			return
		}
		if err := flagSet.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvName(f.Name), err))
		}
	})
	return errors.Join(errs...)
}

// Parse parses args, loads .env and applies the environment fallback.
func Parse(flagSet *pflag.FlagSet, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := LoadEnv(".env"); err != nil {
		return err
	}
	return BindEnv(flagSet)
}

// ParseDeadline reads the RSVP deadline in RFC822 format, e.g.
// "01 May 24 10:00 CET". An empty value means no deadline.
func ParseDeadline(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	deadline, err := time.Parse(time.RFC822, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline: %w", err)
	}
	return deadline, nil
}
