// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package seed fills guest stores from guest list backups or other stores.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/model"
)

var tracer = otel.Tracer("github.com/quixsi/guestlist/internal/seed")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf derives the backup format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported backup format %q", filepath.Ext(path))
}

// ReadFile reads a guest list backup, a plain list of guests.
func ReadFile(path string) ([]*model.Guest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format)
}

func Read(r io.Reader, format Format) ([]*model.Guest, error) {
	guests := []*model.Guest{}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&guests)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&guests)
	default:
		return nil, fmt.Errorf("unsupported backup format %q", format)
	}
	if errors.Is(err, io.EOF) {
		return guests, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s backup: %w", format, err)
	}
	return guests, nil
}

type Result struct {
	Created int
	Skipped int
}

// Into creates every guest in dst, keeping answers. Guests dst already
// knows are skipped.
func Into(ctx context.Context, dst db.GuestStore, guests []*model.Guest) (Result, error) {
	ctx, span := tracer.Start(ctx, "Into")
	defer span.End()

	logger := slog.Default().WithGroup("seed")
	var res Result
	for _, g := range guests {
		if g == nil {
			continue
		}
		_, err := dst.CreateGuest(ctx, g)
		switch {
		case errors.Is(err, db.ErrGuestExists):
			logger.WarnContext(ctx, "skip existing guest", "first_name", g.FirstName, "last_name", g.LastName)
			res.Skipped++
		case err != nil:
			span.RecordError(err)
			return res, fmt.Errorf("create guest %s %s: %w", g.FirstName, g.LastName, err)
		default:
			res.Created++
		}
	}
	span.SetAttributes(attribute.Int("seed.created", res.Created), attribute.Int("seed.skipped", res.Skipped))
	return res, nil
}

// Copy transfers every guest of src into dst.
func Copy(ctx context.Context, dst, src db.GuestStore) (Result, error) {
	guests, err := src.ListGuests(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list source guests: %w", err)
	}
	return Into(ctx, dst, guests)
}

// IfEmpty fills dst from the backup at path when dst holds no guests yet.
// A store that already has guests is left alone.
func IfEmpty(ctx context.Context, dst db.GuestStore, path string) (Result, error) {
	existing, err := dst.ListGuests(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list guests: %w", err)
	}
	if len(existing) > 0 {
		return Result{}, nil
	}
	guests, err := ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read backup: %w", err)
	}
	return Into(ctx, dst, guests)
}
