// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package config

import (
	"fmt"
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger writing to w at the given level name.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("unable to parse log level %q: %w", level, err)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})), nil
}
