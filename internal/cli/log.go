// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/z5labs/embedweave/config"

	"github.com/spf13/cobra"
)

// flagValue reads a string flag only when it was given on the command line,
// so environment variables can take precedence over flag defaults.
func flagValue(cmd *cobra.Command, name string) config.Reader[string] {
	return config.ReaderFunc[string](func(ctx context.Context) (config.Value[string], error) {
		if !cmd.Flags().Changed(name) {
			return config.Value[string]{}, nil
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return config.Value[string]{}, err
		}
		return config.ValueOf(v), nil
	})
}

func parseLevel(ctx context.Context, s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, UsageError(fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s))
}

func newLogger(cmd *cobra.Command, w io.Writer) (*slog.Logger, error) {
	ctx := cmd.Context()

	level, err := config.Read(ctx, config.Map(
		config.Default("info", config.Or(flagValue(cmd, "log-level"), config.Env(LogLevelEnv))),
		parseLevel,
	))
	if err != nil {
		return nil, err
	}

	format := config.MustOr(ctx, "text", flagValue(cmd, "log-format"))

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, UsageError(fmt.Errorf("invalid log format %q: must be text or json", format))
}
