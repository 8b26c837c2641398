// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/z5labs/embedweave"
	"github.com/z5labs/embedweave/internal/slogfield"
	"github.com/z5labs/embedweave/weaving"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCommand(opts *globalOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the resolved embedding configuration",
		Long: `show prints the embedding configuration of FILE with every default
applied, as JSON, YAML or TOML.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := embedweave.LoadFile(cmd.Context(), path, opts.loadOptions()...)
			if err != nil {
				return err
			}

			b, err := encode(cfg, format)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = opts.stdout.Write(b)
				return err
			}

			err = writeFile(cmd.Context(), opts.log, out, b)
			if err != nil {
				return err
			}
			opts.log.InfoContext(
				cmd.Context(),
				"wrote embedding configuration",
				slogfield.String("path", path),
				slogfield.String("out", out),
				slogfield.String("format", format),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml or toml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

// writeFile replaces path atomically. The pending file is synced before
// the rename.
func writeFile(ctx context.Context, log *slog.Logger, path string, b []byte) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		// no-op once the file has been committed
		if err := f.Cleanup(); err != nil {
			log.DebugContext(ctx, "failed to clean up pending file", slogfield.String("out", path), slogfield.Error(err))
		}
	}()

	_, err = f.Write(b)
	if err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	err = f.CloseAtomicallyReplace()
	if err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func encode(cfg weaving.Configuration, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, UsageError(fmt.Errorf("invalid format %q: must be json, yaml or toml", format))
}
