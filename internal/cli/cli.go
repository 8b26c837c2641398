// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the embedweave command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/z5labs/embedweave"
	"github.com/z5labs/embedweave/internal/try"

	"github.com/spf13/cobra"
)

// LogLevelEnv is consulted when --log-level is not given.
const LogLevelEnv = "EMBEDWEAVE_LOG_LEVEL"

type globalOptions struct {
	stdout io.Writer
	stderr io.Writer

	weaver string
	log    *slog.Logger
}

func (o *globalOptions) loadOptions() []embedweave.LoadOption {
	return []embedweave.LoadOption{embedweave.WeaverName(o.weaver)}
}

// Execute runs the command line with args and maps panics to errors.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	defer try.Recover(&err)

	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewCommand builds the root command.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{
		stdout: stdout,
		stderr: stderr,
	}

	cmd := &cobra.Command{
		Use:   "embedweave",
		Short: "Inspect and validate assembly embedding configuration",
		Long: `embedweave reads the weaver element of a weavers file and reports the
embedding configuration an assembly-embedding pipeline would see: which
dependencies are embedded, in what order they are preloaded and how they
are loaded at runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return UsageError(fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return UsageError(errors.New("missing command: run embedweave --help for usage"))
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd, stderr)
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return UsageError(err)
	})
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.String("log-level", "info", "Log level: debug, info, warn or error (env "+LogLevelEnv+")")
	flags.String("log-format", "text", "Log format: text or json")
	flags.StringVar(&opts.weaver, "weaver", embedweave.DefaultWeaverName, "Name of the weaver element holding the configuration")

	cmd.AddCommand(
		newValidateCommand(opts),
		newShowCommand(opts),
	)
	return cmd
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return UsageError(err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return UsageError(err)
		}
		return nil
	}
}
