// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/z5labs/embedweave"
	"github.com/z5labs/embedweave/internal/slogfield"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newValidateCommand(opts *globalOptions) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that weavers files hold a valid embedding configuration",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs < 1 {
				return UsageError(fmt.Errorf("invalid --jobs %d: must be at least 1", jobs))
			}

			errs := make([]error, len(args))

			var g errgroup.Group
			g.SetLimit(jobs)
			for i, path := range args {
				g.Go(func() error {
					start := time.Now()
					cfg, err := embedweave.LoadFile(cmd.Context(), path, opts.loadOptions()...)
					if err != nil {
						opts.log.ErrorContext(
							cmd.Context(),
							"invalid embedding configuration",
							slogfield.String("path", path),
							slogfield.Error(err),
						)
						errs[i] = fmt.Errorf("%s: %w", path, err)
						return errs[i]
					}

					opts.log.InfoContext(
						cmd.Context(),
						"embedding configuration is valid",
						slogfield.String("path", path),
						slogfield.Strings("include", cfg.IncludeAssemblies),
						slogfield.Strings("exclude", cfg.ExcludeAssemblies),
						slogfield.Int("preload", len(cfg.PreloadOrder)),
						slogfield.Bool("temporary_assemblies", cfg.CreateTemporaryAssemblies),
						slogfield.Duration("elapsed", time.Since(start)),
					)
					return nil
				})
			}
			// g has no context, so a failure never cancels the remaining files.
			waitErr := g.Wait()

			failed := 0
			for i, path := range args {
				if errs[i] != nil {
					failed++
					fmt.Fprintf(opts.stdout, "FAIL %s\n", path)
					continue
				}
				fmt.Fprintf(opts.stdout, "ok   %s\n", path)
			}

			if waitErr == nil {
				return nil
			}

			err := errors.Join(errs...)
			opts.log.LogAttrs(
				cmd.Context(),
				slog.LevelDebug,
				"validation finished with failures",
				slogfield.Int("failed", failed),
				slogfield.Int("total", len(args)),
			)
			return err
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of files validated concurrently")
	return cmd
}
