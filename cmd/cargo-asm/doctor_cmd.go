package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/cargo-asm/internal/config"
	"github.com/raphi011/cargo-asm/internal/doctor"
	"github.com/raphi011/cargo-asm/internal/log"
	"github.com/raphi011/cargo-asm/internal/output"
	"github.com/raphi011/cargo-asm/internal/storage"
)

func newDoctorCmd(g *globalFlags) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check toolchain, config and workspace cache",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Check that cargo and rustc are available, that the config files parse,
that the workspace manifest loads and that the workspace cache is fresh.

With --fix, stale cache entries are pruned.`,
		Example: `  cargo asm doctor        # Report problems
  cargo asm doctor --fix  # Report and prune stale cache entries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			opts := doctor.Options{
				ManifestPath: g.manifestPath,
				TargetDir:    config.FromContext(ctx).Build.TargetDir,
			}
			if path, err := config.Path(); err == nil {
				opts.ConfigPath = path
			}
			if dir, err := storage.Dir(); err == nil {
				opts.CacheDir = dir
			} else {
				l.Debug("cache directory unavailable", "error", err)
			}

			checks := doctor.Run(ctx, opts)
			doctor.Print(out.Writer(), checks, out.Color())

			if fix {
				out.Println()
				if err := doctor.Fix(out.Writer(), opts); err != nil {
					return err
				}
			}

			if n := doctor.Failed(checks); n > 0 {
				return fmt.Errorf("%d checks failed", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Prune stale workspace cache entries")

	return cmd
}
