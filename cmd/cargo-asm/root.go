package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/cargo-asm/internal/config"
	"github.com/raphi011/cargo-asm/internal/format"
	"github.com/raphi011/cargo-asm/internal/log"
	"github.com/raphi011/cargo-asm/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupWorkspace = "workspace"
	GroupConfig    = "config"
)

// globalFlags are shared by the root command and its subcommands.
type globalFlags struct {
	manifestPath string
	verbosity    int
	quiet        bool
	color        bool
	noColor      bool
	loader       string
	frozen       bool
	locked       bool
	offline      bool
	noCache      bool

	// Set once flags and config are combined.
	colorEnabled bool
}

// usageError marks errors caused by a malformed command line.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// Execute builds the root command and runs it with os.Args.
func Execute() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = config.WithConfig(ctx, &cfg)

	g := &globalFlags{}
	rootCmd := newRootCmd(g)
	rootCmd.SetArgs(stripSubcommandName(os.Args[1:]))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, format.Diagnostic(err, g.colorEnabled))
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'cargo asm -h' for help")
		}
		cancel()
		os.Exit(1)
	}
}

func newRootCmd(g *globalFlags) *cobra.Command {
	a := &asmFlags{}

	rootCmd := &cobra.Command{
		Use:   "cargo-asm [FUNCTION] [INDEX]",
		Short: "Show the assembly rustc generates for a function",
		Long: `cargo-asm builds one target of a cargo workspace with --emit asm.

It figures out which package and target to build from -p and the target
flags (--lib, --bin, --test, --bench, --example). When the choice is
ambiguous it lists the candidates, or lets you pick one with -i.

Installed on PATH it also runs as "cargo asm".`,
		Example: `  cargo asm                         # single-target package
  cargo asm -p core --lib parse     # library of member "core"
  cargo asm --bin tool main 1       # second match of "main" in bin "tool"
  cargo asm --dry --example demo    # print the cargo command only
  cargo asm -i                      # pick package and target interactively`,
		Args:                       cobra.MaximumNArgs(2),
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, g)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsm(cmd, args, g, a)
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.manifestPath, "manifest-path", "", "Path to Cargo.toml (default: ./Cargo.toml)")
	pf.CountVarP(&g.verbosity, "verbose", "v", "Show external commands; repeat to pass -v to cargo")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "Suppress all log output")
	pf.BoolVar(&g.color, "color", false, "Force colored output")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&g.loader, "loader", "", "How to read the workspace: metadata or manifest")
	pf.BoolVar(&g.frozen, "frozen", false, "Require Cargo.lock and cache are up to date")
	pf.BoolVar(&g.locked, "locked", false, "Require Cargo.lock is up to date")
	pf.BoolVar(&g.offline, "offline", false, "Run without accessing the network")
	pf.BoolVar(&g.noCache, "no-cache", false, "Always run cargo metadata instead of using the workspace cache")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("color", "no-color")

	_ = rootCmd.RegisterFlagCompletionFunc("loader", cobra.FixedCompletions(config.ValidLoaders, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.MarkPersistentFlagFilename("manifest-path", "toml")

	a.register(rootCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupWorkspace, Title: "Workspace Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)
	rootCmd.AddCommand(newTargetsCmd(g))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd(g))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup combines config files with flags and attaches logger, printer and
// the effective config to the command context.
func setup(cmd *cobra.Command, g *globalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	g.manifestPath = resolveManifestPath(g.manifestPath, cwd)

	cfg, err := config.ForWorkspace(config.FromContext(ctx), workspaceDir(g.manifestPath))
	if err != nil {
		return err
	}
	effective := *cfg
	if err := g.apply(&effective); err != nil {
		return &usageError{err: err}
	}

	g.colorEnabled = resolveColor(g.color, g.noColor, effective.Format.Color,
		isTerminal(os.Stdout), os.Getenv("NO_COLOR"))

	ctx = config.WithConfig(ctx, &effective)
	ctx = log.WithLogger(ctx, log.New(cmd.ErrOrStderr(), g.verbosity > 0, g.quiet))
	ctx = output.WithPrinter(ctx, output.New(cmd.OutOrStdout(), g.colorEnabled))
	cmd.SetContext(ctx)
	return nil
}

// apply overrides cfg with the flags given on the command line.
func (g *globalFlags) apply(cfg *config.Config) error {
	if g.loader != "" {
		if err := config.ValidateLoader(g.loader); err != nil {
			return err
		}
		cfg.Build.Loader = g.loader
	}
	cfg.Build.Frozen = cfg.Build.Frozen || g.frozen
	cfg.Build.Locked = cfg.Build.Locked || g.locked
	cfg.Build.Offline = cfg.Build.Offline || g.offline
	return nil
}

// resolveColor decides whether output is styled. Flags win over the
// configured mode; "auto" needs a terminal and an unset NO_COLOR.
func resolveColor(force, disable bool, mode string, terminal bool, noColorEnv string) bool {
	switch {
	case force:
		return true
	case disable:
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return terminal && noColorEnv == ""
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
