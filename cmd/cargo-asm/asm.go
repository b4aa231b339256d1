package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/cargo-asm/internal/build"
	"github.com/raphi011/cargo-asm/internal/cache"
	"github.com/raphi011/cargo-asm/internal/config"
	"github.com/raphi011/cargo-asm/internal/log"
	"github.com/raphi011/cargo-asm/internal/output"
	"github.com/raphi011/cargo-asm/internal/resolve"
	"github.com/raphi011/cargo-asm/internal/selector"
	"github.com/raphi011/cargo-asm/internal/storage"
	"github.com/raphi011/cargo-asm/internal/ui/progress"
	"github.com/raphi011/cargo-asm/internal/ui/prompt"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

// asmFlags are the flags of the root command itself.
type asmFlags struct {
	targetDir   string
	pkg         string
	lib         bool
	test        string
	bench       string
	example     string
	bin         string
	dry         bool
	rust        bool
	fullName    bool
	intel       bool
	att         bool
	interactive bool
}

func (a *asmFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.targetDir, "target-dir", "", "Directory for all generated artifacts")
	f.StringVarP(&a.pkg, "package", "p", "", "Package to build")
	f.BoolVar(&a.lib, "lib", false, "Build the package's library")
	f.StringVar(&a.test, "test", "", "Build the specified test target")
	f.StringVar(&a.bench, "bench", "", "Build the specified bench target")
	f.StringVar(&a.example, "example", "", "Build the specified example")
	f.StringVar(&a.bin, "bin", "", "Build the specified binary")
	f.BoolVar(&a.dry, "dry", false, "Print the cargo command instead of running it")
	f.BoolVar(&a.rust, "rust", false, "Interleave Rust source with the assembly")
	f.BoolVar(&a.fullName, "full-name", false, "Print full demangled function names")
	f.BoolVar(&a.intel, "intel", false, "Use Intel assembly syntax")
	f.BoolVar(&a.att, "att", false, "Use AT&T assembly syntax")
	f.BoolVarP(&a.interactive, "interactive", "i", false, "Pick package and target from a list when ambiguous")

	cmd.MarkFlagsMutuallyExclusive(selector.FocusFlags...)
	cmd.MarkFlagsMutuallyExclusive("intel", "att")
	_ = cmd.MarkFlagDirname("target-dir")

	_ = cmd.RegisterFlagCompletionFunc("package", completePackages)
	_ = cmd.RegisterFlagCompletionFunc("bin", completeTargets(workspace.Binary))
	_ = cmd.RegisterFlagCompletionFunc("test", completeTargets(workspace.Test))
	_ = cmd.RegisterFlagCompletionFunc("bench", completeTargets(workspace.Benchmark))
	_ = cmd.RegisterFlagCompletionFunc("example", completeTargets(workspace.Example))
}

// picker asks the user for one of options; nil means non-interactive.
type picker func(title string, options []string) (prompt.SelectResult, error)

func runAsm(cmd *cobra.Command, args []string, g *globalFlags, a *asmFlags) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	function, index, err := parsePositionals(args)
	if err != nil {
		return &usageError{err: err}
	}

	sel, err := selectorFromFlags(cmd, a.pkg)
	if err != nil {
		return &usageError{err: err}
	}

	ws, err := loadWorkspace(cmd, g, cfg.Build)
	if err != nil {
		return err
	}

	var pick picker
	if a.interactive {
		if isTerminal(os.Stdin) && isTerminal(os.Stderr) {
			pick = prompt.Select
		} else {
			l.Debug("interactive selection disabled", "reason", "not a terminal")
		}
	}

	sel, pkg, err := resolveSelection(sel, ws, pick)
	if err != nil {
		return err
	}
	l.Debug("resolved", "package", pkg, "focus", focusString(sel))

	plan := build.Plan{
		ManifestPath:       g.manifestPath,
		TargetDir:          targetDir(a.targetDir, cfg.Build.TargetDir),
		Package:            pkg,
		Crate:              crateName(sel, ws, pkg),
		Filter:             sel.Filter(),
		Syntax:             syntax(a, cfg.Format.Syntax),
		WorkspaceTargetDir: ws.TargetDir(),
		Frozen:             cfg.Build.Frozen,
		Locked:             cfg.Build.Locked,
		Offline:            cfg.Build.Offline,
		Verbosity:          max(g.verbosity-1, 0),
		Function:           function,
		Index:              index,
		Rust:               a.rust || cfg.Format.Rust,
		FullName:           a.fullName || cfg.Format.FullName,
	}

	if a.dry {
		out.Println(plan.CommandLine())
		out.Println(plan.ViewerOptions())
		return nil
	}
	l.Debug("viewer options", "options", plan.ViewerOptions())

	var progress io.Writer = cmd.ErrOrStderr()
	if g.quiet {
		progress = io.Discard
	}
	files, err := build.Run(ctx, plan, progress)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no assembly files found in %s", plan.DepsDir())
	}
	for _, f := range files {
		out.Println(f)
	}
	return nil
}

// resolveSelection resolves sel against ws. With a picker, ambiguities are
// presented to the user and the selector is refined until it resolves.
func resolveSelection(sel selector.Selector, ws *workspace.Workspace, pick picker) (selector.Selector, string, error) {
	for {
		pkg, err := resolve.SelectPackage(sel, ws)
		if err == nil {
			return sel, pkg, nil
		}

		var amb resolve.Ambiguity
		if pick == nil || !errors.As(err, &amb) {
			return sel, "", err
		}
		choices := amb.Choices()
		labels := make([]string, len(choices))
		for i, c := range choices {
			labels[i] = c.Label
		}

		res, perr := pick(pickerTitle(err), labels)
		if perr != nil {
			return sel, "", fmt.Errorf("interactive selection: %w", perr)
		}
		if res.Cancelled {
			return sel, "", err
		}
		sel = choices[res.Index].Apply(sel)
	}
}

func pickerTitle(err error) string {
	var targets *resolve.TargetAmbiguousError
	if errors.As(err, &targets) {
		return "Select a target of " + targets.Package
	}
	return "Select a package"
}

// selectorFromFlags builds the selector from -p and the target flags.
func selectorFromFlags(cmd *cobra.Command, pkg string) (selector.Selector, error) {
	sel := selector.Selector{PackageHint: pkg}
	flags := cmd.Flags()
	for _, name := range selector.FocusFlags {
		if !flags.Changed(name) {
			continue
		}
		var value string
		if name != "lib" {
			value, _ = flags.GetString(name)
		}
		f, err := selector.Parse(name, value)
		if err != nil {
			return sel, err
		}
		sel = sel.WithFocus(f)
	}
	return sel, nil
}

// parsePositionals reads the optional FUNCTION and INDEX arguments.
func parsePositionals(args []string) (string, int, error) {
	var function string
	if len(args) > 0 {
		function = args[0]
	}
	if len(args) < 2 {
		return function, 0, nil
	}
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("INDEX must be a non-negative integer, got %q", args[1])
	}
	return function, index, nil
}

// stripSubcommandName drops the "asm" argument cargo passes when the binary
// runs as "cargo asm".
func stripSubcommandName(args []string) []string {
	if len(args) > 0 && args[0] == "asm" {
		return args[1:]
	}
	return args
}

// resolveManifestPath makes path absolute against cwd, defaulting to
// cwd/Cargo.toml. A relative path is canonicalized when it exists.
func resolveManifestPath(path, cwd string) string {
	switch {
	case path == "":
		return filepath.Join(cwd, workspace.ManifestFileName)
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		joined := filepath.Join(cwd, path)
		if canonical, err := filepath.EvalSymlinks(joined); err == nil {
			return canonical
		}
		return joined
	}
}

// crateName returns the name of the target pkg builds for sel, or "" when
// the workspace does not know it.
func crateName(sel selector.Selector, ws *workspace.Workspace, pkg string) string {
	p, ok := ws.Member(pkg)
	if !ok {
		return ""
	}
	if sel.Focus != nil {
		for _, t := range p.Targets {
			if sel.Focus.Matches(t) {
				return t.Name
			}
		}
		return ""
	}
	if len(p.Targets) == 1 {
		return p.Targets[0].Name
	}
	return ""
}

func workspaceDir(manifestPath string) string {
	return filepath.Dir(manifestPath)
}

// loadWorkspace reads the workspace graph with the configured loader. The
// metadata loader falls back to reading manifests when cargo is missing and
// goes through the workspace cache unless --no-cache is set.
func loadWorkspace(cmd *cobra.Command, g *globalFlags, bc config.BuildConfig) (*workspace.Workspace, error) {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	manifestPath := g.manifestPath

	if _, err := os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("could not find %s", manifestPath)
	}

	loader := bc.Loader
	if loader != config.LoaderManifest {
		if err := workspace.CheckCargo(); err != nil {
			l.Printf("Warning: %v, reading %s directly\n", err, workspace.ManifestFileName)
			loader = config.LoaderManifest
		}
	}
	l.Debug("loading workspace", "manifest", manifestPath, "loader", loader)

	if loader == config.LoaderManifest {
		return workspace.LoadManifest(manifestPath)
	}

	var cacheDir string
	if !g.noCache {
		if dir, err := storage.Dir(); err == nil {
			cacheDir = dir
		} else {
			l.Debug("workspace cache disabled", "error", err)
		}
	}
	if cacheDir != "" {
		if ws, ok := cache.Lookup(cacheDir, manifestPath); ok {
			l.Debug("workspace from cache", "dir", cacheDir)
			return ws, nil
		}
	}

	if g.verbosity == 0 && !g.quiet && isTerminal(os.Stderr) {
		sp := progress.NewSpinner(cmd.ErrOrStderr(), "Reading workspace")
		sp.Start()
		defer sp.Stop()
	}
	ws, err := workspace.LoadMetadata(ctx, workspace.MetadataOptions{
		ManifestPath: manifestPath,
		Frozen:       bc.Frozen,
		Locked:       bc.Locked,
		Offline:      bc.Offline,
	})
	if err != nil {
		return nil, err
	}
	if cacheDir != "" {
		if err := cache.Store(cacheDir, ws); err != nil {
			l.Debug("workspace cache not updated", "error", err)
		}
	}
	return ws, nil
}

// targetDir prefers the flag over the configured directory. A relative flag
// value is taken relative to the working directory.
func targetDir(flag, configured string) string {
	if flag == "" {
		return configured
	}
	if abs, err := filepath.Abs(flag); err == nil {
		return abs
	}
	return flag
}

func syntax(a *asmFlags, configured string) build.Syntax {
	switch {
	case a.att:
		return build.ATT
	case a.intel:
		return build.Intel
	case configured == config.SyntaxATT:
		return build.ATT
	default:
		return build.Intel
	}
}

func focusString(sel selector.Selector) string {
	if sel.Focus == nil {
		return "none"
	}
	return sel.Focus.String()
}
