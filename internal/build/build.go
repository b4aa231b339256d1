// Package build turns a resolved selection into a "cargo rustc" invocation
// that emits assembly, and runs it.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raphi011/cargo-asm/internal/cmd"
	"github.com/raphi011/cargo-asm/internal/selector"
)

// Syntax selects the assembly dialect LLVM prints.
type Syntax string

const (
	Intel Syntax = "intel"
	ATT   Syntax = "att"
)

// CodegenArg renders the syntax as a rustc -C argument.
func (s Syntax) CodegenArg() string {
	return "llvm-args=-x86-asm-syntax=" + string(s)
}

// Plan describes one build.
type Plan struct {
	ManifestPath string
	TargetDir    string // passed as --target-dir; empty: cargo's default
	Package      string
	Crate        string // crate name of the built target, filters the .s files
	Filter       selector.CompileFilter
	Syntax       Syntax

	// WorkspaceTargetDir is cargo's default target directory for the
	// workspace, used to find the output when TargetDir is empty.
	WorkspaceTargetDir string

	Frozen    bool
	Locked    bool
	Offline   bool
	Verbosity int

	// Passed through for the assembly viewer; cargo ignores them.
	Function string
	Index    int
	Rust     bool
	FullName bool
}

// Args returns the cargo arguments for the plan.
func (p Plan) Args() []string {
	args := []string{"rustc", "--manifest-path", p.ManifestPath, "--package", p.Package}
	args = append(args, p.Filter.Args()...)
	args = append(args, "--release")
	if p.TargetDir != "" {
		args = append(args, "--target-dir", p.TargetDir)
	}
	if p.Frozen {
		args = append(args, "--frozen")
	}
	if p.Locked {
		args = append(args, "--locked")
	}
	if p.Offline {
		args = append(args, "--offline")
	}
	for range p.Verbosity {
		args = append(args, "-v")
	}
	syntax := p.Syntax
	if syntax == "" {
		syntax = Intel
	}
	return append(args, "--", "--emit", "asm", "-C", syntax.CodegenArg())
}

// CommandLine renders the plan as a shell-like command line.
func (p Plan) CommandLine() string {
	parts := []string{"cargo"}
	for _, a := range p.Args() {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// ViewerOptions renders the settings that only matter when reading the
// assembly, e.g. "function=parse index=0 rust=false full-name=false".
func (p Plan) ViewerOptions() string {
	function := p.Function
	if function == "" {
		function = "*"
	}
	return fmt.Sprintf("function=%s index=%d rust=%t full-name=%t", quote(function), p.Index, p.Rust, p.FullName)
}

// DepsDir is where cargo places the emitted .s files.
func (p Plan) DepsDir() string {
	targetDir := p.TargetDir
	if targetDir == "" {
		targetDir = p.WorkspaceTargetDir
	}
	if targetDir == "" {
		targetDir = filepath.Join(filepath.Dir(p.ManifestPath), "target")
	}
	return filepath.Join(targetDir, "release", "deps")
}

// Run executes the plan, streaming cargo's progress to progress, and returns
// the emitted assembly files, newest first.
func Run(ctx context.Context, p Plan, progress io.Writer) ([]string, error) {
	if _, err := cmd.StreamContext(ctx, "", progress, "cargo", p.Args()...); err != nil {
		return nil, fmt.Errorf("cargo rustc: %w", err)
	}
	return AsmFiles(p.DepsDir(), p.Crate)
}

// AsmFiles lists the .s files in dir emitted for crate, newest first. Cargo
// names them "<crate>-<hash>.s" with dashes in the crate name replaced by
// underscores. An empty crate lists every .s file.
func AsmFiles(dir, crate string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	type asmFile struct {
		path    string
		modTime int64
	}
	var files []asmFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".s" || !emittedFor(e.Name(), crate) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, asmFile{filepath.Join(dir, e.Name()), info.ModTime().UnixNano()})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].modTime != files[j].modTime {
			return files[i].modTime > files[j].modTime
		}
		return files[i].path < files[j].path
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

func emittedFor(file, crate string) bool {
	if crate == "" {
		return true
	}
	prefix := strings.ReplaceAll(crate, "-", "_") + "-"
	hash, ok := strings.CutPrefix(strings.TrimSuffix(file, ".s"), prefix)
	return ok && hash != "" && !strings.Contains(hash, "-")
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\$`*?") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
