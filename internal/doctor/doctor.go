package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/raphi011/cargo-asm/internal/ui/styles"
)

// Options locate what the checks inspect.
type Options struct {
	ManifestPath string
	ConfigPath   string
	CacheDir     string // empty: cache unavailable
	TargetDir    string // empty: cargo's default
	Tools        []string
}

// DefaultTools are the executables cargo-asm runs.
var DefaultTools = []string{"cargo", "rustc"}

// Run performs all checks.
func Run(ctx context.Context, opts Options) []Check {
	tools := opts.Tools
	if tools == nil {
		tools = DefaultTools
	}

	var checks []Check
	for _, tool := range tools {
		checks = append(checks, checkTool(ctx, tool))
	}
	checks = append(checks,
		checkGlobalConfig(opts.ConfigPath),
		checkLocalConfig(opts.ManifestPath),
		checkWorkspace(opts.ManifestPath),
		checkTargetDir(opts.TargetDir, opts.ManifestPath),
		checkCache(opts.CacheDir),
	)
	return checks
}

// Failed counts the failed checks.
func Failed(checks []Check) int {
	var n int
	for _, c := range checks {
		if c.Status == StatusFail {
			n++
		}
	}
	return n
}

// Print writes the checks grouped by category, followed by a summary.
func Print(w io.Writer, checks []Check, color bool) {
	byCategory := make(map[Category][]Check)
	for _, c := range checks {
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}

	var issues, fixable int
	for _, cat := range categories {
		catChecks := byCategory[cat.category]
		if len(catChecks) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s:\n", cat.title)
		for _, c := range catChecks {
			fmt.Fprintf(w, "  %s %s: %s\n", symbol(c.Status, color), c.Name, c.Detail)
			if c.Status != StatusOK {
				issues++
			}
			if c.Fixable {
				fixable++
			}
		}
	}

	if issues == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return
	}
	fmt.Fprintf(w, "\nFound %d issues\n", issues)
	if fixable > 0 {
		fmt.Fprintln(w, "Run 'cargo asm doctor --fix' to repair.")
	}
}

func symbol(s Status, color bool) string {
	if !color {
		return s.Symbol()
	}
	switch s {
	case StatusOK:
		return styles.SuccessStyle.Render(s.Symbol())
	case StatusWarn:
		return styles.WarningStyle.Render(s.Symbol())
	default:
		return styles.ErrorStyle.Render(s.Symbol())
	}
}
