package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/cargo-asm/internal/cache"
	"github.com/raphi011/cargo-asm/internal/storage"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

// completionWorkspace reads the workspace for shell completion from the
// workspace cache, or else from the manifests. It never waits on cargo.
func completionWorkspace(cmd *cobra.Command) (*workspace.Workspace, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, false
	}
	path, _ := cmd.Flags().GetString("manifest-path")
	manifestPath := resolveManifestPath(path, cwd)
	if dir, err := storage.Dir(); err == nil {
		if ws, ok := cache.Lookup(dir, manifestPath); ok {
			return ws, true
		}
	}
	ws, err := workspace.LoadManifest(manifestPath)
	if err != nil {
		return nil, false
	}
	return ws, true
}

// completePackages provides workspace member completion for -p.
func completePackages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws, ok := completionWorkspace(cmd)
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, p := range ws.Members() {
		if strings.HasPrefix(p.Name, toComplete) {
			matches = append(matches, p.Name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeTargets provides target name completion for one target flag. With
// -p set only that package's targets are offered.
func completeTargets(kind workspace.Kind) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		ws, ok := completionWorkspace(cmd)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		pkg, _ := cmd.Flags().GetString("package")
		return targetNames(ws, pkg, kind, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func targetNames(ws *workspace.Workspace, pkg string, kind workspace.Kind, prefix string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range ws.Members() {
		if pkg != "" && p.Name != pkg {
			continue
		}
		for _, t := range p.Targets {
			if t.Kind != kind || seen[t.Name] || !strings.HasPrefix(t.Name, prefix) {
				continue
			}
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	return names
}
