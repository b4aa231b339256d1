package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/cargo-asm/internal/config"
	"github.com/raphi011/cargo-asm/internal/output"
	"github.com/raphi011/cargo-asm/internal/selector"
	"github.com/raphi011/cargo-asm/internal/ui/static"
	"github.com/raphi011/cargo-asm/internal/ui/styles"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

func newTargetsCmd(g *globalFlags) *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:     "targets",
		Short:   "List workspace packages and their targets",
		GroupID: GroupWorkspace,
		Args:    cobra.NoArgs,
		Long: `List every member package of the workspace with its targets and the
flag that selects each target.

Build scripts and example libraries cannot be selected and show "-".`,
		Example: `  cargo asm targets           # all members
  cargo asm targets -p core   # only package "core"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd, g, config.FromContext(cmd.Context()).Build)
			if err != nil {
				return err
			}

			packages := ws.Members()
			if pkg != "" {
				p, ok := ws.Member(pkg)
				if !ok {
					return fmt.Errorf("package %q is not a member of %s", pkg, ws.ManifestPath())
				}
				packages = []*workspace.Package{p}
			}

			out := output.FromContext(cmd.Context())
			out.Printf("%s", targetsTable(packages, workspaceDir(ws.ManifestPath()), out.Color()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Only list targets of this package")
	_ = cmd.RegisterFlagCompletionFunc("package", completePackages)

	return cmd
}

// targetsTable renders one row per target. Source paths are shown relative
// to root when possible.
func targetsTable(packages []*workspace.Package, root string, color bool) string {
	var rows [][]string
	for _, p := range packages {
		for _, t := range p.Targets {
			flag := "-"
			if f, ok := selector.FocusFor(t); ok {
				flag = f.String()
			}
			path := t.SrcPath
			if rel, err := filepath.Rel(root, path); err == nil {
				path = rel
			}
			name := p.Name
			if color {
				name = styles.PackageStyle.Render(name)
				flag = styles.FlagStyle.Render(flag)
				path = styles.PathStyle.Render(path)
			}
			rows = append(rows, []string{name, flag, t.Description(), path})
		}
	}
	return static.RenderTable([]string{"PACKAGE", "FLAG", "TARGET", "PATH"}, rows, color)
}
