package resolve

import (
	"github.com/raphi011/cargo-asm/internal/selector"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

// SelectPackage resolves the package to build.
func SelectPackage(sel selector.Selector, ws *workspace.Workspace) (string, error) {
	pkg := ws.Root()

	if pkg == nil {
		switch {
		case sel.PackageHint != "":
			p, ok := ws.Member(sel.PackageHint)
			if !ok {
				// Not a member: cargo may still know it (e.g. a path dependency).
				return sel.PackageHint, nil
			}
			pkg = p
		case sel.Focus != nil:
			return packageForFocus(*sel.Focus, ws)
		default:
			return "", &VirtualWorkspaceError{
				ManifestPath: ws.ManifestPath(),
				Members:      memberNames(ws),
			}
		}
	}

	if len(pkg.Targets) > 1 && sel.Focus == nil {
		return "", targetAmbiguity(pkg)
	}
	return pkg.Name, nil
}

// packageForFocus finds the one member that owns a target matching focus.
func packageForFocus(focus selector.Focus, ws *workspace.Workspace) (string, error) {
	var candidates []string
	for _, p := range ws.Members() {
		for _, t := range p.Targets {
			if focus.Matches(t) {
				candidates = append(candidates, p.Name)
				break
			}
		}
	}

	switch len(candidates) {
	case 0:
		return "", &FocusNoMatchError{Focus: focus, Suggestions: suggestFoci(focus, ws)}
	case 1:
		return candidates[0], nil
	default:
		return "", &FocusAmbiguousError{Focus: focus, Packages: candidates}
	}
}

func targetAmbiguity(pkg *workspace.Package) *TargetAmbiguousError {
	err := &TargetAmbiguousError{Package: pkg.Name}
	for _, t := range pkg.Targets {
		f, ok := selector.FocusFor(t)
		if !ok {
			continue
		}
		err.Targets = append(err.Targets, TargetChoice{
			Focus:       f,
			Description: t.Description(),
			SrcPath:     t.SrcPath,
		})
	}
	return err
}

func memberNames(ws *workspace.Workspace) []string {
	names := make([]string, 0, len(ws.Members()))
	for _, p := range ws.Members() {
		names = append(names, p.Name)
	}
	return names
}
