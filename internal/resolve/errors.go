package resolve

import (
	"fmt"
	"strings"

	"github.com/raphi011/cargo-asm/internal/selector"
)

// Ambiguity is implemented by errors that list the selections which would
// resolve them.
type Ambiguity interface {
	error
	Choices() []Choice
}

// Choice is one way to refine a selector: pick a package, a target, or both.
type Choice struct {
	Label   string
	Package string
	Focus   *selector.Focus
}

// Apply returns sel refined by this choice.
func (c Choice) Apply(sel selector.Selector) selector.Selector {
	if c.Package != "" {
		sel = sel.WithPackage(c.Package)
	}
	if c.Focus != nil {
		sel = sel.WithFocus(*c.Focus)
	}
	return sel
}

// VirtualWorkspaceError is returned when a virtual workspace is resolved
// without -p and without a target focus.
type VirtualWorkspaceError struct {
	ManifestPath string
	Members      []string
}

func (e *VirtualWorkspaceError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q defines a virtual workspace package, you need to specify which member to use with -p xxxx", e.ManifestPath)
	writePackages(&sb, e.Members)
	return sb.String()
}

// Choices offers every workspace member.
func (e *VirtualWorkspaceError) Choices() []Choice {
	return packageChoices(e.Members)
}

// FocusNoMatchError is returned when no workspace member has a target
// matching the focus.
type FocusNoMatchError struct {
	Focus selector.Focus
	// Suggestions are existing targets of the same kind with similar names.
	Suggestions []selector.Focus
}

func (e *FocusNoMatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target specification %s didn't match any packages", e.Focus)
	if len(e.Suggestions) > 0 {
		sb.WriteString("\nDid you mean:")
		for _, s := range e.Suggestions {
			sb.WriteString("\n\t")
			sb.WriteString(s.String())
		}
	}
	return sb.String()
}

// FocusAmbiguousError is returned when targets matching the focus exist in
// more than one member.
type FocusAmbiguousError struct {
	Focus    selector.Focus
	Packages []string // in workspace member order
}

func (e *FocusAmbiguousError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "There's multiple targets that match %s. Try narrowing the focus by specifying one of those packages:", e.Focus)
	writePackages(&sb, e.Packages)
	return sb.String()
}

// Choices offers the packages containing a matching target.
func (e *FocusAmbiguousError) Choices() []Choice {
	return packageChoices(e.Packages)
}

// TargetChoice is one selectable target of an ambiguous package.
type TargetChoice struct {
	Focus       selector.Focus
	Description string
	SrcPath     string
}

// TargetAmbiguousError is returned when the resolved package has several
// targets and no focus picks one.
type TargetAmbiguousError struct {
	Package string
	Targets []TargetChoice
}

func (e *TargetAmbiguousError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s defines multiple targets, you need to specify which one to use:", e.Package)
	for _, t := range e.Targets {
		fmt.Fprintf(&sb, "\n%s\tfor %s: %q", t.Focus, t.Description, t.SrcPath)
	}
	return sb.String()
}

// Choices offers every selectable target of the package.
func (e *TargetAmbiguousError) Choices() []Choice {
	choices := make([]Choice, len(e.Targets))
	for i, t := range e.Targets {
		f := t.Focus
		choices[i] = Choice{
			Label:   fmt.Sprintf("%s (%s)", f, t.Description),
			Package: e.Package,
			Focus:   &f,
		}
	}
	return choices
}

func writePackages(sb *strings.Builder, names []string) {
	for _, n := range names {
		sb.WriteString("\n\t-p ")
		sb.WriteString(n)
	}
}

func packageChoices(names []string) []Choice {
	choices := make([]Choice, len(names))
	for i, n := range names {
		choices[i] = Choice{Label: "-p " + n, Package: n}
	}
	return choices
}
