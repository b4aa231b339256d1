package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/cargo-asm/internal/resolve"
	"github.com/raphi011/cargo-asm/internal/ui/static"
	"github.com/raphi011/cargo-asm/internal/ui/styles"
)

// Diagnostic renders err for stderr.
func Diagnostic(err error, color bool) string {
	if !color {
		return err.Error()
	}

	var (
		virtual   *resolve.VirtualWorkspaceError
		noMatch   *resolve.FocusNoMatchError
		ambiguous *resolve.FocusAmbiguousError
		targets   *resolve.TargetAmbiguousError
	)

	var sb strings.Builder
	switch {
	case errors.As(err, &virtual):
		sb.WriteString(styles.ErrorStyle.Render(fmt.Sprintf(
			"%q defines a virtual workspace package, you need to specify which member to use with -p xxxx",
			virtual.ManifestPath)))
		writePackages(&sb, virtual.Members)
	case errors.As(err, &noMatch):
		sb.WriteString(styles.ErrorStyle.Render("Target specification "))
		sb.WriteString(styles.FlagStyle.Render(noMatch.Focus.String()))
		sb.WriteString(styles.ErrorStyle.Render(" didn't match any packages"))
		if len(noMatch.Suggestions) > 0 {
			sb.WriteString("\n")
			sb.WriteString(styles.HintStyle.Render("Did you mean:"))
			for _, s := range noMatch.Suggestions {
				sb.WriteString("\n\t")
				sb.WriteString(styles.FlagStyle.Render(s.String()))
			}
		}
	case errors.As(err, &ambiguous):
		sb.WriteString(styles.ErrorStyle.Render("There's multiple targets that match "))
		sb.WriteString(styles.FlagStyle.Render(ambiguous.Focus.String()))
		sb.WriteString(styles.ErrorStyle.Render(". Try narrowing the focus by specifying one of those packages:"))
		writePackages(&sb, ambiguous.Packages)
	case errors.As(err, &targets):
		sb.WriteString(styles.PackageStyle.Render(targets.Package))
		sb.WriteString(styles.ErrorStyle.Render(" defines multiple targets, you need to specify which one to use:"))
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSuffix(TargetTable(targets.Targets, true), "\n"))
	default:
		sb.WriteString(styles.ErrorStyle.Render(err.Error()))
	}
	return sb.String()
}

// TargetTable lists selectable targets as aligned "flag  for description  path"
// rows.
func TargetTable(targets []resolve.TargetChoice, color bool) string {
	rows := make([][]string, len(targets))
	for i, t := range targets {
		flag, path := t.Focus.String(), fmt.Sprintf("%q", t.SrcPath)
		if color {
			flag = styles.FlagStyle.Render(flag)
			path = styles.PathStyle.Render(path)
		}
		rows[i] = []string{flag, "for " + t.Description, path}
	}
	return static.RenderTable(nil, rows, color)
}

func writePackages(sb *strings.Builder, names []string) {
	for _, n := range names {
		sb.WriteString("\n\t")
		sb.WriteString(styles.FlagStyle.Render("-p " + n))
	}
}
