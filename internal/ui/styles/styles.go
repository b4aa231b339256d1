// Package styles provides shared lipgloss styles for cargo-asm output.
//
// Diagnostics, the targets table, doctor output and the interactive picker
// all draw from this palette.
package styles

import "charm.land/lipgloss/v2"

// Palette
var (
	// Primary is used for package names (cyan/teal)
	Primary = lipgloss.Color("62")

	// Accent highlights flags the user can type (pink)
	Accent = lipgloss.Color("212")

	// Error is used for the diagnostic headline (red)
	Error = lipgloss.Color("196")

	// Muted is used for source paths and secondary text (gray)
	Muted = lipgloss.Color("240")

	// Info is used for hints (gray)
	Info = lipgloss.Color("244")

	// Success marks passed checks (green)
	Success = lipgloss.Color("42")

	// Warning marks checks that need attention (orange)
	Warning = lipgloss.Color("214")
)

var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// FlagStyle renders a command line flag such as "--bin tool"
	FlagStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// PackageStyle renders a package name
	PackageStyle = lipgloss.NewStyle().Foreground(Primary)

	// ErrorStyle renders a diagnostic headline
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// PathStyle renders file system paths
	PathStyle = lipgloss.NewStyle().Foreground(Muted)

	// SuccessStyle renders a passed check marker
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// WarningStyle renders a warning marker
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// HintStyle renders hints below a diagnostic
	HintStyle = lipgloss.NewStyle().
			Foreground(Info).
			Italic(true)
)
