// Package format renders resolution errors for the terminal.
//
// Without color, [Diagnostic] returns the error text unchanged so the plain
// message stays the contract. With color, flags, package names and paths
// are styled and the target listing is aligned into columns.
package format
