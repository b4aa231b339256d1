// Package prompt provides the interactive picker cargo-asm shows when a
// request is ambiguous and --interactive is set.
//
// The picker renders on stderr so stdout stays usable for piping.
package prompt
