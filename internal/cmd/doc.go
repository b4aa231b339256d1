// Package cmd runs external commands (cargo) with context cancellation,
// verbose logging and stderr-aware error messages.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, "", "cargo", "metadata", "--no-deps")
//	if err != nil {
//	    // err carries cargo's stderr
//	}
//
// [StreamContext] additionally forwards stderr while the command runs, which
// is what long builds need so the user sees cargo's progress.
//
// # Design Notes
//
// cargo-asm shells out to cargo rather than re-implementing its manifest
// resolution, so the workspace seen here is exactly the one cargo builds.
package cmd
