// Package doctor checks the environment cargo-asm depends on and repairs
// what it can.
//
// Checks are grouped into categories:
//
//   - [CategoryToolchain]: cargo and rustc are on PATH and runnable
//   - [CategoryConfig]: the global and per-workspace config files parse
//   - [CategoryWorkspace]: the manifest loads and the target directory is usable
//   - [CategoryCache]: stale entries in the workspace cache
//
// # Usage
//
//	checks := doctor.Run(ctx, opts)
//	doctor.Print(w, checks, color)
//	err := doctor.Fix(w, opts) // prune stale cache entries
package doctor
