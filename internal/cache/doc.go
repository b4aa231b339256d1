// Package cache persists workspace graphs read through "cargo metadata" so
// later runs and shell completion can skip the cargo invocation.
//
// The cache is a single JSON file in the cargo-asm cache directory, keyed by
// manifest path:
//
//	{
//	  "workspaces": {
//	    "/src/project/Cargo.toml": {
//	      "manifest_path": "/src/project/Cargo.toml",
//	      "virtual": true,
//	      "packages": [ ... ],
//	      "stamps": { "/src/project/Cargo.toml": 1718000000000000000, ... },
//	      "cached_at": "2024-06-10T08:00:00Z"
//	    }
//	  }
//	}
//
// # Freshness
//
// An entry records the modification times of every manifest and of the
// directories cargo discovers targets in (src, src/bin, tests, benches,
// examples), plus each package directory and its parent. Adding a target
// file or a member crate changes one of them. An entry is used only while
// all stamps match and it is younger than [MaxAge].
//
// # Concurrency
//
// [Store] and [Prune] hold an exclusive flock on workspaces.lock while they
// read, modify and write the file.
//
// # Related Commands
//
// "cargo asm doctor" reports stale entries; "cargo asm doctor --fix" prunes
// them.
package cache
