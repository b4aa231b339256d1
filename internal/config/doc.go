// Package config handles loading and validation of cargo-asm configuration.
//
// Configuration is read from ~/.config/cargo-asm/config.toml. The
// CARGO_ASM_CONFIG environment variable points at a different file.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags
//   - .cargo-asm.toml next to the workspace Cargo.toml
//   - Global config file
//   - Default values
//
// # Key Settings
//
//	[format]
//	color = "auto"      # "auto", "always" or "never"
//	syntax = "intel"    # "intel" or "att"
//	rust = false        # interleave Rust source
//	full_name = false   # print full demangled names
//
//	[build]
//	target_dir = ""     # must be absolute or ~/... in the global file
//	loader = "metadata" # "metadata" (cargo metadata) or "manifest" (read Cargo.toml)
//	frozen = false
//	locked = false
//	offline = false
//
// In .cargo-asm.toml a relative target_dir is resolved against the
// workspace directory.
package config
