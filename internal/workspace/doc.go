// Package workspace models the package/target graph of a Cargo workspace.
//
// A [Workspace] is either concrete (it has a root package, the one whose
// Cargo.toml was passed via --manifest-path) or virtual (the manifest only
// declares [workspace] members). Each [Package] owns an ordered list of
// [Target] values of a given [Kind].
//
// # Loading
//
// Two loaders build the graph:
//
//   - [LoadMetadata]: runs "cargo metadata --no-deps" and decodes its JSON.
//     This is the default and matches what cargo itself sees.
//   - [LoadManifest]: reads Cargo.toml files directly and discovers targets
//     using cargo's layout conventions. Used with --loader manifest and when
//     cargo is not on PATH.
//
// The graph is built once per invocation and never mutated afterwards.
package workspace
