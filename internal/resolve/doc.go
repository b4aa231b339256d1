// Package resolve decides which package cargo-asm builds.
//
// Given the workspace graph and the user's [selector.Selector], [SelectPackage]
// either returns a single package name or one of the typed errors below. The
// errors carry the valid alternatives so callers can print them, offer a
// picker, or inspect them in tests.
//
// # Decision Order
//
//   - Concrete workspace: the root package.
//   - Virtual workspace, no -p and no focus: [*VirtualWorkspaceError].
//   - Virtual workspace, no -p, a focus: the single package with a matching
//     target, else [*FocusNoMatchError] or [*FocusAmbiguousError].
//   - Virtual workspace, -p: the named member. An unknown name is returned
//     unchanged and left for cargo to resolve.
//
// Once a member package is known and no focus was given, a package with more
// than one target fails with [*TargetAmbiguousError].
package resolve
