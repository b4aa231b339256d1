package workspace

import (
	"errors"
	"fmt"
)

// Kind is the kind of a build target.
type Kind int

const (
	Library Kind = iota
	Binary
	Test
	Benchmark
	Example
	ExampleLibrary
	CustomBuild
)

// String returns the kind as cargo spells it in metadata output.
func (k Kind) String() string {
	switch k {
	case Library:
		return "lib"
	case Binary:
		return "bin"
	case Test:
		return "test"
	case Benchmark:
		return "bench"
	case Example:
		return "example"
	case ExampleLibrary:
		return "example-lib"
	case CustomBuild:
		return "custom-build"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Target is a single buildable artifact of a package.
type Target struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name"`
	SrcPath string `json:"src_path"`
}

// Description returns a short human readable label, e.g. `bin "tool"`.
func (t Target) Description() string {
	switch t.Kind {
	case Library:
		return "lib"
	case Binary:
		return fmt.Sprintf("bin %q", t.Name)
	case Test:
		return fmt.Sprintf("test %q", t.Name)
	case Benchmark:
		return fmt.Sprintf("bench %q", t.Name)
	case Example, ExampleLibrary:
		return fmt.Sprintf("example %q", t.Name)
	case CustomBuild:
		return "build script"
	default:
		return t.Name
	}
}

// Package is a named workspace member.
type Package struct {
	Name         string   `json:"name"`
	ManifestPath string   `json:"manifest_path"`
	Targets      []Target `json:"targets"`
}

// Workspace is a read-only view of a Cargo workspace.
type Workspace struct {
	manifestPath string
	targetDir    string
	root         *Package
	members      []*Package
}

// ErrEmptyWorkspace is returned when a virtual workspace has no members.
var ErrEmptyWorkspace = errors.New("virtual workspace has no members")

// NewConcrete creates a workspace rooted at root. Additional members are
// appended after the root in the given order; a member with the root's name
// is skipped.
func NewConcrete(manifestPath string, root *Package, others ...*Package) *Workspace {
	members := []*Package{root}
	for _, p := range others {
		if p.Name != root.Name {
			members = append(members, p)
		}
	}
	return &Workspace{manifestPath: manifestPath, root: root, members: members}
}

// NewVirtual creates a workspace without a root package.
// Members keep their discovery order.
func NewVirtual(manifestPath string, members ...*Package) (*Workspace, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%s: %w", manifestPath, ErrEmptyWorkspace)
	}
	return &Workspace{manifestPath: manifestPath, members: members}, nil
}

// ManifestPath returns the manifest the workspace was loaded from.
func (w *Workspace) ManifestPath() string {
	return w.manifestPath
}

// TargetDir returns the directory cargo writes build output to, or "" if
// the loader could not tell.
func (w *Workspace) TargetDir() string {
	return w.targetDir
}

// WithTargetDir returns a copy of w that reports dir as its target directory.
func (w *Workspace) WithTargetDir(dir string) *Workspace {
	c := *w
	c.targetDir = dir
	return &c
}

// Root returns the root package, or nil for a virtual workspace.
func (w *Workspace) Root() *Package {
	return w.root
}

// IsVirtual reports whether the workspace has no root package.
func (w *Workspace) IsVirtual() bool {
	return w.root == nil
}

// Members returns all member packages in discovery order.
func (w *Workspace) Members() []*Package {
	return w.members
}

// Member looks up a member by exact name.
func (w *Workspace) Member(name string) (*Package, bool) {
	for _, p := range w.members {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
