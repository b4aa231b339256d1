package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/raphi011/cargo-asm/internal/cmd"
)

// ErrCargoNotFound indicates cargo is not installed or not in PATH.
var ErrCargoNotFound = errors.New("cargo not found: please install a Rust toolchain (https://rustup.rs)")

// CheckCargo verifies that cargo is available in PATH.
func CheckCargo() error {
	if _, err := exec.LookPath("cargo"); err != nil {
		return ErrCargoNotFound
	}
	return nil
}

// MetadataOptions are forwarded to "cargo metadata".
type MetadataOptions struct {
	ManifestPath string
	Frozen       bool
	Locked       bool
	Offline      bool
}

// Args returns the cargo arguments for a metadata query.
func (o MetadataOptions) Args() []string {
	args := []string{"metadata", "--format-version", "1", "--no-deps", "--manifest-path", o.ManifestPath}
	if o.Frozen {
		args = append(args, "--frozen")
	}
	if o.Locked {
		args = append(args, "--locked")
	}
	if o.Offline {
		args = append(args, "--offline")
	}
	return args
}

type metadata struct {
	Packages         []metadataPackage `json:"packages"`
	WorkspaceMembers []string          `json:"workspace_members"`
	WorkspaceRoot    string            `json:"workspace_root"`
	TargetDirectory  string            `json:"target_directory"`
}

type metadataPackage struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ManifestPath string           `json:"manifest_path"`
	Targets      []metadataTarget `json:"targets"`
}

type metadataTarget struct {
	Name       string   `json:"name"`
	Kind       []string `json:"kind"`
	CrateTypes []string `json:"crate_types"`
	SrcPath    string   `json:"src_path"`
}

// LoadMetadata builds the workspace graph from "cargo metadata".
func LoadMetadata(ctx context.Context, opts MetadataOptions) (*Workspace, error) {
	if err := CheckCargo(); err != nil {
		return nil, err
	}
	out, err := cmd.OutputContext(ctx, "", "cargo", opts.Args()...)
	if err != nil {
		return nil, fmt.Errorf("cargo metadata: %w", err)
	}
	return ParseMetadata(out, opts.ManifestPath)
}

// ParseMetadata decodes "cargo metadata --format-version 1" output.
// The workspace is concrete when one of its members owns manifestPath.
func ParseMetadata(data []byte, manifestPath string) (*Workspace, error) {
	var md metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse cargo metadata: %w", err)
	}

	byID := make(map[string]*metadataPackage, len(md.Packages))
	for i := range md.Packages {
		byID[md.Packages[i].ID] = &md.Packages[i]
	}

	var root *Package
	var members []*Package
	for _, id := range md.WorkspaceMembers {
		mp, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("cargo metadata: workspace member %q not listed in packages", id)
		}
		p := mp.toPackage()
		members = append(members, p)
		if root == nil && samePath(mp.ManifestPath, manifestPath) {
			root = p
		}
	}

	var ws *Workspace
	if root != nil {
		ws = NewConcrete(manifestPath, root, members...)
	} else {
		var err error
		if ws, err = NewVirtual(manifestPath, members...); err != nil {
			return nil, err
		}
	}
	return ws.WithTargetDir(md.targetDir()), nil
}

// targetDir is the directory cargo reported, falling back to the default
// below the workspace root for output that predates target_directory.
func (md *metadata) targetDir() string {
	switch {
	case md.TargetDirectory != "":
		return md.TargetDirectory
	case md.WorkspaceRoot != "":
		return filepath.Join(md.WorkspaceRoot, "target")
	default:
		return ""
	}
}

func (mp *metadataPackage) toPackage() *Package {
	p := &Package{Name: mp.Name, ManifestPath: mp.ManifestPath}
	for _, t := range mp.Targets {
		p.Targets = append(p.Targets, Target{
			Kind:    kindFromMetadata(t.Kind, t.CrateTypes),
			Name:    t.Name,
			SrcPath: t.SrcPath,
		})
	}
	return p
}

// kindFromMetadata maps cargo's kind strings to a Kind. Library crate types
// ("rlib", "cdylib", "proc-macro", ...) all count as Library.
func kindFromMetadata(kinds, crateTypes []string) Kind {
	switch {
	case slices.Contains(kinds, "bin"):
		return Binary
	case slices.Contains(kinds, "test"):
		return Test
	case slices.Contains(kinds, "bench"):
		return Benchmark
	case slices.Contains(kinds, "example"):
		if len(crateTypes) == 0 || slices.Equal(crateTypes, []string{"bin"}) {
			return Example
		}
		return ExampleLibrary
	case slices.Contains(kinds, "custom-build"):
		return CustomBuild
	default:
		return Library
	}
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	ca, errA := filepath.Abs(a)
	cb, errB := filepath.Abs(b)
	return errA == nil && errB == nil && filepath.Clean(ca) == filepath.Clean(cb)
}
