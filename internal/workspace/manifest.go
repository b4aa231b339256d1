package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFileName is the name cargo looks for in each package directory.
const ManifestFileName = "Cargo.toml"

// buildScriptTarget is the name cargo gives every build script target.
const buildScriptTarget = "build-script-build"

type manifest struct {
	Package   *manifestPackage   `toml:"package"`
	Workspace *manifestWorkspace `toml:"workspace"`
	Lib       *manifestTarget    `toml:"lib"`
	Bin       []manifestTarget   `toml:"bin"`
	Test      []manifestTarget   `toml:"test"`
	Bench     []manifestTarget   `toml:"bench"`
	Example   []manifestTarget   `toml:"example"`
}

type manifestPackage struct {
	Name         string `toml:"name"`
	Workspace    string `toml:"workspace"` // path to the workspace root
	Build        any    `toml:"build"`     // path string or false
	Autobins     *bool  `toml:"autobins"`
	Autotests    *bool  `toml:"autotests"`
	Autobenches  *bool  `toml:"autobenches"`
	Autoexamples *bool  `toml:"autoexamples"`
}

type manifestWorkspace struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

type manifestTarget struct {
	Name      string   `toml:"name"`
	Path      string   `toml:"path"`
	CrateType []string `toml:"crate-type"`
}

// LoadManifest builds the workspace graph by reading Cargo.toml files
// directly. Members listed in [workspace] are expanded as globs relative to
// the manifest directory; entries in exclude are dropped.
func LoadManifest(manifestPath string) (*Workspace, error) {
	m, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(manifestPath)

	var members []*Package
	if m.Workspace != nil {
		paths, err := expandMembers(dir, m.Workspace.Members, m.Workspace.Exclude)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			memberManifest := filepath.Join(p, ManifestFileName)
			if samePath(memberManifest, manifestPath) {
				continue
			}
			mm, err := readManifest(memberManifest)
			if err != nil {
				return nil, err
			}
			if mm.Package == nil {
				return nil, fmt.Errorf("workspace member %s has no [package] section", memberManifest)
			}
			members = append(members, packageFromManifest(memberManifest, mm))
		}
	}

	targetDir := manifestTargetDir(manifestPath, m)
	if m.Package != nil {
		ws := NewConcrete(manifestPath, packageFromManifest(manifestPath, m), members...)
		return ws.WithTargetDir(targetDir), nil
	}
	if m.Workspace == nil {
		return nil, fmt.Errorf("%s has neither [package] nor [workspace]", manifestPath)
	}
	ws, err := NewVirtual(manifestPath, members...)
	if err != nil {
		return nil, err
	}
	return ws.WithTargetDir(targetDir), nil
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m.Package != nil && m.Package.Name == "" {
		return nil, fmt.Errorf("%s: package.name is required", path)
	}
	return &m, nil
}

// expandMembers resolves member globs to package directories in the order
// they are listed. Globs expand in lexical order; duplicates keep their
// first position.
func expandMembers(dir string, patterns, exclude []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[filepath.Clean(filepath.Join(dir, e))] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace member pattern %q: %w", pat, err)
		}
		if matches == nil && !strings.ContainsAny(pat, "*?[") {
			return nil, fmt.Errorf("workspace member %q does not exist", pat)
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if seen[m] || excluded[m] || !fileExists(filepath.Join(m, ManifestFileName)) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func packageFromManifest(manifestPath string, m *manifest) *Package {
	dir := filepath.Dir(manifestPath)
	p := &Package{Name: m.Package.Name, ManifestPath: manifestPath}

	if lib := libTarget(dir, m); lib != nil {
		p.Targets = append(p.Targets, *lib)
	}

	var autoBins []Target
	if enabled(m.Package.Autobins) {
		if main := filepath.Join(dir, "src", "main.rs"); fileExists(main) {
			autoBins = append(autoBins, Target{Kind: Binary, Name: m.Package.Name, SrcPath: main})
		}
		autoBins = append(autoBins, discover(filepath.Join(dir, "src", "bin"), Binary)...)
	}
	p.Targets = append(p.Targets, merge(dir, Binary, "src/bin", m.Bin, autoBins)...)

	p.Targets = append(p.Targets, merge(dir, Example, "examples", m.Example,
		discoverIf(m.Package.Autoexamples, filepath.Join(dir, "examples"), Example))...)
	p.Targets = append(p.Targets, merge(dir, Test, "tests", m.Test,
		discoverIf(m.Package.Autotests, filepath.Join(dir, "tests"), Test))...)
	p.Targets = append(p.Targets, merge(dir, Benchmark, "benches", m.Bench,
		discoverIf(m.Package.Autobenches, filepath.Join(dir, "benches"), Benchmark))...)

	if build := buildScript(dir, m.Package.Build); build != "" {
		p.Targets = append(p.Targets, Target{Kind: CustomBuild, Name: buildScriptTarget, SrcPath: build})
	}
	return p
}

func libTarget(dir string, m *manifest) *Target {
	name := strings.ReplaceAll(m.Package.Name, "-", "_")
	path := filepath.Join(dir, "src", "lib.rs")
	if m.Lib == nil {
		if !fileExists(path) {
			return nil
		}
		return &Target{Kind: Library, Name: name, SrcPath: path}
	}
	if m.Lib.Name != "" {
		name = m.Lib.Name
	}
	if m.Lib.Path != "" {
		path = filepath.Join(dir, m.Lib.Path)
	}
	return &Target{Kind: Library, Name: name, SrcPath: path}
}

// merge combines explicit target tables with auto-discovered targets.
// Explicit entries come first; a discovered target with the same name or
// source file is replaced by the explicit one.
func merge(dir string, kind Kind, defaultDir string, explicit []manifestTarget, discovered []Target) []Target {
	var out []Target
	names := make(map[string]bool)
	paths := make(map[string]bool)
	for _, e := range explicit {
		if e.Name == "" {
			continue
		}
		t := Target{Kind: kind, Name: e.Name}
		switch {
		case e.Path != "":
			t.SrcPath = filepath.Join(dir, e.Path)
		default:
			t.SrcPath = inferredPath(dir, defaultDir, e.Name, discovered)
		}
		if kind == Example && len(e.CrateType) > 0 && !slices.Equal(e.CrateType, []string{"bin"}) {
			t.Kind = ExampleLibrary
		}
		names[e.Name] = true
		paths[filepath.Clean(t.SrcPath)] = true
		out = append(out, t)
	}
	for _, d := range discovered {
		if !names[d.Name] && !paths[filepath.Clean(d.SrcPath)] {
			out = append(out, d)
		}
	}
	return out
}

func inferredPath(dir, defaultDir, name string, discovered []Target) string {
	for _, d := range discovered {
		if d.Name == name {
			return d.SrcPath
		}
	}
	return filepath.Join(dir, filepath.FromSlash(defaultDir), name+".rs")
}

func discoverIf(auto *bool, dir string, kind Kind) []Target {
	if !enabled(auto) {
		return nil
	}
	return discover(dir, kind)
}

// discover finds "<dir>/<name>.rs" and "<dir>/<name>/main.rs" targets.
func discover(dir string, kind Kind) []Target {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Target
	for _, e := range entries {
		switch {
		case e.IsDir():
			main := filepath.Join(dir, e.Name(), "main.rs")
			if fileExists(main) {
				out = append(out, Target{Kind: kind, Name: e.Name(), SrcPath: main})
			}
		case filepath.Ext(e.Name()) == ".rs":
			out = append(out, Target{
				Kind:    kind,
				Name:    strings.TrimSuffix(e.Name(), ".rs"),
				SrcPath: filepath.Join(dir, e.Name()),
			})
		}
	}
	return out
}

// buildScript returns the build script path, honoring package.build.
func buildScript(dir string, build any) string {
	switch v := build.(type) {
	case string:
		return filepath.Join(dir, v)
	case bool:
		if !v {
			return ""
		}
	}
	if path := filepath.Join(dir, "build.rs"); fileExists(path) {
		return path
	}
	return ""
}

func enabled(b *bool) bool {
	return b == nil || *b
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
