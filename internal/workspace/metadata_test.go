package workspace

import (
	"slices"
	"strings"
	"testing"
)

const virtualMetadata = `{
  "packages": [
    {
      "id": "path+file:///ws/crates/a#a@0.1.0",
      "name": "a",
      "manifest_path": "/ws/crates/a/Cargo.toml",
      "targets": [
        {"name": "a", "kind": ["lib"], "crate_types": ["lib"], "src_path": "/ws/crates/a/src/lib.rs"},
        {"name": "build-script-build", "kind": ["custom-build"], "crate_types": ["bin"], "src_path": "/ws/crates/a/build.rs"}
      ]
    },
    {
      "id": "path+file:///ws/crates/b#b@0.1.0",
      "name": "b",
      "manifest_path": "/ws/crates/b/Cargo.toml",
      "targets": [
        {"name": "tool", "kind": ["bin"], "crate_types": ["bin"], "src_path": "/ws/crates/b/src/main.rs"},
        {"name": "it", "kind": ["test"], "crate_types": ["bin"], "src_path": "/ws/crates/b/tests/it.rs"},
        {"name": "speed", "kind": ["bench"], "crate_types": ["bin"], "src_path": "/ws/crates/b/benches/speed.rs"},
        {"name": "demo", "kind": ["example"], "crate_types": ["bin"], "src_path": "/ws/crates/b/examples/demo.rs"},
        {"name": "plug", "kind": ["example"], "crate_types": ["cdylib"], "src_path": "/ws/crates/b/examples/plug.rs"},
        {"name": "macros", "kind": ["proc-macro"], "crate_types": ["proc-macro"], "src_path": "/ws/crates/b/src/lib.rs"}
      ]
    }
  ],
  "workspace_members": ["path+file:///ws/crates/b#b@0.1.0", "path+file:///ws/crates/a#a@0.1.0"],
  "workspace_root": "/ws"
}`

func TestParseMetadata_Virtual(t *testing.T) {
	t.Parallel()

	ws, err := ParseMetadata([]byte(virtualMetadata), "/ws/Cargo.toml")
	if err != nil {
		t.Fatalf("ParseMetadata() = %v", err)
	}
	if !ws.IsVirtual() {
		t.Fatal("expected virtual workspace")
	}

	var names []string
	for _, p := range ws.Members() {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"b", "a"}) {
		t.Errorf("member order = %v, want workspace_members order [b a]", names)
	}

	b, _ := ws.Member("b")
	wantKinds := []Kind{Binary, Test, Benchmark, Example, ExampleLibrary, Library}
	var gotKinds []Kind
	for _, tg := range b.Targets {
		gotKinds = append(gotKinds, tg.Kind)
	}
	if !slices.Equal(gotKinds, wantKinds) {
		t.Errorf("kinds = %v, want %v", gotKinds, wantKinds)
	}

	a, _ := ws.Member("a")
	if a.Targets[1].Kind != CustomBuild {
		t.Errorf("build script kind = %v, want custom-build", a.Targets[1].Kind)
	}
}

func TestParseMetadata_Concrete(t *testing.T) {
	t.Parallel()

	ws, err := ParseMetadata([]byte(virtualMetadata), "/ws/crates/a/Cargo.toml")
	if err != nil {
		t.Fatalf("ParseMetadata() = %v", err)
	}
	if ws.IsVirtual() {
		t.Fatal("expected concrete workspace")
	}
	if ws.Root().Name != "a" {
		t.Errorf("Root() = %q, want a", ws.Root().Name)
	}
}

func TestParseMetadata_TargetDir(t *testing.T) {
	t.Parallel()

	const member = `{
  "packages": [{"id": "a", "name": "a", "manifest_path": "/ws/a/Cargo.toml",
    "targets": [{"name": "a", "kind": ["lib"], "src_path": "/ws/a/src/lib.rs"}]}],
  "workspace_members": ["a"],
  "workspace_root": "/ws"%s
}`

	tests := []struct {
		name  string
		extra string
		want  string
	}{
		{"reported by cargo", `, "target_directory": "/custom/out"`, "/custom/out"},
		{"default below workspace root", "", "/ws/target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := strings.Replace(member, "%s", tt.extra, 1)
			ws, err := ParseMetadata([]byte(data), "/ws/a/Cargo.toml")
			if err != nil {
				t.Fatalf("ParseMetadata() = %v", err)
			}
			if ws.Root() == nil || ws.Root().Name != "a" {
				t.Fatalf("Root() = %v, want a", ws.Root())
			}
			if got := ws.TargetDir(); got != tt.want {
				t.Errorf("TargetDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMetadata_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"invalid json", "{", "failed to parse cargo metadata"},
		{"unknown member", `{"packages": [], "workspace_members": ["x"]}`, `workspace member "x" not listed`},
		{"no members", `{"packages": [], "workspace_members": []}`, "virtual workspace has no members"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseMetadata([]byte(tt.data), "/ws/Cargo.toml")
			if err == nil {
				t.Fatal("ParseMetadata() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMetadataOptions_Args(t *testing.T) {
	t.Parallel()

	got := MetadataOptions{ManifestPath: "/ws/Cargo.toml", Locked: true, Offline: true}.Args()
	want := []string{"metadata", "--format-version", "1", "--no-deps", "--manifest-path", "/ws/Cargo.toml", "--locked", "--offline"}
	if !slices.Equal(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}
