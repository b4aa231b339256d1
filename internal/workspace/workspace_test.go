package workspace

import (
	"errors"
	"testing"
)

func TestNewVirtual_Empty(t *testing.T) {
	t.Parallel()
	_, err := NewVirtual("/ws/Cargo.toml")
	if !errors.Is(err, ErrEmptyWorkspace) {
		t.Fatalf("NewVirtual() error = %v, want ErrEmptyWorkspace", err)
	}
}

func TestNewConcrete(t *testing.T) {
	t.Parallel()

	root := &Package{Name: "app"}
	dup := &Package{Name: "app"}
	other := &Package{Name: "helper"}
	ws := NewConcrete("/ws/Cargo.toml", root, dup, other)

	if ws.IsVirtual() {
		t.Error("IsVirtual() = true, want false")
	}
	if ws.Root() != root {
		t.Error("Root() did not return the root package")
	}
	if got := len(ws.Members()); got != 2 {
		t.Fatalf("len(Members()) = %d, want 2", got)
	}
	if ws.Members()[0] != root || ws.Members()[1] != other {
		t.Errorf("Members() = %v, want [app helper]", ws.Members())
	}
}

func TestWorkspace_Member(t *testing.T) {
	t.Parallel()

	ws, err := NewVirtual("/ws/Cargo.toml", &Package{Name: "a"}, &Package{Name: "b"})
	if err != nil {
		t.Fatalf("NewVirtual() = %v", err)
	}
	if !ws.IsVirtual() {
		t.Error("IsVirtual() = false, want true")
	}
	if p, ok := ws.Member("b"); !ok || p.Name != "b" {
		t.Errorf("Member(b) = %v, %v", p, ok)
	}
	if _, ok := ws.Member("B"); ok {
		t.Error("Member lookup must be exact")
	}
	if ws.ManifestPath() != "/ws/Cargo.toml" {
		t.Errorf("ManifestPath() = %q", ws.ManifestPath())
	}
}

func TestTarget_Description(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target Target
		want   string
	}{
		{Target{Kind: Library, Name: "core"}, "lib"},
		{Target{Kind: Binary, Name: "tool"}, `bin "tool"`},
		{Target{Kind: Test, Name: "t1"}, `test "t1"`},
		{Target{Kind: Benchmark, Name: "speed"}, `bench "speed"`},
		{Target{Kind: Example, Name: "demo"}, `example "demo"`},
		{Target{Kind: ExampleLibrary, Name: "plug"}, `example "plug"`},
		{Target{Kind: CustomBuild, Name: "build-script-build"}, "build script"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.target.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	if Benchmark.String() != "bench" || CustomBuild.String() != "custom-build" {
		t.Errorf("unexpected kind names: %s %s", Benchmark, CustomBuild)
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}
