package selector

import (
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/cargo-asm/internal/workspace"
)

func TestFocus_Matches(t *testing.T) {
	t.Parallel()

	lib := workspace.Target{Kind: workspace.Library, Name: "core"}
	bin := workspace.Target{Kind: workspace.Binary, Name: "tool"}
	test := workspace.Target{Kind: workspace.Test, Name: "tool"}
	bench := workspace.Target{Kind: workspace.Benchmark, Name: "speed"}
	example := workspace.Target{Kind: workspace.Example, Name: "demo"}
	exampleLib := workspace.Target{Kind: workspace.ExampleLibrary, Name: "demo"}
	build := workspace.Target{Kind: workspace.CustomBuild, Name: "build-script-build"}

	tests := []struct {
		name   string
		focus  Focus
		target workspace.Target
		want   bool
	}{
		{"lib matches library", Lib(), lib, true},
		{"lib ignores name", Lib(), workspace.Target{Kind: workspace.Library, Name: "other"}, true},
		{"lib rejects bin", Lib(), bin, false},
		{"bin matches by name", Bin("tool"), bin, true},
		{"bin rejects other name", Bin("tol"), bin, false},
		{"bin rejects test with same name", Bin("tool"), test, false},
		{"test matches", Test("tool"), test, true},
		{"test rejects bin with same name", Test("tool"), bin, false},
		{"bench matches", Bench("speed"), bench, true},
		{"bench is case sensitive", Bench("Speed"), bench, false},
		{"example matches", Example("demo"), example, true},
		{"example rejects example library", Example("demo"), exampleLib, false},
		{"nothing matches build script", Bin("build-script-build"), build, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.focus.Matches(tt.target); got != tt.want {
				t.Errorf("%s.Matches(%s) = %v, want %v", tt.focus, tt.target.Description(), got, tt.want)
			}
		})
	}
}

func TestFocus_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		focus Focus
		want  string
	}{
		{Lib(), "--lib"},
		{Test("t"), "--test t"},
		{Bench("b"), "--bench b"},
		{Example("e"), "--example e"},
		{Bin("x"), "--bin x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.focus.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := strings.Join(tt.focus.Args(), " "); got != tt.want {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The rendered focus must parse back into the same focus, since diagnostics
// tell users to type exactly that.
func TestFocus_RenderParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []Focus{Lib(), Test("t1"), Bench("b"), Example("e"), Bin("tool")} {
		args := f.Args()
		flag := strings.TrimPrefix(args[0], "--")
		value := ""
		if len(args) > 1 {
			value = args[1]
		}
		got, err := Parse(flag, value)
		if err != nil {
			t.Fatalf("Parse(%q, %q) = %v", flag, value, err)
		}
		if got != f {
			t.Errorf("Parse(%q, %q) = %+v, want %+v", flag, value, got, f)
		}
		if !slices.Contains(FocusFlags, flag) {
			t.Errorf("flag %q missing from FocusFlags", flag)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Parse("bin", ""); err == nil || err.Error() != "--bin requires a target name" {
		t.Errorf("Parse(bin, \"\") error = %v", err)
	}
	if _, err := Parse("lib", "ignored"); err != nil {
		t.Errorf("Parse(lib) error = %v", err)
	}
	if _, err := Parse("doc", "x"); err == nil {
		t.Error("Parse(doc) = nil, want error")
	}
}

func TestFocus_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		focus Focus
		want  CompileFilter
		args  []string
	}{
		{Lib(), CompileFilter{LibOnly: true}, []string{"--lib"}},
		{Bin("b"), CompileFilter{Bins: []string{"b"}}, []string{"--bin", "b"}},
		{Test("t"), CompileFilter{Tests: []string{"t"}}, []string{"--test", "t"}},
		{Example("e"), CompileFilter{Examples: []string{"e"}}, []string{"--example", "e"}},
		{Bench("x"), CompileFilter{Benches: []string{"x"}}, []string{"--bench", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.focus.String(), func(t *testing.T) {
			t.Parallel()
			got := tt.focus.Filter()
			if got.LibOnly != tt.want.LibOnly ||
				!slices.Equal(got.Bins, tt.want.Bins) ||
				!slices.Equal(got.Tests, tt.want.Tests) ||
				!slices.Equal(got.Examples, tt.want.Examples) ||
				!slices.Equal(got.Benches, tt.want.Benches) {
				t.Errorf("Filter() = %+v, want %+v", got, tt.want)
			}
			if !slices.Equal(got.Args(), tt.args) {
				t.Errorf("Filter().Args() = %v, want %v", got.Args(), tt.args)
			}
		})
	}
}

func TestFocusFor(t *testing.T) {
	t.Parallel()

	selectable := []workspace.Target{
		{Kind: workspace.Library, Name: "core"},
		{Kind: workspace.Binary, Name: "tool"},
		{Kind: workspace.Test, Name: "it"},
		{Kind: workspace.Benchmark, Name: "speed"},
		{Kind: workspace.Example, Name: "demo"},
	}
	for _, tg := range selectable {
		f, ok := FocusFor(tg)
		if !ok {
			t.Errorf("FocusFor(%s) not selectable", tg.Description())
			continue
		}
		if !f.Matches(tg) {
			t.Errorf("FocusFor(%s) = %s does not match its target", tg.Description(), f)
		}
	}

	for _, k := range []workspace.Kind{workspace.ExampleLibrary, workspace.CustomBuild} {
		if _, ok := FocusFor(workspace.Target{Kind: k, Name: "x"}); ok {
			t.Errorf("FocusFor(%s) should not be selectable", k)
		}
	}
}

func TestSelector(t *testing.T) {
	t.Parallel()

	var s Selector
	if s.HasFocus() {
		t.Error("zero Selector has a focus")
	}
	if got := s.Filter().Args(); len(got) != 0 {
		t.Errorf("zero Selector filter args = %v, want none", got)
	}

	refined := s.WithPackage("core").WithFocus(Bin("tool"))
	if refined.PackageHint != "core" || !refined.HasFocus() || *refined.Focus != Bin("tool") {
		t.Errorf("refined selector = %+v", refined)
	}
	if s.PackageHint != "" || s.Focus != nil {
		t.Error("WithPackage/WithFocus modified the receiver")
	}
}
