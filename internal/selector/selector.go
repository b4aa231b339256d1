// Package selector models what the user asked cargo-asm to look at:
// an optional package hint and an optional focus on one target.
package selector

import (
	"fmt"

	"github.com/raphi011/cargo-asm/internal/workspace"
)

// FocusKind tags the variant of a Focus.
type FocusKind int

const (
	FocusLib FocusKind = iota
	FocusTest
	FocusBench
	FocusExample
	FocusBin
)

// Flag returns the command line flag selecting this kind, without dashes.
func (k FocusKind) Flag() string {
	switch k {
	case FocusLib:
		return "lib"
	case FocusTest:
		return "test"
	case FocusBench:
		return "bench"
	case FocusExample:
		return "example"
	case FocusBin:
		return "bin"
	default:
		return ""
	}
}

// targetKind is the workspace target kind a focus of kind k selects.
func (k FocusKind) targetKind() workspace.Kind {
	switch k {
	case FocusTest:
		return workspace.Test
	case FocusBench:
		return workspace.Benchmark
	case FocusExample:
		return workspace.Example
	case FocusBin:
		return workspace.Binary
	default:
		return workspace.Library
	}
}

// FocusFlags lists the focus flags in the order they are documented.
var FocusFlags = []string{"lib", "test", "bench", "example", "bin"}

// Focus narrows selection to a single target: the library, or a named
// test, bench, example or binary.
type Focus struct {
	Kind FocusKind
	Name string // empty for FocusLib
}

// Lib focuses on the library target.
func Lib() Focus { return Focus{Kind: FocusLib} }

// Test focuses on the integration test called name.
func Test(name string) Focus { return Focus{Kind: FocusTest, Name: name} }

// Bench focuses on the benchmark called name.
func Bench(name string) Focus { return Focus{Kind: FocusBench, Name: name} }

// Example focuses on the example called name.
func Example(name string) Focus { return Focus{Kind: FocusExample, Name: name} }

// Bin focuses on the binary called name.
func Bin(name string) Focus { return Focus{Kind: FocusBin, Name: name} }

// Parse builds a focus from a flag name ("lib", "bin", ...) and its value.
func Parse(flag, value string) (Focus, error) {
	for k := FocusLib; k <= FocusBin; k++ {
		if k.Flag() != flag {
			continue
		}
		if k == FocusLib {
			return Lib(), nil
		}
		if value == "" {
			return Focus{}, fmt.Errorf("--%s requires a target name", flag)
		}
		return Focus{Kind: k, Name: value}, nil
	}
	return Focus{}, fmt.Errorf("unknown target flag --%s", flag)
}

// Matches reports whether t is the target this focus names.
// Kind and name must match exactly.
func (f Focus) Matches(t workspace.Target) bool {
	if f.Kind == FocusLib {
		return t.Kind == workspace.Library
	}
	return t.Kind == f.Kind.targetKind() && t.Name == f.Name
}

// String renders the focus exactly as it is typed on the command line,
// e.g. "--lib" or "--bin tool".
func (f Focus) String() string {
	if f.Kind == FocusLib {
		return "--lib"
	}
	return "--" + f.Kind.Flag() + " " + f.Name
}

// Args returns the focus as separate command line arguments.
func (f Focus) Args() []string {
	if f.Kind == FocusLib {
		return []string{"--lib"}
	}
	return []string{"--" + f.Kind.Flag(), f.Name}
}

// FocusFor returns the focus that selects t. Example libraries and build
// scripts cannot be selected and report false.
func FocusFor(t workspace.Target) (Focus, bool) {
	switch t.Kind {
	case workspace.Library:
		return Lib(), true
	case workspace.Binary:
		return Bin(t.Name), true
	case workspace.Test:
		return Test(t.Name), true
	case workspace.Benchmark:
		return Bench(t.Name), true
	case workspace.Example:
		return Example(t.Name), true
	default:
		return Focus{}, false
	}
}

// CompileFilter is the target filter handed to the build. Exactly one field
// is set when it was derived from a Focus.
type CompileFilter struct {
	LibOnly  bool
	Bins     []string
	Tests    []string
	Examples []string
	Benches  []string
}

// Filter converts the focus into a compile filter.
func (f Focus) Filter() CompileFilter {
	var cf CompileFilter
	switch f.Kind {
	case FocusLib:
		cf.LibOnly = true
	case FocusTest:
		cf.Tests = []string{f.Name}
	case FocusBench:
		cf.Benches = []string{f.Name}
	case FocusExample:
		cf.Examples = []string{f.Name}
	case FocusBin:
		cf.Bins = []string{f.Name}
	}
	return cf
}

// Args renders the filter as cargo target selection flags.
func (cf CompileFilter) Args() []string {
	var args []string
	if cf.LibOnly {
		args = append(args, "--lib")
	}
	for _, group := range []struct {
		flag  string
		names []string
	}{
		{"--bin", cf.Bins},
		{"--test", cf.Tests},
		{"--example", cf.Examples},
		{"--bench", cf.Benches},
	} {
		for _, n := range group.names {
			args = append(args, group.flag, n)
		}
	}
	return args
}

// Selector is the user's request: a package hint and a focus, both optional.
type Selector struct {
	PackageHint string // empty when -p was not given
	Focus       *Focus
}

// HasFocus reports whether a target focus was supplied.
func (s Selector) HasFocus() bool {
	return s.Focus != nil
}

// Filter returns the compile filter for the selector's focus, or an empty
// filter without one.
func (s Selector) Filter() CompileFilter {
	if s.Focus == nil {
		return CompileFilter{}
	}
	return s.Focus.Filter()
}

// WithPackage returns a copy of s with the package hint set.
func (s Selector) WithPackage(name string) Selector {
	s.PackageHint = name
	return s
}

// WithFocus returns a copy of s focused on f.
func (s Selector) WithFocus(f Focus) Selector {
	s.Focus = &f
	return s
}
