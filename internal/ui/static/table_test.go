package static

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	t.Run("empty rows", func(t *testing.T) {
		t.Parallel()
		if got := RenderTable([]string{"A"}, nil, false); got != "" {
			t.Errorf("RenderTable(no rows) = %q, want empty", got)
		}
	})

	t.Run("aligned columns", func(t *testing.T) {
		t.Parallel()
		got := RenderTable(
			[]string{"PACKAGE", "FLAG"},
			[][]string{
				{"core", "--lib"},
				{"cli-tool", "--bin cli"},
			},
			false,
		)
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
		}
		col := strings.Index(lines[0], "FLAG")
		if col < 0 {
			t.Fatalf("header missing FLAG: %q", lines[0])
		}
		if strings.Index(lines[1], "--lib") != col || strings.Index(lines[2], "--bin cli") != col {
			t.Errorf("columns not aligned:\n%s", got)
		}
		for _, l := range lines {
			if strings.HasSuffix(l, " ") {
				t.Errorf("line %q has trailing spaces", l)
			}
		}
	})

	t.Run("no headers", func(t *testing.T) {
		t.Parallel()
		got := RenderTable(nil, [][]string{{"--lib", "for lib"}}, false)
		if strings.Count(got, "\n") != 1 || !strings.HasPrefix(got, "--lib") {
			t.Errorf("RenderTable(no headers) = %q", got)
		}
	})
}
