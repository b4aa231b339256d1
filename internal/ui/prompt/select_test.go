package prompt

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
}

func TestSelectModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keys      []string
		selected  int
		done      bool
		cancelled bool
	}{
		{"enter picks first", []string{"enter"}, 0, true, false},
		{"down then enter picks second", []string{"down", "enter"}, 1, true, false},
		{"esc cancels", []string{"esc"}, -1, true, true},
		{"q cancels", []string{"q"}, -1, true, true},
		{"ctrl+c cancels", []string{"ctrl+c"}, -1, true, true},
		{"navigation alone is not done", []string{"down"}, -1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var m tea.Model = newSelectModel("Pick a package", []string{"-p core", "-p cli", "-p macros"})
			for _, k := range tt.keys {
				m, _ = m.Update(keyPress(k))
			}
			sm := m.(selectModel)
			if sm.selected != tt.selected {
				t.Errorf("selected = %d, want %d", sm.selected, tt.selected)
			}
			if sm.done != tt.done {
				t.Errorf("done = %v, want %v", sm.done, tt.done)
			}
			if sm.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", sm.cancelled, tt.cancelled)
			}
		})
	}
}

func TestSelectModel_View(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick a target", []string{"--lib", "--bin tool"})
	if m.View().Content == "" {
		t.Error("View().Content should not be empty before a choice")
	}

	m.done = true
	if m.View().Content != "" {
		t.Error("View().Content should be empty once done")
	}
}

func TestSelect_NoOptions(t *testing.T) {
	t.Parallel()

	res, err := Select("Pick", nil)
	if err != nil {
		t.Fatalf("Select(nil) = %v", err)
	}
	if !res.Cancelled {
		t.Error("Select(nil) should report cancelled")
	}
}
