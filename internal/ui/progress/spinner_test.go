package progress

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestSpinnerModel_View(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel("Reading workspace")
	if got := m.View().Content; !strings.HasSuffix(got, " Reading workspace") {
		t.Errorf("View() = %q, want message after spinner", got)
	}

	if got := newSpinnerModel("").View().Content; got != "" {
		t.Errorf("View() without message = %q, want empty", got)
	}
}

func TestSpinnerModel_IgnoresKeys(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel("Reading workspace")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd != nil {
		t.Error("key press should not produce a command")
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	NewSpinner(&sb, "idle").Stop()
	if sb.Len() != 0 {
		t.Errorf("Stop() without Start wrote %q", sb.String())
	}
}
