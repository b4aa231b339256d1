package resolve

import (
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/cargo-asm/internal/selector"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// suggestFoci returns existing foci of the same kind whose names fuzzy-match
// the requested name, best match first.
func suggestFoci(focus selector.Focus, ws *workspace.Workspace) []selector.Focus {
	if focus.Kind == selector.FocusLib {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, p := range ws.Members() {
		for _, t := range p.Targets {
			f, ok := selector.FocusFor(t)
			if !ok || f.Kind != focus.Kind || seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}

	var out []selector.Focus
	for _, m := range fuzzy.Find(focus.Name, names) {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, selector.Focus{Kind: focus.Kind, Name: m.Str})
	}
	return out
}
