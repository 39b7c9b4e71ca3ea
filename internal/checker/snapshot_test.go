package checker

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestDiagnosticSnapshots pins the rendered form of a handful of
// representative diagnostics so a change to message wording or a
// regression in diagnostic ordering shows up as a snapshot diff.
func TestDiagnosticSnapshots(t *testing.T) {
	defer snaps.Clean(t)

	cases := []struct {
		name  string
		input string
	}{
		{"type_mismatch", `let x: number = "hi";`},
		{"unknown_property", `interface P { x: number; } let p: P = { x: 1, y: 2 };`},
		{"interface_merge_conflict", `interface Box { w: number; } interface Box { w: string; }`},
		{"not_callable", `let x: number = 1; x();`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := checkSource(t, c.input)
			var rendered string
			for i, d := range result.Diagnostics {
				rendered += fmt.Sprintf("[%d] %s: %s\n", i, d.Kind, d.Message)
			}
			snaps.MatchSnapshot(t, rendered)
		})
	}
}
