package checker

import (
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/token"
)

// applyExpectErrorSuppression drops the first diagnostic reported on
// the line immediately after a `// @ts-expect-error` comment — the
// same per-directive contract the original compiler's own check
// enforces: a directive that doesn't suppress anything is itself
// reported, so a stale suppression comment doesn't go unnoticed once
// the bug it was guarding against is fixed.
func applyExpectErrorSuppression(directives []token.Directive, diags []*diag.Diagnostic, file, source string) []*diag.Diagnostic {
	var expectLines []int
	for _, d := range directives {
		if d.Kind == token.DirectiveExpectError {
			expectLines = append(expectLines, d.Line)
		}
	}
	if len(expectLines) == 0 {
		return diags
	}

	suppressed := make([]bool, len(diags))
	used := make(map[int]bool, len(expectLines))
	for _, line := range expectLines {
		for i, d := range diags {
			if suppressed[i] || d.Pos.Line != line+1 {
				continue
			}
			suppressed[i] = true
			used[line] = true
			break
		}
	}

	out := make([]*diag.Diagnostic, 0, len(diags))
	for i, d := range diags {
		if !suppressed[i] {
			out = append(out, d)
		}
	}
	for _, line := range expectLines {
		if !used[line] {
			out = append(out, diag.New(diag.ModifierError, token.Position{Line: line}, file, source, "unused '@ts-expect-error' directive"))
		}
	}
	return out
}
