package lsp

import (
	"fmt"
	"strings"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// Source identifies mdvet in published diagnostics.
const Source = "mdvet"

// docBaseURL is the root of the per-rule documentation pages.
const docBaseURL = "https://github.com/veldtlab/mdvet/blob/main/docs"

// FromViolation converts one violation to a protocol diagnostic.
//
// The violation's 1-based line/column model converts to the protocol's
// 0-based model by plain subtraction: columns already count characters, so
// no position index lookup is involved.
func FromViolation(v lint.Violation) Diagnostic {
	return Diagnostic{
		Range: Range{
			Start: Position{Line: zeroBased(v.StartLine), Character: zeroBased(v.StartColumn)},
			End:   Position{Line: zeroBased(v.EndLine), Character: zeroBased(v.EndColumn)},
		},
		Severity: severityOf(v.Severity),
		Code:     v.RuleID,
		CodeDescription: &CodeDescription{
			Href: fmt.Sprintf("%s/%s.md", docBaseURL, strings.ToLower(v.RuleID)),
		},
		Source:  Source,
		Message: v.Message,
	}
}

// QuickFix builds the code action for a violation carrying a fix.
//
// The fix's byte range is converted to protocol positions through the
// document's position index. An unmappable range yields no action; the
// diagnostic itself is still published by FromViolation.
func QuickFix(v lint.Violation, uri string, doc *lint.Document) (CodeAction, bool) {
	if v.Fix == nil {
		return CodeAction{}, false
	}

	span, ok := doc.Index.ToPosition(v.Fix.StartOffset, v.Fix.EndOffset)
	if !ok {
		return CodeAction{}, false
	}

	edit := TextEdit{
		Range: Range{
			Start: Position{Line: zeroBased(span.StartLine), Character: zeroBased(span.StartColumn)},
			End:   Position{Line: zeroBased(span.EndLine), Character: zeroBased(span.EndColumn)},
		},
		NewText: v.Fix.Replacement,
	}

	return CodeAction{
		Title:       "Fix: " + v.Message,
		Kind:        KindQuickFix,
		Diagnostics: []Diagnostic{FromViolation(v)},
		Edit: &WorkspaceEdit{
			Changes: map[string][]TextEdit{uri: {edit}},
		},
		IsPreferred: true,
	}, true
}

// Publish converts a violation list to diagnostics plus the quick-fix
// actions for the fixable subset.
func Publish(violations []lint.Violation, uri string, doc *lint.Document) ([]Diagnostic, []CodeAction) {
	diagnostics := make([]Diagnostic, 0, len(violations))
	var actions []CodeAction

	for _, v := range violations {
		diagnostics = append(diagnostics, FromViolation(v))
		if action, ok := QuickFix(v, uri, doc); ok {
			actions = append(actions, action)
		}
	}

	return diagnostics, actions
}

func severityOf(s config.Severity) DiagnosticSeverity {
	if s == config.SeverityError {
		return SeverityError
	}
	return SeverityWarning
}

// zeroBased converts a 1-based coordinate, saturating at zero.
func zeroBased(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}
