// Package lint provides the rule engine core for mdvet: the document view
// rules scan, the violation and fix data model, the rule contract, and the
// per-rule violation cache.
package lint

import (
	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/textpos"
)

// Violation represents a single style issue found in a document.
type Violation struct {
	// RuleID is the identifier of the rule that produced this violation.
	RuleID string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column (character) where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column one past the issue's last character.
	EndColumn int

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the violation.
	Severity config.Severity

	// Fix is the optional edit that resolves this violation.
	Fix *Fix
}

// HasFix returns true if this violation carries an edit.
func (v *Violation) HasFix() bool {
	return v.Fix != nil
}

// Span returns the violation position as a textpos.Span.
func (v *Violation) Span() textpos.Span {
	return textpos.Span{
		StartLine:   v.StartLine,
		StartColumn: v.StartColumn,
		EndLine:     v.EndLine,
		EndColumn:   v.EndColumn,
	}
}

// Fix is a single text replacement resolving one violation.
//
// Offsets address the original document the violation was computed against.
// A fix becomes invalid once that document is mutated; callers must not
// apply stale fixes to a rewritten document. Ranges must fall on character
// boundaries; a fix straddling a multi-byte character is rejected at apply
// time rather than applied.
type Fix struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// Replacement is the text that replaces the range.
	Replacement string
}

// Notice is a non-fatal issue raised while checking or fixing, returned to
// the caller instead of being written to a global output stream.
type Notice struct {
	// RuleID is the rule that raised the notice.
	RuleID string

	// Line and Column locate the affected violation, when known.
	Line   int
	Column int

	// Reason describes why the item was skipped.
	Reason string
}
