package rules

import (
	"unicode/utf8"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/fix"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// StrongStyleOptions configures the strong-style rule.
type StrongStyleOptions struct {
	// Style is the wanted marker style. StyleConsistent infers it from
	// the document's first strong emphasis outside code.
	Style config.Style

	// Severity overrides the default warning severity.
	Severity config.Severity
}

// StrongStyleRule flags strong emphasis written with the non-canonical
// marker pair for the document (`**` vs `__`).
type StrongStyleRule struct {
	lint.BaseRule

	style    config.Style
	severity config.Severity
}

// NewStrongStyleRule creates a strong-style rule from options.
// An unknown style value falls back to consistent.
func NewStrongStyleRule(opts StrongStyleOptions) *StrongStyleRule {
	style := opts.Style
	if !style.IsValid() {
		style = config.StyleConsistent
	}
	severity := opts.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	return &StrongStyleRule{
		BaseRule: lint.NewBaseRule(
			"MV050",
			"strong-style",
			"Strong emphasis style should be consistent",
			[]string{"emphasis", "style"},
			true,
		),
		style:    style,
		severity: severity,
	}
}

// resolveTarget returns the concrete style to enforce for a document.
// Configured consistent resolves through the shared style detector,
// defaulting to asterisk when the document shows no strong emphasis.
func (r *StrongStyleRule) resolveTarget(doc *lint.Document) config.Style {
	if r.style != config.StyleConsistent {
		return r.style
	}
	return detectStyle(doc, doc.Content, strongAsteriskPattern, strongUnderscorePattern, config.StyleAsterisk)
}

func strongMessage(target config.Style) string {
	if target == config.StyleAsterisk {
		return "Strong emphasis should use ** instead of __"
	}
	return "Strong emphasis should use __ instead of **"
}

// strongWrap re-wraps inner text with the target style's marker.
func strongWrap(target config.Style, inner []byte) string {
	if target == config.StyleAsterisk {
		return "**" + string(inner) + "**"
	}
	return "__" + string(inner) + "__"
}

// Check scans for strong emphasis using the wrong marker. A match is
// excluded when it falls inside a code region or when its opening marker is
// escaped by an odd run of backslashes.
func (r *StrongStyleRule) Check(doc *lint.Document) ([]lint.Violation, error) {
	target := r.resolveTarget(doc)
	pattern := counterPattern(target, strongAsteriskPattern, strongUnderscorePattern)

	var violations []lint.Violation

	for lineNum := 1; lineNum <= doc.Index.LineCount(); lineNum++ {
		line := doc.Index.LineContent(lineNum)
		if len(line) == 0 {
			continue
		}
		lineStart, _ := doc.Index.LineStart(lineNum)

		for _, m := range pattern.FindAllIndex(line, -1) {
			if doc.InCodeRegion(lineStart + m[0]) {
				continue
			}
			if isEscaped(line, m[0]) {
				continue
			}

			inner := line[m[0]+2 : m[1]-2]
			startCol := utf8.RuneCount(line[:m[0]]) + 1

			violations = append(violations, lint.Violation{
				RuleID:      r.ID(),
				StartLine:   lineNum,
				StartColumn: startCol,
				EndLine:     lineNum,
				EndColumn:   startCol + utf8.RuneCount(line[m[0]:m[1]]),
				Message:     strongMessage(target),
				Severity:    r.severity,
				Fix: &lint.Fix{
					StartOffset: lineStart + m[0],
					EndOffset:   lineStart + m[1],
					Replacement: strongWrap(target, inner),
				},
			})
		}
	}

	return violations, nil
}

// Fix rewrites every wrongly-marked strong emphasis with the target marker.
// Matches are collected over the whole document and applied in reverse byte
// order so replacements never invalidate pending offsets.
//
// Check scans per physical line while Fix scans the full content, so a
// strong span that wraps across a newline is rewritten here without ever
// having been reported. Deliberate: single-line spans are the reportable
// unit, but a stray multi-line pair still gets normalized.
func (r *StrongStyleRule) Fix(doc *lint.Document) ([]byte, []lint.Notice, error) {
	target := r.resolveTarget(doc)
	pattern := counterPattern(target, strongAsteriskPattern, strongUnderscorePattern)

	var edits []fix.TextEdit
	for _, m := range pattern.FindAllIndex(doc.Content, -1) {
		if doc.InCodeRegion(m[0]) {
			continue
		}
		if isEscaped(doc.Content, m[0]) {
			continue
		}
		inner := doc.Content[m[0]+2 : m[1]-2]
		edits = append(edits, fix.TextEdit{
			StartOffset: m[0],
			EndOffset:   m[1],
			Replacement: strongWrap(target, inner),
		})
	}

	if len(edits) == 0 {
		return doc.Content, nil, nil
	}

	fixed, skipped := fix.Apply(doc.Content, edits)
	return fixed, skipNotices(r.ID(), doc, skipped), nil
}
