package rules

import (
	"unicode/utf8"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/fix"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// EmphasisStyleOptions configures the emphasis-style rule.
type EmphasisStyleOptions struct {
	// Style is the wanted marker style. StyleConsistent infers it from
	// the document's first emphasis outside code.
	Style config.Style

	// Severity overrides the default warning severity.
	Severity config.Severity
}

// EmphasisStyleRule flags single-marker emphasis written with the
// non-canonical marker for the document (`*` vs `_`). Strong emphasis is
// covered separately by the strong-style rule; candidate matches that fall
// inside a strong marker pair are excluded here.
type EmphasisStyleRule struct {
	lint.BaseRule

	style    config.Style
	severity config.Severity
}

// NewEmphasisStyleRule creates an emphasis-style rule from options.
func NewEmphasisStyleRule(opts EmphasisStyleOptions) *EmphasisStyleRule {
	style := opts.Style
	if !style.IsValid() {
		style = config.StyleConsistent
	}
	severity := opts.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	return &EmphasisStyleRule{
		BaseRule: lint.NewBaseRule(
			"MV049",
			"emphasis-style",
			"Emphasis style should be consistent",
			[]string{"emphasis", "style"},
			true,
		),
		style:    style,
		severity: severity,
	}
}

func (r *EmphasisStyleRule) resolveTarget(doc *lint.Document) config.Style {
	if r.style != config.StyleConsistent {
		return r.style
	}
	// Infer over strong-masked content, same as matching: the _..._
	// substring inside __bold__ must not decide the emphasis style.
	masked := maskStrong(doc.Content, strongSpans(doc.Content))
	return detectStyle(doc, masked, emphasisAsteriskPattern, emphasisUnderscorePattern, config.StyleAsterisk)
}

func emphasisMessage(target config.Style) string {
	if target == config.StyleAsterisk {
		return "Emphasis should use * instead of _"
	}
	return "Emphasis should use _ instead of *"
}

func emphasisWrap(target config.Style, inner []byte) string {
	if target == config.StyleAsterisk {
		return "*" + string(inner) + "*"
	}
	return "_" + string(inner) + "_"
}

// strongSpans collects the spans of all strong emphasis in text, used to
// keep the single-marker patterns from matching inside `**bold**`.
func strongSpans(text []byte) [][]int {
	spans := strongAsteriskPattern.FindAllIndex(text, -1)
	return append(spans, strongUnderscorePattern.FindAllIndex(text, -1)...)
}

func insideAny(spans [][]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// maskStrong returns text with every strong span blanked to spaces.
// Emphasis matching runs over the masked copy so a strong pair's trailing
// marker can never pair with a later single marker; offsets are unchanged.
func maskStrong(text []byte, spans [][]int) []byte {
	if len(spans) == 0 {
		return text
	}
	masked := make([]byte, len(text))
	copy(masked, text)
	for _, s := range spans {
		for i := s[0]; i < s[1]; i++ {
			masked[i] = ' '
		}
	}
	return masked
}

// Check scans for emphasis using the wrong marker, with the same code
// region and escape exclusions as the strong-style rule.
func (r *EmphasisStyleRule) Check(doc *lint.Document) ([]lint.Violation, error) {
	target := r.resolveTarget(doc)
	pattern := counterPattern(target, emphasisAsteriskPattern, emphasisUnderscorePattern)

	var violations []lint.Violation

	for lineNum := 1; lineNum <= doc.Index.LineCount(); lineNum++ {
		line := doc.Index.LineContent(lineNum)
		if len(line) == 0 {
			continue
		}
		lineStart, _ := doc.Index.LineStart(lineNum)
		strong := strongSpans(line)
		masked := maskStrong(line, strong)

		for _, m := range pattern.FindAllIndex(masked, -1) {
			if insideAny(strong, m[0], m[1]) {
				continue
			}
			if doc.InCodeRegion(lineStart + m[0]) {
				continue
			}
			if isEscaped(line, m[0]) {
				continue
			}

			inner := line[m[0]+1 : m[1]-1]
			startCol := utf8.RuneCount(line[:m[0]]) + 1

			violations = append(violations, lint.Violation{
				RuleID:      r.ID(),
				StartLine:   lineNum,
				StartColumn: startCol,
				EndLine:     lineNum,
				EndColumn:   startCol + utf8.RuneCount(line[m[0]:m[1]]),
				Message:     emphasisMessage(target),
				Severity:    r.severity,
				Fix: &lint.Fix{
					StartOffset: lineStart + m[0],
					EndOffset:   lineStart + m[1],
					Replacement: emphasisWrap(target, inner),
				},
			})
		}
	}

	return violations, nil
}

// Fix rewrites wrongly-marked emphasis in reverse byte order.
func (r *EmphasisStyleRule) Fix(doc *lint.Document) ([]byte, []lint.Notice, error) {
	violations, err := r.Check(doc)
	if err != nil {
		return nil, nil, err
	}
	if len(violations) == 0 {
		return doc.Content, nil, nil
	}

	edits := make([]fix.TextEdit, 0, len(violations))
	for _, v := range violations {
		edits = append(edits, fix.TextEdit{
			StartOffset: v.Fix.StartOffset,
			EndOffset:   v.Fix.EndOffset,
			Replacement: v.Fix.Replacement,
		})
	}

	fixed, skipped := fix.Apply(doc.Content, edits)
	return fixed, skipNotices(r.ID(), doc, skipped), nil
}
