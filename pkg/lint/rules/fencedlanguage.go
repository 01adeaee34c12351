package rules

import (
	"bytes"
	"unicode/utf8"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/fix"
	"github.com/veldtlab/mdvet/pkg/langdetect"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// FencedLanguageOptions configures the fenced-code-language rule.
type FencedLanguageOptions struct {
	// Severity overrides the default warning severity.
	Severity config.Severity
}

// FencedLanguageRule flags fenced code blocks whose opening fence carries
// no language tag. The fix inserts a tag auto-detected from the block body.
type FencedLanguageRule struct {
	lint.BaseRule

	severity config.Severity
}

// NewFencedLanguageRule creates a fenced-code-language rule from options.
func NewFencedLanguageRule(opts FencedLanguageOptions) *FencedLanguageRule {
	severity := opts.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	return &FencedLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MV040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			[]string{"code", "style"},
			true,
		),
		severity: severity,
	}
}

// fence describes an opening fence line with no language tag.
type bareFence struct {
	line      int    // 1-based line number
	markerEnd int    // byte offset just past the fence marker run
	body      []byte // block content, for language detection
}

// Check scans for fenced blocks without a language tag.
func (r *FencedLanguageRule) Check(doc *lint.Document) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, f := range r.bareFences(doc) {
		line := doc.Index.LineContent(f.line)
		startCol := utf8.RuneCount(line[:fenceIndent(line)]) + 1

		lang := langdetect.Detect(f.body)
		violations = append(violations, lint.Violation{
			RuleID:      r.ID(),
			StartLine:   f.line,
			StartColumn: startCol,
			EndLine:     f.line,
			EndColumn:   startCol + utf8.RuneCount(bytes.TrimLeft(line, " \t")),
			Message:     "Fenced code block is missing a language tag",
			Severity:    r.severity,
			Fix: &lint.Fix{
				StartOffset: f.markerEnd,
				EndOffset:   f.markerEnd,
				Replacement: lang,
			},
		})
	}

	return violations, nil
}

// Fix inserts detected language tags on bare opening fences.
func (r *FencedLanguageRule) Fix(doc *lint.Document) ([]byte, []lint.Notice, error) {
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

// bareFences walks the document's lines with a small fence state machine
// and returns every opening fence that lacks an info string, along with
// the block body for detection.
func (r *FencedLanguageRule) bareFences(doc *lint.Document) []bareFence {
	var fences []bareFence

	inBlock := false
	var fenceChar byte
	var fenceLen int
	var open *bareFence

	for lineNum := 1; lineNum <= doc.Index.LineCount(); lineNum++ {
		line := doc.Index.LineContent(lineNum)
		trimmed := bytes.TrimLeft(line, " \t")

		if inBlock {
			if isClosingFence(trimmed, fenceChar, fenceLen) {
				if open != nil {
					fences = append(fences, *open)
					open = nil
				}
				inBlock = false
				continue
			}
			if open != nil {
				open.body = append(open.body, line...)
				open.body = append(open.body, '\n')
			}
			continue
		}

		ch, markerLen, ok := openingFence(trimmed)
		if !ok {
			continue
		}

		inBlock = true
		fenceChar = ch
		fenceLen = markerLen

		info := bytes.TrimSpace(trimmed[markerLen:])
		if len(info) > 0 {
			continue // tagged fence, nothing to do
		}

		lineStart, _ := doc.Index.LineStart(lineNum)
		open = &bareFence{
			line:      lineNum,
			markerEnd: lineStart + fenceIndent(line) + markerLen,
		}
	}

	// Unclosed trailing block still gets flagged.
	if open != nil {
		fences = append(fences, *open)
	}

	return fences
}

// openingFence reports whether a trimmed line opens a fence, returning the
// fence character and marker length.
func openingFence(trimmed []byte) (byte, int, bool) {
	if len(trimmed) < 3 {
		return 0, 0, false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	// Backtick fences cannot carry backticks in the info string.
	if ch == '`' && bytes.IndexByte(trimmed[n:], '`') >= 0 {
		return 0, 0, false
	}
	return ch, n, true
}

// isClosingFence reports whether a trimmed line closes the current fence.
func isClosingFence(trimmed []byte, fenceChar byte, fenceLen int) bool {
	n := 0
	for n < len(trimmed) && trimmed[n] == fenceChar {
		n++
	}
	return n >= fenceLen && len(bytes.TrimSpace(trimmed[n:])) == 0
}

// fenceIndent returns the number of leading space/tab bytes.
func fenceIndent(line []byte) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
