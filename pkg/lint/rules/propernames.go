package rules

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/veldtlab/mdvet/internal/logging"
	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/fix"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// ProperNamesOptions configures the proper-names rule.
type ProperNamesOptions struct {
	// Names is the ordered list of canonical capitalizations
	// (e.g., "JavaScript", "Node.js").
	Names []string

	// CodeBlocksExcluded skips matches inside code regions.
	CodeBlocksExcluded bool

	// Severity overrides the default warning severity.
	Severity config.Severity
}

// ProperNamesRule flags configured proper names whose capitalization
// differs from the canonical form, e.g. "javascript" when "JavaScript" is
// configured. Dot-stripped variants are matched too, so "Nodejs" is caught
// when "Node.js" is configured.
type ProperNamesRule struct {
	lint.BaseRule

	names              []string
	codeBlocksExcluded bool
	severity           config.Severity

	// pattern is the combined case-insensitive pattern over all names and
	// their dot-stripped variants. Built once at construction, read-only
	// afterwards. Nil when no names are configured or compilation failed.
	pattern *regexp.Regexp

	// cache memoizes the violation list by document content.
	cache *lint.Cache

	// scans counts actual (non-cached) document scans.
	scans atomic.Int64
}

// NewProperNamesRule creates a proper-names rule from options.
// A pattern compilation failure is reported once here; the rule then
// behaves as if it had no names configured.
func NewProperNamesRule(opts ProperNamesOptions) *ProperNamesRule {
	r := &ProperNamesRule{
		BaseRule: lint.NewBaseRule(
			"MV044",
			"proper-names",
			"Proper names should have the correct capitalization",
			[]string{"spelling", "style"},
			true,
		),
		names:              opts.Names,
		codeBlocksExcluded: opts.CodeBlocksExcluded,
		severity:           opts.Severity,
		cache:              lint.NewCache(),
	}
	if r.severity == "" {
		r.severity = config.SeverityWarning
	}

	if expr := combinedPattern(opts.Names); expr != "" {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			logging.Default().Error("proper-names pattern failed to compile",
				logging.FieldPattern, expr, logging.FieldError, err)
		} else {
			r.pattern = pattern
		}
	}

	return r
}

// combinedPattern builds one case-insensitive alternation over every
// configured name and its dot-stripped variant. Alternatives are ordered
// longest first so overlapping names prefer the longest match.
func combinedPattern(names []string) string {
	if len(names) == 0 {
		return ""
	}

	variants := make([]string, 0, len(names)*2)
	for _, name := range names {
		lower := strings.ToLower(name)
		variants = append(variants, lower)
		if noDots := strings.ReplaceAll(lower, ".", ""); noDots != lower {
			variants = append(variants, noDots)
		}
	}

	sort.Slice(variants, func(i, j int) bool {
		if len(variants[i]) != len(variants[j]) {
			return len(variants[i]) > len(variants[j])
		}
		return variants[i] < variants[j]
	})

	escaped := make([]string, len(variants))
	for i, v := range variants {
		escaped[i] = regexp.QuoteMeta(v)
	}
	return `(?i)(?:` + strings.Join(escaped, "|") + `)`
}

// Check scans the document for miscapitalized proper names.
// Results are cached by content hash; a repeat call with byte-identical
// content returns the cached list without rescanning.
func (r *ProperNamesRule) Check(doc *lint.Document) ([]lint.Violation, error) {
	if len(doc.Content) == 0 || r.pattern == nil {
		return nil, nil
	}

	// Quick probe: skip the scan when none of the names can occur.
	if !r.mayContainNames(doc.Content) {
		return nil, nil
	}

	if cached, ok := r.cache.Get(doc.Content); ok {
		return cached, nil
	}

	violations := r.scan(doc)
	r.cache.Put(doc.Content, violations)
	return violations, nil
}

// scan performs the actual per-line matching pass.
func (r *ProperNamesRule) scan(doc *lint.Document) []lint.Violation {
	r.scans.Add(1)

	var violations []lint.Violation

	for lineNum := 1; lineNum <= doc.Index.LineCount(); lineNum++ {
		line := doc.Index.LineContent(lineNum)
		if len(line) == 0 {
			continue
		}

		// Fence lines carry language tags, not prose.
		trimmed := bytes.TrimLeft(line, " \t")
		if bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~")) {
			continue
		}

		lineStart, _ := doc.Index.LineStart(lineNum)
		if r.codeBlocksExcluded && doc.InCodeRegion(lineStart) {
			continue
		}

		if !r.mayContainNames(line) {
			continue
		}

		for _, m := range r.pattern.FindAllIndex(line, -1) {
			if !wordBoundary(line, m[0], m[1]) {
				continue
			}
			if r.codeBlocksExcluded && doc.InCodeRegion(lineStart+m[0]) {
				continue
			}

			found := string(line[m[0]:m[1]])
			proper, ok := r.properNameFor(found)
			if !ok || found == proper {
				// Already the canonical form, or an alternation artifact.
				continue
			}

			startCol := utf8.RuneCount(line[:m[0]]) + 1
			violations = append(violations, lint.Violation{
				RuleID:      r.ID(),
				StartLine:   lineNum,
				StartColumn: startCol,
				EndLine:     lineNum,
				EndColumn:   startCol + utf8.RuneCountInString(found),
				Message:     fmt.Sprintf("Proper name %q should be %q", found, proper),
				Severity:    r.severity,
				Fix: &lint.Fix{
					StartOffset: lineStart + m[0],
					EndOffset:   lineStart + m[1],
					Replacement: proper,
				},
			})
		}
	}

	return violations
}

// mayContainNames is a cheap case-insensitive substring probe.
func (r *ProperNamesRule) mayContainNames(text []byte) bool {
	lower := strings.ToLower(string(text))
	for _, name := range r.names {
		nameLower := strings.ToLower(name)
		if strings.Contains(lower, nameLower) {
			return true
		}
		if noDots := strings.ReplaceAll(nameLower, ".", ""); noDots != nameLower &&
			strings.Contains(lower, noDots) {
			return true
		}
	}
	return false
}

// properNameFor resolves a matched string to its canonical form by
// case-insensitive comparison against each name and its dot-stripped
// variant.
func (r *ProperNamesRule) properNameFor(found string) (string, bool) {
	foundLower := strings.ToLower(found)
	for _, name := range r.names {
		lower := strings.ToLower(name)
		if foundLower == lower || foundLower == strings.ReplaceAll(lower, ".", "") {
			return name, true
		}
	}
	return "", false
}

// wordBoundary reports whether the match [start, end) stands alone:
// neither neighbor is alphanumeric. This keeps "javascripter" from
// matching "javascript".
func wordBoundary(line []byte, start, end int) bool {
	if start > 0 && isAlnum(line[start-1]) {
		return false
	}
	if end < len(line) && isAlnum(line[end]) {
		return false
	}
	return true
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Fix rewrites the document with every miscapitalized name replaced by its
// canonical form. Replacements run from the highest byte offset to the
// lowest so earlier edits never shift the offsets of later ones. A
// violation whose range is invalid is skipped with a notice; the pass
// continues.
func (r *ProperNamesRule) Fix(doc *lint.Document) ([]byte, []lint.Notice, error) {
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
	notices := skipNotices(r.ID(), doc, skipped)
	return fixed, notices, nil
}

// skipNotices converts skipped edits into operator-visible notices,
// logged at warn level and returned to the caller.
func skipNotices(ruleID string, doc *lint.Document, skipped []fix.TextEdit) []lint.Notice {
	if len(skipped) == 0 {
		return nil
	}

	notices := make([]lint.Notice, 0, len(skipped))
	for _, e := range skipped {
		n := lint.Notice{
			RuleID: ruleID,
			Reason: fmt.Sprintf("skipping fix with invalid byte range [%d:%d]", e.StartOffset, e.EndOffset),
		}
		if span, ok := doc.Index.ToPosition(e.StartOffset, e.StartOffset); ok {
			n.Line = span.StartLine
			n.Column = span.StartColumn
		}
		notices = append(notices, n)

		logging.Default().Warn("skipping invalid fix",
			logging.FieldRule, ruleID,
			logging.FieldPath, doc.Path,
			logging.FieldLine, n.Line,
			logging.FieldColumn, n.Column,
			logging.FieldReason, n.Reason)
	}
	return notices
}

// ScanCount returns how many full scans the rule has performed.
// Cached Check calls do not increment it.
func (r *ProperNamesRule) ScanCount() int64 {
	return r.scans.Load()
}

// ResetCache discards the rule's memoized violations. Long-lived callers
// use this to bound memory.
func (r *ProperNamesRule) ResetCache() {
	r.cache.Reset()
}
