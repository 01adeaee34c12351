// Package rules contains the built-in mdvet lint rules.
package rules

import (
	"regexp"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// Marker patterns for the two equivalent emphasis styles. The character
// classes exclude backslashes so that spans containing escape sequences are
// never rewritten blindly.
var (
	strongAsteriskPattern     = regexp.MustCompile(`\*\*[^*\\]+\*\*`)
	strongUnderscorePattern   = regexp.MustCompile(`__[^_\\]+__`)
	emphasisAsteriskPattern   = regexp.MustCompile(`\*[^*\\]+\*`)
	emphasisUnderscorePattern = regexp.MustCompile(`_[^_\\]+_`)
)

// detectStyle infers the dominant style for a document: whichever of the
// two marker patterns first occurs outside a code region wins. If only one
// style appears it is dominant. If neither appears, fallback is returned.
//
// This detector is shared by every consistency rule; each rule supplies its
// own pair of marker patterns and the text to scan. The text must be
// offset-aligned with doc.Content so code-region lookups stay valid; the
// emphasis rule passes a strong-masked copy so the interior of a strong
// span never decides the emphasis style.
func detectStyle(doc *lint.Document, text []byte, asterisk, underscore *regexp.Regexp, fallback config.Style) config.Style {
	firstAsterisk := firstMatchOutsideCode(doc, text, asterisk)
	firstUnderscore := firstMatchOutsideCode(doc, text, underscore)

	switch {
	case firstAsterisk >= 0 && firstUnderscore >= 0:
		if firstAsterisk < firstUnderscore {
			return config.StyleAsterisk
		}
		return config.StyleUnderscore
	case firstAsterisk >= 0:
		return config.StyleAsterisk
	case firstUnderscore >= 0:
		return config.StyleUnderscore
	default:
		return fallback
	}
}

// firstMatchOutsideCode returns the byte offset of the first match of
// pattern in text that is not inside a code region, or -1.
func firstMatchOutsideCode(doc *lint.Document, text []byte, pattern *regexp.Regexp) int {
	for _, m := range pattern.FindAllIndex(text, -1) {
		if !doc.InCodeRegion(m[0]) {
			return m[0]
		}
	}
	return -1
}

// counterPattern returns the pattern matching the style that should NOT be
// used, given the resolved target style.
//
// The consistent value must never reach this point: callers resolve it to a
// concrete style first. Reaching here unresolved is a programming-contract
// violation, not a recoverable error.
func counterPattern(target config.Style, asterisk, underscore *regexp.Regexp) *regexp.Regexp {
	switch target {
	case config.StyleAsterisk:
		return underscore
	case config.StyleUnderscore:
		return asterisk
	default:
		panic("rules: style must be resolved before matching")
	}
}

// isEscaped reports whether the marker starting at pos in text is escaped:
// preceded by an odd number of consecutive backslashes. An even count means
// the backslashes are literal and the marker is live.
func isEscaped(text []byte, pos int) bool {
	count := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}
