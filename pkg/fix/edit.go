// Package fix provides text edit types and application logic for auto-fixing.
//
// Edits address byte offsets in the original document. Application proceeds
// from the highest offset to the lowest so that applying one edit never
// invalidates the offsets of edits not yet applied.
package fix

// TextEdit represents a single text replacement in a document.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// Replacement is the text that replaces the range.
	Replacement string
}

// Len returns the length of the replaced range in bytes.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}
