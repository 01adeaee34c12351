package fix

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// Validate checks one edit against the content it will be applied to.
// An edit is valid when its range lies within the content and both ends
// fall on character boundaries. A range straddling a multi-byte character
// must be rejected, never applied.
func Validate(edit TextEdit, content []byte) error {
	if edit.StartOffset < 0 {
		return &ValidationError{Edit: edit, Message: "start offset is negative"}
	}
	if edit.EndOffset < edit.StartOffset {
		return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
	}
	if edit.EndOffset > len(content) {
		return &ValidationError{
			Edit:    edit,
			Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, len(content)),
		}
	}
	if !boundaryAligned(content, edit.StartOffset) {
		return &ValidationError{Edit: edit, Message: "start offset splits a multi-byte character"}
	}
	if !boundaryAligned(content, edit.EndOffset) {
		return &ValidationError{Edit: edit, Message: "end offset splits a multi-byte character"}
	}
	return nil
}

func boundaryAligned(content []byte, offset int) bool {
	return offset == len(content) || utf8.RuneStart(content[offset])
}

// SortDescending orders edits from the highest start offset to the lowest,
// the order in which they must be applied.
func SortDescending(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset > edits[j].StartOffset
		}
		return edits[i].EndOffset > edits[j].EndOffset
	})
}
