package fix

// Apply rewrites content with the given edits.
//
// Edits are applied in descending start-offset order regardless of input
// order. An edit that fails validation against the original content, or
// that overlaps an already-applied edit, is skipped and returned in the
// second result; the rest of the pass proceeds. When no edit applies, the
// original content slice is returned unchanged.
func Apply(content []byte, edits []TextEdit) ([]byte, []TextEdit) {
	if len(edits) == 0 {
		return content, nil
	}

	ordered := make([]TextEdit, len(edits))
	copy(ordered, edits)
	SortDescending(ordered)

	var skipped []TextEdit
	out := content
	applied := false
	// Lowest offset consumed so far; edits ending past it would overlap.
	floor := len(content)

	for _, e := range ordered {
		if Validate(e, content) != nil || e.EndOffset > floor {
			skipped = append(skipped, e)
			continue
		}

		if !applied {
			out = make([]byte, len(content))
			copy(out, content)
			applied = true
		}

		rewritten := make([]byte, 0, len(out)-e.Len()+len(e.Replacement))
		rewritten = append(rewritten, out[:e.StartOffset]...)
		rewritten = append(rewritten, e.Replacement...)
		rewritten = append(rewritten, out[e.EndOffset:]...)
		out = rewritten

		floor = e.StartOffset
	}

	if !applied {
		return content, skipped
	}
	return out, skipped
}
