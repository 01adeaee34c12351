// Package textpos maps between byte offsets and 1-based line/column
// positions for a single immutable text snapshot.
//
// Columns count Unicode scalar values, not bytes, so a position always
// addresses a whole character regardless of encoding width. All conversions
// are pure lookups against a line table built once per snapshot.
package textpos

import (
	"sort"
	"unicode/utf8"
)

// Span is a half-open range expressed as 1-based line/column pairs.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsValid returns true if both endpoints have positive coordinates.
func (s Span) IsValid() bool {
	return s.StartLine > 0 && s.StartColumn > 0 && s.EndLine > 0 && s.EndColumn > 0
}

// lineInfo records the byte extent of one physical line.
// end is the offset one past the line's last byte, including any newline.
type lineInfo struct {
	start int
	end   int
}

// Index converts between byte offsets and line/column positions for one
// document snapshot. It is stateless after construction and safe for
// concurrent use.
type Index struct {
	content []byte
	lines   []lineInfo
}

// New builds an Index over content. The caller must not mutate content while
// the Index is in use; positions computed here are only meaningful against
// the exact bytes the Index was built from.
func New(content []byte) *Index {
	ix := &Index{content: content}

	lineStart := 0
	for i, b := range content {
		if b == '\n' {
			ix.lines = append(ix.lines, lineInfo{start: lineStart, end: i + 1})
			lineStart = i + 1
		}
	}
	// Final line, which may be empty when content ends with a newline.
	// An empty trailing line gives end-of-text offsets a home.
	ix.lines = append(ix.lines, lineInfo{start: lineStart, end: len(content)})

	return ix
}

// Len returns the length of the underlying content in bytes.
func (ix *Index) Len() int {
	return len(ix.content)
}

// LineCount returns the number of physical lines.
func (ix *Index) LineCount() int {
	return len(ix.lines)
}

// ToPosition converts the byte range [start, end) to a line/column span.
// end may equal the content length, in which case the end position is the
// position immediately after the last character. Returns ok=false when
// either offset is out of range or does not fall on a character boundary.
func (ix *Index) ToPosition(start, end int) (Span, bool) {
	startLine, startCol, ok := ix.position(start)
	if !ok {
		return Span{}, false
	}
	endLine, endCol, ok := ix.position(end)
	if !ok {
		return Span{}, false
	}
	return Span{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}, true
}

// position converts a single byte offset to a 1-based (line, column) pair.
func (ix *Index) position(offset int) (int, int, bool) {
	if offset < 0 || offset > len(ix.content) {
		return 0, 0, false
	}
	if offset < len(ix.content) && !utf8.RuneStart(ix.content[offset]) {
		// Offset points into the middle of a multi-byte character.
		return 0, 0, false
	}

	lineIdx := sort.Search(len(ix.lines), func(i int) bool {
		return ix.lines[i].end > offset
	})
	if lineIdx >= len(ix.lines) {
		lineIdx = len(ix.lines) - 1
	}

	line := ix.lines[lineIdx]
	col := utf8.RuneCount(ix.content[line.start:offset]) + 1
	return lineIdx + 1, col, true
}

// ByteOffset converts a 1-based (line, column) pair to a byte offset.
// Column counts characters; the column one past the line's last character is
// valid and addresses the line's end. Returns ok=false when the position
// does not exist in the snapshot.
func (ix *Index) ByteOffset(line, col int) (int, bool) {
	if line < 1 || line > len(ix.lines) || col < 1 {
		return 0, false
	}

	info := ix.lines[line-1]
	offset := info.start
	for n := 1; n < col; n++ {
		if offset >= info.end {
			return 0, false
		}
		_, size := utf8.DecodeRune(ix.content[offset:info.end])
		offset += size
	}
	return offset, true
}

// ByteRange converts a line/column span back to a byte range.
// It is the inverse of ToPosition: round-tripping any character-aligned byte
// range through ToPosition and ByteRange yields the original range.
func (ix *Index) ByteRange(span Span) (int, int, bool) {
	start, ok := ix.ByteOffset(span.StartLine, span.StartColumn)
	if !ok {
		return 0, 0, false
	}
	end, ok := ix.ByteOffset(span.EndLine, span.EndColumn)
	if !ok || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// LineContent returns the bytes of a 1-based line, excluding any trailing
// newline. Returns nil when the line number is out of range.
func (ix *Index) LineContent(line int) []byte {
	if line < 1 || line > len(ix.lines) {
		return nil
	}
	info := ix.lines[line-1]
	end := info.end
	if end > info.start && ix.content[end-1] == '\n' {
		end--
		if end > info.start && ix.content[end-1] == '\r' {
			end--
		}
	}
	return ix.content[info.start:end]
}

// LineStart returns the byte offset of the first character of a 1-based
// line. Returns ok=false when the line number is out of range.
func (ix *Index) LineStart(line int) (int, bool) {
	if line < 1 || line > len(ix.lines) {
		return 0, false
	}
	return ix.lines[line-1].start, true
}
