package lint

import "github.com/veldtlab/mdvet/pkg/textpos"

// CodeRegions answers whether a byte offset falls inside a fenced code
// block, indented code block, or inline code span. It is constructed once
// per document, before any rule runs, and consulted by rules that must not
// fire inside code.
type CodeRegions interface {
	InCodeRegion(offset int) bool
}

// noRegions is the zero oracle: nothing is code.
type noRegions struct{}

func (noRegions) InCodeRegion(int) bool { return false }

// NoCodeRegions is a CodeRegions that reports every offset as outside code.
// Useful for callers linting plain text and in tests.
//
//nolint:gochecknoglobals // Stateless sentinel value.
var NoCodeRegions CodeRegions = noRegions{}

// Document is an immutable view of one text buffer for the duration of a
// single Check or Fix invocation. The caller owns the content; rules borrow
// it and must not mutate it. Violations and fixes reference byte offsets
// into this exact content and are invalid against any other buffer.
type Document struct {
	// Path identifies the document (file path or editor URI).
	Path string

	// Content is the raw text. Treat as read-only.
	Content []byte

	// Index maps byte offsets to line/column positions and back.
	Index *textpos.Index

	// Regions is the code-region oracle for this content.
	Regions CodeRegions
}

// NewDocument builds a Document over content with the given code-region
// oracle. A nil oracle behaves as NoCodeRegions.
func NewDocument(path string, content []byte, regions CodeRegions) *Document {
	if regions == nil {
		regions = NoCodeRegions
	}
	return &Document{
		Path:    path,
		Content: content,
		Index:   textpos.New(content),
		Regions: regions,
	}
}

// InCodeRegion reports whether the byte offset is inside a code region.
func (d *Document) InCodeRegion(offset int) bool {
	return d.Regions.InCodeRegion(offset)
}
