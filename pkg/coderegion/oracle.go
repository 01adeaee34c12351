// Package coderegion builds the code-region oracle rules consult to avoid
// firing inside fenced code blocks, indented code blocks, and inline code
// spans.
//
// The oracle is constructed once per document by parsing the content with
// goldmark and collecting the byte ranges of every code construct. After
// construction it is immutable and answers membership queries by binary
// search.
package coderegion

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// span is a half-open byte range.
type span struct {
	start int
	end   int
}

// Oracle answers whether a byte offset lies inside a code region.
// It implements the lint.CodeRegions contract.
type Oracle struct {
	regions []span
}

// New parses content and collects all code regions.
func New(content []byte) *Oracle {
	o := &Oracle{}
	if len(content) == 0 {
		return o
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(content))

	//nolint:errcheck // The walker below never returns an error.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			if s, ok := blockSpan(node, content); ok {
				o.regions = append(o.regions, expandFences(s, content))
			}
		case *ast.CodeBlock:
			if s, ok := blockSpan(node, content); ok {
				o.regions = append(o.regions, s)
			}
		case *ast.CodeSpan:
			if s, ok := inlineSpan(node); ok {
				o.regions = append(o.regions, expandBackticks(s, content))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	sort.Slice(o.regions, func(i, j int) bool {
		return o.regions[i].start < o.regions[j].start
	})

	return o
}

// InCodeRegion reports whether offset falls inside any code region.
func (o *Oracle) InCodeRegion(offset int) bool {
	i := sort.Search(len(o.regions), func(i int) bool {
		return o.regions[i].end > offset
	})
	return i < len(o.regions) && offset >= o.regions[i].start
}

// RegionCount returns the number of collected regions.
func (o *Oracle) RegionCount() int {
	return len(o.regions)
}

// blockSpan returns the byte range covered by a block node's content lines.
func blockSpan(n ast.Node, content []byte) (span, bool) {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return span{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	s := span{start: first.Start, end: last.Stop}
	if s.start < 0 || s.end > len(content) || s.end <= s.start {
		return span{}, false
	}
	return s, true
}

// inlineSpan returns the byte range of a code span's text content.
func inlineSpan(n *ast.CodeSpan) (span, bool) {
	first := n.FirstChild()
	last := n.LastChild()
	if first == nil || last == nil {
		return span{}, false
	}
	firstText, ok1 := first.(*ast.Text)
	lastText, ok2 := last.(*ast.Text)
	if !ok1 || !ok2 {
		return span{}, false
	}
	s := span{start: firstText.Segment.Start, end: lastText.Segment.Stop}
	if s.end <= s.start {
		return span{}, false
	}
	return s, true
}

// expandFences widens a fenced block's content span to cover the fence
// lines themselves, so offsets on the fence markers also count as code.
func expandFences(s span, content []byte) span {
	// Opening fence: the line preceding the first content line.
	lineStart := s.start
	if lineStart > 0 {
		prevEnd := lineStart - 1 // the newline ending the fence line
		fenceStart := lineStartBefore(content, prevEnd)
		if isFenceLine(content[fenceStart:prevEnd]) {
			s.start = fenceStart
		}
	}

	// Closing fence: the line following the last content line.
	if s.end < len(content) {
		closeStart := s.end
		closeEnd := closeStart
		for closeEnd < len(content) && content[closeEnd] != '\n' {
			closeEnd++
		}
		if isFenceLine(content[closeStart:closeEnd]) {
			if closeEnd < len(content) {
				closeEnd++ // include the newline
			}
			s.end = closeEnd
		}
	}

	return s
}

// lineStartBefore returns the start offset of the line containing offset.
func lineStartBefore(content []byte, offset int) int {
	i := offset
	for i > 0 && content[i-1] != '\n' {
		i--
	}
	return i
}

// isFenceLine reports whether a line opens or closes a code fence.
func isFenceLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " \t")
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}

// expandBackticks widens a code span's content range to include the
// surrounding backtick markers.
func expandBackticks(s span, content []byte) span {
	for s.start > 0 && content[s.start-1] == '`' {
		s.start--
	}
	for s.end < len(content) && content[s.end] == '`' {
		s.end++
	}
	return s
}
