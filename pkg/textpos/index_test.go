package textpos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlab/mdvet/pkg/textpos"
)

func TestToPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		start   int
		end     int
		want    textpos.Span
		wantOK  bool
	}{
		{
			name:    "start of document",
			content: "hello world\n",
			start:   0,
			end:     5,
			want:    textpos.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 6},
			wantOK:  true,
		},
		{
			name:    "second line",
			content: "first\nsecond\n",
			start:   6,
			end:     12,
			want:    textpos.Span{StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 7},
			wantOK:  true,
		},
		{
			name:    "range spanning lines",
			content: "one\ntwo\nthree\n",
			start:   2,
			end:     9,
			want:    textpos.Span{StartLine: 1, StartColumn: 3, EndLine: 3, EndColumn: 2},
			wantOK:  true,
		},
		{
			name:    "end equals content length",
			content: "abc",
			start:   0,
			end:     3,
			want:    textpos.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 4},
			wantOK:  true,
		},
		{
			name:    "end equals length with trailing newline",
			content: "abc\n",
			start:   0,
			end:     4,
			want:    textpos.Span{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 1},
			wantOK:  true,
		},
		{
			name:    "multibyte columns count characters",
			content: "héllo wörld\n",
			start:   0,
			end:     13, // full line: 11 runes, 13 bytes
			want:    textpos.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 12},
			wantOK:  true,
		},
		{
			name:    "offset inside multibyte character",
			content: "héllo\n",
			start:   2, // second byte of é
			end:     3,
			wantOK:  false,
		},
		{
			name:    "offset past end of content",
			content: "abc",
			start:   0,
			end:     4,
			wantOK:  false,
		},
		{
			name:    "negative offset",
			content: "abc",
			start:   -1,
			end:     2,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ix := textpos.New([]byte(tt.content))
			got, ok := ix.ToPosition(tt.start, tt.end)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestByteOffset(t *testing.T) {
	t.Parallel()

	content := []byte("alpha\nβeta γamma\nlast")
	ix := textpos.New(content)

	tests := []struct {
		name   string
		line   int
		col    int
		want   int
		wantOK bool
	}{
		{name: "first line first column", line: 1, col: 1, want: 0, wantOK: true},
		{name: "first line mid", line: 1, col: 3, want: 2, wantOK: true},
		{name: "multibyte line", line: 2, col: 2, want: 8, wantOK: true},                    // after β (2 bytes)
		{name: "column after space and multibyte", line: 2, col: 7, want: 14, wantOK: true}, // after γ (2 bytes)
		{name: "one past end of line", line: 1, col: 7, want: 6, wantOK: true},
		{name: "column beyond line", line: 1, col: 8, wantOK: false},
		{name: "line zero", line: 0, col: 1, wantOK: false},
		{name: "line beyond document", line: 4, col: 1, wantOK: false},
		{name: "column zero", line: 1, col: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ix.ByteOffset(tt.line, tt.col)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestRoundTrip verifies that byte range -> span -> byte range is the
// identity for every character-aligned range in a mixed-width document.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	content := []byte("plain text\nünïcödé line\n\nlast line without newline")
	ix := textpos.New(content)

	// Collect all character boundaries.
	var boundaries []int
	for i := 0; i <= len(content); i++ {
		if i == len(content) || (content[i]&0xC0) != 0x80 {
			boundaries = append(boundaries, i)
		}
	}

	for _, start := range boundaries {
		for _, end := range boundaries {
			if end < start {
				continue
			}
			span, ok := ix.ToPosition(start, end)
			require.True(t, ok, "ToPosition(%d, %d)", start, end)

			gotStart, gotEnd, ok := ix.ByteRange(span)
			require.True(t, ok, "ByteRange(%+v)", span)
			assert.Equal(t, start, gotStart)
			assert.Equal(t, end, gotEnd)
		}
	}
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	ix := textpos.New([]byte("one\ntwo\r\nthree"))

	assert.Equal(t, "one", string(ix.LineContent(1)))
	assert.Equal(t, "two", string(ix.LineContent(2)))
	assert.Equal(t, "three", string(ix.LineContent(3)))
	assert.Nil(t, ix.LineContent(0))
	assert.Nil(t, ix.LineContent(4))
}

func TestEmptyContent(t *testing.T) {
	t.Parallel()

	ix := textpos.New(nil)
	require.Equal(t, 1, ix.LineCount())

	span, ok := ix.ToPosition(0, 0)
	require.True(t, ok)
	assert.Equal(t, textpos.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}, span)
}
