package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlab/mdvet/pkg/coderegion"
	"github.com/veldtlab/mdvet/pkg/lint"
)

func newTestDoc(t *testing.T, content string) *lint.Document {
	t.Helper()
	data := []byte(content)
	return lint.NewDocument("test.md", data, coderegion.New(data))
}

func TestProperNamesRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		names     []string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "miscapitalized name",
			input:     "We use javascript here.\n",
			names:     []string{"JavaScript"},
			wantDiags: 1,
			wantFix:   "We use JavaScript here.\n",
		},
		{
			name:      "canonical form untouched",
			input:     "JavaScript rocks.\n",
			names:     []string{"JavaScript"},
			wantDiags: 0,
		},
		{
			name:      "all caps flagged",
			input:     "JAVASCRIPT everywhere.\n",
			names:     []string{"JavaScript"},
			wantDiags: 1,
			wantFix:   "JavaScript everywhere.\n",
		},
		{
			name:      "word boundary respected",
			input:     "JavaScript is not java.\n",
			names:     []string{"Java"},
			wantDiags: 1,
			wantFix:   "JavaScript is not Java.\n",
		},
		{
			name:      "embedded name not flagged",
			input:     "The javascripter wrote code.\n",
			names:     []string{"JavaScript"},
			wantDiags: 0,
		},
		{
			name:      "dot-stripped variant",
			input:     "Use nodejs today.\n",
			names:     []string{"Node.js"},
			wantDiags: 1,
			wantFix:   "Use Node.js today.\n",
		},
		{
			name:      "multiple occurrences",
			input:     "github and GITHUB and GitHub.\n",
			names:     []string{"GitHub"},
			wantDiags: 2,
			wantFix:   "GitHub and GitHub and GitHub.\n",
		},
		{
			name:      "no names configured",
			input:     "anything goes\n",
			names:     nil,
			wantDiags: 0,
		},
		{
			name:      "fence info string skipped",
			input:     "```javascript\nvar x = 1;\n```\n",
			names:     []string{"JavaScript"},
			wantDiags: 0,
		},
		{
			name:      "empty document",
			input:     "",
			names:     []string{"JavaScript"},
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewProperNamesRule(ProperNamesOptions{Names: tt.names})
			doc := newTestDoc(t, tt.input)

			diags, err := rule.Check(doc)
			require.NoError(t, err)
			assert.Len(t, diags, tt.wantDiags)

			if tt.wantFix != "" {
				fixed, notices, err := rule.Fix(doc)
				require.NoError(t, err)
				assert.Empty(t, notices)
				assert.Equal(t, tt.wantFix, string(fixed))
			}
		})
	}
}

func TestProperNamesRulePositions(t *testing.T) {
	rule := NewProperNamesRule(ProperNamesOptions{Names: []string{"JavaScript"}})
	doc := newTestDoc(t, "héllo javascript\n")

	diags, err := rule.Check(doc)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	v := diags[0]
	assert.Equal(t, "MV044", v.RuleID)
	assert.Equal(t, 1, v.StartLine)
	// Columns count characters, not bytes: "héllo " is 6 characters.
	assert.Equal(t, 7, v.StartColumn)
	assert.Equal(t, 17, v.EndColumn)
	assert.Equal(t, `Proper name "javascript" should be "JavaScript"`, v.Message)

	require.NotNil(t, v.Fix)
	// Byte offsets do count bytes: the é is two bytes wide.
	assert.Equal(t, 7, v.Fix.StartOffset)
	assert.Equal(t, 17, v.Fix.EndOffset)
	assert.Equal(t, "JavaScript", v.Fix.Replacement)
}

func TestProperNamesRuleCodeBlockExclusion(t *testing.T) {
	input := "javascript in prose\n\n```\njavascript in code\n```\n"

	excluded := NewProperNamesRule(ProperNamesOptions{
		Names:              []string{"JavaScript"},
		CodeBlocksExcluded: true,
	})
	doc := newTestDoc(t, input)
	diags, err := excluded.Check(doc)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].StartLine)

	included := NewProperNamesRule(ProperNamesOptions{
		Names: []string{"JavaScript"},
	})
	diags, err = included.Check(doc)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, 4, diags[1].StartLine)
}

func TestProperNamesRuleInlineCodeExclusion(t *testing.T) {
	rule := NewProperNamesRule(ProperNamesOptions{
		Names:              []string{"JavaScript"},
		CodeBlocksExcluded: true,
	})
	doc := newTestDoc(t, "Call it `javascript` but write javascript.\n")

	diags, err := rule.Check(doc)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 32, diags[0].StartColumn)
}

func TestProperNamesRuleCache(t *testing.T) {
	rule := NewProperNamesRule(ProperNamesOptions{Names: []string{"GitHub"}})

	docA := newTestDoc(t, "github is a website\n")
	first, err := rule.Check(docA)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int64(1), rule.ScanCount())

	// Identical content hits the cache, no rescan.
	again, err := rule.Check(newTestDoc(t, "github is a website\n"))
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, int64(1), rule.ScanCount())

	// A single changed byte forces a rescan.
	_, err = rule.Check(newTestDoc(t, "github is a Website\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), rule.ScanCount())

	// Reset discards the memoized result.
	rule.ResetCache()
	_, err = rule.Check(docA)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rule.ScanCount())
}

func TestProperNamesRuleFixIdempotent(t *testing.T) {
	rule := NewProperNamesRule(ProperNamesOptions{Names: []string{"GitHub", "JavaScript"}})
	doc := newTestDoc(t, "github hosts javascript projects.\n")

	fixed, notices, err := rule.Fix(doc)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, "GitHub hosts JavaScript projects.\n", string(fixed))

	again, notices, err := rule.Fix(newTestDoc(t, string(fixed)))
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, string(fixed), string(again))
}

func TestCombinedPattern(t *testing.T) {
	assert.Empty(t, combinedPattern(nil))

	// Longest variant sorts first so overlapping names prefer it.
	expr := combinedPattern([]string{"Java", "JavaScript"})
	assert.Equal(t, `(?i)(?:javascript|java)`, expr)

	// Dot-bearing names contribute a stripped variant.
	expr = combinedPattern([]string{"Node.js"})
	assert.Equal(t, `(?i)(?:node\.js|nodejs)`, expr)
}
