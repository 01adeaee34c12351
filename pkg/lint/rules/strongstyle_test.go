package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlab/mdvet/pkg/config"
)

func TestStrongStyleRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		style     config.Style
		wantDiags int
		wantMsg   string
		wantFix   string
	}{
		{
			name:      "asterisk style flags underscores",
			input:     "__bold__ text\n",
			style:     config.StyleAsterisk,
			wantDiags: 1,
			wantMsg:   "Strong emphasis should use ** instead of __",
			wantFix:   "**bold** text\n",
		},
		{
			name:      "asterisk style accepts asterisks",
			input:     "**bold** text\n",
			style:     config.StyleAsterisk,
			wantDiags: 0,
		},
		{
			name:      "underscore style flags asterisks",
			input:     "**bold** text\n",
			style:     config.StyleUnderscore,
			wantDiags: 1,
			wantMsg:   "Strong emphasis should use __ instead of **",
			wantFix:   "__bold__ text\n",
		},
		{
			name:      "consistent follows first asterisk",
			input:     "**first** then __second__\n",
			style:     config.StyleConsistent,
			wantDiags: 1,
			wantMsg:   "Strong emphasis should use ** instead of __",
			wantFix:   "**first** then **second**\n",
		},
		{
			name:      "consistent follows first underscore",
			input:     "__first__ then **second**\n",
			style:     config.StyleConsistent,
			wantDiags: 1,
			wantMsg:   "Strong emphasis should use __ instead of **",
			wantFix:   "__first__ then __second__\n",
		},
		{
			name:      "consistent with single style is clean",
			input:     "__only__ and __more__\n",
			style:     config.StyleConsistent,
			wantDiags: 0,
		},
		{
			name:      "no strong emphasis",
			input:     "plain prose\n",
			style:     config.StyleConsistent,
			wantDiags: 0,
		},
		{
			name:      "inline code excluded",
			input:     "use `__init__` in Python\n",
			style:     config.StyleAsterisk,
			wantDiags: 0,
		},
		{
			name:      "fenced block excluded",
			input:     "```\n__slots__ = ()\n```\n",
			style:     config.StyleAsterisk,
			wantDiags: 0,
		},
		{
			name:      "escaped marker ignored",
			input:     "literal \\__not strong__\n",
			style:     config.StyleAsterisk,
			wantDiags: 0,
		},
		{
			name:      "double backslash leaves marker live",
			input:     "slash \\\\__strong__\n",
			style:     config.StyleAsterisk,
			wantDiags: 1,
			wantFix:   "slash \\\\**strong**\n",
		},
		{
			name:      "multiple violations across lines",
			input:     "__one__\n\nmid __two__ end\n",
			style:     config.StyleAsterisk,
			wantDiags: 2,
			wantFix:   "**one**\n\nmid **two** end\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewStrongStyleRule(StrongStyleOptions{Style: tt.style})
			doc := newTestDoc(t, tt.input)

			diags, err := rule.Check(doc)
			require.NoError(t, err)
			assert.Len(t, diags, tt.wantDiags)
			if tt.wantMsg != "" && len(diags) > 0 {
				assert.Equal(t, tt.wantMsg, diags[0].Message)
			}

			if tt.wantFix != "" {
				fixed, notices, err := rule.Fix(doc)
				require.NoError(t, err)
				assert.Empty(t, notices)
				assert.Equal(t, tt.wantFix, string(fixed))
			}
		})
	}
}

func TestStrongStyleRulePositions(t *testing.T) {
	rule := NewStrongStyleRule(StrongStyleOptions{Style: config.StyleAsterisk})
	doc := newTestDoc(t, "intro\n\nsee __hére__ now\n")

	diags, err := rule.Check(doc)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	v := diags[0]
	assert.Equal(t, "MV050", v.RuleID)
	assert.Equal(t, 3, v.StartLine)
	assert.Equal(t, 5, v.StartColumn)
	assert.Equal(t, 13, v.EndColumn)

	require.NotNil(t, v.Fix)
	assert.Equal(t, "**hére**", v.Fix.Replacement)
}

func TestStrongStyleRuleFixIdentity(t *testing.T) {
	input := "**already** fine\n\n`__code__`\n"
	rule := NewStrongStyleRule(StrongStyleOptions{Style: config.StyleAsterisk})
	doc := newTestDoc(t, input)

	fixed, notices, err := rule.Fix(doc)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, input, string(fixed))
}

func TestStrongStyleRuleMultilineSpan(t *testing.T) {
	// A strong pair wrapping a newline is not reported by the per-line
	// scan, but the full-content fix still normalizes it.
	input := "see __multi\nline__ end\n"
	rule := NewStrongStyleRule(StrongStyleOptions{Style: config.StyleAsterisk})
	doc := newTestDoc(t, input)

	diags, err := rule.Check(doc)
	require.NoError(t, err)
	assert.Empty(t, diags)

	fixed, notices, err := rule.Fix(doc)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, "see **multi\nline** end\n", string(fixed))
}

func TestStrongStyleRuleDetectionSkipsCode(t *testing.T) {
	// The underscore form inside the fence must not decide the document
	// style; the asterisk form in prose comes first outside code.
	input := "```\n__ignored__\n```\n\n**prose** and __mixed__\n"

	rule := NewStrongStyleRule(StrongStyleOptions{Style: config.StyleConsistent})
	diags, err := rule.Check(newTestDoc(t, input))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Strong emphasis should use ** instead of __", diags[0].Message)
}
