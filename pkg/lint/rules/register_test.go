package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlab/mdvet/pkg/config"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry(nil)

	assert.Equal(t, []string{"MV040", "MV044", "MV049", "MV050"}, reg.IDs())

	rule, ok := reg.Get("MV044")
	require.True(t, ok)
	assert.Equal(t, "proper-names", rule.Name())
}

func TestNewRegistryAppliesOptions(t *testing.T) {
	errSev := "error"
	cfg := &config.Config{
		Rules: map[string]config.RuleConfig{
			"MV044": {
				Severity: &errSev,
				Options: map[string]any{
					// YAML unmarshals sequences as []any.
					"names": []any{"GitHub"},
				},
			},
			"MV050": {
				Options: map[string]any{"style": "underscore"},
			},
		},
	}

	reg := NewRegistry(cfg)

	pn, ok := reg.Get("MV044")
	require.True(t, ok)
	diags, err := pn.Check(newTestDoc(t, "on github\n"))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, config.SeverityError, diags[0].Severity)

	ss, ok := reg.Get("MV050")
	require.True(t, ok)
	diags, err = ss.Check(newTestDoc(t, "**bold**\n"))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Strong emphasis should use __ instead of **", diags[0].Message)
}

func TestEnabled(t *testing.T) {
	off := false
	cfg := &config.Config{
		Rules: map[string]config.RuleConfig{
			"MV050": {Enabled: &off},
		},
	}

	assert.True(t, Enabled(cfg, "MV044"))
	assert.False(t, Enabled(cfg, "MV050"))
	assert.True(t, Enabled(nil, "MV050"))
}
