package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "test", Commit: "none", Date: "today"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckCommandReportsIssues(t *testing.T) {
	path := writeDoc(t, "doc.md", "**bold** and __wrong__\n")

	out, err := runCommand(t, "check", path)
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out, "MV050")
	assert.Contains(t, out, path+":1:14")
}

func TestCheckCommandCleanFile(t *testing.T) {
	path := writeDoc(t, "doc.md", "# Title\n\nplain prose\n")

	out, err := runCommand(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "clean")
}

func TestCheckCommandFix(t *testing.T) {
	path := writeDoc(t, "doc.md", "**a** __b__\n")

	_, err := runCommand(t, "check", "--fix", path)
	require.NoError(t, err)

	fixed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "**a** **b**\n", string(fixed))
}

func TestCheckCommandFixDryRun(t *testing.T) {
	path := writeDoc(t, "doc.md", "**a** __b__\n")

	_, err := runCommand(t, "check", "--fix", "--dry-run", path)
	require.NoError(t, err)

	// Dry run reports against the would-be result but leaves the file alone.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "**a** __b__\n", string(content))
}

func TestCheckCommandWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("__x__ **y**\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("__x__ **y**\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden", "c.md"), []byte("__x__ **y**\n"), 0o644))

	out, err := runCommand(t, "check", dir)
	require.ErrorIs(t, err, ErrIssuesFound)
	// Only the markdown file outside hidden directories is checked.
	assert.Contains(t, out, "a.md")
	assert.NotContains(t, out, "b.txt")
	assert.NotContains(t, out, "c.md")
}

func TestCheckCommandConfig(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(docPath, []byte("we use javascript\n"), 0o644))

	cfgPath := filepath.Join(dir, "mdvet.yaml")
	cfg := "rules:\n  MV044:\n    options:\n      names:\n        - JavaScript\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := runCommand(t, "check", "--config", cfgPath, docPath)
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out, "MV044")
	assert.Contains(t, out, "JavaScript")
}

func TestCheckCommandMissingPath(t *testing.T) {
	_, err := runCommand(t, "check", "/nonexistent/path.md")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIssuesFound)
}

// cascadeRule flags every "beta" and rewrites "alpha" to "beta", so its
// own fix creates violations it then reports.
type cascadeRule struct {
	lint.BaseRule
}

func newCascadeRule() *cascadeRule {
	return &cascadeRule{BaseRule: lint.NewBaseRule("ZZ01", "cascade", "test rule", nil, true)}
}

func (r *cascadeRule) Check(doc *lint.Document) ([]lint.Violation, error) {
	var out []lint.Violation
	for i := 1; i <= doc.Index.LineCount(); i++ {
		if strings.Contains(string(doc.Index.LineContent(i)), "beta") {
			out = append(out, lint.Violation{
				RuleID: r.ID(), StartLine: i, StartColumn: 1, EndLine: i, EndColumn: 2,
				Message: "beta present", Severity: config.SeverityWarning,
			})
		}
	}
	return out, nil
}

func (r *cascadeRule) Fix(doc *lint.Document) ([]byte, []lint.Notice, error) {
	fixed := strings.ReplaceAll(string(doc.Content), "alpha", "beta")
	return []byte(fixed), nil, nil
}

func TestCheckFileFixIntroducingViolations(t *testing.T) {
	path := writeDoc(t, "doc.md", "alpha\n")

	registry := lint.NewRegistry()
	registry.Register(newCascadeRule())

	result, err := checkFile(path, config.Default(), registry,
		&checkFlags{fix: true, dryRun: true})
	require.NoError(t, err)

	// More violations after fixing than before: the fixed count clamps at
	// zero instead of going negative.
	require.Len(t, result.violations, 1)
	assert.Equal(t, 0, result.fixedIssues)
}

func TestRulesCommand(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)
	for _, id := range []string{"MV040", "MV044", "MV049", "MV050"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "proper-names")
}

func TestRulesCommandJSON(t *testing.T) {
	out, err := runCommand(t, "rules", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "MV044"`)
	assert.Contains(t, out, `"fixable": true`)

	_, err = runCommand(t, "rules", "--format", "bogus")
	require.Error(t, err)
}
