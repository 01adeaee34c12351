package pretty

import (
	"fmt"
	"strings"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// FormatViolation formats a single violation for terminal output.
func (s *Styles) FormatViolation(path string, v *lint.Violation) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		v.StartLine,
		v.StartColumn,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(v.Severity),
		s.Message.Render(v.Message),
		s.RuleID.Render("("+v.RuleID+")"),
	))

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// Divider returns a dim horizontal rule of the given width.
func (s *Styles) Divider(width int) string {
	if width <= 0 {
		width = 80
	}
	return s.Dim.Render(strings.Repeat("─", width))
}

// FormatSummary formats the closing result line.
func (s *Styles) FormatSummary(files, issues, fixed int) string {
	if issues == 0 && fixed == 0 {
		return s.Success.Render(fmt.Sprintf("✓ %d file(s) clean", files))
	}
	if fixed > 0 {
		return s.Bold.Render(fmt.Sprintf("%d issue(s) found, %d fixed", issues, fixed))
	}
	return s.Failure.Render(fmt.Sprintf("✗ %d issue(s) in %d file(s)", issues, files))
}
