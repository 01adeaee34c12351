package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldtlab/mdvet/internal/logging"
	"github.com/veldtlab/mdvet/internal/ui/pretty"
	"github.com/veldtlab/mdvet/pkg/coderegion"
	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint"
	"github.com/veldtlab/mdvet/pkg/lint/rules"
)

type checkFlags struct {
	configPath string
	color      string
	fix        bool
	dryRun     bool
	strict     bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Markdown files for style issues",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to configuration file")
	cmd.Flags().StringVar(&flags.color, "color", "auto", "color output: auto, always, never")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")

	return cmd
}

const checkLongDescription = `Check Markdown files for style and consistency issues.

By default, checks all .md and .markdown files in the current directory
and subdirectories. Specify paths to check specific files or directories.

Examples:
  mdvet check                  # Check current directory
  mdvet check docs/            # Check docs directory
  mdvet check README.md        # Check single file
  mdvet check --fix            # Check and auto-fix issues
  mdvet check --fix --dry-run  # Show fixes without applying`

// fileResult holds the outcome of checking a single file.
type fileResult struct {
	path        string
	violations  []lint.Violation
	notices     []lint.Notice
	fixedIssues int
	rewritten   bool
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	registry := rules.NewRegistry(cfg)

	paths, err := collectFiles(args)
	if err != nil {
		return fmt.Errorf("collect files: %w", err)
	}
	logger.Debug("starting check run", logging.FieldFiles, len(paths))

	styles := pretty.NewStyles(pretty.ColorEnabled(flags.color, cmd.OutOrStdout()))
	out := cmd.OutOrStdout()

	var (
		filesWithIssues int
		totalViolations int
		totalFixed      int
		filesModified   int
		errorSeen       bool
	)

	for _, path := range paths {
		result, err := checkFile(path, cfg, registry, flags)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}

		for _, notice := range result.notices {
			logger.Warn("fix skipped",
				logging.FieldRule, notice.RuleID,
				logging.FieldPath, result.path,
				logging.FieldLine, notice.Line,
				logging.FieldColumn, notice.Column,
				logging.FieldReason, notice.Reason,
			)
		}

		totalFixed += result.fixedIssues
		if result.rewritten {
			filesModified++
		}
		if len(result.violations) == 0 {
			continue
		}

		filesWithIssues++
		totalViolations += len(result.violations)
		fmt.Fprintln(out, styles.FormatFileHeader(result.path, len(result.violations)))
		for i := range result.violations {
			v := &result.violations[i]
			if v.Severity == config.SeverityError {
				errorSeen = true
			}
			fmt.Fprint(out, styles.FormatViolation(result.path, v))
		}
	}

	if filesWithIssues > 0 {
		fmt.Fprintln(out, styles.Divider(pretty.TerminalWidth(out, 80)))
	}
	fmt.Fprintln(out, styles.FormatSummary(len(paths), totalViolations+totalFixed, totalFixed))

	logger.Debug("check run complete",
		logging.FieldFilesProcessed, len(paths),
		logging.FieldFilesWithIssues, filesWithIssues,
		logging.FieldViolationsTotal, totalViolations,
		logging.FieldFilesModified, filesModified,
	)

	if totalViolations > 0 && (errorSeen || flags.strict || !flags.fix) {
		return ErrIssuesFound
	}
	return nil
}

// checkFile lints one file and, when fixing is enabled, rewrites it.
// After a fix pass the remaining violations are recomputed against the
// rewritten content so stale positions are never reported.
func checkFile(path string, cfg *config.Config, registry *lint.Registry, flags *checkFlags) (fileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("read file: %w", err)
	}

	result := fileResult{path: path}
	enabled := enabledRules(cfg, registry)

	before := -1
	if flags.fix {
		initial, err := checkContent(path, content, enabled)
		if err != nil {
			return fileResult{}, err
		}
		before = len(initial)

		fixed := content
		for _, rule := range enabled {
			if !rule.CanFix() {
				continue
			}
			doc := lint.NewDocument(path, fixed, coderegion.New(fixed))
			next, notices, err := rule.Fix(doc)
			if err != nil {
				return fileResult{}, fmt.Errorf("rule %s fix: %w", rule.ID(), err)
			}
			result.notices = append(result.notices, notices...)
			fixed = next
		}
		if !bytes.Equal(fixed, content) {
			if !flags.dryRun {
				if err := os.WriteFile(path, fixed, 0o644); err != nil {
					return fileResult{}, fmt.Errorf("write file: %w", err)
				}
				result.rewritten = true
			}
			content = fixed
		}
	}

	violations, err := checkContent(path, content, enabled)
	if err != nil {
		return fileResult{}, err
	}
	result.violations = violations
	// A fix can surface new violations for another rule, so the delta is
	// clamped rather than reported as a negative count.
	if before > len(violations) {
		result.fixedIssues = before - len(violations)
	}
	return result, nil
}

// checkContent runs every enabled rule against the given content and
// returns the combined violations.
func checkContent(path string, content []byte, enabled []lint.Rule) ([]lint.Violation, error) {
	doc := lint.NewDocument(path, content, coderegion.New(content))
	var out []lint.Violation
	for _, rule := range enabled {
		violations, err := rule.Check(doc)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
		}
		out = append(out, violations...)
	}
	return out, nil
}

func enabledRules(cfg *config.Config, registry *lint.Registry) []lint.Rule {
	var out []lint.Rule
	for _, rule := range registry.Rules() {
		if rules.Enabled(cfg, rule.ID()) {
			out = append(out, rule)
		}
	}
	return out
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	for _, candidate := range []string{".mdvet.yaml", ".mdvet.yml"} {
		if _, err := os.Stat(candidate); err == nil {
			return config.Load(candidate)
		}
	}
	return config.Default(), nil
}

// collectFiles expands the given paths into a list of Markdown files.
// Directories are walked recursively; no arguments means the current
// directory.
func collectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isMarkdownFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
