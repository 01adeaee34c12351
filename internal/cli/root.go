// Package cli provides the Cobra command structure for mdvet.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/veldtlab/mdvet/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ErrIssuesFound signals a clean run that found violations.
// It maps to a non-zero exit code without an error log.
var ErrIssuesFound = errors.New("issues found")

// NewRootCommand creates the root mdvet command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "mdvet",
		Short: "A rule-based Markdown style linter",
		Long: `mdvet scans Markdown documents against configurable style rules,
reports violations with precise source locations, and can rewrite the
documents to resolve them.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
