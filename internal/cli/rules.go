package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint/rules"
)

// ruleInfo is the JSON shape for a single rule listing.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Fixable     bool     `json:"fixable"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long:  "List all built-in rules with their IDs, names, and descriptions.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, format string) error {
	registry := rules.NewRegistry(config.Default())
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		infos := make([]ruleInfo, 0, len(registry.Rules()))
		for _, rule := range registry.Rules() {
			infos = append(infos, ruleInfo{
				ID:          rule.ID(),
				Name:        rule.Name(),
				Description: rule.Description(),
				Tags:        rule.Tags(),
				Fixable:     rule.CanFix(),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "text":
		for _, rule := range registry.Rules() {
			fixable := " "
			if rule.CanFix() {
				fixable = "*"
			}
			fmt.Fprintf(out, "%s %s  %-24s %s\n", fixable, rule.ID(), rule.Name(), rule.Description())
		}
		fmt.Fprintln(out, "\n* = supports auto-fix")
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
