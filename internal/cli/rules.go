package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	tag        string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity and whether they run without configuration.

Examples:
  adoclint rules                 List every rule
  adoclint rules --tag tables    List only table rules
  adoclint rules --format json   Machine-readable listing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := filterByTag(rules.RuleInfos(lint.DefaultRegistry), flags.tag)

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			case "text":
			default:
				return fmt.Errorf("invalid format %q: must be text or json", flags.format)
			}

			logger := logging.NewInteractive()

			if len(infos) == 0 {
				if flags.tag != "" {
					logger.Info("no rules carry this tag", logging.FieldTags, flags.tag)
					return nil
				}
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			for _, info := range infos {
				state := "on"
				if !info.Enabled {
					state = "off"
				}

				logger.Info(config.FormatRuleID(ruleFormat, info.ID, info.Name),
					logging.FieldSeverity, info.Severity,
					"default", state,
					logging.FieldTags, strings.Join(info.Tags, ","),
					logging.FieldDescription, info.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "",
		"only list rules carrying this tag (e.g. headings, tables)")

	return cmd
}

// filterByTag keeps rules carrying tag. An empty tag keeps everything.
func filterByTag(infos []config.RuleInfo, tag string) []config.RuleInfo {
	if tag == "" {
		return infos
	}
	tag = strings.ToLower(tag)

	out := make([]config.RuleInfo, 0, len(infos))
	for _, info := range infos {
		if slices.Contains(info.Tags, tag) {
			out = append(out, info)
		}
	}
	return out
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		tags := info.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Tags:        tags,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
