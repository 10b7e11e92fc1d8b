package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new adoclint configuration file",
		Long: `Create a new .adoclint.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable or disable
rules, change severities and set other options.

Examples:
  adoclint init                      Create minimal .adoclint.yml
  adoclint init --full               Create full config with all rules documented
  adoclint init --pack strict        Create a config seeded from the strict pack
  adoclint init --format json        Create .adoclint.json instead
  adoclint init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .adoclint.yml or .adoclint.json)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Seed rules from a pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}
	if flags.pack != "" && flags.format != "yaml" {
		return fmt.Errorf("--pack writes YAML only, got format %q", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".adoclint.yml"
		if flags.format == "json" {
			outputPath = ".adoclint.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := initContent(flags)
	if err != nil {
		return err
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	switch {
	case flags.pack != "":
		logger.Info("rules seeded from pack", logging.FieldPack, flags.pack)
	case flags.full:
		logger.Info("full template includes all rules with documentation")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'adoclint rules' to see all available rules")

	return nil
}

// initContent renders the file body for the chosen template or pack.
func initContent(flags *initFlags) ([]byte, error) {
	if flags.pack == "" {
		content, err := config.GenerateTemplate(config.TemplateOptions{
			Full:   flags.full,
			Format: flags.format,
		})
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return nil, fmt.Errorf("unknown pack %q (available: %s)",
			flags.pack, strings.Join(rules.PackNames(), ", "))
	}

	cfg := config.Config{Rules: pack.Rules}
	header := config.DefaultTemplateHeader() +
		fmt.Sprintf("\n# Pack: %s - %s", pack.Name, pack.Description)

	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("render pack %s: %w", pack.Name, err)
	}
	return content, nil
}
