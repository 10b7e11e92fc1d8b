package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
)

// helpStyles styles the parts of command help.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// applyHelp installs styled usage output on cmd and its subcommands.
// Colors are decided when help is rendered, after --color has been parsed.
func applyHelp(cmd *cobra.Command, color *string) {
	var styles helpStyles

	tmpl := template.Must(template.New("usage").Funcs(template.FuncMap{
		"heading": func(s string) string { return styles.heading.Render(s) },
		"command": func(s string) string { return styles.command.Render(s) },
		"flags": func(flags interface{ FlagUsages() string }) string {
			return styleFlagUsages(styles, flags.FlagUsages())
		},
		"rpad": func(s string, padding int) string {
			if len(s) >= padding {
				return s
			}
			return s + strings.Repeat(" ", padding-len(s))
		},
	}).Parse(usageTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		styles = newHelpStyles(pretty.IsColorEnabled(*color, c.OutOrStdout()))
		if err := tmpl.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
}

// styleFlagUsages colors flag names and dims type placeholders in the
// output of pflag's FlagUsages.
func styleFlagUsages(styles helpStyles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		flagPart, desc, found := strings.Cut(trimmed, "   ")
		if !found {
			continue
		}

		var styled []string
		for _, field := range strings.Fields(flagPart) {
			if strings.HasPrefix(field, "-") {
				comma := strings.HasSuffix(field, ",")
				field = styles.flag.Render(strings.TrimSuffix(field, ","))
				if comma {
					field += ","
				}
			} else {
				field = styles.dim.Render(field)
			}
			styled = append(styled, field)
		}

		lines[i] = line[:len(line)-len(trimmed)] + strings.Join(styled, " ") + "   " + strings.TrimLeft(desc, " ")
	}
	return strings.Join(lines, "\n")
}
