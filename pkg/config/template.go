package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"text/template"
)

const commentWidth = 70

// TemplateOptions selects what `adoclint init` writes.
type TemplateOptions struct {
	// Full lists every rule with its defaults instead of a commented stub.
	Full bool

	// Format is "yaml" (default) or "json".
	Format string

	// IncludeRules limits a full template to these rule IDs.
	IncludeRules []string

	// Rules overrides DefaultRuleInfoProvider.
	Rules []RuleInfo
}

// RuleInfo describes a registered rule for templates and `adoclint rules`.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider lists the registered rules. It breaks the import cycle
// between config and the rule registry.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package.
//
//nolint:gochecknoglobals // Set once from the rules package init.
var DefaultRuleInfoProvider RuleInfoProvider

//nolint:gochecknoglobals // Template sources are fixed.
var (
	minimalTemplate = template.Must(template.New("minimal").Parse(`{{.Header}}

# Severity for every rule without its own: error, warning, or info
# severity_default: warning

# File extensions to lint
# extensions: [{{range $i, $e := .Extensions}}{{if $i}}, {{end}}"{{$e}}"{{end}}]

# Time budget for a single document
# timeout: {{.Timeout}}

# Glob patterns to skip
# ignore:
#   - "build/**"
#   - "node_modules/**"

# Per-rule settings, keyed by rule ID or name
# rules:
#   HEAD001:
#     enabled: true
#     severity: error
#   WS003:
#     options:
#       maximum: 2
`))

	fullTemplate = template.Must(template.New("full").Funcs(template.FuncMap{
		"comment": wrapComment,
		"join":    strings.Join,
	}).Parse(`{{.Header}}
#
# Every rule is listed with its default settings.

# Severity for every rule without its own: error, warning, or info
# severity_default: warning

extensions:
{{- range .Extensions}}
  - "{{.}}"
{{- end}}

timeout: {{.Timeout}}

ignore:
{{- range .Ignore}}
  - "{{.}}"
{{- end}}

rules:
{{- range .Rules}}

  {{comment (printf "%s: %s" .ID .Name)}}
  {{comment .Description}}
{{- if .Tags}}
  # Tags: {{join .Tags ", "}}
{{- end}}
  {{.ID}}:
    enabled: {{.Enabled}}
    severity: {{.Severity}}
{{- end}}
`))
)

type templateData struct {
	Header     string
	Extensions []string
	Timeout    string
	Ignore     []string
	Rules      []RuleInfo
}

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	infos := opts.Rules
	if infos == nil && DefaultRuleInfoProvider != nil {
		infos = DefaultRuleInfoProvider()
	}
	infos = selectRules(infos, opts.IncludeRules)

	data := templateData{
		Header:     DefaultTemplateHeader(),
		Extensions: DefaultExtensions(),
		Timeout:    DefaultTimeout.String(),
		Ignore:     []string{"build/**", "node_modules/**"},
		Rules:      infos,
	}

	if opts.Format == "json" {
		return templateJSON(data)
	}

	tmpl := minimalTemplate
	if opts.Full {
		tmpl = fullTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// selectRules keeps the listed IDs, or every rule when ids is empty, in ID
// order. The input is not modified.
func selectRules(infos []RuleInfo, ids []string) []RuleInfo {
	out := slices.Clone(infos)
	if len(ids) > 0 {
		out = slices.DeleteFunc(out, func(r RuleInfo) bool { return !slices.Contains(ids, r.ID) })
	}
	slices.SortFunc(out, func(a, b RuleInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// wrapComment renders text as "# " comment lines of at most commentWidth
// characters, continuation lines indented to match a rule entry.
func wrapComment(text string) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > commentWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	lines = append(lines, line.String())
	return "# " + strings.Join(lines, "\n  # ")
}

func templateJSON(data templateData) ([]byte, error) {
	rules := make(map[string]RuleConfig, len(data.Rules))
	for _, r := range data.Rules {
		enabled, severity := r.Enabled, string(r.Severity)
		rules[r.ID] = RuleConfig{Enabled: &enabled, Severity: &severity}
	}

	out, err := json.MarshalIndent(struct {
		Extensions []string              `json:"extensions"`
		Timeout    string                `json:"timeout"`
		Ignore     []string              `json:"ignore"`
		Rules      map[string]RuleConfig `json:"rules"`
	}{data.Extensions, data.Timeout, data.Ignore, rules}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// DefaultTemplateHeader is the comment block at the top of generated files.
func DefaultTemplateHeader() string {
	return "# adoclint configuration\n# See: https://github.com/yaklabco/adoclint"
}
