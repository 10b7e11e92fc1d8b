package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adoclint/pkg/config"
)

func testRuleInfos() []config.RuleInfo {
	return []config.RuleInfo{
		{ID: "WS001", Name: "trailing-whitespace", Description: "Lines should not end with spaces or tabs.", Enabled: true, Severity: config.SeverityWarning, Tags: []string{"whitespace"}},
		{ID: "HEAD001", Name: "heading-increment", Description: strings.Repeat("Section levels should only increase by one. ", 3), Enabled: true, Severity: config.SeverityError},
		{ID: "ATTR001", Name: "attribute-defined", Description: "Attribute references must resolve.", Enabled: false, Severity: config.SeverityWarning},
	}
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Rules: testRuleInfos()})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, config.DefaultTemplateHeader()))
	assert.Contains(t, out, `# extensions: [".adoc", ".asciidoc", ".asc"]`)
	assert.Contains(t, out, "# timeout: 30s")

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg), "an all-comment template must still parse")
}

func TestGenerateTemplate_Full(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Rules: testRuleInfos()})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	require.Len(t, cfg.Rules, 3)
	assert.False(t, *cfg.Rules["ATTR001"].Enabled)
	assert.Equal(t, "error", *cfg.Rules["HEAD001"].Severity)
	assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)

	out := string(data)
	assert.Contains(t, out, "# WS001: trailing-whitespace")
	assert.Contains(t, out, "# Tags: whitespace")
	assert.Less(t, strings.Index(out, "ATTR001:"), strings.Index(out, "WS001:"), "rules are sorted by ID")

	for line := range strings.SplitSeq(out, "\n") {
		assert.LessOrEqual(t, len(line), 80, "line too long: %q", line)
	}
}

func TestGenerateTemplate_IncludeRules(t *testing.T) {
	t.Parallel()

	infos := testRuleInfos()
	data, err := config.GenerateTemplate(config.TemplateOptions{
		Full:         true,
		Rules:        infos,
		IncludeRules: []string{"WS001"},
	})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Len(t, cfg.Rules, 1)
	assert.Contains(t, cfg.Rules, "WS001")
	assert.Equal(t, "WS001", infos[0].ID, "input order is untouched")
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json", Rules: testRuleInfos()})
	require.NoError(t, err)

	var doc struct {
		Timeout string                       `json:"timeout"`
		Rules   map[string]config.RuleConfig `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "30s", doc.Timeout)
	require.Contains(t, doc.Rules, "HEAD001")
	assert.Equal(t, "error", *doc.Rules["HEAD001"].Severity)
}
