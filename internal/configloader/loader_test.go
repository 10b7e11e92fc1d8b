package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adoclint/pkg/config"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Timeout != config.DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", config.DefaultTimeout, result.Config.Timeout)
	}
	if len(result.Config.Extensions) != len(config.DefaultExtensions()) {
		t.Errorf("expected default extensions, got %v", result.Config.Extensions)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Note: jobs is a CLI-only option (yaml:"-"), so it won't be loaded from file
	writeConfigFile(t, tmpDir, ".adoclint.yml", `
timeout: 5s
extensions: [".adoc"]
rules:
  HEAD001:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", result.Config.Timeout)
	}

	head001, ok := result.Config.Rules["HEAD001"]
	if !ok {
		t.Fatal("HEAD001 rule not found in config")
	}
	if head001.Enabled == nil || *head001.Enabled {
		t.Error("expected HEAD001 to be disabled")
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfigFile(t, root, ".adoclint.yaml", "severity_default: info\n")

	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.SeverityDefault != "info" {
		t.Errorf("expected severity_default from parent config, got %q", result.Config.SeverityDefault)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, ".adoclint.yml", "severity_default: error\n")
	customPath := writeConfigFile(t, tmpDir, "custom-config.yml", "severity_default: warning\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.SeverityDefault != "warning" {
		t.Errorf("expected severity_default %q, got %q", "warning", result.Config.SeverityDefault)
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != customPath {
		t.Errorf("expected only the explicit file to load, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, ".adoclint.yml", `
severity_default: info
ignore: ["vendor/**"]
`)

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		SeverityDefault: "error",
		Jobs:            8,
		Format:          config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.SeverityDefault != "error" {
		t.Errorf("expected severity_default error (CLI override), got %q", result.Config.SeverityDefault)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", result.Config.Format)
	}
	// Unset CLI slices keep file values.
	if len(result.Config.Ignore) != 1 {
		t.Errorf("expected ignore from file, got %v", result.Config.Ignore)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "severity", content: "severity_default: fatal\n"},
		{name: "rule severity", content: "rules:\n  HEAD001:\n    severity: loud\n"},
		{name: "extension", content: "extensions: [adoc]\n"},
		{name: "timeout", content: "timeout: -1s\n"},
		{name: "yaml", content: "rules: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfigFile(t, tmpDir, ".adoclint.yml", tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := Load(ctx, isolated(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, ".adoclint.yml", `
rules:
  trailing-whitespace:
    enabled: false
  no-hard-tabs:
    enabled: true
    severity: error
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// WS001 is trailing-whitespace, WS002 is no-hard-tabs
	_, hasID := result.Config.Rules["WS001"]
	_, hasName := result.Config.Rules["trailing-whitespace"]

	if !hasID {
		t.Error("expected WS001 to be present after normalization")
	}
	if hasName {
		t.Error("expected trailing-whitespace to be removed after normalization")
	}

	ws002, ok := result.Config.Rules["WS002"]
	if !ok {
		t.Fatal("expected WS002 to be present after normalization")
	}
	if ws002.Enabled == nil || !*ws002.Enabled {
		t.Error("expected WS002 to be enabled")
	}
	if ws002.Severity == nil || *ws002.Severity != "error" {
		t.Error("expected WS002 severity to be error")
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, ".adoclint.yml", `
rules:
  WS001:
    enabled: false
  trailing-whitespace:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "WS001") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate rule, got warnings: %v", result.Warnings)
	}

	// The ID key takes precedence over the name.
	ws001, ok := result.Config.Rules["WS001"]
	if !ok {
		t.Fatal("expected WS001 in config")
	}
	if ws001.Enabled == nil || *ws001.Enabled {
		t.Error("expected WS001 to be disabled by the ID entry")
	}
}

func TestLoader_WarnsUnknownRule(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, ".adoclint.yml", "rules:\n  MD001:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown rule "MD001"`) {
		t.Errorf("expected unknown rule warning, got %v", result.Warnings)
	}
}

func TestLoad_Pack(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, ".adoclint.yml", "rules:\n  WS001:\n    enabled: false\n")

	opts := isolated(tmpDir)
	opts.Pack = "strict"

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The user's setting wins over the pack.
	ws001 := result.Config.Rules["WS001"]
	if ws001.Enabled == nil || *ws001.Enabled {
		t.Error("expected WS001 to stay disabled")
	}

	attr001, ok := result.Config.Rules["ATTR001"]
	if !ok || attr001.Enabled == nil || !*attr001.Enabled {
		t.Error("expected strict pack to enable ATTR001")
	}
}

func TestLoad_UnknownPack(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.Pack = "nope"

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for unknown pack")
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestLoad_Environment(t *testing.T) {
	t.Setenv("ADOCLINT_JOBS", "3")
	t.Setenv("ADOCLINT_TIMEOUT", "2s")
	t.Setenv("ADOCLINT_IGNORE", "build/**, vendor/**")
	t.Setenv("ADOCLINT_FORMAT", "table")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if result.Config.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", result.Config.Timeout)
	}
	if got := result.Config.Ignore; len(got) != 2 || got[1] != "vendor/**" {
		t.Errorf("expected trimmed ignore list, got %v", got)
	}
	if result.Config.Format != config.FormatTable {
		t.Errorf("expected format table, got %q", result.Config.Format)
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("ADOCLINT_JOBS", "many")

	if err := LoadFromEnv(config.NewConfig()); err == nil {
		t.Fatal("expected error for invalid integer")
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("severity_default"); got != "ADOCLINT_SEVERITY_DEFAULT" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(unknown) = %q, want empty", got)
	}
	if len(ListEnvVars()) != len(envMappings) {
		t.Error("ListEnvVars() does not cover every mapping")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	enabled := true
	disabled := false
	sev := "error"

	base := &config.Config{
		SeverityDefault: "info",
		Ignore:          []string{"a"},
		Rules: map[string]config.RuleConfig{
			"WS003": {Enabled: &enabled, Options: map[string]any{"maximum": 2, "other": true}},
		},
	}
	override := &config.Config{
		Timeout: time.Second,
		Rules: map[string]config.RuleConfig{
			"WS003":   {Severity: &sev, Options: map[string]any{"maximum": 3}},
			"HEAD001": {Enabled: &disabled},
		},
	}

	merged := MergeAll(base, override)

	if merged.SeverityDefault != "info" {
		t.Errorf("unset scalar overrode base: %q", merged.SeverityDefault)
	}
	if merged.Timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", merged.Timeout)
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("nil slice overrode base: %v", merged.Ignore)
	}

	ws003 := merged.Rules["WS003"]
	if ws003.Enabled == nil || !*ws003.Enabled {
		t.Error("expected WS003 enabled from base")
	}
	if ws003.Severity == nil || *ws003.Severity != "error" {
		t.Error("expected WS003 severity from override")
	}
	if ws003.Options["maximum"] != 3 || ws003.Options["other"] != true {
		t.Errorf("options not deep merged: %v", ws003.Options)
	}
	if base.Rules["WS003"].Options["maximum"] != 2 {
		t.Error("merge mutated base options")
	}
	if _, ok := merged.Rules["HEAD001"]; !ok {
		t.Error("expected HEAD001 from override")
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{FilePath: ".adoclint.yml", Line: 3, Field: "format", Message: "bad"}
	if got := err.Error(); got != ".adoclint.yml:3: format: bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLoad_InvalidConfigReportsLine(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := writeConfigFile(t, tmpDir, ".adoclint.yml", `timeout: 5s
rules:
  WS001:
    enabled: true
  trailing-whitespace:
    severity: loud
`)

	_, err := Load(context.Background(), isolated(tmpDir))

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if vErr.FilePath != path || vErr.Line != 6 {
		t.Errorf("location = %s:%d, want %s:6", vErr.FilePath, vErr.Line, path)
	}
	if vErr.Field != "rules.trailing-whitespace.severity" {
		t.Errorf("field = %q", vErr.Field)
	}
}

func TestFieldLine(t *testing.T) {
	t.Parallel()

	var doc yaml.Node
	src := "severity_default: info\nextensions:\n  - .adoc\n  - adoc\nrules:\n  HEAD001:\n    severity: loud\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tests := []struct {
		field string
		want  int
	}{
		{"severity_default", 1},
		{"extensions[1]", 4},
		{"extensions[9]", 3},
		{"rules.HEAD001.severity", 7},
		{"rules.WS001.severity", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		if got := fieldLine(&doc, tt.field); got != tt.want {
			t.Errorf("fieldLine(%q) = %d, want %d", tt.field, got, tt.want)
		}
	}
}

func TestFindProjectConfig_StopsAtRepositoryRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfigFile(t, outer, ".adoclint.yml", "timeout: 1s\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("search crossed the repository root: found %s", found)
	}
}

func TestFindProjectConfig_PrefersDottedName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, "adoclint.yaml", "")
	want := writeConfigFile(t, dir, ".adoclint.yml", "")

	found, err := FindProjectConfig(context.Background(), dir)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != want {
		t.Errorf("FindProjectConfig() = %s, want %s", found, want)
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestLoadFromEnv_NamesVariable(t *testing.T) {
	t.Setenv("ADOCLINT_TIMEOUT", "soon")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "ADOCLINT_TIMEOUT") {
		t.Fatalf("expected error naming ADOCLINT_TIMEOUT, got %v", err)
	}
}
