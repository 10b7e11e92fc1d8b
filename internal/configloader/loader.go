// Package configloader resolves the effective configuration from config
// files, the environment, command-line flags and rule packs.
package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
)

const configFilePermissions = 0o644

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Defaults to the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It replaces the project config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Pack names a rule pack that fills in rules no source configured.
	Pack string

	// CLIConfig holds flag values and overrides every other source.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration plus where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are problems that did not stop loading.
	Warnings []string
}

// fileLayer is one configuration file in the precedence chain.
type fileLayer struct {
	kind string
	path string
}

// Load resolves the effective configuration. Sources apply in this order,
// each overriding the ones before it:
//
//	defaults
//	system file   (/etc/adoclint/config.yaml)
//	user file     ($XDG_CONFIG_HOME/adoclint/config.yaml)
//	project file  (.adoclint.yml, searched upward), or the --config file
//	ADOCLINT_* environment variables
//	command-line flags
//
// A rule pack is applied last but only to rules that are still unset.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir, err := resolveDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range opts.fileLayers(paths) {
		layerCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.kind, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	result.Warnings = append(result.Warnings, canonicalizeRules(cfg, lint.DefaultRegistry)...)

	if opts.Pack != "" {
		pack := rules.PackByName(opts.Pack)
		if pack == nil {
			return nil, &ValidationError{
				Field:   "pack",
				Value:   opts.Pack,
				Message: fmt.Sprintf("unknown rule pack %q; available: %v", opts.Pack, rules.PackNames()),
			}
		}
		pack.Apply(cfg)
	}

	report := Validate(cfg)
	if !report.Valid() {
		return nil, &report.Errors[0]
	}
	for _, w := range report.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// fileLayers lists the config files to read, lowest precedence first.
func (opts LoadOptions) fileLayers(paths *ConfigPaths) []fileLayer {
	candidates := []struct {
		fileLayer
		skip bool
	}{
		{fileLayer{"system", paths.System}, opts.IgnoreSystemConfig},
		{fileLayer{"user", paths.User}, opts.IgnoreUserConfig},
		{fileLayer{"project", paths.Project}, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{fileLayer{"explicit", opts.ExplicitPath}, false},
	}

	layers := make([]fileLayer, 0, len(candidates))
	for _, c := range candidates {
		if !c.skip && c.path != "" {
			layers = append(layers, c.fileLayer)
		}
	}
	return layers
}

// readConfigFile decodes one YAML config file and validates it on its own,
// so errors point at the file and line that caused them.
func readConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{Rules: make(map[string]config.RuleConfig)}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("parse YAML: %v", err)}
	}
	if doc.Kind == 0 {
		return cfg, nil
	}
	if err := doc.Decode(cfg); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("decode YAML: %v", err)}
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}

	if report := Validate(cfg); !report.Valid() {
		first := report.Errors[0]
		first.FilePath = path
		first.Line = fieldLine(&doc, first.Field)
		return nil, &first
	}

	return cfg, nil
}

// WriteConfig writes content to path. An existing file is kept unless force
// is set.
func WriteConfig(path string, content []byte, force bool) error {
	if isFile(path) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// canonicalizeRules rekeys rule settings by rule ID so names such as
// "trailing-whitespace" work in config files. When several keys name the
// same rule their settings are merged: names in sorted order, then the ID
// key, so a field set under the ID always wins.
func canonicalizeRules(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	type entry struct {
		key string
		id  string
	}
	entries := make([]entry, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		id, _, ok := registry.Resolve(key)
		if !ok {
			id = key
		}
		entries = append(entries, entry{key: key, id: id})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(
			cmp.Compare(a.id, b.id),
			cmp.Compare(boolRank(a.key == a.id), boolRank(b.key == b.id)),
			cmp.Compare(a.key, b.key),
		)
	})

	var warnings []string
	rekeyed := make(map[string]config.RuleConfig, len(entries))
	for i, e := range entries {
		prev, seen := rekeyed[e.id]
		if !seen {
			rekeyed[e.id] = cfg.Rules[e.key]
			continue
		}
		rekeyed[e.id] = mergeRuleConfig(prev, cfg.Rules[e.key])
		warnings = append(warnings, fmt.Sprintf(
			"duplicate rule configuration: %q and %q both refer to %s; %q takes precedence",
			entries[i-1].key, e.key, e.id, e.key))
	}

	cfg.Rules = rekeyed
	return warnings
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
