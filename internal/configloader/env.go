package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/adoclint/pkg/config"
)

const envVarPrefix = "ADOCLINT_"

// envMapping binds one ADOCLINT_* variable to a config field. apply parses
// the raw value and stores it.
type envMapping struct {
	field string
	help  string
	apply func(cfg *config.Config, raw string) error
}

// envMappings is keyed by the variable name without its prefix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITY_DEFAULT": {
		field: "severity_default",
		help:  "Default severity: error, warning, or info",
		apply: func(cfg *config.Config, raw string) error { cfg.SeverityDefault = raw; return nil },
	},
	"FORMAT": {
		field: "format",
		help:  "Output format: text, table, json, html, or summary",
		apply: func(cfg *config.Config, raw string) error { cfg.Format = config.OutputFormat(raw); return nil },
	},
	"RULE_FORMAT": {
		field: "rule_format",
		help:  "Rule identifiers in output: name, id, or combined",
		apply: func(cfg *config.Config, raw string) error { cfg.RuleFormat = config.RuleFormat(raw); return nil },
	},
	"JOBS": {
		field: "jobs",
		help:  "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid integer %q", raw)
			}
			cfg.Jobs = n
			return nil
		},
	},
	"TIMEOUT": {
		field: "timeout",
		help:  "Per-document timeout, e.g. 30s",
		apply: func(cfg *config.Config, raw string) error {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("invalid duration %q", raw)
			}
			cfg.Timeout = d
			return nil
		},
	},
	"IGNORE": {
		field: "ignore",
		help:  "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, raw string) error { cfg.Ignore = splitList(raw); return nil },
	},
	"EXTENSIONS": {
		field: "extensions",
		help:  "Comma-separated list of file extensions",
		apply: func(cfg *config.Config, raw string) error { cfg.Extensions = splitList(raw); return nil },
	},
}

// LoadFromEnv overlays every set ADOCLINT_* variable onto cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			continue
		}
		if err := mapping.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnvVarName returns the variable that sets a config field, or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
