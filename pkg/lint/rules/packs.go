package rules

import (
	"slices"

	"github.com/yaklabco/adoclint/pkg/config"
)

// Pack is a named set of rule settings that `lint --pack` and
// `init --pack` lay under the user's own configuration.
type Pack struct {
	Name        string
	Description string
	Rules       map[string]config.RuleConfig // keyed by rule ID
}

// Packs lists the built-in packs, core first.
func Packs() []Pack {
	e, w, i := config.SeverityError, config.SeverityWarning, config.SeverityInfo
	return []Pack{
		newPack("core", "Essential rules for sound AsciiDoc: structure, blocks, whitespace",
			map[string]config.Severity{
				"HEAD001": e, "HEAD002": e, "HEAD003": e,
				"BLOCK001": e, "BLOCK002": w,
				"WS001": w, "WS002": w, "WS003": w,
				"LIST001": w, "TABLE002": e,
			}),
		newPack("strict", "Strict pack: every rule enabled, layout and references as errors",
			map[string]config.Severity{
				"HEAD001": e, "HEAD002": e, "HEAD003": e, "HEAD004": e,
				"BLOCK001": e, "BLOCK002": e, "BLOCK003": w,
				"WS001": e, "WS002": e, "WS003": e, "WS004": e, "WS005": e,
				"LIST001": e, "IMG001": e, "TABLE001": w, "TABLE002": e, "TABLE003": e,
				"ATTR001": w, "ATTR002": e, "INC001": e,
			}),
		newPack("relaxed", "Relaxed pack: only broken structure, minimal noise",
			map[string]config.Severity{
				"BLOCK001": e, "TABLE002": e, "WS001": i,
			}),
		// Broken references and missing alt text are what readers of a
		// rendered site actually notice.
		newPack("publishing", "Publishing pack: references, images and includes for rendered sites",
			map[string]config.Severity{
				"HEAD001": e, "HEAD003": e,
				"BLOCK001": e, "BLOCK003": i,
				"IMG001": w, "ATTR002": e, "INC001": e, "TABLE003": w,
			}),
	}
}

// PackByName returns nil for an unknown name.
func PackByName(name string) *Pack {
	packs := Packs()
	if idx := slices.IndexFunc(packs, func(p Pack) bool { return p.Name == name }); idx >= 0 {
		return &packs[idx]
	}
	return nil
}

// PackNames returns the pack names in Packs order.
func PackNames() []string {
	var names []string
	for _, p := range Packs() {
		names = append(names, p.Name)
	}
	return names
}

// Apply fills in the rules cfg leaves unconfigured.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		if _, configured := cfg.Rules[id]; !configured {
			cfg.Rules[id] = rc
		}
	}
}

// newPack enables every listed rule at its severity.
func newPack(name, description string, severities map[string]config.Severity) Pack {
	pack := Pack{Name: name, Description: description, Rules: make(map[string]config.RuleConfig, len(severities))}
	for id, sev := range severities {
		on, level := true, string(sev)
		pack.Rules[id] = config.RuleConfig{Enabled: &on, Severity: &level}
	}
	return pack
}
