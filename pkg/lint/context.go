package lint

import (
	"context"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
)

// RuleContext is handed to every Check call of one rule over one document.
// It lives only for that run, so carrying the context.Context as a field is
// fine here.
type RuleContext struct {
	Ctx        context.Context
	Doc        *adast.Document
	Config     *config.Config
	RuleConfig *config.RuleConfig // nil when the rule has no settings

	state any
}

// NewRuleContext binds a document and its effective settings for one rule.
func NewRuleContext(
	ctx context.Context,
	doc *adast.Document,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{Ctx: ctx, Doc: doc, Config: cfg, RuleConfig: ruleCfg}
}

// Root is the document node, or nil without a document.
func (rc *RuleContext) Root() *adast.Node {
	if rc.Doc != nil {
		return rc.Doc.Root
	}
	return nil
}

// State is the value the rule's NewState returned for this run.
func (rc *RuleContext) State() any { return rc.state }

// Cancelled reports whether the run's context is done. Rules that loop
// over many lines poll it.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx != nil && rc.Ctx.Err() != nil
}

// Option is the raw value of a rule option, or fallback when unset.
func (rc *RuleContext) Option(key string, fallback any) any {
	if v, ok := rc.lookup(key); ok {
		return v
	}
	return fallback
}

func (rc *RuleContext) lookup(key string) (any, bool) {
	if rc.RuleConfig == nil {
		return nil, false
	}
	v, ok := rc.RuleConfig.Options[key]
	return v, ok
}

// OptionInt reads an integer option. YAML gives int, JSON gives float64.
func (rc *RuleContext) OptionInt(key string, fallback int) int {
	v, _ := rc.lookup(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

// OptionString reads a string option.
func (rc *RuleContext) OptionString(key, fallback string) string {
	return optionAs(rc, key, fallback)
}

// OptionBool reads a boolean option.
func (rc *RuleContext) OptionBool(key string, fallback bool) bool {
	return optionAs(rc, key, fallback)
}

// OptionStringSlice reads a list of strings. Decoded configs produce []any;
// non-string items are dropped, and a list with no strings yields fallback.
func (rc *RuleContext) OptionStringSlice(key string, fallback []string) []string {
	v, _ := rc.lookup(key)
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

func optionAs[T any](rc *RuleContext, key string, fallback T) T {
	v, _ := rc.lookup(key)
	if typed, ok := v.(T); ok {
		return typed
	}
	return fallback
}
