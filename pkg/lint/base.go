package lint

import (
	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
)

// BaseRule carries a rule's identity and dispatch kinds. Rules embed it and
// supply Check, plus DefaultEnabled or DefaultSeverity when they differ
// from enabled and warning.
type BaseRule struct {
	id, name, desc string
	tags           []string
	appliesTo      []adast.NodeKind
}

// NewBaseRule describes a rule dispatched for the given node kinds.
func NewBaseRule(id, name, desc string, tags []string, kinds ...adast.NodeKind) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags, appliesTo: kinds}
}

func (r *BaseRule) ID() string { return r.id }
func (r *BaseRule) Name() string { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string { return r.tags }
func (r *BaseRule) AppliesTo() []adast.NodeKind { return r.appliesTo }
func (r *BaseRule) DefaultEnabled() bool { return true }
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Check finds nothing; every concrete rule overrides it.
func (r *BaseRule) Check(*RuleContext, *adast.Node) ([]Finding, error) {
	return nil, nil
}
