package lint

import "github.com/yaklabco/gopylint/pkg/config"

// BaseRule provides a default implementation of the Rule metadata methods.
// Embed this in rule implementations and provide Check.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id        string   // Unique identifier (e.g., "PY001")
	name      string   // Human-readable name
	desc      string   // Detailed description
	tags      []string // Categorization tags
	needsTree bool     // Whether Check reads RuleContext.Tree
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, needsTree bool) BaseRule {
	return BaseRule{
		id:        id,
		name:      name,
		desc:      desc,
		tags:      tags,
		needsTree: needsTree,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// NeedsTree reports whether the rule inspects the syntax tree.
func (r *BaseRule) NeedsTree() bool {
	return r.needsTree
}
