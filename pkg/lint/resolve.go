package lint

import (
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the severity applied to diagnostics that do not set one.
	Severity config.Severity
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, in registration order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
// Disable wins over enable when a rule appears in both lists.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	if matchesAny(rule, cfg.Enable) {
		rr.Enabled = true
	}
	if matchesAny(rule, cfg.Disable) {
		rr.Enabled = false
	}

	return rr
}

// MatchesRule reports whether key names rule by ID or name, ignoring case.
func MatchesRule(rule Rule, key string) bool {
	key = strings.TrimSpace(key)
	return strings.EqualFold(key, rule.ID()) || strings.EqualFold(key, rule.Name())
}

func matchesAny(rule Rule, keys []string) bool {
	for _, key := range keys {
		if MatchesRule(rule, key) {
			return true
		}
	}
	return false
}
