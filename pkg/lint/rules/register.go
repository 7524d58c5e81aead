package rules

import "github.com/yaklabco/gopylint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewLineStyleRule())        // PY001
	registry.Register(NewNamingConventionRule()) // PY100
	registry.Register(NewUnusedImportRule())     // PY200
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
