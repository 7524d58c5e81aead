package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// UnusedImportRule reports module-level imports whose names are never used.
//
// Only top-level import statements create bindings; imports inside
// functions or classes are not tracked. Usages are collected from every
// expression in the module, nested blocks included.
type UnusedImportRule struct {
	lint.BaseRule
}

// NewUnusedImportRule creates a new unused import rule.
func NewUnusedImportRule() *UnusedImportRule {
	return &UnusedImportRule{
		BaseRule: lint.NewBaseRule(
			"PY200",
			"unused-import",
			"Imported names should be used",
			[]string{"imports", "unused"},
			true,
		),
	}
}

// importBinding is one name introduced by an import statement.
type importBinding struct {
	// name is the imported name as written: dotted for `import a.b`,
	// bare for `from m import x`.
	name   string
	asName string
	stmt   pyast.Stmt
}

// Check collects bindings, then usages, then reports each unused binding in
// source order.
func (r *UnusedImportRule) Check(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Tree == nil {
		return nil, nil
	}

	bindings := collectBindings(ctx.Tree)
	if len(bindings) == 0 {
		return nil, nil
	}

	used, err := collectUsages(ctx, ctx.Tree)
	if err != nil {
		return nil, err
	}

	var diags []lint.Diagnostic
	for _, binding := range bindings {
		if used.covers(binding) {
			continue
		}

		label := binding.name
		if binding.asName != "" {
			label = binding.name + " as " + binding.asName
		}

		diags = append(diags, lint.NewDiagnostic(r.ID(), binding.stmt, fmt.Sprintf("Unused import '%s'", label)).
			WithSeverity(config.SeverityWarning).
			Build())
	}

	return diags, nil
}

// collectBindings scans top-level import statements in a single forward pass.
// Wildcard imports bind nothing that can be checked and are skipped, as are
// __future__ imports, which are compiler directives.
func collectBindings(mod *pyast.Module) []importBinding {
	var bindings []importBinding

	for _, stmt := range mod.Body {
		var names []pyast.Alias

		switch s := stmt.(type) {
		case *pyast.Import:
			names = s.Names
		case *pyast.ImportFrom:
			if s.Wildcard || (s.Level == 0 && s.Module == "__future__") {
				continue
			}
			names = s.Names
		default:
			continue
		}

		for _, alias := range names {
			bindings = append(bindings, importBinding{name: alias.Name, asName: alias.AsName, stmt: stmt})
		}
	}

	return bindings
}

// usageSet records identifiers, attribute names and `base.attr` forms.
type usageSet map[string]struct{}

func (u usageSet) add(name string) {
	if name != "" {
		u[name] = struct{}{}
	}
}

func (u usageSet) has(name string) bool {
	_, ok := u[name]
	return ok
}

// covers decides whether binding is used. An aliased import needs its
// alias. Otherwise the full dotted name, its first segment, or any usage
// under that segment counts; `import os.path` is used by a bare `os`.
func (u usageSet) covers(binding importBinding) bool {
	if binding.asName != "" {
		return u.has(binding.asName)
	}

	if u.has(binding.name) {
		return true
	}

	base, _, _ := strings.Cut(binding.name, ".")
	if u.has(base) {
		return true
	}

	prefix := base + "."
	for name := range u {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// collectUsages walks every statement's expressions. Assignment targets
// count as usages, as do decorators, annotations, defaults and bases.
func collectUsages(ctx *lint.RuleContext, mod *pyast.Module) (usageSet, error) {
	used := make(usageSet)

	err := pyast.WalkStmts(mod.Body, func(stmt pyast.Stmt) error {
		if ctx.Cancelled() {
			return ctx.Ctx.Err()
		}
		for _, expr := range pyast.StmtExprs(stmt) {
			pyast.InspectExpr(expr, used.visit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return used, nil
}

// visit records names. For attribute access on a bare name it also records
// the dotted form, so `sys.path` yields sys, path and sys.path.
func (u usageSet) visit(expr pyast.Expr) bool {
	switch e := expr.(type) {
	case *pyast.Name:
		u.add(e.ID)
	case *pyast.Attribute:
		u.add(e.Attr)
		if base, ok := e.Value.(*pyast.Name); ok {
			u.add(base.ID + "." + e.Attr)
		}
	}
	return true
}
