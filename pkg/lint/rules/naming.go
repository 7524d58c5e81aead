package rules

import (
	"fmt"
	"unicode"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// NamingConventionRule checks function, class and variable names.
//
// Functions must be snake_case and classes PascalCase. A variable must be
// snake_case or an all-caps constant; any mix of upper and lower case is
// rejected, which is stricter than PEP 8.
type NamingConventionRule struct {
	lint.BaseRule
}

// NewNamingConventionRule creates a new naming convention rule.
func NewNamingConventionRule() *NamingConventionRule {
	return &NamingConventionRule{
		BaseRule: lint.NewBaseRule(
			"PY100",
			"naming-convention",
			"Functions and variables should use snake_case, classes PascalCase, constants UPPER_CASE",
			[]string{"naming", "convention"},
			true,
		),
	}
}

// Check walks every statement in the module, including all nested blocks.
// Only plain-name assignment targets are checked; tuple, attribute and
// subscript targets are skipped.
func (r *NamingConventionRule) Check(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Tree == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	err := pyast.WalkStmts(ctx.Tree.Body, func(stmt pyast.Stmt) error {
		if ctx.Cancelled() {
			return ctx.Ctx.Err()
		}

		switch s := stmt.(type) {
		case *pyast.FunctionDef:
			if !isSnakeCase(s.Name) {
				diags = append(diags, r.warn(s, fmt.Sprintf("Function '%s' should use snake_case", s.Name)))
			}
		case *pyast.ClassDef:
			if !isPascalCase(s.Name) {
				diags = append(diags, r.warn(s, fmt.Sprintf("Class '%s' should use PascalCase", s.Name)))
			}
		case *pyast.Assign:
			for _, target := range s.Targets {
				name, ok := target.(*pyast.Name)
				if !ok || isValidVariableName(name.ID) {
					continue
				}
				diags = append(diags, r.warn(s,
					fmt.Sprintf("Variable '%s' should use snake_case or be a proper constant", name.ID)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return diags, nil
}

// warn reports at the statement's line, column 1.
func (r *NamingConventionRule) warn(stmt pyast.Stmt, message string) lint.Diagnostic {
	return lint.NewDiagnostic(r.ID(), stmt, message).
		WithSeverity(config.SeverityWarning).
		Build()
}

// isSnakeCase: non-empty, no leading digit, only lowercase letters, digits and underscores.
func isSnakeCase(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		if i == 0 && unicode.IsNumber(ch) {
			return false
		}
		if !unicode.IsLower(ch) && !unicode.IsNumber(ch) && ch != '_' {
			return false
		}
	}
	return true
}

// isPascalCase: uppercase first letter, then letters and digits only.
func isPascalCase(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		if i == 0 {
			if !unicode.IsUpper(ch) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(ch) && !unicode.IsNumber(ch) {
			return false
		}
	}
	return true
}

// isConstant: non-empty, only uppercase letters, digits and underscores.
func isConstant(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if !unicode.IsUpper(ch) && !unicode.IsNumber(ch) && ch != '_' {
			return false
		}
	}
	return true
}

// isValidVariableName rejects any name mixing upper and lower case letters.
func isValidVariableName(name string) bool {
	var hasUpper, hasLower bool
	for _, ch := range name {
		hasUpper = hasUpper || unicode.IsUpper(ch)
		hasLower = hasLower || unicode.IsLower(ch)
	}
	if hasUpper && hasLower {
		return false
	}
	return isSnakeCase(name) || isConstant(name)
}
