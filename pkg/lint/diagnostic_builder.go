package lint

import (
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic anchored to the line holding
// node, at column 1. A nil node leaves the position unset.
func NewDiagnostic(ruleID string, node pyast.Node, message string) *DiagnosticBuilder {
	var pos pyast.Pos
	if node != nil {
		pos = pyast.Pos{Line: node.Position().Line, Column: 1}
	}
	return NewDiagnosticAt(ruleID, pos, message)
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(ruleID string, pos pyast.Pos, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
			Line:    pos.Line,
			Column:  pos.Column,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
