package lint

import (
	"context"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// RuleContext provides everything a rule may read while checking one file.
// It deliberately carries no file path.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Tree is the parsed module. It is nil when parsing failed, in which
	// case only rules whose NeedsTree is false are run.
	Tree *pyast.Module

	// Source is the raw file content.
	Source []byte

	// Lines holds Source split into physical lines.
	Lines []string

	// Config is the resolved configuration.
	Config *config.Config
}

// NewRuleContext creates a RuleContext for one file.
func NewRuleContext(ctx context.Context, tree *pyast.Module, source []byte, cfg *config.Config) *RuleContext {
	return &RuleContext{
		Ctx:    ctx,
		Tree:   tree,
		Source: source,
		Lines:  pyast.SplitLines(source),
		Config: cfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}
