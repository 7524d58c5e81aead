package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/parser/treesitter"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// runRule parses src and runs rule against it with cfg (or defaults).
func runRule(t *testing.T, rule lint.Rule, src string, cfg *config.Config) []lint.Diagnostic {
	t.Helper()

	if cfg == nil {
		cfg = config.NewConfig()
	}

	ctx := context.Background()
	content := []byte(src)

	var tree *pyast.Module
	if rule.NeedsTree() {
		mod, err := treesitter.New().Parse(ctx, "test.py", content)
		require.NoError(t, err)
		tree = mod
	}

	diags, err := rule.Check(lint.NewRuleContext(ctx, tree, content, cfg))
	require.NoError(t, err)
	return diags
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}
