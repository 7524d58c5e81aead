package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "non-file writers are never TTYs")
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &bytes.Buffer{}))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&bytes.Buffer{}))
}

func TestTable(t *testing.T) {
	styles := pretty.NewStyles(false)
	table := pretty.NewTable(styles, 80, "ID", "NAME", "DESCRIPTION")
	table.AddRow("PY001", "line-style", "Lines should fit")
	table.AddRow("PY200", "unused-import", "Imported names should be used")

	out := table.Render()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "line-style")
	assert.Equal(t, strings.Index(lines[2], "line-style"), strings.Index(lines[3], "unused-import"))
}
