package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
)

func TestLineStyleRule_Metadata(t *testing.T) {
	rule := NewLineStyleRule()

	assert.Equal(t, "PY001", rule.ID())
	assert.Equal(t, "line-style", rule.Name())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, config.SeverityWarning, rule.DefaultSeverity())
	assert.False(t, rule.NeedsTree())
	assert.Contains(t, rule.Tags(), "line_length")
}

func TestLineStyleRule_LineLength(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		wantDiags int
	}{
		{name: "short lines", input: "x = 1\ny = 2\n", wantDiags: 0},
		{name: "exactly at default limit", input: "x = \"" + strings.Repeat("a", 82) + "\"\n", wantDiags: 0},
		{name: "one over default limit", input: "x = \"" + strings.Repeat("a", 83) + "\"\n", wantDiags: 1},
		{name: "custom limit", input: strings.Repeat("a", 81) + "\n", maxLength: 80, wantDiags: 1},
		{name: "custom limit not exceeded", input: strings.Repeat("a", 100) + "\n", maxLength: 120, wantDiags: 0},
		{name: "characters not bytes", input: "# " + strings.Repeat("é", 86) + "\n", wantDiags: 0},
		{name: "bare triple quote line ignored", input: strings.Repeat(" ", 88) + `"""` + "\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			if tt.maxLength > 0 {
				cfg.Rules.MaxLineLength = tt.maxLength
			}

			var long int
			for _, diag := range runRule(t, NewLineStyleRule(), tt.input, cfg) {
				if strings.HasPrefix(diag.Message, "Line too long") {
					long++
				}
			}
			assert.Equal(t, tt.wantDiags, long)
		})
	}
}

func TestLineStyleRule_LongLinePosition(t *testing.T) {
	input := "ok = 1\n" + strings.Repeat("a", 89) + "\n"

	diags := runRule(t, NewLineStyleRule(), input, nil)

	require.Len(t, diags, 1)
	assert.Equal(t, "Line too long (89 > 88 characters)", diags[0].Message)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 89, diags[0].Column)
	assert.Equal(t, config.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "PY001", diags[0].RuleID)
}

func TestLineStyleRule_CommentsAndStrings(t *testing.T) {
	input := `
# This is a very long comment line that should definitely trigger the line length warning because it's way too long
def short_line():
    pass
"""This is a multiline string that contains a very long line that should trigger the line length warning because it's quite lengthy
Normal line
Another normal line
Yet another normal line
And finally we have a very long line that should definitely trigger the line length warning because it goes beyond the limit
"""
`

	diags := runRule(t, NewLineStyleRule(), input, nil)

	require.Len(t, diags, 3)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 5, diags[1].Line)
	assert.Equal(t, 9, diags[2].Line)
}

func TestLineStyleRule_Indentation(t *testing.T) {
	input := "def f():\n    x = 1\n   y = 2\n      z = 3\n        return x\n"

	diags := runRule(t, NewLineStyleRule(), input, nil)

	assert.Equal(t, []string{
		"Indentation of 3 spaces should be a multiple of 4",
		"Indentation of 6 spaces should be a multiple of 4",
	}, messages(diags))
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 1, diags[0].Column)
	assert.Equal(t, 4, diags[1].Line)
}

func TestLineStyleRule_Tabs(t *testing.T) {
	diags := runRule(t, NewLineStyleRule(), "def f():\n\treturn 1\nx = 'a\tb'\n", nil)

	require.Len(t, diags, 2)
	assert.Equal(t, "Line contains tabs (use spaces instead)", diags[0].Message)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 1, diags[0].Column)
	assert.Equal(t, 3, diags[1].Line)
	assert.Equal(t, 7, diags[1].Column)
}

func TestLineStyleRule_TrailingWhitespace(t *testing.T) {
	diags := runRule(t, NewLineStyleRule(), "x = 1  \n\ny = 2\n    \n", nil)

	require.Len(t, diags, 2)
	assert.Equal(t, "Trailing whitespace", diags[0].Message)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 6, diags[0].Column)
	assert.Equal(t, 4, diags[1].Line)
	assert.Equal(t, 1, diags[1].Column)
}

func TestLineStyleRule_OrderWithinLine(t *testing.T) {
	input := "   " + strings.Repeat("a", 90) + "\t \n"

	diags := runRule(t, NewLineStyleRule(), input, nil)

	require.Len(t, diags, 4)
	assert.True(t, strings.HasPrefix(diags[0].Message, "Line too long"))
	assert.True(t, strings.HasPrefix(diags[1].Message, "Indentation of 3"))
	assert.Equal(t, "Line contains tabs (use spaces instead)", diags[2].Message)
	assert.Equal(t, "Trailing whitespace", diags[3].Message)
}

func TestLineStyleRule_CRLF(t *testing.T) {
	diags := runRule(t, NewLineStyleRule(), "x = 1\r\ny = 2\r\n", nil)
	assert.Empty(t, diags)
}

func TestLineStyleRule_Idempotent(t *testing.T) {
	input := "import os \n   x = 1\n" + strings.Repeat("b", 100) + "\n"

	first := runRule(t, NewLineStyleRule(), input, nil)
	second := runRule(t, NewLineStyleRule(), input, nil)

	assert.Equal(t, first, second)
}
