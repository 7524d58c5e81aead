package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
)

func TestUnusedImportRule_Metadata(t *testing.T) {
	rule := NewUnusedImportRule()

	assert.Equal(t, "PY200", rule.ID())
	assert.Equal(t, "unused-import", rule.Name())
	assert.True(t, rule.NeedsTree())
	assert.Equal(t, config.SeverityWarning, rule.DefaultSeverity())
}

func TestUnusedImportRule(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two unused imports",
			input: "import os\nimport sys\nx = 1\n",
			want:  []string{"Unused import 'os'", "Unused import 'sys'"},
		},
		{
			name:  "attribute use",
			input: "import sys\nprint(sys.path)\n",
		},
		{
			name:  "bare name use",
			input: "import os\nos\n",
		},
		{
			name:  "dotted import used through base",
			input: "import os.path\nprint(os.getcwd())\n",
		},
		{
			name:  "dotted import used through full name",
			input: "import os.path\nos.path.join('a', 'b')\n",
		},
		{
			name:  "dotted import unused",
			input: "import os.path\n",
			want:  []string{"Unused import 'os.path'"},
		},
		{
			name:  "aliased module unused",
			input: "import json as js\njson = None\n",
			want:  []string{"Unused import 'json as js'"},
		},
		{
			name:  "aliased module used",
			input: "import json as js\njs.dumps({})\n",
		},
		{
			name:  "from import partially used",
			input: "from datetime import datetime, date\nnow = datetime.now()\n",
			want:  []string{"Unused import 'date'"},
		},
		{
			name:  "from import aliased",
			input: "from pathlib import Path as PathLib\n",
			want:  []string{"Unused import 'Path as PathLib'"},
		},
		{
			name:  "wildcard ignored",
			input: "from os import *\n",
		},
		{
			name:  "future import ignored",
			input: "from __future__ import annotations\nx = 1\n",
		},
		{
			name:  "relative import",
			input: "from . import sibling\n",
			want:  []string{"Unused import 'sibling'"},
		},
		{
			name:  "function scoped import not tracked",
			input: "def f():\n    import os\n    return 1\n",
		},
		{
			name:  "use inside nested blocks",
			input: "import re\nclass C:\n    def m(self):\n        if True:\n            return re.compile('x')\n",
		},
		{
			name:  "use in decorator and annotation",
			input: "import functools\nimport typing\n@functools.cache\ndef f(x: typing.Any) -> None:\n    pass\n",
		},
		{
			name:  "use in class base",
			input: "import enum\nclass Color(enum.Enum):\n    RED = 1\n",
		},
		{
			name:  "use in f-string",
			input: "import os\nprint(f\"{os.sep}\")\n",
		},
		{
			name:  "use in comprehension",
			input: "import math\nvals = [math.sqrt(v) for v in range(3)]\n",
		},
		{
			name:  "use in lambda",
			input: "import operator\nkey = lambda v: operator.neg(v)\n",
		},
		{
			name:  "no imports",
			input: "x = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, NewUnusedImportRule(), tt.input, nil)
			if tt.want == nil {
				assert.Empty(t, diags)
				return
			}
			assert.Equal(t, tt.want, messages(diags))
		})
	}
}

func TestUnusedImportRule_Mixed(t *testing.T) {
	input := `
import os
import sys
from typing import List, Dict
from pathlib import Path as PathLib
import json as js

def main():
    sys_path = sys.path
    my_list: List = []
    return my_list
`

	diags := runRule(t, NewUnusedImportRule(), input, nil)

	require.Len(t, diags, 4)
	assert.Equal(t, []string{
		"Unused import 'os'",
		"Unused import 'Dict'",
		"Unused import 'Path as PathLib'",
		"Unused import 'json as js'",
	}, messages(diags))
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 4, diags[1].Line)
	assert.Equal(t, 5, diags[2].Line)
	assert.Equal(t, 6, diags[3].Line)
	for _, diag := range diags {
		assert.Equal(t, 1, diag.Column)
	}
}

func TestUnusedImportRule_Idempotent(t *testing.T) {
	input := "import os\nimport sys\nfrom a import b as c\n"

	first := runRule(t, NewUnusedImportRule(), input, nil)
	second := runRule(t, NewUnusedImportRule(), input, nil)

	assert.Equal(t, first, second)
}
