package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopylint/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{name: "python extension", path: "pkg/mod.py", want: "Python"},
		{name: "go extension", path: "main.go", want: "Go"},
		{name: "shebang python", path: "bin/tool", content: "#!/usr/bin/env python3\nprint('hello')\n", want: "Python"},
		{name: "shebang bash", path: "bin/run", content: "#!/bin/bash\necho hello\n", want: "Shell"},
		{name: "modeline", path: "script", content: "# vim: set ft=python:\nx = 1\n", want: "Python"},
		{
			name:    "main guard",
			path:    "script",
			content: "def main():\n    pass\n\nif __name__ == '__main__':\n    main()\n",
			want:    "Python",
		},
		{
			name:    "def with from-import",
			path:    "script",
			content: "from os import path\n\ndef run():\n    return path.sep\n",
			want:    "Python",
		},
		{name: "empty extensionless", path: "notes", content: "", want: ""},
		{name: "binary", path: "blob", content: "\x00\x01\x02\x00", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect(tt.path, []byte(tt.content)))
		})
	}
}

func TestIsPython(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsPython("tool", []byte("#!/usr/bin/python\nimport sys\n")))
	assert.True(t, langdetect.IsPython("types.pyi", nil))
	assert.False(t, langdetect.IsPython("run.sh", []byte("echo hi\n")))
	assert.False(t, langdetect.IsPython("data", []byte("\x00\x00")))
}

func BenchmarkDetectScript(b *testing.B) {
	code := []byte("#!/usr/bin/env python3\ndef hello():\n    print('hi')\n")
	for range b.N {
		langdetect.Detect("hello", code)
	}
}
