// Package langdetect decides whether a file holds Python source.
// It uses go-enry, primarily for recognising extensionless scripts
// during file discovery.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Python is the go-enry name for the Python language.
const Python = "Python"

// sniffLimit bounds how much of a file is inspected.
const sniffLimit = 8 << 10

// Detect returns the go-enry language name for a file, or "" when the
// language cannot be determined with confidence.
//
// Strategies, most reliable first: extension, well-known filename,
// shebang, editor modeline, and finally Python-only patterns.
func Detect(path string, content []byte) string {
	base := filepath.Base(path)

	if filepath.Ext(base) != "" {
		if lang, safe := enry.GetLanguageByExtension(base); safe {
			return lang
		}
	}
	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return lang
	}

	if len(content) == 0 {
		return ""
	}
	if len(content) > sniffLimit {
		content = content[:sniffLimit]
	}
	if enry.IsBinary(content) {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return lang
	}
	if looksLikePython(content) {
		return Python
	}

	return ""
}

// IsPython reports whether the file at path holds Python source.
func IsPython(path string, content []byte) bool {
	return Detect(path, content) == Python
}

// looksLikePython matches constructs no other candidate language shares.
func looksLikePython(content []byte) bool {
	text := string(content)
	if strings.Contains(text, "if __name__ ==") {
		return true
	}

	var defs, imports int
	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)
		switch {
		case bytes.HasPrefix(line, []byte("def ")) && bytes.HasSuffix(line, []byte(":")):
			defs++
		case bytes.HasPrefix(line, []byte("from ")) && bytes.Contains(line, []byte(" import ")):
			imports++
		}
	}
	return defs > 0 && imports > 0
}
