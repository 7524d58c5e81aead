package pyast

import "strings"

// SplitLines splits source into physical lines. Lines end at "\n"; a
// trailing "\r" is dropped, and a final newline does not start an extra line.
func SplitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}

	text := strings.TrimSuffix(string(src), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
