package lint

import (
	"regexp"
	"strings"
)

// noqaPattern matches "# noqa" and "# noqa: PY200, naming-convention".
var noqaPattern = regexp.MustCompile(`(?i)#\s*noqa\b(?::\s*([\w-]+(?:\s*,\s*[\w-]+)*))?`)

// Suppressions maps 1-based line numbers to the rule keys silenced there.
// An empty key list silences every rule on that line.
type Suppressions map[int][]string

// ParseSuppressions scans the comments of lines for noqa markers. Text
// inside string literals, including triple-quoted strings spanning lines,
// is not a comment.
func ParseSuppressions(lines []string) Suppressions {
	var out Suppressions
	var open string
	for i, line := range lines {
		start := commentStart(line, &open)
		if start < 0 {
			continue
		}
		comment := line[start:]
		if !strings.Contains(strings.ToLower(comment), "noqa") {
			continue
		}
		match := noqaPattern.FindStringSubmatch(comment)
		if match == nil {
			continue
		}
		if out == nil {
			out = make(Suppressions)
		}

		var keys []string
		for _, key := range strings.Split(match[1], ",") {
			if key = strings.TrimSpace(key); key != "" {
				keys = append(keys, key)
			}
		}
		out[i+1] = keys
	}
	return out
}

// commentStart returns the byte offset of the '#' opening the comment on
// line, or -1. open holds the delimiter of a string still open at the end
// of the previous line; only triple-quoted strings stay open across lines.
func commentStart(line string, open *string) int {
	for i := 0; i < len(line); i++ {
		if *open != "" {
			switch {
			case line[i] == '\\':
				i++
			case strings.HasPrefix(line[i:], *open):
				i += len(*open) - 1
				*open = ""
			}
			continue
		}

		switch c := line[i]; c {
		case '#':
			return i
		case '\'', '"':
			quote := string(c)
			if triple := strings.Repeat(quote, 3); strings.HasPrefix(line[i:], triple) {
				quote = triple
			}
			*open = quote
			i += len(quote) - 1
		}
	}
	if len(*open) == 1 {
		*open = ""
	}
	return -1
}

// Suppressed reports whether diag is silenced by a noqa comment on its line.
func (s Suppressions) Suppressed(rule Rule, diag Diagnostic) bool {
	keys, ok := s[diag.Line]
	if !ok {
		return false
	}
	if len(keys) == 0 {
		return true
	}
	for _, key := range keys {
		if MatchesRule(rule, key) {
			return true
		}
	}
	return false
}
