// Package analysis aggregates lint results into per-rule and per-file views.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/runner"
)

type accumulator struct {
	rules     map[string]*RuleAnalysis
	files     map[string]*FileAnalysis
	ruleFiles map[string]map[string]struct{}
	fileRules map[string]map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		rules:     make(map[string]*RuleAnalysis),
		files:     make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]struct{}),
		fileRules: make(map[string]map[string]struct{}),
	}
}

func (acc *accumulator) file(path string) *FileAnalysis {
	fa, ok := acc.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		acc.files[path] = fa
		acc.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (acc *accumulator) rule(ruleID, ruleName string) *RuleAnalysis {
	ra, ok := acc.rules[ruleID]
	if !ok {
		ra = &RuleAnalysis{RuleID: ruleID, RuleName: ruleName}
		acc.rules[ruleID] = ra
		acc.ruleFiles[ruleID] = make(map[string]struct{})
	}
	return ra
}

// Analyze aggregates a runner.Result in a single pass over its diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	acc := newAccumulator()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.SyntaxError != nil {
			report.Totals.FilesWithSyntaxErrors++
		}
		if len(file.Result.Diagnostics) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := relativePath(file.Path, opts.WorkingDir)
		fa := acc.file(path)

		for _, diag := range file.Result.Diagnostics {
			ra := acc.rule(diag.RuleID, diag.RuleName)

			report.Totals.Issues++
			fa.Issues++
			ra.Issues++

			switch diag.Severity {
			case config.SeverityError:
				report.Totals.Errors++
				fa.Errors++
				ra.Errors++
			default:
				report.Totals.Warnings++
				fa.Warnings++
				ra.Warnings++
			}

			acc.fileRules[path][diag.RuleID] = struct{}{}
			acc.ruleFiles[diag.RuleID][path] = struct{}{}
		}
	}

	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = SortByCount
	}

	if opts.IncludeByRule {
		report.ByRule = acc.byRule(sortBy)
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile(sortBy)
	}

	return report
}

func (acc *accumulator) byRule(sortBy SortField) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(acc.rules))
	for id, ra := range acc.rules {
		ra.Files = sortedKeys(acc.ruleFiles[id])
		out = append(out, *ra)
	}

	slices.SortFunc(out, func(left, right RuleAnalysis) int {
		return compareCounts(sortBy,
			counts{left.Issues, left.Errors, left.Warnings},
			counts{right.Issues, right.Errors, right.Warnings},
			left.RuleID, right.RuleID)
	})
	return out
}

func (acc *accumulator) byFile(sortBy SortField) []FileAnalysis {
	out := make([]FileAnalysis, 0, len(acc.files))
	for path, fa := range acc.files {
		fa.Rules = sortedKeys(acc.fileRules[path])
		out = append(out, *fa)
	}

	slices.SortFunc(out, func(left, right FileAnalysis) int {
		return compareCounts(sortBy,
			counts{left.Issues, left.Errors, left.Warnings},
			counts{right.Issues, right.Errors, right.Warnings},
			left.Path, right.Path)
	})
	return out
}

type counts struct {
	issues, errors, warnings int
}

// compareCounts orders two entries by sortBy, breaking ties by key.
func compareCounts(sortBy SortField, left, right counts, leftKey, rightKey string) int {
	var result int
	switch sortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.errors, left.errors),
			cmp.Compare(right.warnings, left.warnings),
			cmp.Compare(right.issues, left.issues),
		)
	default:
		result = cmp.Compare(right.issues, left.issues)
	}
	if result != 0 {
		return result
	}
	return cmp.Compare(leftKey, rightKey)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// relativePath makes path relative to workDir unless that would leave it.
func relativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
