package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName = "gopylint"
	toolURI  = "https://github.com/yaklabco/gopylint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Invocations []SARIFInvocation `json:"invocations"`
	Results     []SARIFResult     `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFInvocation records whether the run completed and any per-file failures.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification reports a file that could not be linted.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

// sarifRules indexes driver rules by ID while preserving their order.
type sarifRules struct {
	rules []SARIFRule
	index map[string]int
}

func (s *sarifRules) add(rule SARIFRule) int {
	if idx, ok := s.index[rule.ID]; ok {
		return idx
	}
	s.index[rule.ID] = len(s.rules)
	s.rules = append(s.rules, rule)
	return len(s.rules) - 1
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	rules := &sarifRules{rules: make([]SARIFRule, 0), index: make(map[string]int)}
	for _, rule := range r.opts.Rules {
		rules.add(ruleToSARIF(rule))
	}

	run := SARIFRun{
		Invocations: []SARIFInvocation{{ExecutionSuccessful: true}},
		Results:     make([]SARIFResult, 0),
	}

	if result != nil {
		for _, file := range result.Files {
			uri := filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir))

			if file.Error != nil {
				run.Invocations[0].ExecutionSuccessful = false
				run.Invocations[0].Notifications = append(run.Invocations[0].Notifications, SARIFNotification{
					Level:   "error",
					Message: SARIFMessage{Text: file.Error.Error()},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: uri},
						},
					}},
				})
				continue
			}
			if file.Result == nil {
				continue
			}

			for _, diag := range file.Result.Diagnostics {
				idx := rules.add(diagnosticRule(diag))
				run.Results = append(run.Results, SARIFResult{
					RuleID:    diag.RuleID,
					RuleIndex: idx,
					Level:     severityToSARIFLevel(diag.Severity),
					Message:   SARIFMessage{Text: diag.Message},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: uri},
							Region: &SARIFRegion{
								StartLine:   diag.Line,
								StartColumn: diag.Column,
							},
						},
					}},
				})
			}
		}
	}

	run.Tool = SARIFTool{
		Driver: SARIFDriver{
			Name:           toolName,
			Version:        version,
			InformationURI: toolURI,
			Rules:          rules.rules,
		},
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func ruleToSARIF(rule lint.Rule) SARIFRule {
	return SARIFRule{
		ID:               rule.ID(),
		Name:             rule.Name(),
		ShortDescription: SARIFMultiformatText{Text: rule.Description()},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(rule.DefaultSeverity())},
		Properties:       map[string]any{"tags": rule.Tags()},
	}
}

// diagnosticRule describes a rule known only from its diagnostics, such as
// the synthetic syntax-error rule.
func diagnosticRule(diag lint.Diagnostic) SARIFRule {
	text := diag.RuleName
	if diag.RuleID == lint.SyntaxErrorRuleID {
		text = "File could not be parsed"
	}
	return SARIFRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: SARIFMultiformatText{Text: text},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(diag.Severity)},
	}
}

// severityToSARIFLevel converts a gopylint severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	default:
		return "warning"
	}
}
