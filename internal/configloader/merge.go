package configloader

import "github.com/yaklabco/gopylint/pkg/config"

// Overrides carries values set by CLI flags. Nil pointers and empty
// strings leave the loaded configuration untouched.
type Overrides struct {
	MaxLineLength *int
	Jobs          *int
	Format        config.OutputFormat
	RuleFormat    config.RuleFormat
	NoContext     bool

	// Exclude, Enable and Disable extend the loaded lists.
	Exclude []string
	Enable  []string
	Disable []string
}

// apply layers the overrides onto cfg.
func (o *Overrides) apply(cfg *config.Config) {
	if o == nil || cfg == nil {
		return
	}

	if o.MaxLineLength != nil {
		cfg.Rules.MaxLineLength = *o.MaxLineLength
	}
	if o.Jobs != nil {
		cfg.Jobs = *o.Jobs
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.RuleFormat != "" {
		cfg.RuleFormat = o.RuleFormat
	}
	if o.NoContext {
		cfg.NoContext = true
	}

	cfg.Paths.Exclude = appendUnique(cfg.Paths.Exclude, o.Exclude)
	cfg.Enable = appendUnique(cfg.Enable, o.Enable)
	cfg.Disable = appendUnique(cfg.Disable, o.Disable)
}

// appendUnique appends the values of extra missing from base.
func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}

	seen := make(map[string]bool, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, value := range list {
			if seen[value] {
				continue
			}
			seen[value] = true
			result = append(result, value)
		}
	}
	return result
}
