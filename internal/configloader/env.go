package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
)

// envVarPrefix is the prefix for all gopylint environment variables.
const envVarPrefix = "GOPYLINT_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars lists the supported variables in a stable order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{
		suffix:      "MAX_LINE_LENGTH",
		description: "Maximum line length in characters",
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer for %sMAX_LINE_LENGTH: %q", envVarPrefix, value)
			}
			cfg.Rules.MaxLineLength = n
			return nil
		},
	},
	{
		suffix:      "JOBS",
		description: "Number of parallel workers (0 = one per CPU)",
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, value)
			}
			cfg.Jobs = n
			return nil
		},
	},
	{
		suffix:      "FORMAT",
		description: "Output format: text, json, or sarif",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(strings.ToLower(value))
			return nil
		},
	},
	{
		suffix:      "EXCLUDE",
		description: "Comma-separated glob patterns to exclude",
		apply: func(cfg *config.Config, value string) error {
			cfg.Paths.Exclude = parseSliceValue(value)
			return nil
		},
	},
	{
		suffix:      "ENABLE",
		description: "Comma-separated rule IDs or names to enable",
		apply: func(cfg *config.Config, value string) error {
			cfg.Enable = parseSliceValue(value)
			return nil
		},
	},
	{
		suffix:      "DISABLE",
		description: "Comma-separated rule IDs or names to disable",
		apply: func(cfg *config.Config, value string) error {
			cfg.Disable = parseSliceValue(value)
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOPYLINT_ (e.g., GOPYLINT_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		value := strings.TrimSpace(os.Getenv(envVarPrefix + ev.suffix))
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return err
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[envVarPrefix+ev.suffix] = ev.description
	}
	return out
}
