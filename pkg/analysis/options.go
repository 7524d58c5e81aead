package analysis

// SortField specifies how to order the per-rule and per-file views.
type SortField string

const (
	// SortByCount sorts by issue count, highest first.
	SortByCount SortField = "count"
	// SortByAlpha sorts by rule ID or path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts by error count, then warning count.
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// ValidSortFields lists the accepted sort fields.
func ValidSortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// Options configures Analyze.
type Options struct {
	// IncludeByFile includes the per-file view.
	IncludeByFile bool

	// IncludeByRule includes the per-rule view.
	IncludeByRule bool

	// SortBy orders ByFile and ByRule. Empty means SortByCount.
	SortBy SortField

	// WorkingDir is the directory paths are made relative to.
	WorkingDir string
}

// DefaultOptions returns Options with both views enabled.
func DefaultOptions() Options {
	return Options{
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        SortByCount,
	}
}
