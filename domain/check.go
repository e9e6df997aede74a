package domain

// CheckResult represents the result of scanning for leftover compiled-class idioms
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single compiled-class idiom found in a file
type CheckViolation struct {
	Rule     string    `json:"rule"`     // compiled-class
	Severity string    `json:"severity"` // error, warning
	Message  string    `json:"message"`  // Human-readable description
	Location string    `json:"location"` // File:line
	Class    string    `json:"class"`    // Recovered class name
	Shape    ShapeKind `json:"shape"`    // Matched idiom
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	FilesScanned     int `json:"files_scanned"`
	TotalViolations  int `json:"total_violations"`
	DirectFactories  int `json:"direct_factories"`
	WrappedFactories int `json:"wrapped_factories"`
	FilesWithIdioms  int `json:"files_with_idioms"`
}
