package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/version"
)

// Check exit codes
const (
	CheckExitClean      = 0
	CheckExitViolations = 1
	CheckExitFailure    = 2
)

// CheckUseCase scans for compiled-class idioms without touching any
// file, for use as a CI gate.
type CheckUseCase struct {
	service    domain.RewriteService
	fileHelper *FileHelper
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(service domain.RewriteService) *CheckUseCase {
	return &CheckUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
	}
}

// Execute scans the requested paths and reports every declaration that
// still matches a compiled-class shape
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.RewriteRequest) (*domain.CheckResult, error) {
	startTime := time.Now()

	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no JavaScript/TypeScript files found in the specified paths", nil)
	}

	// Detection only: never write anything
	req.Paths = files
	req.DryRun = true
	req.Write = false
	req.OutDir = ""
	req.OutputWriter = nil

	response, err := uc.service.Rewrite(ctx, req)
	if err != nil {
		return nil, err
	}

	return uc.buildResult(response, time.Since(startTime)), nil
}

// buildResult converts a rewrite response into check violations
func (uc *CheckUseCase) buildResult(response *domain.RewriteResponse, duration time.Duration) *domain.CheckResult {
	result := &domain.CheckResult{
		Summary: domain.CheckSummary{
			FilesScanned: response.Summary.TotalFiles,
		},
		Duration:    duration.Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	for _, file := range response.Files {
		if len(file.Classes) > 0 {
			result.Summary.FilesWithIdioms++
		}
		for _, class := range file.Classes {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Rule:     "compiled-class",
				Severity: "error",
				Message:  fmt.Sprintf("compiled class %s can be rewritten as a class declaration", class.Name),
				Location: fmt.Sprintf("%s:%d", file.FilePath, class.Location.StartLine),
				Class:    class.Name,
				Shape:    class.Shape,
			})
			result.Summary.TotalViolations++
			switch class.Shape {
			case domain.ShapeDirectFactory:
				result.Summary.DirectFactories++
			case domain.ShapeWrappedFactory:
				result.Summary.WrappedFactories++
			}
		}
	}

	switch {
	case response.Summary.FilesErrored > 0:
		result.Passed = false
		result.ExitCode = CheckExitFailure
	case result.Summary.TotalViolations > 0:
		result.Passed = false
		result.ExitCode = CheckExitViolations
	default:
		result.Passed = true
		result.ExitCode = CheckExitClean
	}

	return result
}
