package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/unclass/domain"
)

// RewriteUseCase orchestrates the rewrite workflow
type RewriteUseCase struct {
	service    domain.RewriteService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewRewriteUseCase creates a new rewrite use case
func NewRewriteUseCase(service domain.RewriteService, formatter domain.OutputFormatter) *RewriteUseCase {
	return &RewriteUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the complete rewrite workflow
func (uc *RewriteUseCase) Execute(ctx context.Context, req domain.RewriteRequest) (*domain.RewriteResponse, error) {
	// Validate input
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	// Resolve file paths
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

	// Update request with collected files
	req.Paths = files

	// Perform the rewrite
	response, err := uc.service.Rewrite(ctx, req)
	if err != nil {
		return nil, domain.NewRewriteError("rewrite failed", err)
	}

	if req.OutputWriter != nil {
		if err := uc.writeOutput(response, req); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}
	}

	return response, nil
}

// RewriteFile rewrites a single file
func (uc *RewriteUseCase) RewriteFile(ctx context.Context, filePath string, req domain.RewriteRequest) (*domain.FileRewrite, error) {
	// Validate file
	if !uc.fileHelper.IsValidJSFile(filePath) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a valid JavaScript/TypeScript file: %s", filePath), nil)
	}

	// Check if file exists
	exists, err := uc.fileHelper.FileExists(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return nil, domain.NewFileNotFoundError(filePath, fmt.Errorf("file does not exist"))
	}

	return uc.service.RewriteFile(ctx, filePath, req)
}

// writeOutput emits either the rewritten source or a formatted report.
// When no write mode is selected and the format is text, the rewritten
// source itself goes to the writer so the tool composes in a pipe.
func (uc *RewriteUseCase) writeOutput(response *domain.RewriteResponse, req domain.RewriteRequest) error {
	if uc.printsSource(req) {
		for _, file := range response.Files {
			if file.Changed {
				if _, err := fmt.Fprint(req.OutputWriter, file.Output); err != nil {
					return err
				}
			}
		}
		return nil
	}

	return uc.formatter.Write(response, req.OutputFormat, req.OutputWriter)
}

func (uc *RewriteUseCase) printsSource(req domain.RewriteRequest) bool {
	return !req.Write && req.OutDir == "" && !req.DryRun &&
		(req.OutputFormat == domain.OutputFormatText || req.OutputFormat == "")
}

// validateRequest validates the rewrite request
func (uc *RewriteUseCase) validateRequest(req domain.RewriteRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	if req.Write && req.OutDir != "" {
		return fmt.Errorf("in-place write and output directory cannot be combined")
	}

	if req.Write && req.DryRun {
		return fmt.Errorf("dry run and in-place write cannot be combined")
	}

	return nil
}

// RewriteUseCaseBuilder provides a builder pattern for creating RewriteUseCase
type RewriteUseCaseBuilder struct {
	service    domain.RewriteService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewRewriteUseCaseBuilder creates a new builder
func NewRewriteUseCaseBuilder() *RewriteUseCaseBuilder {
	return &RewriteUseCaseBuilder{}
}

// WithService sets the rewrite service
func (b *RewriteUseCaseBuilder) WithService(service domain.RewriteService) *RewriteUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *RewriteUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *RewriteUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *RewriteUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *RewriteUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// Build creates the RewriteUseCase with the configured dependencies
func (b *RewriteUseCaseBuilder) Build() (*RewriteUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("rewrite service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := &RewriteUseCase{
		service:    b.service,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
