package domain

import (
	"context"
	"io"
)

// OutputFormat represents the output format for rewrite results
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ShapeKind names the compiled-class idiom a declaration matched
type ShapeKind string

const (
	// ShapeDirectFactory is an immediately-invoked factory:
	// var C = (function () { ... return C; })();
	ShapeDirectFactory ShapeKind = "direct_factory"

	// ShapeWrappedFactory is a factory constructed through new:
	// var c = new (function () { ... return C; })();
	ShapeWrappedFactory ShapeKind = "wrapped_factory"
)

// SourceLocation represents a position range in a source file
type SourceLocation struct {
	StartLine   int `json:"start_line" yaml:"start_line"`
	StartColumn int `json:"start_column" yaml:"start_column"`
	EndLine     int `json:"end_line" yaml:"end_line"`
	EndColumn   int `json:"end_column" yaml:"end_column"`
}

// RewriteRequest represents a request to rewrite compiled-class idioms
// back into class declarations
type RewriteRequest struct {
	// Input files or directories
	Paths []string `json:"paths" yaml:"paths"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format" yaml:"output_format"`
	OutputWriter io.Writer    `json:"-" yaml:"-"`

	// Write modes. Write rewrites files in place; OutDir mirrors rewritten
	// files into a directory; DryRun reports what would change without
	// writing anything. When none is set the rewritten source goes to the
	// output writer.
	Write  bool   `json:"write" yaml:"write"`
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`

	// File selection
	Recursive       bool     `json:"recursive" yaml:"recursive"`
	IncludePatterns []string `json:"include_patterns,omitempty" yaml:"include_patterns,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`

	// Rewrite behavior
	DealiasProps              bool `json:"dealias_props" yaml:"dealias_props"`
	CollapseConstructorAccess bool `json:"collapse_constructor_access" yaml:"collapse_constructor_access"`

	// Configuration file path (optional)
	ConfigPath string `json:"config_path,omitempty" yaml:"config_path,omitempty"`

	// Progress reporting
	NoProgress bool `json:"no_progress" yaml:"no_progress"`
}

// RewrittenClass describes one recovered class declaration
type RewrittenClass struct {
	Name       string         `json:"name" yaml:"name"`
	Shape      ShapeKind      `json:"shape" yaml:"shape"`
	SuperClass string         `json:"super_class,omitempty" yaml:"super_class,omitempty"`
	Methods    int            `json:"methods" yaml:"methods"`
	Location   SourceLocation `json:"location" yaml:"location"`
}

// FileRewrite represents the rewrite result for a single file
type FileRewrite struct {
	FilePath string           `json:"file_path" yaml:"file_path"`
	Classes  []RewrittenClass `json:"classes,omitempty" yaml:"classes,omitempty"`
	Changed  bool             `json:"changed" yaml:"changed"`

	// Output is the rewritten source. Empty when the file is unchanged.
	Output string `json:"-" yaml:"-"`
}

// RewriteSummary provides aggregate statistics
type RewriteSummary struct {
	TotalFiles       int `json:"total_files" yaml:"total_files"`
	FilesChanged     int `json:"files_changed" yaml:"files_changed"`
	ClassesRewritten int `json:"classes_rewritten" yaml:"classes_rewritten"`
	DirectFactories  int `json:"direct_factories" yaml:"direct_factories"`
	WrappedFactories int `json:"wrapped_factories" yaml:"wrapped_factories"`
	FilesErrored     int `json:"files_errored" yaml:"files_errored"`
}

// RewriteResponse represents the complete rewrite result
type RewriteResponse struct {
	Files   []FileRewrite  `json:"files" yaml:"files"`
	Summary RewriteSummary `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// RewriteService defines the core business logic for the rewrite
type RewriteService interface {
	// Rewrite processes every file in the request
	Rewrite(ctx context.Context, req RewriteRequest) (*RewriteResponse, error)

	// RewriteFile processes a single JavaScript/TypeScript file
	RewriteFile(ctx context.Context, filePath string, req RewriteRequest) (*FileRewrite, error)
}

// JSFileReader defines JavaScript/TypeScript-specific file operations.
type JSFileReader interface {
	CollectJSFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	IsValidJSFile(path string) bool
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting rewrite results
type OutputFormatter interface {
	// Format formats the rewrite response according to the specified format
	Format(response *RewriteResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *RewriteResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*RewriteRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *RewriteRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *RewriteRequest, override *RewriteRequest) *RewriteRequest
}
