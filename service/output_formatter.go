package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/version"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// RewriteResponseJSON wraps RewriteResponse with JSON metadata
type RewriteResponseJSON struct {
	Version     string                `json:"version"`
	GeneratedAt string                `json:"generated_at"`
	DurationMs  int64                 `json:"duration_ms,omitempty"`
	Files       []domain.FileRewrite  `json:"files"`
	Summary     domain.RewriteSummary `json:"summary"`
	Warnings    []string              `json:"warnings,omitempty"`
	Errors      []string              `json:"errors,omitempty"`
	Config      interface{}           `json:"config,omitempty"`
}

// Format formats the rewrite response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.RewriteResponse, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(response, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the rewrite response in the specified format
func (f *OutputFormatterImpl) Write(response *domain.RewriteResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeRewriteJSON(response, writer)
	case domain.OutputFormatYAML:
		return f.writeRewriteYAML(response, writer)
	case domain.OutputFormatText:
		return f.writeRewriteText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeRewriteJSON writes the rewrite response as JSON
func (f *OutputFormatterImpl) writeRewriteJSON(response *domain.RewriteResponse, writer io.Writer) error {
	jsonResponse := RewriteResponseJSON{
		Version:     version.Version,
		GeneratedAt: response.GeneratedAt,
		Files:       response.Files,
		Summary:     response.Summary,
		Warnings:    response.Warnings,
		Errors:      response.Errors,
		Config:      response.Config,
	}
	return WriteJSON(writer, jsonResponse)
}

// writeRewriteYAML writes the rewrite response as YAML
func (f *OutputFormatterImpl) writeRewriteYAML(response *domain.RewriteResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(response)
}

// writeRewriteText writes the rewrite response as plain text
func (f *OutputFormatterImpl) writeRewriteText(response *domain.RewriteResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Class Rewrite ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	// Summary
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files processed: %d\n", response.Summary.TotalFiles)
	fmt.Fprintf(writer, "  Files changed: %d\n", response.Summary.FilesChanged)
	fmt.Fprintf(writer, "  Classes rewritten: %d\n", response.Summary.ClassesRewritten)
	fmt.Fprintf(writer, "  Direct factories: %d\n", response.Summary.DirectFactories)
	fmt.Fprintf(writer, "  Wrapped factories: %d\n", response.Summary.WrappedFactories)
	if response.Summary.FilesErrored > 0 {
		fmt.Fprintf(writer, "  Files errored: %d\n", response.Summary.FilesErrored)
	}
	fmt.Fprintf(writer, "\n")

	// File details
	for _, file := range response.Files {
		if !file.Changed {
			continue
		}
		fmt.Fprintf(writer, "%s:\n", file.FilePath)
		for _, class := range file.Classes {
			extends := ""
			if class.SuperClass != "" {
				extends = fmt.Sprintf(" extends %s", class.SuperClass)
			}
			fmt.Fprintf(writer, "  class %s%s (%s, %d methods) at line %d\n",
				class.Name, extends, class.Shape, class.Methods, class.Location.StartLine)
		}
	}

	if response.Summary.ClassesRewritten == 0 {
		fmt.Fprintf(writer, "No compiled class idioms found.\n")
	}

	// Warnings
	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	// Errors
	if len(response.Errors) > 0 {
		fmt.Fprintf(writer, "\nErrors:\n")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}

	return nil
}

// WriteCheck writes the check result in the specified format
func (f *OutputFormatterImpl) WriteCheck(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatText:
		return f.writeCheckText(result, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeCheckText writes the check result as plain text
func (f *OutputFormatterImpl) writeCheckText(result *domain.CheckResult, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Compiled Class Check ===\n\n")
	fmt.Fprintf(writer, "Files scanned: %d\n", result.Summary.FilesScanned)
	fmt.Fprintf(writer, "Violations: %d\n\n", result.Summary.TotalViolations)

	for _, v := range result.Violations {
		fmt.Fprintf(writer, "  %s: %s (%s)\n", v.Location, v.Message, v.Shape)
	}

	if result.Passed {
		fmt.Fprintf(writer, "OK: no compiled class idioms found.\n")
	} else {
		fmt.Fprintf(writer, "\nFAIL: %d compiled class idiom(s) remain.\n", result.Summary.TotalViolations)
	}

	return nil
}
