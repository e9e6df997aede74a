package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ludo-technologies/unclass/domain"
	"gopkg.in/yaml.v3"
)

func sampleRewriteResponse() *domain.RewriteResponse {
	return &domain.RewriteResponse{
		Files: []domain.FileRewrite{
			{
				FilePath: "src/point.js",
				Changed:  true,
				Classes: []domain.RewrittenClass{
					{
						Name:       "Point",
						Shape:      domain.ShapeDirectFactory,
						SuperClass: "Shape",
						Methods:    2,
						Location:   domain.SourceLocation{StartLine: 3, EndLine: 14},
					},
				},
				Output: "class Point extends Shape {}\n",
			},
			{
				FilePath: "src/util.js",
				Changed:  false,
			},
		},
		Summary: domain.RewriteSummary{
			TotalFiles:       2,
			FilesChanged:     1,
			ClassesRewritten: 1,
			DirectFactories:  1,
		},
		GeneratedAt: "2025-01-15T10:00:00Z",
		Version:     "test",
	}
}

func TestNewOutputFormatter(t *testing.T) {
	formatter := NewOutputFormatter()

	if formatter == nil {
		t.Fatal("NewOutputFormatter should not return nil")
	}
}

func TestOutputFormatter_Format_Text(t *testing.T) {
	formatter := NewOutputFormatter()
	response := sampleRewriteResponse()

	output, err := formatter.Format(response, domain.OutputFormatText)
	if err != nil {
		t.Fatalf("Format should not return error: %v", err)
	}

	for _, want := range []string{
		"Class Rewrite",
		"Files processed: 2",
		"Files changed: 1",
		"Classes rewritten: 1",
		"src/point.js",
		"class Point extends Shape (direct_factory, 2 methods) at line 3",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Text output should contain %q\nGot:\n%s", want, output)
		}
	}

	// Unchanged files are not listed
	if strings.Contains(output, "src/util.js") {
		t.Error("Text output should not list unchanged files")
	}
}

func TestOutputFormatter_Format_Text_NoIdioms(t *testing.T) {
	formatter := NewOutputFormatter()
	response := &domain.RewriteResponse{
		Summary: domain.RewriteSummary{TotalFiles: 1},
	}

	output, err := formatter.Format(response, domain.OutputFormatText)
	if err != nil {
		t.Fatalf("Format should not return error: %v", err)
	}

	if !strings.Contains(output, "No compiled class idioms found.") {
		t.Errorf("Output should report that nothing matched\nGot:\n%s", output)
	}
}

func TestOutputFormatter_Format_Text_ErrorsAndWarnings(t *testing.T) {
	formatter := NewOutputFormatter()
	response := sampleRewriteResponse()
	response.Warnings = []string{"unresolved super binding in method render"}
	response.Errors = []string{"broken.js: failed to parse"}
	response.Summary.FilesErrored = 1

	output, err := formatter.Format(response, domain.OutputFormatText)
	if err != nil {
		t.Fatalf("Format should not return error: %v", err)
	}

	if !strings.Contains(output, "Warnings:") {
		t.Error("Output should contain warnings section")
	}
	if !strings.Contains(output, "unresolved super binding in method render") {
		t.Error("Output should contain warning message")
	}
	if !strings.Contains(output, "Errors:") {
		t.Error("Output should contain errors section")
	}
	if !strings.Contains(output, "Files errored: 1") {
		t.Error("Output should report errored file count")
	}
}

func TestOutputFormatter_Format_JSON(t *testing.T) {
	formatter := NewOutputFormatter()
	response := sampleRewriteResponse()

	output, err := formatter.Format(response, domain.OutputFormatJSON)
	if err != nil {
		t.Fatalf("Format should not return error: %v", err)
	}

	var decoded RewriteResponseJSON
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output should be valid JSON: %v", err)
	}

	if len(decoded.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(decoded.Files))
	}
	if decoded.Summary.ClassesRewritten != 1 {
		t.Errorf("Expected 1 class rewritten, got %d", decoded.Summary.ClassesRewritten)
	}
	if decoded.Files[0].Classes[0].Name != "Point" {
		t.Errorf("Expected class 'Point', got '%s'", decoded.Files[0].Classes[0].Name)
	}
	if decoded.Files[0].Classes[0].Shape != domain.ShapeDirectFactory {
		t.Errorf("Expected direct_factory shape, got '%s'", decoded.Files[0].Classes[0].Shape)
	}

	// Rewritten source is not part of the report payload
	if strings.Contains(output, "class Point extends Shape {}") {
		t.Error("JSON output should not embed rewritten source")
	}
}

func TestOutputFormatter_Format_YAML(t *testing.T) {
	formatter := NewOutputFormatter()
	response := sampleRewriteResponse()

	output, err := formatter.Format(response, domain.OutputFormatYAML)
	if err != nil {
		t.Fatalf("Format should not return error: %v", err)
	}

	var decoded domain.RewriteResponse
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output should be valid YAML: %v", err)
	}

	if decoded.Summary.TotalFiles != 2 {
		t.Errorf("Expected 2 total files, got %d", decoded.Summary.TotalFiles)
	}
	if decoded.Files[0].FilePath != "src/point.js" {
		t.Errorf("Expected 'src/point.js', got '%s'", decoded.Files[0].FilePath)
	}
}

func TestOutputFormatter_Format_Unsupported(t *testing.T) {
	formatter := NewOutputFormatter()
	response := sampleRewriteResponse()

	_, err := formatter.Format(response, domain.OutputFormat("xml"))
	if err == nil {
		t.Error("Format should return error for unsupported format")
	}
}

func TestOutputFormatter_Write(t *testing.T) {
	formatter := NewOutputFormatter()
	response := sampleRewriteResponse()

	var buf bytes.Buffer
	if err := formatter.Write(response, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write should not return error: %v", err)
	}

	if buf.Len() == 0 {
		t.Error("Write should produce output")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]interface{}{"key": "value"}

	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("WriteJSON should not return error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output should be valid JSON: %v", err)
	}
	if decoded["key"] != "value" {
		t.Error("Decoded JSON should contain original data")
	}
}

func TestOutputFormatter_WriteCheck_Text(t *testing.T) {
	formatter := NewOutputFormatter()
	result := &domain.CheckResult{
		Passed:   false,
		ExitCode: 1,
		Violations: []domain.CheckViolation{
			{
				Rule:     "compiled-class",
				Severity: "error",
				Message:  "compiled class Point can be rewritten",
				Location: "src/point.js:3",
				Class:    "Point",
				Shape:    domain.ShapeDirectFactory,
			},
		},
		Summary: domain.CheckSummary{
			FilesScanned:    1,
			TotalViolations: 1,
			DirectFactories: 1,
			FilesWithIdioms: 1,
		},
	}

	var buf bytes.Buffer
	if err := formatter.WriteCheck(result, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteCheck should not return error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "src/point.js:3") {
		t.Error("Check output should contain violation location")
	}
	if !strings.Contains(output, "FAIL") {
		t.Error("Check output should report failure")
	}
}

func TestOutputFormatter_WriteCheck_Passed(t *testing.T) {
	formatter := NewOutputFormatter()
	result := &domain.CheckResult{
		Passed:  true,
		Summary: domain.CheckSummary{FilesScanned: 3},
	}

	var buf bytes.Buffer
	if err := formatter.WriteCheck(result, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteCheck should not return error: %v", err)
	}

	if !strings.Contains(buf.String(), "OK") {
		t.Error("Check output should report success")
	}
}

func TestOutputFormatter_WriteCheck_JSON(t *testing.T) {
	formatter := NewOutputFormatter()
	result := &domain.CheckResult{
		Passed:   true,
		ExitCode: 0,
		Summary:  domain.CheckSummary{FilesScanned: 2},
	}

	var buf bytes.Buffer
	if err := formatter.WriteCheck(result, domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("WriteCheck should not return error: %v", err)
	}

	var decoded domain.CheckResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output should be valid JSON: %v", err)
	}
	if !decoded.Passed {
		t.Error("Decoded result should be passed")
	}
}
