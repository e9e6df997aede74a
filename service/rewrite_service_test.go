package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/testutil"
)

const directFactorySource = `var Foo = (function(){
  function Foo(x) { this.x = x; }
  Foo.prototype.get = function () { return this.x; };
  return Foo;
})();
`

const wrappedFactorySource = `var Foo = new (function(){
  function _Foo() { this.ready = true; }
  _Foo.prototype.go = function () { return 2; };
  return _Foo;
})();
`

const plainSource = `var x = compute(1, 2);
function helper() { return x; }
`

func defaultTestRequest() domain.RewriteRequest {
	return domain.RewriteRequest{
		OutputFormat:              domain.OutputFormatText,
		DealiasProps:              true,
		CollapseConstructorAccess: true,
	}
}

func TestNewRewriteService(t *testing.T) {
	service := NewRewriteService()

	if service == nil {
		t.Fatal("NewRewriteService should not return nil")
	}
}

func TestRewriteService_RewriteFile_DirectFactory(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)

	service := NewRewriteService()

	result, err := service.RewriteFile(context.Background(), path, defaultTestRequest())
	if err != nil {
		t.Fatalf("RewriteFile should not return error: %v", err)
	}

	if !result.Changed {
		t.Fatal("File with compiled class should be changed")
	}
	if len(result.Classes) != 1 {
		t.Fatalf("Expected 1 rewritten class, got %d", len(result.Classes))
	}

	class := result.Classes[0]
	if class.Name != "Foo" {
		t.Errorf("Expected class 'Foo', got '%s'", class.Name)
	}
	if class.Shape != domain.ShapeDirectFactory {
		t.Errorf("Expected direct_factory shape, got '%s'", class.Shape)
	}
	if class.Methods != 1 {
		t.Errorf("Expected 1 method, got %d", class.Methods)
	}

	for _, fragment := range []string{"class Foo {", "constructor(x) {", "get() {"} {
		if !strings.Contains(result.Output, fragment) {
			t.Errorf("Output missing %q:\n%s", fragment, result.Output)
		}
	}
	if strings.Contains(result.Output, "prototype") {
		t.Errorf("Prototype machinery should be gone:\n%s", result.Output)
	}
}

func TestRewriteService_RewriteFile_WrappedFactory(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "singleton.js", wrappedFactorySource)

	service := NewRewriteService()

	result, err := service.RewriteFile(context.Background(), path, defaultTestRequest())
	if err != nil {
		t.Fatalf("RewriteFile should not return error: %v", err)
	}

	if !result.Changed {
		t.Fatal("File with wrapped factory should be changed")
	}
	if len(result.Classes) != 1 {
		t.Fatalf("Expected 1 rewritten class, got %d", len(result.Classes))
	}
	if result.Classes[0].Shape != domain.ShapeWrappedFactory {
		t.Errorf("Expected wrapped_factory shape, got '%s'", result.Classes[0].Shape)
	}
	if !strings.Contains(result.Output, "new class Foo") {
		t.Errorf("Output should keep the new expression:\n%s", result.Output)
	}
}

func TestRewriteService_RewriteFile_NoIdioms(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "plain.js", plainSource)

	service := NewRewriteService()

	result, err := service.RewriteFile(context.Background(), path, defaultTestRequest())
	if err != nil {
		t.Fatalf("RewriteFile should not return error: %v", err)
	}

	if result.Changed {
		t.Error("File without compiled classes should not be changed")
	}
	if len(result.Classes) != 0 {
		t.Errorf("Expected no classes, got %d", len(result.Classes))
	}
	if result.Output != "" {
		t.Error("Unchanged file should have empty output")
	}
}

func TestRewriteService_RewriteFile_NestedDeclaration(t *testing.T) {
	tempDir := t.TempDir()
	source := `function wrap() {
  var Inner = (function(){
    function Inner() {}
    Inner.prototype.run = function () { return 1; };
    return Inner;
  })();
  return Inner;
}
`
	path := testutil.WriteFile(t, tempDir, "nested.js", source)

	service := NewRewriteService()

	result, err := service.RewriteFile(context.Background(), path, defaultTestRequest())
	if err != nil {
		t.Fatalf("RewriteFile should not return error: %v", err)
	}

	if !result.Changed {
		t.Fatal("Nested compiled class should be rewritten")
	}
	if len(result.Classes) != 1 || result.Classes[0].Name != "Inner" {
		t.Fatalf("Expected nested class 'Inner', got %+v", result.Classes)
	}
	if !strings.Contains(result.Output, "class Inner {") {
		t.Errorf("Output missing nested class:\n%s", result.Output)
	}
}

func TestRewriteService_RewriteFile_NotFound(t *testing.T) {
	service := NewRewriteService()

	_, err := service.RewriteFile(context.Background(), "/nonexistent/file.js", defaultTestRequest())
	if err == nil {
		t.Fatal("RewriteFile should return error for missing file")
	}

	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Expected DomainError, got %T", err)
	}
	if domainErr.Code != domain.ErrCodeFileNotFound {
		t.Errorf("Expected code %s, got %s", domain.ErrCodeFileNotFound, domainErr.Code)
	}
}

func TestRewriteService_RewriteFile_CancelledContext(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewRewriteService()

	_, err := service.RewriteFile(ctx, path, defaultTestRequest())
	if err == nil {
		t.Error("RewriteFile should respect cancelled context")
	}
}

func TestRewriteService_Rewrite_EmptyPaths(t *testing.T) {
	service := NewRewriteService()

	req := defaultTestRequest()

	_, err := service.Rewrite(context.Background(), req)
	if err == nil {
		t.Error("Rewrite should return error for empty paths")
	}
}

func TestRewriteService_Rewrite_Batch(t *testing.T) {
	tempDir := t.TempDir()
	changed := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)
	unchanged := testutil.WriteFile(t, tempDir, "plain.js", plainSource)

	service := NewRewriteService()

	req := defaultTestRequest()
	req.Paths = []string{changed, unchanged}
	req.DryRun = true

	response, err := service.Rewrite(context.Background(), req)
	if err != nil {
		t.Fatalf("Rewrite should not return error: %v", err)
	}

	if response.Summary.TotalFiles != 2 {
		t.Errorf("Expected 2 total files, got %d", response.Summary.TotalFiles)
	}
	if response.Summary.FilesChanged != 1 {
		t.Errorf("Expected 1 changed file, got %d", response.Summary.FilesChanged)
	}
	if response.Summary.ClassesRewritten != 1 {
		t.Errorf("Expected 1 class rewritten, got %d", response.Summary.ClassesRewritten)
	}
	if response.Summary.DirectFactories != 1 {
		t.Errorf("Expected 1 direct factory, got %d", response.Summary.DirectFactories)
	}
	if response.GeneratedAt == "" {
		t.Error("Response should have a timestamp")
	}
}

func TestRewriteService_Rewrite_ErrorIsolation(t *testing.T) {
	tempDir := t.TempDir()
	good := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)
	missing := filepath.Join(tempDir, "missing.js")

	service := NewRewriteService()

	req := defaultTestRequest()
	req.Paths = []string{good, missing}
	req.DryRun = true

	response, err := service.Rewrite(context.Background(), req)
	if err != nil {
		t.Fatalf("One failing file should not abort the batch: %v", err)
	}

	if response.Summary.FilesErrored != 1 {
		t.Errorf("Expected 1 errored file, got %d", response.Summary.FilesErrored)
	}
	if len(response.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(response.Errors))
	}
	if !strings.Contains(response.Errors[0], "missing.js") {
		t.Errorf("Error should name the failing file: %s", response.Errors[0])
	}
	if response.Summary.FilesChanged != 1 {
		t.Errorf("Good file should still be rewritten, got %d changed", response.Summary.FilesChanged)
	}
}

func TestRewriteService_Rewrite_WriteInPlace(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)

	service := NewRewriteService()

	req := defaultTestRequest()
	req.Paths = []string{path}
	req.Write = true

	if _, err := service.Rewrite(context.Background(), req); err != nil {
		t.Fatalf("Rewrite should not return error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read rewritten file: %v", err)
	}
	if !strings.Contains(string(content), "class Foo {") {
		t.Errorf("File should be rewritten in place:\n%s", content)
	}
}

func TestRewriteService_Rewrite_OutDir(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)
	outDir := filepath.Join(tempDir, "rewritten")

	service := NewRewriteService()

	req := defaultTestRequest()
	req.Paths = []string{path}
	req.OutDir = outDir

	if _, err := service.Rewrite(context.Background(), req); err != nil {
		t.Fatalf("Rewrite should not return error: %v", err)
	}

	// Original stays untouched
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read original file: %v", err)
	}
	if string(original) != directFactorySource {
		t.Error("Original file should not be modified")
	}

	// Rewritten copy lands under the output directory
	mirrored, err := os.ReadFile(filepath.Join(outDir, "point.js"))
	if err != nil {
		t.Fatalf("Failed to read mirrored file: %v", err)
	}
	if !strings.Contains(string(mirrored), "class Foo {") {
		t.Errorf("Mirrored file should contain the rewritten class:\n%s", mirrored)
	}
}

func TestRewriteService_Rewrite_DryRunWritesNothing(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.WriteFile(t, tempDir, "point.js", directFactorySource)

	service := NewRewriteService()

	req := defaultTestRequest()
	req.Paths = []string{path}
	req.Write = true
	req.DryRun = true

	response, err := service.Rewrite(context.Background(), req)
	if err != nil {
		t.Fatalf("Rewrite should not return error: %v", err)
	}

	if response.Summary.FilesChanged != 1 {
		t.Error("Dry run should still report changes")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != directFactorySource {
		t.Error("Dry run should not modify the file")
	}
}

func TestRewriteService_RewriteFile_Fixture(t *testing.T) {
	path := filepath.Join("..", "testdata", "javascript", "compiled", "point.js")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("Skipping fixture test: %v", err)
	}

	service := NewRewriteService()

	result, err := service.RewriteFile(context.Background(), path, defaultTestRequest())
	if err != nil {
		t.Fatalf("RewriteFile should not return error: %v", err)
	}

	if len(result.Classes) != 2 {
		t.Fatalf("Expected 2 rewritten classes, got %d", len(result.Classes))
	}
	if result.Classes[0].Name != "Point" || result.Classes[1].Name != "Point3D" {
		t.Errorf("Unexpected class names: %+v", result.Classes)
	}
	if result.Classes[1].SuperClass != "Point" {
		t.Errorf("Expected Point3D to extend Point, got '%s'", result.Classes[1].SuperClass)
	}

	for _, fragment := range []string{
		"class Point {",
		"static origin() {",
		"class Point3D extends Point {",
		"super(x, y);",
	} {
		if !strings.Contains(result.Output, fragment) {
			t.Errorf("Output missing %q:\n%s", fragment, result.Output)
		}
	}
}
