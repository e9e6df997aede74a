// Package testutil provides helper functions for testing unclass components
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/unclass/internal/parser"
)

// CreateTestAST creates a test AST from JavaScript source code
func CreateTestAST(t *testing.T, source string) *parser.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	if ast == nil {
		t.Fatal("Parsed AST is nil")
	}
	return ast
}

// WriteFile writes a JavaScript fixture into dir and returns its path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file %s: %v", name, err)
	}
	return path
}
