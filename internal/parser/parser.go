package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Parser wraps a tree-sitter parser for JavaScript/TypeScript
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
	isTS     bool
}

func newParser(lang *sitter.Language, isTS bool) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(lang)
	return &Parser{
		parser:   p,
		language: lang,
		isTS:     isTS,
	}
}

// NewParser creates a new JavaScript parser
func NewParser() *Parser {
	return newParser(javascript.GetLanguage(), false)
}

// NewTypeScriptParser creates a new TypeScript parser. The TSX grammar
// is a superset of plain TypeScript, so one grammar covers both.
func NewTypeScriptParser() *Parser {
	return newParser(tsx.GetLanguage(), true)
}

// ParseFile parses JavaScript/TypeScript source into the internal AST
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	return NewASTBuilder(filename, source).Build(rootNode), nil
}

// Parse parses JavaScript/TypeScript source code
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses JavaScript/TypeScript source code from a string
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// IsTypeScript returns true if this parser is configured for TypeScript
func (p *Parser) IsTypeScript() bool {
	return p.isTS
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// IsTypeScriptFile reports whether the file extension selects the
// TypeScript grammar. JavaScript extensions (.js, .jsx, .mjs, .cjs)
// and anything unrecognized parse with the JavaScript grammar.
func IsTypeScriptFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}

// ParseForLanguage selects the grammar from the file extension and
// parses the source with it.
func ParseForLanguage(filename string, source []byte) (*Node, error) {
	var p *Parser
	if IsTypeScriptFile(filename) {
		p = NewTypeScriptParser()
	} else {
		p = NewParser()
	}
	defer p.Close()

	return p.ParseFile(filename, source)
}
