package rewriter

import (
	"github.com/ludo-technologies/unclass/internal/parser"
	"github.com/ludo-technologies/unclass/internal/walker"
)

// Rewrite processes one candidate declarator. node is the variable
// declarator under inspection, parent its enclosing variable
// declaration; cfg is forwarded verbatim to the tree walker whenever
// the rewrite walks sub-trees it has just built, and is never
// inspected here.
//
// On success the result is the replacement for parent: a class
// declaration when parent is the declaration being replaced outright,
// or parent itself with one declarator's initializer rewritten when
// the factory was wrapped in `new`. Any recognition or extraction
// failure returns parent unchanged; no failure propagates.
func Rewrite(node, parent *parser.Node, cfg *walker.Config) *parser.Node {
	return RewriteWithOptions(node, parent, cfg, DefaultOptions())
}

// RewriteWithOptions is Rewrite with the optional de-aliasing passes
// selected explicitly.
func RewriteWithOptions(node, parent *parser.Node, cfg *walker.Config, opts Options) *parser.Node {
	if node == nil || parent == nil || cfg == nil {
		return parent
	}

	kind := FindClassType(node, parent)
	if kind == ShapeNone {
		return parent
	}

	ctx, err := buildContext(node, kind, opts)
	if err != nil {
		return parent
	}

	reconstructConstructor(ctx, cfg)
	methods := extractMethods(ctx, cfg)

	switch kind {
	case ShapeDirectFactory:
		// The class declaration replaces the whole variable
		// declaration.
		return assembleClass(ctx, methods, parser.NodeClass)

	case ShapeWrappedFactory:
		// Only the parenthesized callee of the `new` expression is
		// replaced; the wrapper and sibling declarators stay put.
		class := assembleClass(ctx, methods, parser.NodeClassExpression)
		node.Init.Callee = class
		return parent
	}

	return parent
}
