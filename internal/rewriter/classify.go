// Package rewriter turns compiled-class factory shapes back into ES6
// class declarations. One call processes one candidate declarator; a
// candidate that fails recognition at any stage is returned unchanged
// so a caller can run the rewrite speculatively over many nodes.
package rewriter

import (
	"github.com/ludo-technologies/unclass/internal/parser"
)

// ShapeKind identifies which compiled-class idiom a candidate
// declarator matches.
type ShapeKind int

const (
	// ShapeNone means the candidate matches neither recognized idiom.
	ShapeNone ShapeKind = iota

	// ShapeDirectFactory is `name = (function(){ ...; return Ctor; })()`.
	ShapeDirectFactory

	// ShapeWrappedFactory is `name = new (function(){ ...; return Ctor; })()`,
	// a `new` applied to a parenthesized factory expression.
	ShapeWrappedFactory
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeDirectFactory:
		return "DirectFactory"
	case ShapeWrappedFactory:
		return "WrappedFactory"
	}
	return "None"
}

// FindClassType classifies a declarator node against the two
// compiled-class shapes. The parent must be the enclosing variable
// declaration; anything else yields ShapeNone. Pure classification,
// no mutation.
func FindClassType(node, parent *parser.Node) ShapeKind {
	if node == nil || parent == nil {
		return ShapeNone
	}
	if parent.Type != parser.NodeVariableDeclaration || node.Type != parser.NodeVariableDeclarator {
		return ShapeNone
	}
	if node.Init == nil {
		return ShapeNone
	}

	switch node.Init.Type {
	case parser.NodeCallExpression:
		if factoryFunction(node.Init.Callee) != nil {
			return ShapeDirectFactory
		}
	case parser.NodeNewExpression:
		if node.Init.Callee != nil && node.Init.Callee.Type == parser.NodeParenthesizedExpression {
			if wrappedFactoryFunction(node.Init.Callee) != nil {
				return ShapeWrappedFactory
			}
		}
	}
	return ShapeNone
}

// factoryFunction unwraps a callee to the factory function expression,
// tolerating one parenthesized layer. Returns nil when the callee is
// not a function.
func factoryFunction(callee *parser.Node) *parser.Node {
	fn := unparen(callee)
	if fn == nil {
		return nil
	}
	switch fn.Type {
	case parser.NodeFunctionExpression, parser.NodeFunction:
		return fn
	}
	return nil
}

// wrappedFactoryFunction resolves the factory inside the parenthesized
// callee of a `new` expression. The parens may hold the factory
// function itself or an immediate call of it.
func wrappedFactoryFunction(callee *parser.Node) *parser.Node {
	inner := unparen(callee)
	if inner == nil {
		return nil
	}
	if inner.Type == parser.NodeCallExpression {
		return factoryFunction(inner.Callee)
	}
	switch inner.Type {
	case parser.NodeFunctionExpression, parser.NodeFunction:
		return inner
	}
	return nil
}

func unparen(node *parser.Node) *parser.Node {
	for node != nil && node.Type == parser.NodeParenthesizedExpression {
		node = node.Argument
	}
	return node
}
