package rewriter

import (
	"github.com/ludo-technologies/unclass/internal/parser"
)

// assembleClass combines the reconstructed constructor and extracted
// methods into a class node. The constructor member comes first,
// unless its body opens with an immediate return — that indicates a
// factory-only helper rather than a real constructor — followed by the
// remaining members in source order.
func assembleClass(ctx *parsingContext, methods []methodDescriptor, kind parser.NodeType) *parser.Node {
	class := parser.NewNode(kind)
	class.Name = ctx.name
	class.SuperClass = ctx.superClass

	if !startsWithReturn(ctx.constructor.Body) {
		class.Body = append(class.Body, methodNode("constructor", false, ctx.constructor))
	}
	for _, m := range methods {
		class.Body = append(class.Body, methodNode(m.name, m.isStatic, m.function))
	}

	return class
}

func startsWithReturn(body []*parser.Node) bool {
	return len(body) > 0 && body[0] != nil && body[0].Type == parser.NodeReturnStatement
}

// methodNode turns a function node into an unnamed method member
// attached under the given property name.
func methodNode(name string, isStatic bool, fn *parser.Node) *parser.Node {
	m := parser.NewNode(parser.NodeMethodDefinition)
	m.Name = name
	m.Static = isStatic
	m.Params = fn.Params
	m.Body = fn.Body
	m.Async = fn.Async
	m.Generator = fn.Generator
	m.Location = fn.Location
	return m
}
