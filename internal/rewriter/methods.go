package rewriter

import (
	"github.com/ludo-technologies/unclass/internal/parser"
	"github.com/ludo-technologies/unclass/internal/printer"
	"github.com/ludo-technologies/unclass/internal/walker"
)

// methodDescriptor is one class member extracted from a factory-body
// assignment statement.
type methodDescriptor struct {
	name     string
	isStatic bool
	function *parser.Node
}

// extractMethods scans the factory statements for assignments of
// function values to the prototype alias, to `Ctor.prototype`
// directly, or to the constructor itself. Statements that are neither
// the constructor definition nor a method assignment produce no class
// member and are dropped.
func extractMethods(ctx *parsingContext, cfg *walker.Config) []methodDescriptor {
	var methods []methodDescriptor

	for _, stmt := range ctx.statements {
		if stmt == nil || stmt == ctx.constructor {
			continue
		}
		desc, ok := matchMethodAssignment(ctx, stmt)
		if !ok {
			continue
		}
		desc.function.Body = dealiasDeep(desc.function.Body, cfg, ctx.opts)
		methods = append(methods, desc)
	}

	return methods
}

// matchMethodAssignment matches `receiver.name = function(){...}`
// where the receiver is the prototype alias, the constructor's
// prototype, or the constructor itself (static).
func matchMethodAssignment(ctx *parsingContext, stmt *parser.Node) (methodDescriptor, bool) {
	if stmt.Type != parser.NodeAssignmentExpression || stmt.Operator != "=" {
		return methodDescriptor{}, false
	}
	target := stmt.Left
	if target == nil || target.Type != parser.NodeMemberExpression || target.Computed {
		return methodDescriptor{}, false
	}
	if target.Property == nil || target.Property.Type != parser.NodeIdentifier {
		return methodDescriptor{}, false
	}
	fn := unparen(stmt.Right)
	if fn == nil {
		return methodDescriptor{}, false
	}
	switch fn.Type {
	case parser.NodeFunctionExpression, parser.NodeFunction, parser.NodeArrowFunction:
	default:
		return methodDescriptor{}, false
	}

	isStatic, ok := classifyReceiver(ctx, target.Object)
	if !ok {
		return methodDescriptor{}, false
	}

	return methodDescriptor{
		name:     target.Property.Name,
		isStatic: isStatic,
		function: fn,
	}, true
}

// classifyReceiver decides whether the assignment target's object is
// the constructor itself (static member) or its prototype (instance
// member).
func classifyReceiver(ctx *parsingContext, obj *parser.Node) (isStatic, ok bool) {
	if obj == nil {
		return false, false
	}
	ctorName := ctx.constructor.Name
	if ctorName == "" {
		ctorName = ctx.name
	}

	if obj.Type == parser.NodeIdentifier {
		if ctx.prototypeAlias != "" && obj.Name == ctx.prototypeAlias {
			return false, true
		}
		if obj.Name == ctorName {
			return true, true
		}
		return false, false
	}

	// Direct `Ctor.prototype.m = fn` without an alias variable.
	if obj.Type == parser.NodeMemberExpression && printer.Print(obj) == ctorName+".prototype" {
		return false, true
	}
	return false, false
}
