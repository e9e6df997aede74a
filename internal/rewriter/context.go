package rewriter

import (
	"errors"

	"github.com/ludo-technologies/unclass/internal/parser"
	"github.com/ludo-technologies/unclass/internal/printer"
)

// Recognition failures. Every one of them degrades to "leave the
// candidate unchanged"; none crosses the public boundary.
var (
	errNoShapeMatch      = errors.New("no compiled-class shape matched")
	errContextExtraction = errors.New("context extraction failed")
	errMissingIdentifier = errors.New("declared identifier is missing")
)

// parsingContext is the immutable view over one matched candidate.
// Built once per rewrite and consumed by every downstream stage.
type parsingContext struct {
	kind           ShapeKind
	name           string
	superClass     *parser.Node
	prototypeAlias string
	constructor    *parser.Node
	statements     []*parser.Node
	opts           Options
}

// buildContext extracts the entities the rewrite needs from a matched
// candidate. Statement kinds are validated explicitly; any mismatch
// returns an error instead of panicking so the caller can degrade to a
// no-op.
func buildContext(node *parser.Node, kind ShapeKind, opts Options) (*parsingContext, error) {
	if node.Name == "" {
		return nil, errMissingIdentifier
	}

	factory := locateFactory(node, kind)
	if factory == nil {
		return nil, errContextExtraction
	}

	ctx := &parsingContext{
		kind:       kind,
		name:       node.Name,
		statements: factory.Body,
		opts:       opts,
	}

	ctx.constructor = findConstructor(factory.Body)
	if ctx.constructor == nil {
		return nil, errContextExtraction
	}

	if err := ctx.resolveSuperClass(node); err != nil {
		return nil, err
	}
	ctx.prototypeAlias = findPrototypeAlias(factory.Body, ctx.constructor.Name)

	return ctx, nil
}

func locateFactory(node *parser.Node, kind ShapeKind) *parser.Node {
	switch kind {
	case ShapeDirectFactory:
		return factoryFunction(node.Init.Callee)
	case ShapeWrappedFactory:
		return wrappedFactoryFunction(node.Init.Callee)
	}
	return nil
}

// findConstructor locates the function declaration that defines the
// class constructor. It is the first or second factory statement: the
// first when there is no inheritance helper call, the second when the
// helper call precedes it.
func findConstructor(stmts []*parser.Node) *parser.Node {
	limit := 2
	if len(stmts) < limit {
		limit = len(stmts)
	}
	for i := 0; i < limit; i++ {
		s := stmts[i]
		if s != nil && (s.Type == parser.NodeFunction || s.Type == parser.NodeFunctionExpression) {
			return s
		}
	}
	return nil
}

// resolveSuperClass detects the inheritance-helper-call idiom
// `helper(Ctor, Super)` as the factory's first statement. The printed
// text of the helper's first argument must equal the constructor name;
// the actual superclass expression is the sibling argument carried on
// the outer call or `new` expression, not the helper's own argument.
func (c *parsingContext) resolveSuperClass(node *parser.Node) error {
	if c.constructor.Name == "" || len(c.statements) == 0 {
		return nil
	}

	first := c.statements[0]
	if first == nil || first.Type != parser.NodeCallExpression {
		return nil
	}
	if len(first.Arguments) != 2 {
		return nil
	}
	if printer.Print(first.Arguments[0]) != c.constructor.Name {
		return nil
	}

	outer := outerArguments(node, c.kind)
	if len(outer) == 0 {
		return errContextExtraction
	}
	c.superClass = outer[0]
	return nil
}

// outerArguments returns the argument list the factory was invoked
// with; the superclass travels there, aliased into the factory's
// parameter.
func outerArguments(node *parser.Node, kind ShapeKind) []*parser.Node {
	switch kind {
	case ShapeDirectFactory:
		return node.Init.Arguments
	case ShapeWrappedFactory:
		if inner := unparen(node.Init.Callee); inner != nil && inner.Type == parser.NodeCallExpression {
			return inner.Arguments
		}
		return node.Init.Arguments
	}
	return nil
}

// findPrototypeAlias scans for a declaration binding a local name to
// `Ctor.prototype`.
func findPrototypeAlias(stmts []*parser.Node, ctorName string) string {
	if ctorName == "" {
		return ""
	}
	want := ctorName + ".prototype"
	for _, s := range stmts {
		if s == nil || s.Type != parser.NodeVariableDeclaration {
			continue
		}
		for _, d := range s.Declarations {
			if d != nil && d.Init != nil && printer.Print(d.Init) == want {
				return d.Name
			}
		}
	}
	return ""
}
