package rewriter

import (
	"github.com/ludo-technologies/unclass/internal/parser"
	"github.com/ludo-technologies/unclass/internal/walker"
)

// reconstructConstructor rewrites the compiled super-call idiom inside
// the constructor's body into a native `super(...)` statement and
// strips the compiler scaffolding around it. Bodies without a
// recognized idiom are left structurally intact. Either way the body
// is then de-aliased, nested functions included.
//
// The spread-arguments form is checked before the regular form: a body
// satisfying both is treated as spread, since that form additionally
// dictates the parameter-list rewrite.
func reconstructConstructor(ctx *parsingContext, cfg *walker.Config) {
	ctor := ctx.constructor

	if ctx.superClass != nil {
		if !applySpreadSuper(ctor, cfg) {
			applyRegularSuper(ctor, cfg)
		}
	}

	ctor.Body = dealiasDeep(ctor.Body, cfg, ctx.opts)
}

// applySpreadSuper handles the arguments-forwarding idiom:
//
//	var _this;
//	for (...) { args[i] = arguments[i]; }
//	_this = _Super.apply(this, args) || this;
//	...
//	return _this;
//
// The constructor must declare zero parameters. On a match the
// parameter list becomes a single rest parameter, the scaffolding
// collapses into `super(...args)`, and remaining `_this` references
// are renamed to `this`.
func applySpreadSuper(ctor *parser.Node, cfg *walker.Config) bool {
	if len(ctor.Params) != 0 || len(ctor.Body) < 4 {
		return false
	}

	captured := capturedVariable(ctor.Body[0])
	if captured == "" {
		return false
	}
	if ctor.Body[1] == nil || ctor.Body[1].Type != parser.NodeForStatement {
		return false
	}
	call := superCallAssignment(ctor.Body[2], captured)
	if call == nil {
		return false
	}
	if !returnsVariable(ctor.Body[len(ctor.Body)-1], captured) {
		return false
	}

	restName := "args"
	if len(call.Arguments) > 1 && call.Arguments[1] != nil && call.Arguments[1].Type == parser.NodeIdentifier {
		restName = call.Arguments[1].Name
	}

	rest := parser.NewNode(parser.NodeRestElement)
	rest.Name = restName
	ident := parser.NewNode(parser.NodeIdentifier)
	ident.Name = restName
	rest.Argument = ident
	ctor.Params = []*parser.Node{rest}

	spread := parser.NewNode(parser.NodeSpreadElement)
	spreadIdent := parser.NewNode(parser.NodeIdentifier)
	spreadIdent.Name = restName
	spread.Argument = spreadIdent

	body := append([]*parser.Node{superCall(spread)}, ctor.Body[3:len(ctor.Body)-1]...)
	ctor.Body = body

	renameToThis(ctor.Body, captured, cfg)
	return true
}

// applyRegularSuper handles the plain captured-this idiom:
//
//	var _this;
//	_this = _Super.call(this, a, b) || this;
//	...
//	return _this;
//
// The call's first argument is the explicit `this` context of `.call`
// and is dropped; the rest becomes the `super(...)` argument list.
func applyRegularSuper(ctor *parser.Node, cfg *walker.Config) bool {
	if len(ctor.Body) < 3 {
		return false
	}

	captured := capturedVariable(ctor.Body[0])
	if captured == "" {
		return false
	}
	call := superCallAssignment(ctor.Body[1], captured)
	if call == nil || call.Callee == nil || call.Callee.Type != parser.NodeMemberExpression {
		return false
	}
	if !returnsVariable(ctor.Body[len(ctor.Body)-1], captured) {
		return false
	}

	var args []*parser.Node
	if len(call.Arguments) > 1 {
		args = call.Arguments[1:]
	}

	body := append([]*parser.Node{superCall(args...)}, ctor.Body[2:len(ctor.Body)-1]...)
	ctor.Body = body

	renameToThis(ctor.Body, captured, cfg)
	return true
}

// capturedVariable returns the name declared by a leading
// `var _this;` statement, or "" when the statement is not a single
// uninitialized declaration.
func capturedVariable(stmt *parser.Node) string {
	if stmt == nil || stmt.Type != parser.NodeVariableDeclaration {
		return ""
	}
	if len(stmt.Declarations) != 1 || stmt.Declarations[0] == nil {
		return ""
	}
	d := stmt.Declarations[0]
	if d.Init != nil {
		return ""
	}
	return d.Name
}

// superCallAssignment matches `captured = call(...) || this` and
// returns the call expression.
func superCallAssignment(stmt *parser.Node, captured string) *parser.Node {
	if stmt == nil || stmt.Type != parser.NodeAssignmentExpression || stmt.Operator != "=" {
		return nil
	}
	if stmt.Left == nil || stmt.Left.Type != parser.NodeIdentifier || stmt.Left.Name != captured {
		return nil
	}
	or := stmt.Right
	if or == nil || or.Type != parser.NodeLogicalExpression || or.Operator != "||" {
		return nil
	}
	if or.Right == nil || or.Right.Type != parser.NodeThisExpression {
		return nil
	}
	if or.Left == nil || or.Left.Type != parser.NodeCallExpression {
		return nil
	}
	return or.Left
}

func returnsVariable(stmt *parser.Node, name string) bool {
	return stmt != nil &&
		stmt.Type == parser.NodeReturnStatement &&
		stmt.Argument != nil &&
		stmt.Argument.Type == parser.NodeIdentifier &&
		stmt.Argument.Name == name
}

func superCall(args ...*parser.Node) *parser.Node {
	call := parser.NewNode(parser.NodeCallExpression)
	call.Callee = parser.NewNode(parser.NodeSuper)
	call.Arguments = args
	return call
}

// renameToThis rewrites every identifier matching name into a bare
// `this` node across the whole body, nested functions included. The
// match is purely by name, without scope resolution; a nested function
// re-declaring the same name is rewritten too. Identifiers in
// non-computed member property position and non-computed object keys
// are exempt, since rewriting those would change the property being
// named rather than the value being referenced.
func renameToThis(stmts []*parser.Node, name string, cfg *walker.Config) {
	for _, stmt := range stmts {
		walker.Walk(stmt, cfg, func(n *parser.Node, ancestors []*parser.Node) bool {
			if n.Type != parser.NodeIdentifier || n.Name != name {
				return true
			}
			if len(ancestors) > 0 {
				parent := ancestors[len(ancestors)-1]
				if parent.Type == parser.NodeMemberExpression && !parent.Computed && parent.Property == n {
					return true
				}
				if parent.Type == parser.NodeProperty && !parent.Computed && parent.Left == n {
					return true
				}
			}
			becomeThis(n)
			return true
		})
	}
}
