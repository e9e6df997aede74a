// Package printer renders AST nodes back to JavaScript source text.
// The output is normalized (2-space indent, semicolons, double-quoted
// strings left as parsed) and deterministic, so printed text doubles as
// a structural equality check for subtrees.
package printer

import (
	"strings"

	"github.com/ludo-technologies/unclass/internal/parser"
)

const indentUnit = "  "

// Print renders a single node to JavaScript source. Statement nodes
// are printed without a trailing newline; expression nodes as a single
// line.
func Print(node *parser.Node) string {
	if node == nil {
		return ""
	}
	p := &printer{}
	if node.Type == parser.NodeProgram {
		return p.program(node)
	}
	if node.IsStatement() || node.Type == parser.NodeMethodDefinition {
		return p.stmt(node, 0)
	}
	return p.expr(node)
}

// PrintStatements renders a statement list at the given depth, one
// statement per line.
func PrintStatements(stmts []*parser.Node, depth int) string {
	p := &printer{}
	return p.stmtList(stmts, depth)
}

type printer struct{}

func (p *printer) program(node *parser.Node) string {
	out := p.stmtList(node.Body, 0)
	if out != "" {
		out += "\n"
	}
	return out
}

func (p *printer) stmtList(stmts []*parser.Node, depth int) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if s == nil {
			continue
		}
		lines = append(lines, p.stmt(s, depth))
	}
	return strings.Join(lines, "\n")
}

func (p *printer) indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}

// stmt prints a node in statement position. Statement lists may hold
// bare expressions (expression statements are unwrapped at parse
// time), so anything that is not a recognized statement kind is
// printed as an expression with a terminating semicolon.
func (p *printer) stmt(node *parser.Node, depth int) string {
	ind := p.indent(depth)

	switch node.Type {
	case parser.NodeVariableDeclaration:
		return ind + p.variableDeclaration(node) + ";"

	case parser.NodeFunction, parser.NodeGeneratorFunction, parser.NodeAsyncFunction:
		return ind + p.functionDeclaration(node)

	case parser.NodeClass:
		return ind + p.class(node, depth)

	case parser.NodeMethodDefinition:
		return ind + p.method(node, depth)

	case parser.NodeReturnStatement:
		if node.Argument == nil {
			return ind + "return;"
		}
		return ind + "return " + p.expr(node.Argument) + ";"

	case parser.NodeThrowStatement:
		if node.Argument == nil {
			return ind + "throw;"
		}
		return ind + "throw " + p.expr(node.Argument) + ";"

	case parser.NodeBreakStatement:
		return ind + "break;"

	case parser.NodeContinueStatement:
		return ind + "continue;"

	case parser.NodeEmptyStatement:
		return ind + ";"

	case parser.NodeBlockStatement:
		return ind + p.block(node.Body, depth)

	case parser.NodeIfStatement:
		return ind + p.ifStatement(node, depth)

	case parser.NodeForStatement:
		return ind + p.forStatement(node, depth)

	case parser.NodeForInStatement, parser.NodeForOfStatement:
		return ind + p.forInStatement(node, depth)

	case parser.NodeWhileStatement:
		return ind + "while (" + p.expr(node.Test) + ") " + p.bodyAsBlock(node.Body, depth)

	case parser.NodeDoWhileStatement:
		return ind + "do " + p.bodyAsBlock(node.Body, depth) + " while (" + p.expr(node.Test) + ");"

	case parser.NodeSwitchStatement:
		return ind + p.switchStatement(node, depth)

	case parser.NodeTryStatement:
		return ind + p.tryStatement(node, depth)

	case parser.NodeImportDeclaration, parser.NodeExportNamedDeclaration:
		return ind + node.Raw

	default:
		if node.IsExpression() || node.Raw != "" {
			return ind + p.expr(node) + ";"
		}
		return ind + p.expr(node) + ";"
	}
}

func (p *printer) variableDeclaration(node *parser.Node) string {
	kind := node.Kind
	if kind == "" {
		kind = "var"
	}
	decls := make([]string, 0, len(node.Declarations))
	for _, d := range node.Declarations {
		if d == nil {
			continue
		}
		if d.Init != nil {
			decls = append(decls, d.Name+" = "+p.expr(d.Init))
		} else {
			decls = append(decls, d.Name)
		}
	}
	return kind + " " + strings.Join(decls, ", ")
}

func (p *printer) functionDeclaration(node *parser.Node) string {
	keyword := "function"
	if node.Async {
		keyword = "async function"
	}
	star := ""
	if node.Generator || node.Type == parser.NodeGeneratorFunction {
		star = "*"
	}
	name := node.Name
	if name != "" {
		name = " " + name
	}
	return keyword + star + name + "(" + p.params(node.Params) + ") " + p.bodyAsBlock(node.Body, 0)
}

func (p *printer) functionExpression(node *parser.Node) string {
	return p.functionDeclaration(node)
}

func (p *printer) arrowFunction(node *parser.Node) string {
	head := "(" + p.params(node.Params) + ") => "
	if node.Argument != nil {
		return head + p.expr(node.Argument)
	}
	return head + p.bodyAsBlock(node.Body, 0)
}

func (p *printer) class(node *parser.Node, depth int) string {
	var sb strings.Builder
	sb.WriteString("class")
	if node.Name != "" {
		sb.WriteString(" " + node.Name)
	}
	if node.SuperClass != nil {
		sb.WriteString(" extends " + p.expr(node.SuperClass))
	}
	sb.WriteString(" {")
	if len(node.Body) == 0 {
		sb.WriteString("}")
		return sb.String()
	}
	sb.WriteString("\n")
	for i, member := range node.Body {
		if member == nil {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.stmt(member, depth+1))
		sb.WriteString("\n")
	}
	sb.WriteString(p.indent(depth) + "}")
	return sb.String()
}

func (p *printer) method(node *parser.Node, depth int) string {
	prefix := ""
	if node.Static {
		prefix = "static "
	}
	if node.Async {
		prefix += "async "
	}
	star := ""
	if node.Generator {
		star = "*"
	}
	return prefix + star + node.Name + "(" + p.params(node.Params) + ") " + p.bodyAsBlock(node.Body, depth)
}

func (p *printer) ifStatement(node *parser.Node, depth int) string {
	out := "if (" + p.expr(node.Test) + ") " + p.branch(node.Consequent, depth)
	if node.Alternate != nil {
		if node.Alternate.Type == parser.NodeIfStatement {
			out += " else " + p.ifStatement(node.Alternate, depth)
		} else {
			out += " else " + p.branch(node.Alternate, depth)
		}
	}
	return out
}

// branch prints an if/loop body node that may be a block or a single
// statement.
func (p *printer) branch(node *parser.Node, depth int) string {
	if node == nil {
		return "{}"
	}
	if node.Type == parser.NodeBlockStatement {
		return p.block(node.Body, depth)
	}
	return strings.TrimLeft(p.stmt(node, depth), " ")
}

func (p *printer) forStatement(node *parser.Node, depth int) string {
	init := ""
	if node.Init != nil {
		if node.Init.Type == parser.NodeVariableDeclaration {
			init = p.variableDeclaration(node.Init)
		} else {
			init = p.expr(node.Init)
		}
	}
	test := ""
	if node.Test != nil {
		test = p.expr(node.Test)
	}
	update := ""
	if node.Update != nil {
		update = p.expr(node.Update)
	}
	return "for (" + init + "; " + test + "; " + update + ") " + p.bodyAsBlock(node.Body, depth)
}

func (p *printer) forInStatement(node *parser.Node, depth int) string {
	op := "in"
	if node.Type == parser.NodeForOfStatement {
		op = "of"
	}
	left := ""
	if node.Left != nil {
		if node.Left.Type == parser.NodeVariableDeclaration {
			left = p.variableDeclaration(node.Left)
		} else {
			left = node.Kind + " " + p.expr(node.Left)
		}
	}
	return "for (" + left + " " + op + " " + p.expr(node.Right) + ") " + p.bodyAsBlock(node.Body, depth)
}

func (p *printer) switchStatement(node *parser.Node, depth int) string {
	var sb strings.Builder
	sb.WriteString("switch (" + p.expr(node.Test) + ") {\n")
	for _, c := range node.Cases {
		if c == nil {
			continue
		}
		if c.Type == parser.NodeDefaultClause {
			sb.WriteString(p.indent(depth+1) + "default:\n")
		} else {
			sb.WriteString(p.indent(depth+1) + "case " + p.expr(c.Test) + ":\n")
		}
		for _, s := range c.Body {
			sb.WriteString(p.stmt(s, depth+2) + "\n")
		}
	}
	sb.WriteString(p.indent(depth) + "}")
	return sb.String()
}

func (p *printer) tryStatement(node *parser.Node, depth int) string {
	out := "try " + p.block(node.Body, depth)
	if node.Handler != nil {
		param := ""
		if len(node.Handler.Params) > 0 {
			param = " (" + p.expr(node.Handler.Params[0]) + ")"
		}
		out += " catch" + param + " " + p.block(node.Handler.Body, depth)
	}
	if node.Finalizer != nil {
		out += " finally " + p.block(node.Finalizer.Body, depth)
	}
	return out
}

// bodyAsBlock prints a statement list wrapped in braces; the body may
// hold a single pre-built block node from loop bodies.
func (p *printer) bodyAsBlock(body []*parser.Node, depth int) string {
	if len(body) == 1 && body[0] != nil && body[0].Type == parser.NodeBlockStatement {
		return p.block(body[0].Body, depth)
	}
	return p.block(body, depth)
}

func (p *printer) block(stmts []*parser.Node, depth int) string {
	if len(stmts) == 0 {
		return "{}"
	}
	return "{\n" + p.stmtList(stmts, depth+1) + "\n" + p.indent(depth) + "}"
}

func (p *printer) params(params []*parser.Node) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		if param == nil {
			continue
		}
		parts = append(parts, p.expr(param))
	}
	return strings.Join(parts, ", ")
}

func (p *printer) args(args []*parser.Node) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		parts = append(parts, p.expr(arg))
	}
	return strings.Join(parts, ", ")
}

func (p *printer) expr(node *parser.Node) string {
	if node == nil {
		return ""
	}

	switch node.Type {
	case parser.NodeIdentifier:
		return node.Name

	case parser.NodeThisExpression:
		return "this"

	case parser.NodeSuper:
		return "super"

	case parser.NodeLiteral, parser.NodeStringLiteral, parser.NodeNumberLiteral,
		parser.NodeBooleanLiteral, parser.NodeNullLiteral:
		return node.Raw

	case parser.NodeTemplateLiteral:
		return p.template(node)

	case parser.NodeObjectExpression:
		return p.object(node)

	case parser.NodeProperty:
		return p.property(node)

	case parser.NodeArrayExpression:
		return "[" + p.args(node.Arguments) + "]"

	case parser.NodeMemberExpression:
		if node.Computed {
			return p.expr(node.Object) + "[" + p.expr(node.Property) + "]"
		}
		return p.expr(node.Object) + "." + p.expr(node.Property)

	case parser.NodeCallExpression:
		return p.expr(node.Callee) + "(" + p.args(node.Arguments) + ")"

	case parser.NodeNewExpression:
		return "new " + p.expr(node.Callee) + "(" + p.args(node.Arguments) + ")"

	case parser.NodeParenthesizedExpression:
		return "(" + p.expr(node.Argument) + ")"

	case parser.NodeAssignmentExpression:
		op := node.Operator
		if op == "" {
			op = "="
		}
		return p.expr(node.Left) + " " + op + " " + p.expr(node.Right)

	case parser.NodeBinaryExpression, parser.NodeLogicalExpression:
		return p.expr(node.Left) + " " + node.Operator + " " + p.expr(node.Right)

	case parser.NodeUnaryExpression:
		if isWordOperator(node.Operator) {
			return node.Operator + " " + p.expr(node.Argument)
		}
		return node.Operator + p.expr(node.Argument)

	case parser.NodeUpdateExpression:
		if node.Prefix {
			return node.Operator + p.expr(node.Argument)
		}
		return p.expr(node.Argument) + node.Operator

	case parser.NodeConditionalExpression:
		return p.expr(node.Test) + " ? " + p.expr(node.Consequent) + " : " + p.expr(node.Alternate)

	case parser.NodeSequenceExpression:
		return p.args(node.Arguments)

	case parser.NodeSpreadElement, parser.NodeRestElement:
		if node.Argument != nil {
			return "..." + p.expr(node.Argument)
		}
		return "..." + node.Name

	case parser.NodeAwaitExpression:
		return "await " + p.expr(node.Argument)

	case parser.NodeYieldExpression:
		if node.Argument == nil {
			return "yield"
		}
		return "yield " + p.expr(node.Argument)

	case parser.NodeFunction, parser.NodeFunctionExpression,
		parser.NodeGeneratorFunction, parser.NodeAsyncFunction:
		return p.functionExpression(node)

	case parser.NodeArrowFunction:
		return p.arrowFunction(node)

	case parser.NodeClassExpression:
		return p.class(node, 0)

	case parser.NodeVariableDeclaration:
		return p.variableDeclaration(node)

	default:
		return node.Raw
	}
}

// object prints an object literal on one line. Properties may be
// key/value pairs, spreads, or object methods.
func (p *printer) object(node *parser.Node) string {
	if len(node.Arguments) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(node.Arguments))
	for _, prop := range node.Arguments {
		if prop == nil {
			continue
		}
		if prop.Type == parser.NodeMethodDefinition {
			parts = append(parts, p.method(prop, 0))
			continue
		}
		parts = append(parts, p.expr(prop))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (p *printer) property(node *parser.Node) string {
	if node.Computed {
		return "[" + p.expr(node.Left) + "]: " + p.expr(node.Right)
	}
	// Shorthand survives only while key and value still agree.
	if node.Left != nil && node.Right != nil &&
		node.Left.Type == parser.NodeIdentifier && node.Right.Type == parser.NodeIdentifier &&
		node.Left.Name == node.Right.Name {
		return node.Left.Name
	}
	return p.expr(node.Left) + ": " + p.expr(node.Right)
}

// template reprints a template literal from its text chunks and
// substitution expressions. Literals parsed without substitution
// tracking fall back to their raw source.
func (p *printer) template(node *parser.Node) string {
	if len(node.Arguments) == 0 {
		return node.Raw
	}
	var sb strings.Builder
	sb.WriteString("`")
	for _, part := range node.Arguments {
		if part == nil {
			continue
		}
		if part.Type == parser.NodeTemplateElement {
			sb.WriteString(part.Raw)
			continue
		}
		sb.WriteString("${" + p.expr(part) + "}")
	}
	sb.WriteString("`")
	return sb.String()
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "delete", "void", "in", "instanceof":
		return true
	}
	return false
}
