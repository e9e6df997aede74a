package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// JavaScript/TypeScript AST node types
const (
	// Program and structure
	NodeProgram NodeType = "Program"

	// Function declarations
	NodeFunction           NodeType = "FunctionDeclaration"
	NodeFunctionExpression NodeType = "FunctionExpression"
	NodeArrowFunction      NodeType = "ArrowFunctionExpression"
	NodeGeneratorFunction  NodeType = "GeneratorFunctionDeclaration"
	NodeAsyncFunction      NodeType = "AsyncFunctionDeclaration"
	NodeMethodDefinition   NodeType = "MethodDefinition"

	// Class declarations
	NodeClass           NodeType = "ClassDeclaration"
	NodeClassExpression NodeType = "ClassExpression"

	// Variable declarations
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeVariableDeclarator  NodeType = "VariableDeclarator"
	NodeIdentifier          NodeType = "Identifier"
	NodeRestElement         NodeType = "RestElement"

	// Control flow statements
	NodeIfStatement       NodeType = "IfStatement"
	NodeSwitchStatement   NodeType = "SwitchStatement"
	NodeCaseClause        NodeType = "SwitchCase"
	NodeDefaultClause     NodeType = "SwitchDefault"
	NodeForStatement      NodeType = "ForStatement"
	NodeForInStatement    NodeType = "ForInStatement"
	NodeForOfStatement    NodeType = "ForOfStatement"
	NodeWhileStatement    NodeType = "WhileStatement"
	NodeDoWhileStatement  NodeType = "DoWhileStatement"
	NodeBreakStatement    NodeType = "BreakStatement"
	NodeContinueStatement NodeType = "ContinueStatement"
	NodeReturnStatement   NodeType = "ReturnStatement"
	NodeThrowStatement    NodeType = "ThrowStatement"

	// Exception handling
	NodeTryStatement  NodeType = "TryStatement"
	NodeCatchClause   NodeType = "CatchClause"
	NodeFinallyClause NodeType = "FinallyClause"

	// Expressions
	NodeCallExpression          NodeType = "CallExpression"
	NodeMemberExpression        NodeType = "MemberExpression"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeLogicalExpression       NodeType = "LogicalExpression"
	NodeConditionalExpression   NodeType = "ConditionalExpression"
	NodeAssignmentExpression    NodeType = "AssignmentExpression"
	NodeUpdateExpression        NodeType = "UpdateExpression"
	NodeNewExpression           NodeType = "NewExpression"
	NodeParenthesizedExpression NodeType = "ParenthesizedExpression"
	NodeThisExpression          NodeType = "ThisExpression"
	NodeSuper                   NodeType = "Super"
	NodeSequenceExpression      NodeType = "SequenceExpression"
	NodeAwaitExpression         NodeType = "AwaitExpression"
	NodeYieldExpression         NodeType = "YieldExpression"
	NodeSpreadElement           NodeType = "SpreadElement"
	NodeTemplateLiteral         NodeType = "TemplateLiteral"
	NodeTemplateElement         NodeType = "TemplateElement"

	// Literals
	NodeLiteral          NodeType = "Literal"
	NodeStringLiteral    NodeType = "StringLiteral"
	NodeNumberLiteral    NodeType = "NumberLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeNullLiteral      NodeType = "NullLiteral"
	NodeArrayExpression  NodeType = "ArrayExpression"
	NodeObjectExpression NodeType = "ObjectExpression"
	NodeProperty         NodeType = "Property"

	// Other statements
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeEmptyStatement      NodeType = "EmptyStatement"

	// Module system (preserved as raw source, not rewritten)
	NodeImportDeclaration      NodeType = "ImportDeclaration"
	NodeExportNamedDeclaration NodeType = "ExportNamedDeclaration"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Common fields for various node types
	Name string // For function/class/variable/property names

	// Function and class fields
	Params     []*Node // Function parameters
	Body       []*Node // Function/class/block body
	SuperClass *Node   // Extends clause of a class
	Static     bool    // Static method/member
	Async      bool    // Async function
	Generator  bool    // Generator function

	// Control flow fields
	Test       *Node   // Condition for if/while/for
	Consequent *Node   // Then branch for if
	Alternate  *Node   // Else branch for if
	Init       *Node   // For loop / variable declarator initializer
	Update     *Node   // For loop update
	Cases      []*Node // Switch cases

	// Try-catch fields
	Handler   *Node // Catch clause
	Finalizer *Node // Finally block

	// Expression fields
	Left      *Node   // Left operand / assignment target
	Right     *Node   // Right operand / assigned value
	Operator  string  // Operator (+, -, ||, =, etc.)
	Argument  *Node   // Unary/return/spread/rest argument
	Arguments []*Node // Call or new expression arguments
	Callee    *Node   // Function being called or constructed
	Object    *Node   // Object in member expression
	Property  *Node   // Property in member expression

	// Variable declaration fields
	Kind         string  // var, let, const
	Declarations []*Node // Variable declarators

	// Utility fields
	Computed bool   // Computed member access (subscript) or property key
	Prefix   bool   // Prefix update expression (++i as opposed to i++)
	Raw      string // Raw source text for literals and unclassified nodes
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{
		Type:         nodeType,
		Children:     []*Node{},
		Params:       []*Node{},
		Body:         []*Node{},
		Cases:        []*Node{},
		Arguments:    []*Node{},
		Declarations: []*Node{},
	}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls the visitor function for each node.
// If the visitor returns false, traversal of that branch is stopped.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}

	if !visitor(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, param := range n.Params {
		param.Walk(visitor)
	}
	for _, stmt := range n.Body {
		stmt.Walk(visitor)
	}
	for _, caseNode := range n.Cases {
		caseNode.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}
	for _, decl := range n.Declarations {
		decl.Walk(visitor)
	}

	// Walk individual nodes
	if n.SuperClass != nil {
		n.SuperClass.Walk(visitor)
	}
	if n.Test != nil {
		n.Test.Walk(visitor)
	}
	if n.Consequent != nil {
		n.Consequent.Walk(visitor)
	}
	if n.Alternate != nil {
		n.Alternate.Walk(visitor)
	}
	if n.Init != nil {
		n.Init.Walk(visitor)
	}
	if n.Update != nil {
		n.Update.Walk(visitor)
	}
	if n.Handler != nil {
		n.Handler.Walk(visitor)
	}
	if n.Finalizer != nil {
		n.Finalizer.Walk(visitor)
	}
	if n.Left != nil {
		n.Left.Walk(visitor)
	}
	if n.Right != nil {
		n.Right.Walk(visitor)
	}
	if n.Argument != nil {
		n.Argument.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	if n.Object != nil {
		n.Object.Walk(visitor)
	}
	if n.Property != nil {
		n.Property.Walk(visitor)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsStatement returns true if the node is a statement
func (n *Node) IsStatement() bool {
	switch n.Type {
	case NodeIfStatement, NodeSwitchStatement,
		NodeForStatement, NodeForInStatement, NodeForOfStatement,
		NodeWhileStatement, NodeDoWhileStatement,
		NodeTryStatement, NodeReturnStatement, NodeThrowStatement,
		NodeBreakStatement, NodeContinueStatement,
		NodeVariableDeclaration, NodeFunction,
		NodeExpressionStatement, NodeBlockStatement, NodeClass:
		return true
	}
	return false
}

// IsExpression returns true if the node is an expression
func (n *Node) IsExpression() bool {
	switch n.Type {
	case NodeCallExpression, NodeMemberExpression,
		NodeBinaryExpression, NodeUnaryExpression,
		NodeLogicalExpression, NodeConditionalExpression,
		NodeAssignmentExpression, NodeUpdateExpression,
		NodeNewExpression, NodeParenthesizedExpression,
		NodeAwaitExpression, NodeYieldExpression,
		NodeThisExpression, NodeSuper, NodeClassExpression,
		NodeFunctionExpression, NodeArrowFunction,
		NodeIdentifier, NodeLiteral, NodeStringLiteral, NodeNumberLiteral,
		NodeBooleanLiteral, NodeNullLiteral, NodeTemplateLiteral,
		NodeArrayExpression, NodeObjectExpression:
		return true
	}
	return false
}

// IsFunction returns true if the node is a function
func (n *Node) IsFunction() bool {
	switch n.Type {
	case NodeFunction, NodeArrowFunction, NodeGeneratorFunction,
		NodeAsyncFunction, NodeFunctionExpression, NodeMethodDefinition:
		return true
	}
	return false
}

// IsLiteral returns true if the node is a literal value
func (n *Node) IsLiteral() bool {
	switch n.Type {
	case NodeLiteral, NodeStringLiteral, NodeNumberLiteral,
		NodeBooleanLiteral, NodeNullLiteral, NodeTemplateLiteral:
		return true
	}
	return false
}
