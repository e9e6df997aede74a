package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from tree-sitter CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildProgram(tsNode)
	case "function_declaration", "function":
		return b.buildFunction(tsNode, NodeFunction)
	case "function_expression":
		return b.buildFunction(tsNode, NodeFunctionExpression)
	case "generator_function_declaration", "generator_function":
		return b.buildGeneratorFunction(tsNode)
	case "arrow_function":
		return b.buildArrowFunction(tsNode)
	case "method_definition":
		return b.buildMethodDefinition(tsNode)
	case "class_declaration":
		return b.buildClass(tsNode, NodeClass)
	case "class":
		return b.buildClass(tsNode, NodeClassExpression)
	case "if_statement":
		return b.buildIfStatement(tsNode)
	case "switch_statement":
		return b.buildSwitchStatement(tsNode)
	case "switch_case":
		return b.buildSwitchCase(tsNode)
	case "switch_default":
		return b.buildSwitchDefault(tsNode)
	case "for_statement":
		return b.buildForStatement(tsNode)
	case "for_in_statement":
		return b.buildForInStatement(tsNode)
	case "while_statement":
		return b.buildWhileStatement(tsNode)
	case "do_statement":
		return b.buildDoWhileStatement(tsNode)
	case "try_statement":
		return b.buildTryStatement(tsNode)
	case "catch_clause":
		return b.buildCatchClause(tsNode)
	case "finally_clause":
		return b.buildFinallyClause(tsNode)
	case "return_statement":
		return b.buildArgumentStatement(tsNode, NodeReturnStatement, "return")
	case "throw_statement":
		return b.buildArgumentStatement(tsNode, NodeThrowStatement, "throw")
	case "break_statement":
		return b.buildSimpleNode(tsNode, NodeBreakStatement)
	case "continue_statement":
		return b.buildSimpleNode(tsNode, NodeContinueStatement)
	case "empty_statement":
		return b.buildSimpleNode(tsNode, NodeEmptyStatement)
	case "variable_declaration", "lexical_declaration":
		return b.buildVariableDeclaration(tsNode)
	case "variable_declarator":
		return b.buildVariableDeclarator(tsNode)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "call_expression":
		return b.buildCallExpression(tsNode, NodeCallExpression)
	case "new_expression":
		return b.buildNewExpression(tsNode)
	case "member_expression":
		return b.buildMemberExpression(tsNode)
	case "subscript_expression":
		return b.buildSubscriptExpression(tsNode)
	case "parenthesized_expression":
		return b.buildParenthesizedExpression(tsNode)
	case "binary_expression":
		return b.buildBinaryExpression(tsNode)
	case "unary_expression":
		return b.buildUnaryExpression(tsNode)
	case "update_expression":
		return b.buildUpdateExpression(tsNode)
	case "assignment_expression", "augmented_assignment_expression":
		return b.buildAssignmentExpression(tsNode)
	case "ternary_expression":
		return b.buildConditionalExpression(tsNode)
	case "sequence_expression":
		return b.buildSequenceExpression(tsNode)
	case "await_expression":
		return b.buildUnwrapped(tsNode, NodeAwaitExpression, "await")
	case "yield_expression":
		return b.buildUnwrapped(tsNode, NodeYieldExpression, "yield")
	case "spread_element":
		return b.buildUnwrapped(tsNode, NodeSpreadElement, "...")
	case "rest_pattern":
		return b.buildRestPattern(tsNode)
	case "this":
		return b.buildSimpleNode(tsNode, NodeThisExpression)
	case "super":
		return b.buildSimpleNode(tsNode, NodeSuper)
	case "identifier", "property_identifier", "shorthand_property_identifier", "statement_identifier":
		return b.buildIdentifier(tsNode)
	case "string", "number", "true", "false", "null", "regex":
		return b.buildLiteral(tsNode)
	case "template_string":
		return b.buildTemplateString(tsNode)
	case "array":
		return b.buildArrayExpression(tsNode)
	case "object":
		return b.buildObjectExpression(tsNode)
	case "pair":
		return b.buildPair(tsNode)
	case "statement_block":
		return b.buildBlockStatement(tsNode)
	case "import_statement":
		return b.buildRawNode(tsNode, NodeImportDeclaration)
	case "export_statement":
		return b.buildRawNode(tsNode, NodeExportNamedDeclaration)
	default:
		// Unrecognized nodes keep their raw source so the printer can
		// reproduce them verbatim.
		return b.buildGenericNode(tsNode)
	}
}

func (b *ASTBuilder) buildProgram(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProgram)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			stmt.Parent = node
			node.Body = append(node.Body, stmt)
		}
	}

	return node
}

func (b *ASTBuilder) buildFunction(tsNode *sitter.Node, kind NodeType) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		if bodyAST := b.buildNode(bodyNode); bodyAST != nil {
			node.Body = bodyAST.Body
		}
	}
	if tsNode.ChildCount() > 0 && tsNode.Child(0) != nil && tsNode.Child(0).Type() == "async" {
		node.Async = true
	}

	return node
}

func (b *ASTBuilder) buildGeneratorFunction(tsNode *sitter.Node) *Node {
	node := b.buildFunction(tsNode, NodeGeneratorFunction)
	node.Generator = true
	return node
}

func (b *ASTBuilder) buildArrowFunction(tsNode *sitter.Node) *Node {
	node := NewNode(NodeArrowFunction)
	node.Location = b.getLocation(tsNode)

	if paramNode := b.getChildByFieldName(tsNode, "parameter"); paramNode != nil {
		// Single parameter without parentheses
		if param := b.buildNode(paramNode); param != nil {
			node.Params = []*Node{param}
		}
	} else if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode)
	}

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		if bodyAST := b.buildNode(bodyNode); bodyAST != nil {
			if bodyAST.Type == NodeBlockStatement {
				node.Body = bodyAST.Body
			} else {
				// Concise expression body, kept apart from block bodies
				node.Argument = bodyAST
			}
		}
	}

	return node
}

func (b *ASTBuilder) buildMethodDefinition(tsNode *sitter.Node) *Node {
	node := NewNode(NodeMethodDefinition)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		if bodyAST := b.buildNode(bodyNode); bodyAST != nil {
			node.Body = bodyAST.Body
		}
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && child.Type() == "static" {
			node.Static = true
			break
		}
	}

	return node
}

func (b *ASTBuilder) buildClass(tsNode *sitter.Node, kind NodeType) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}

	// extends clause
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || child.Type() != "class_heritage" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			heritage := child.Child(j)
			if heritage != nil && !b.isTrivia(heritage) && heritage.Type() != "extends" {
				node.SuperClass = b.buildNode(heritage)
				break
			}
		}
	}

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		for i := 0; i < int(bodyNode.ChildCount()); i++ {
			child := bodyNode.Child(i)
			if child == nil || b.isTrivia(child) || child.Type() == "{" || child.Type() == "}" || child.Type() == ";" {
				continue
			}
			if member := b.buildNode(child); member != nil {
				member.Parent = node
				node.Body = append(node.Body, member)
			}
		}
	}

	return node
}

func (b *ASTBuilder) buildIfStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIfStatement)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if consNode := b.getChildByFieldName(tsNode, "consequence"); consNode != nil {
		node.Consequent = b.buildNode(consNode)
	}
	if altNode := b.getChildByFieldName(tsNode, "alternative"); altNode != nil {
		// else_clause wraps the actual statement
		for i := 0; i < int(altNode.ChildCount()); i++ {
			child := altNode.Child(i)
			if child != nil && !b.isTrivia(child) && child.Type() != "else" {
				node.Alternate = b.buildNode(child)
				break
			}
		}
		if node.Alternate == nil {
			node.Alternate = b.buildNode(altNode)
		}
	}

	return node
}

func (b *ASTBuilder) buildSwitchStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeSwitchStatement)
	node.Location = b.getLocation(tsNode)

	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Test = b.buildNode(valueNode)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		for i := 0; i < int(bodyNode.ChildCount()); i++ {
			child := bodyNode.Child(i)
			if child == nil || b.isTrivia(child) || child.Type() == "{" || child.Type() == "}" {
				continue
			}
			if caseNode := b.buildNode(child); caseNode != nil {
				node.Cases = append(node.Cases, caseNode)
			}
		}
	}

	return node
}

func (b *ASTBuilder) buildSwitchCase(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCaseClause)
	node.Location = b.getLocation(tsNode)

	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Test = b.buildNode(valueNode)
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "case" || child.Type() == ":" {
			continue
		}
		if b.getChildByFieldName(tsNode, "value") == child {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			node.Body = append(node.Body, stmt)
		}
	}

	return node
}

func (b *ASTBuilder) buildSwitchDefault(tsNode *sitter.Node) *Node {
	node := NewNode(NodeDefaultClause)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "default" || child.Type() == ":" {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			node.Body = append(node.Body, stmt)
		}
	}

	return node
}

func (b *ASTBuilder) buildForStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeForStatement)
	node.Location = b.getLocation(tsNode)

	if initNode := b.getChildByFieldName(tsNode, "initializer"); initNode != nil {
		node.Init = b.buildNode(initNode)
	}
	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if incrNode := b.getChildByFieldName(tsNode, "increment"); incrNode != nil {
		node.Update = b.buildNode(incrNode)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}

	return node
}

func (b *ASTBuilder) buildForInStatement(tsNode *sitter.Node) *Node {
	kind := NodeForInStatement
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil && opNode.Content(b.source) == "of" {
		kind = NodeForOfStatement
	}
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)
	node.Kind = "var"

	if kindNode := b.getChildByFieldName(tsNode, "kind"); kindNode != nil {
		node.Kind = kindNode.Content(b.source)
	}
	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.buildNode(leftNode)
	}
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}

	return node
}

func (b *ASTBuilder) buildWhileStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWhileStatement)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}

	return node
}

func (b *ASTBuilder) buildDoWhileStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeDoWhileStatement)
	node.Location = b.getLocation(tsNode)

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}

	return node
}

func (b *ASTBuilder) buildTryStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeTryStatement)
	node.Location = b.getLocation(tsNode)

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		if bodyAST := b.buildNode(bodyNode); bodyAST != nil {
			node.Body = bodyAST.Body
		}
	}
	if handlerNode := b.getChildByFieldName(tsNode, "handler"); handlerNode != nil {
		node.Handler = b.buildNode(handlerNode)
	}
	if finalizerNode := b.getChildByFieldName(tsNode, "finalizer"); finalizerNode != nil {
		node.Finalizer = b.buildNode(finalizerNode)
	}

	return node
}

func (b *ASTBuilder) buildCatchClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCatchClause)
	node.Location = b.getLocation(tsNode)

	if paramNode := b.getChildByFieldName(tsNode, "parameter"); paramNode != nil {
		node.Params = []*Node{b.buildNode(paramNode)}
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		if bodyAST := b.buildNode(bodyNode); bodyAST != nil {
			node.Body = bodyAST.Body
		}
	}

	return node
}

func (b *ASTBuilder) buildFinallyClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFinallyClause)
	node.Location = b.getLocation(tsNode)

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		if bodyAST := b.buildNode(bodyNode); bodyAST != nil {
			node.Body = bodyAST.Body
		}
	}

	return node
}

// buildArgumentStatement builds return/throw statements that carry a single
// optional argument after the keyword.
func (b *ASTBuilder) buildArgumentStatement(tsNode *sitter.Node, kind NodeType, keyword string) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != keyword && child.Type() != ";" {
			node.Argument = b.buildNode(child)
			break
		}
	}

	return node
}

func (b *ASTBuilder) buildSimpleNode(tsNode *sitter.Node, kind NodeType) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)
	return node
}

func (b *ASTBuilder) buildVariableDeclaration(tsNode *sitter.Node) *Node {
	node := NewNode(NodeVariableDeclaration)
	node.Location = b.getLocation(tsNode)
	node.Kind = "var"

	if tsNode.Type() == "lexical_declaration" && tsNode.ChildCount() > 0 {
		if firstChild := tsNode.Child(0); firstChild != nil {
			kind := firstChild.Content(b.source)
			if kind == "let" || kind == "const" {
				node.Kind = kind
			}
		}
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && child.Type() == "variable_declarator" {
			if declNode := b.buildNode(child); declNode != nil {
				declNode.Parent = node
				node.Declarations = append(node.Declarations, declNode)
			}
		}
	}

	return node
}

func (b *ASTBuilder) buildVariableDeclarator(tsNode *sitter.Node) *Node {
	node := NewNode(NodeVariableDeclarator)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Init = b.buildNode(valueNode)
	}

	return node
}

// buildExpressionStatement unwraps the statement to the inner expression;
// statement lists therefore hold bare expressions, and the printer adds the
// terminating semicolon back.
func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != ";" {
			return b.buildNode(child)
		}
	}

	node := NewNode(NodeEmptyStatement)
	node.Location = b.getLocation(tsNode)
	return node
}

func (b *ASTBuilder) buildCallExpression(tsNode *sitter.Node, kind NodeType) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)

	if funcNode := b.getChildByFieldName(tsNode, "function"); funcNode != nil {
		node.Callee = b.buildNode(funcNode)
	}
	if argsNode := b.getChildByFieldName(tsNode, "arguments"); argsNode != nil {
		node.Arguments = b.buildArguments(argsNode)
	}

	return node
}

func (b *ASTBuilder) buildNewExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeNewExpression)
	node.Location = b.getLocation(tsNode)

	if ctorNode := b.getChildByFieldName(tsNode, "constructor"); ctorNode != nil {
		node.Callee = b.buildNode(ctorNode)
	}
	if argsNode := b.getChildByFieldName(tsNode, "arguments"); argsNode != nil {
		node.Arguments = b.buildArguments(argsNode)
	}

	return node
}

func (b *ASTBuilder) buildMemberExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeMemberExpression)
	node.Location = b.getLocation(tsNode)

	if objNode := b.getChildByFieldName(tsNode, "object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if propNode := b.getChildByFieldName(tsNode, "property"); propNode != nil {
		node.Property = b.buildNode(propNode)
	}

	return node
}

func (b *ASTBuilder) buildSubscriptExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeMemberExpression)
	node.Location = b.getLocation(tsNode)
	node.Computed = true

	if objNode := b.getChildByFieldName(tsNode, "object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if idxNode := b.getChildByFieldName(tsNode, "index"); idxNode != nil {
		node.Property = b.buildNode(idxNode)
	}

	return node
}

func (b *ASTBuilder) buildParenthesizedExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeParenthesizedExpression)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != "(" && child.Type() != ")" {
			node.Argument = b.buildNode(child)
			break
		}
	}

	return node
}

func (b *ASTBuilder) buildBinaryExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeBinaryExpression)
	node.Location = b.getLocation(tsNode)

	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.buildNode(leftNode)
	}
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}

	if node.Operator == "&&" || node.Operator == "||" || node.Operator == "??" {
		node.Type = NodeLogicalExpression
	}

	return node
}

func (b *ASTBuilder) buildUnaryExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeUnaryExpression)
	node.Location = b.getLocation(tsNode)

	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if argNode := b.getChildByFieldName(tsNode, "argument"); argNode != nil {
		node.Argument = b.buildNode(argNode)
	}

	return node
}

func (b *ASTBuilder) buildUpdateExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeUpdateExpression)
	node.Location = b.getLocation(tsNode)

	opNode := b.getChildByFieldName(tsNode, "operator")
	if opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if argNode := b.getChildByFieldName(tsNode, "argument"); argNode != nil {
		node.Argument = b.buildNode(argNode)
		// Operator position distinguishes ++i from i++.
		node.Prefix = opNode != nil && opNode.StartByte() < argNode.StartByte()
	}

	return node
}

func (b *ASTBuilder) buildAssignmentExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAssignmentExpression)
	node.Location = b.getLocation(tsNode)
	node.Operator = "="

	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.buildNode(leftNode)
	}
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}

	return node
}

func (b *ASTBuilder) buildConditionalExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeConditionalExpression)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if consNode := b.getChildByFieldName(tsNode, "consequence"); consNode != nil {
		node.Consequent = b.buildNode(consNode)
	}
	if altNode := b.getChildByFieldName(tsNode, "alternative"); altNode != nil {
		node.Alternate = b.buildNode(altNode)
	}

	return node
}

func (b *ASTBuilder) buildSequenceExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeSequenceExpression)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "," {
			continue
		}
		if expr := b.buildNode(child); expr != nil {
			node.Arguments = append(node.Arguments, expr)
		}
	}

	return node
}

// buildUnwrapped builds nodes of the form `keyword expr` (await, yield,
// spread) carrying the inner expression as Argument.
func (b *ASTBuilder) buildUnwrapped(tsNode *sitter.Node, kind NodeType, keyword string) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != keyword && child.Type() != "*" {
			node.Argument = b.buildNode(child)
			break
		}
	}

	return node
}

func (b *ASTBuilder) buildRestPattern(tsNode *sitter.Node) *Node {
	node := NewNode(NodeRestElement)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != "..." {
			node.Argument = b.buildNode(child)
			if node.Argument != nil {
				node.Name = node.Argument.Name
			}
			break
		}
	}

	return node
}

func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeLiteral)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)

	switch tsNode.Type() {
	case "string":
		node.Type = NodeStringLiteral
	case "number":
		node.Type = NodeNumberLiteral
	case "true", "false":
		node.Type = NodeBooleanLiteral
	case "null":
		node.Type = NodeNullLiteral
	}

	return node
}

func (b *ASTBuilder) buildArrayExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeArrayExpression)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "[" || child.Type() == "]" || child.Type() == "," {
			continue
		}
		if elem := b.buildNode(child); elem != nil {
			node.Arguments = append(node.Arguments, elem)
		}
	}

	return node
}

// buildObjectExpression builds an object literal with its properties as
// real child nodes, so traversals reach expressions nested inside it.
// Properties live in Arguments: pairs and shorthands become NodeProperty,
// spreads and object methods keep their own node kinds.
func (b *ASTBuilder) buildObjectExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeObjectExpression)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "{" || child.Type() == "}" || child.Type() == "," {
			continue
		}
		var prop *Node
		switch child.Type() {
		case "shorthand_property_identifier":
			prop = b.buildShorthandProperty(child)
		default:
			prop = b.buildNode(child)
		}
		if prop != nil {
			prop.Parent = node
			node.Arguments = append(node.Arguments, prop)
		}
	}

	return node
}

// buildPair builds one `key: value` property. Computed keys keep the
// inner expression with the Computed flag set.
func (b *ASTBuilder) buildPair(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProperty)
	node.Location = b.getLocation(tsNode)

	if keyNode := b.getChildByFieldName(tsNode, "key"); keyNode != nil {
		if keyNode.Type() == "computed_property_name" {
			node.Computed = true
			for i := 0; i < int(keyNode.ChildCount()); i++ {
				inner := keyNode.Child(i)
				if inner != nil && !b.isTrivia(inner) && inner.Type() != "[" && inner.Type() != "]" {
					node.Left = b.buildNode(inner)
					break
				}
			}
		} else {
			node.Left = b.buildNode(keyNode)
		}
	}
	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Right = b.buildNode(valueNode)
	}

	return node
}

// buildShorthandProperty expands `{ x }` into a key/value pair sharing
// the identifier, so a rewrite of the value side cannot corrupt the key.
func (b *ASTBuilder) buildShorthandProperty(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProperty)
	node.Location = b.getLocation(tsNode)

	name := tsNode.Content(b.source)
	key := NewNode(NodeIdentifier)
	key.Location = node.Location
	key.Name = name
	value := NewNode(NodeIdentifier)
	value.Location = node.Location
	value.Name = name

	node.Left = key
	node.Right = value
	return node
}

// buildTemplateString splits a template literal into raw text chunks
// and substitution expressions, interleaved in Arguments. Substitution
// expressions are full subtrees so traversals descend into them; the
// chunks carry the literal text between substitutions.
func (b *ASTBuilder) buildTemplateString(tsNode *sitter.Node) *Node {
	node := NewNode(NodeTemplateLiteral)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)

	// Interior text sits between the backticks.
	cursor := tsNode.StartByte() + 1
	end := tsNode.EndByte() - 1

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || child.Type() != "template_substitution" {
			continue
		}
		if child.StartByte() > cursor {
			node.Arguments = append(node.Arguments, b.templateChunk(cursor, child.StartByte()))
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			inner := child.Child(j)
			if inner != nil && !b.isTrivia(inner) && inner.Type() != "${" && inner.Type() != "}" {
				if expr := b.buildNode(inner); expr != nil {
					expr.Parent = node
					node.Arguments = append(node.Arguments, expr)
				}
				break
			}
		}
		cursor = child.EndByte()
	}
	if cursor < end {
		node.Arguments = append(node.Arguments, b.templateChunk(cursor, end))
	}

	return node
}

func (b *ASTBuilder) templateChunk(start, end uint32) *Node {
	chunk := NewNode(NodeTemplateElement)
	chunk.Raw = string(b.source[start:end])
	return chunk
}

func (b *ASTBuilder) buildRawNode(tsNode *sitter.Node, kind NodeType) *Node {
	node := NewNode(kind)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)
	return node
}

func (b *ASTBuilder) buildBlockStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeBlockStatement)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "{" || child.Type() == "}" {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			stmt.Parent = node
			node.Body = append(node.Body, stmt)
		}
	}

	return node
}

// buildGenericNode preserves unrecognized constructs as raw source text
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeType(tsNode.Type()))
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)
	return node
}

// buildParameters builds a parameter list from a formal_parameters node
func (b *ASTBuilder) buildParameters(tsNode *sitter.Node) []*Node {
	var params []*Node

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "(" || child.Type() == ")" || child.Type() == "," {
			continue
		}
		if paramNode := b.buildNode(child); paramNode != nil {
			params = append(params, paramNode)
		}
	}

	return params
}

// buildArguments builds a call argument list from an arguments node
func (b *ASTBuilder) buildArguments(tsNode *sitter.Node) []*Node {
	var args []*Node

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "(" || child.Type() == ")" || child.Type() == "," {
			continue
		}
		if argNode := b.buildNode(child); argNode != nil {
			args = append(args, argNode)
		}
	}

	return args
}

// Helper methods

// getLocation extracts location information from a tree-sitter node
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

// getChildByFieldName gets a child node by field name
func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// isTrivia checks if a node is trivia (whitespace, comments, etc.)
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" ||
		nodeType == "line_comment" ||
		nodeType == "block_comment" ||
		nodeType == ""
}
