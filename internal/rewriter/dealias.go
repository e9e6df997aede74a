package rewriter

import (
	"github.com/ludo-technologies/unclass/internal/parser"
	"github.com/ludo-technologies/unclass/internal/walker"
)

// aliasTarget is one of the canonical expressions a compiler-inserted
// local may stand in for.
type aliasTarget int

const (
	aliasThis aliasTarget = iota
	aliasThisProps
	aliasThisConstructor
)

// aliasMap records at most one alias name per canonical target within
// one function body. First declaration wins; later conflicting
// declarations for the same target are ignored.
type aliasMap struct {
	byName map[string]aliasTarget
	taken  [3]bool
}

func newAliasMap() *aliasMap {
	return &aliasMap{byName: make(map[string]aliasTarget)}
}

func (m *aliasMap) record(name string, target aliasTarget) bool {
	if name == "" || m.taken[target] {
		return false
	}
	if _, exists := m.byName[name]; exists {
		return false
	}
	m.byName[name] = target
	m.taken[target] = true
	return true
}

// dealiasBody removes compiler-introduced aliases for `this`,
// `this.props`, and `this.constructor` from one function body and
// rewrites their member-expression uses back to the canonical form.
// Returns the filtered statement list.
func dealiasBody(stmts []*parser.Node, cfg *walker.Config, opts Options) []*parser.Node {
	aliases := newAliasMap()

	out := make([]*parser.Node, 0, len(stmts))
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if stmt.Type != parser.NodeVariableDeclaration {
			out = append(out, stmt)
			continue
		}

		kept := make([]*parser.Node, 0, len(stmt.Declarations))
		for _, d := range stmt.Declarations {
			if d == nil {
				continue
			}
			target, ok := classifyAliasInit(d.Init, opts)
			if ok && aliases.record(d.Name, target) {
				continue
			}
			kept = append(kept, d)
		}
		if len(kept) == 0 {
			continue
		}
		stmt.Declarations = kept
		out = append(out, stmt)
	}

	for _, stmt := range out {
		rewriteAliasUses(stmt, aliases, cfg, opts)
	}

	return out
}

// classifyAliasInit reports whether an initializer is exactly `this`,
// `this.props`, or `this.constructor`.
func classifyAliasInit(init *parser.Node, opts Options) (aliasTarget, bool) {
	if init == nil {
		return 0, false
	}
	if init.Type == parser.NodeThisExpression {
		return aliasThis, true
	}
	if init.Type != parser.NodeMemberExpression || init.Computed {
		return 0, false
	}
	if init.Object == nil || init.Object.Type != parser.NodeThisExpression {
		return 0, false
	}
	if init.Property == nil || init.Property.Type != parser.NodeIdentifier {
		return 0, false
	}
	switch init.Property.Name {
	case "props":
		if opts.DealiasProps {
			return aliasThisProps, true
		}
	case "constructor":
		return aliasThisConstructor, true
	}
	return 0, false
}

// rewriteAliasUses rewrites member expressions whose object is a
// recorded alias back to the canonical object, then collapses literal
// `this.constructor` accesses into bare `this`. Bare identifier uses
// of an alias outside member-object position are left alone.
func rewriteAliasUses(root *parser.Node, aliases *aliasMap, cfg *walker.Config, opts Options) {
	walker.Walk(root, cfg, func(n *parser.Node, _ []*parser.Node) bool {
		if n.Type != parser.NodeMemberExpression {
			return true
		}
		obj := n.Object
		if obj != nil && obj.Type == parser.NodeIdentifier {
			if target, ok := aliases.byName[obj.Name]; ok {
				n.Object = canonicalNode(target)
			}
		}
		return true
	})

	if opts.CollapseConstructorAccess {
		collapseConstructorAccess(root, cfg)
	}
}

// collapseConstructorAccess rewrites any member access of the literal
// form `this.constructor` into a bare `this` node. This changes the
// expression's value from "constructor function" to "current object";
// the behavior is kept as-is for output parity with the compiled
// idiom it reverses.
func collapseConstructorAccess(root *parser.Node, cfg *walker.Config) {
	walker.Walk(root, cfg, func(n *parser.Node, _ []*parser.Node) bool {
		if isThisConstructor(n) {
			becomeThis(n)
			return false
		}
		return true
	})
}

func isThisConstructor(n *parser.Node) bool {
	return n != nil &&
		n.Type == parser.NodeMemberExpression &&
		!n.Computed &&
		n.Object != nil && n.Object.Type == parser.NodeThisExpression &&
		n.Property != nil && n.Property.Type == parser.NodeIdentifier &&
		n.Property.Name == "constructor"
}

// canonicalNode builds a fresh node for the canonical alias target.
func canonicalNode(target aliasTarget) *parser.Node {
	this := parser.NewNode(parser.NodeThisExpression)
	switch target {
	case aliasThis:
		return this
	case aliasThisProps:
		member := parser.NewNode(parser.NodeMemberExpression)
		member.Object = this
		prop := parser.NewNode(parser.NodeIdentifier)
		prop.Name = "props"
		member.Property = prop
		return member
	case aliasThisConstructor:
		// Collapsed to bare `this` by the follow-up pass.
		member := parser.NewNode(parser.NodeMemberExpression)
		member.Object = this
		prop := parser.NewNode(parser.NodeIdentifier)
		prop.Name = "constructor"
		member.Property = prop
		return member
	}
	return this
}

// becomeThis rewrites a node in place into a bare `this` expression.
func becomeThis(n *parser.Node) {
	*n = parser.Node{Type: parser.NodeThisExpression, Location: n.Location}
}

// dealiasDeep de-aliases a body and every function expression nested
// inside it, recursively. Super-call reconstruction never recurses;
// only de-aliasing does.
func dealiasDeep(stmts []*parser.Node, cfg *walker.Config, opts Options) []*parser.Node {
	out := dealiasBody(stmts, cfg, opts)
	for _, stmt := range out {
		walker.Walk(stmt, cfg, func(n *parser.Node, _ []*parser.Node) bool {
			switch n.Type {
			case parser.NodeFunctionExpression, parser.NodeFunction,
				parser.NodeArrowFunction, parser.NodeMethodDefinition:
				n.Body = dealiasDeep(n.Body, cfg, opts)
				return false
			}
			return true
		})
	}
	return out
}
