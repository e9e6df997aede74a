// Package walker provides configurable AST traversal with ancestor
// tracking.
package walker

import (
	"github.com/ludo-technologies/unclass/internal/parser"
)

// Visitor is called for each node during traversal. The ancestors
// slice holds the path from the root to the node's parent, root first.
// Returning false stops descent into the node's subtree.
type Visitor func(node *parser.Node, ancestors []*parser.Node) bool

// Config carries traversal options. Callers hand a Config through the
// rewrite pipeline; the rewrite core forwards it verbatim when it
// walks sub-trees and never inspects its contents.
type Config struct {
	// Base is an optional visitor invoked before the per-walk
	// visitor on every node. If it returns false the node's
	// subtree is skipped entirely.
	Base Visitor
}

// Default returns a Config with no base visitor.
func Default() *Config {
	return &Config{}
}

// Walk traverses root depth-first, maintaining the ancestor stack,
// and calls cfg.Base (when set) followed by visit for each node.
func Walk(root *parser.Node, cfg *Config, visit Visitor) {
	if root == nil || visit == nil {
		return
	}
	if cfg == nil {
		cfg = Default()
	}
	walk(root, cfg, visit, make([]*parser.Node, 0, 16))
}

func walk(node *parser.Node, cfg *Config, visit Visitor, ancestors []*parser.Node) {
	if node == nil {
		return
	}

	if cfg.Base != nil && !cfg.Base(node, ancestors) {
		return
	}
	if !visit(node, ancestors) {
		return
	}

	ancestors = append(ancestors, node)

	for _, list := range [][]*parser.Node{
		node.Children, node.Params, node.Body,
		node.Cases, node.Arguments, node.Declarations,
	} {
		for _, child := range list {
			walk(child, cfg, visit, ancestors)
		}
	}

	for _, child := range []*parser.Node{
		node.SuperClass, node.Test, node.Consequent, node.Alternate,
		node.Init, node.Update, node.Handler, node.Finalizer,
		node.Left, node.Right, node.Argument, node.Callee,
		node.Object, node.Property,
	} {
		walk(child, cfg, visit, ancestors)
	}
}
