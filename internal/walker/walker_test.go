package walker

import (
	"testing"

	"github.com/ludo-technologies/unclass/internal/parser"
)

func buildTree() *parser.Node {
	program := parser.NewNode(parser.NodeProgram)
	fn := parser.NewNode(parser.NodeFunction)
	fn.Name = "outer"
	ret := parser.NewNode(parser.NodeReturnStatement)
	ident := parser.NewNode(parser.NodeIdentifier)
	ident.Name = "x"
	ret.Argument = ident
	fn.Body = append(fn.Body, ret)
	program.Body = append(program.Body, fn)
	return program
}

func TestWalkVisitsAllNodes(t *testing.T) {
	root := buildTree()

	var visited []parser.NodeType
	Walk(root, nil, func(n *parser.Node, _ []*parser.Node) bool {
		visited = append(visited, n.Type)
		return true
	})

	if len(visited) != 4 {
		t.Fatalf("expected 4 visited nodes, got %d: %v", len(visited), visited)
	}
	if visited[0] != parser.NodeProgram {
		t.Errorf("expected Program first, got %s", visited[0])
	}
}

func TestWalkAncestorStack(t *testing.T) {
	root := buildTree()

	var identAncestors []parser.NodeType
	Walk(root, Default(), func(n *parser.Node, ancestors []*parser.Node) bool {
		if n.Type == parser.NodeIdentifier {
			for _, a := range ancestors {
				identAncestors = append(identAncestors, a.Type)
			}
		}
		return true
	})

	want := []parser.NodeType{parser.NodeProgram, parser.NodeFunction, parser.NodeReturnStatement}
	if len(identAncestors) != len(want) {
		t.Fatalf("ancestors = %v, want %v", identAncestors, want)
	}
	for i := range want {
		if identAncestors[i] != want[i] {
			t.Errorf("ancestor[%d] = %s, want %s", i, identAncestors[i], want[i])
		}
	}
}

func TestWalkStopsDescent(t *testing.T) {
	root := buildTree()

	count := 0
	Walk(root, nil, func(n *parser.Node, _ []*parser.Node) bool {
		count++
		return n.Type != parser.NodeFunction
	})

	// Program and Function only; the function's subtree is skipped.
	if count != 2 {
		t.Errorf("expected 2 visits, got %d", count)
	}
}

func TestWalkBaseVisitorFilters(t *testing.T) {
	root := buildTree()

	cfg := &Config{
		Base: func(n *parser.Node, _ []*parser.Node) bool {
			return n.Type != parser.NodeReturnStatement
		},
	}

	sawIdent := false
	sawReturn := false
	Walk(root, cfg, func(n *parser.Node, _ []*parser.Node) bool {
		switch n.Type {
		case parser.NodeIdentifier:
			sawIdent = true
		case parser.NodeReturnStatement:
			sawReturn = true
		}
		return true
	})

	if sawReturn {
		t.Error("base visitor should have suppressed the return statement")
	}
	if sawIdent {
		t.Error("identifier under the suppressed subtree should not be visited")
	}
}

func TestWalkNilSafety(t *testing.T) {
	Walk(nil, nil, func(*parser.Node, []*parser.Node) bool { return true })
	Walk(buildTree(), nil, nil)
}
