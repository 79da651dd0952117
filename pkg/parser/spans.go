package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"able/evalscript/pkg/ast"
)

// spanOf converts a tree-sitter node's byte/row-col range into an ast.Span,
// the same conversion the teacher's parser applies when it stamps spans on
// freshly built nodes.
func spanOf(node *sitter.Node) ast.Span {
	if node == nil {
		return ast.Span{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return ast.Span{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
}

// withSpan stamps node's span onto built and returns built, so construction
// sites can do `return withSpan(node, ast.NewX(...))`.
func withSpan(node *sitter.Node, built ast.Node) ast.Node {
	ast.SetSpan(built, spanOf(node))
	return built
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}
