package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"able/evalscript/pkg/ast"
)

// convertPattern handles the binding-target positions the subset
// supports: a plain identifier and a trailing rest element. Any other
// destructuring shape (object/array patterns, defaults) becomes an
// UnsupportedPattern carrying the grammar's own kind name, so the
// interpreter can report it as "Unknown variable declaration <Kind>"
// per spec.md §7.
func convertPattern(node *sitter.Node, source []byte) (ast.Pattern, error) {
	if node == nil {
		return withSpan(nil, ast.NewUnsupportedPattern("missing")).(ast.Pattern), nil
	}
	switch node.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		id := ast.NewIdentifier(nodeText(node, source))
		return withSpan(node, id).(ast.Pattern), nil
	case "rest_pattern":
		argNode := childExpr(node)
		if argNode == nil || argNode.Kind() != "identifier" {
			return withSpan(node, ast.NewUnsupportedPattern(node.Kind())).(ast.Pattern), nil
		}
		id := ast.NewIdentifier(nodeText(argNode, source))
		ast.SetSpan(id, spanOf(argNode))
		return withSpan(node, ast.NewRestElement(id)).(ast.Pattern), nil
	default:
		return withSpan(node, ast.NewUnsupportedPattern(node.Kind())).(ast.Pattern), nil
	}
}

// convertParameterList walks a formal_parameters node (or a bare
// identifier for the parens-free arrow form) into []ast.Pattern.
func convertParameterList(node *sitter.Node, source []byte) ([]ast.Pattern, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind() == "identifier" {
		pattern, err := convertPattern(node, source)
		if err != nil {
			return nil, err
		}
		return []ast.Pattern{pattern}, nil
	}

	params := make([]ast.Pattern, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		pattern, err := convertPattern(child, source)
		if err != nil {
			return nil, err
		}
		params = append(params, pattern)
	}
	return params, nil
}
