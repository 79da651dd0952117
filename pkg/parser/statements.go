package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"able/evalscript/pkg/ast"
)

func convertStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	switch node.Kind() {
	case "expression_statement":
		expr, err := convertExpressionTop(childExpr(node), source)
		if err != nil {
			return nil, err
		}
		return withSpan(node, ast.NewExpressionStatement(expr)).(ast.Statement), nil

	case "variable_declaration", "lexical_declaration":
		return convertVariableDeclaration(node, source)

	case "function_declaration":
		return convertFunctionDeclaration(node, source)

	case "if_statement":
		return convertIfStatement(node, source)

	case "while_statement":
		return convertWhileStatement(node, source)

	case "return_statement":
		return convertReturnStatement(node, source)

	case "statement_block":
		return convertBlockStatement(node, source)

	case "empty_statement", ";":
		return withSpan(node, ast.NewBlockStatement(nil)).(ast.Statement), nil

	default:
		return nil, unsupportedFeature("statement kind %q", node.Kind())
	}
}

// childExpr returns the single expression a wrapping statement node
// holds as its first named, non-punctuation child.
func childExpr(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

func convertBlockStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	body, err := convertStatementList(node, source)
	if err != nil {
		return nil, err
	}
	return withSpan(node, ast.NewBlockStatement(body)).(ast.Statement), nil
}

func declKind(text string) ast.DeclarationKind {
	switch text {
	case "const":
		return ast.DeclConst
	case "let":
		return ast.DeclLet
	default:
		return ast.DeclVar
	}
}

func convertVariableDeclaration(node *sitter.Node, source []byte) (ast.Statement, error) {
	kind := declKind(nodeText(node.Child(0), source))

	var declarators []*ast.VariableDeclarator
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		pattern, err := convertPattern(child.ChildByFieldName("name"), source)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if valueNode := child.ChildByFieldName("value"); valueNode != nil {
			init, err = convertExpressionTop(valueNode, source)
			if err != nil {
				return nil, err
			}
		}
		declarator := ast.NewVariableDeclarator(pattern, init)
		ast.SetSpan(declarator, spanOf(child))
		declarators = append(declarators, declarator)
	}

	return withSpan(node, ast.NewVariableDeclaration(kind, declarators)).(ast.Statement), nil
}

func convertIfStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	test, err := convertExpressionTop(unwrapParens(node.ChildByFieldName("condition")), source)
	if err != nil {
		return nil, err
	}
	consequent, err := convertStatement(node.ChildByFieldName("consequence"), source)
	if err != nil {
		return nil, err
	}
	var alternate ast.Statement
	if altNode := node.ChildByFieldName("alternative"); altNode != nil {
		inner := altNode
		if altNode.Kind() == "else_clause" {
			inner = childExpr(altNode)
		}
		alternate, err = convertStatement(inner, source)
		if err != nil {
			return nil, err
		}
	}
	return withSpan(node, ast.NewIfStatement(test, consequent, alternate)).(ast.Statement), nil
}

func convertWhileStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	test, err := convertExpressionTop(unwrapParens(node.ChildByFieldName("condition")), source)
	if err != nil {
		return nil, err
	}
	body, err := convertStatement(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	return withSpan(node, ast.NewWhileStatement(test, body)).(ast.Statement), nil
}

func convertReturnStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	var arg ast.Expression
	if exprNode := childExpr(node); exprNode != nil {
		var err error
		arg, err = convertExpressionTop(exprNode, source)
		if err != nil {
			return nil, err
		}
	}
	return withSpan(node, ast.NewReturnStatement(arg)).(ast.Statement), nil
}

// unwrapParens strips a parenthesized_expression wrapper down to the
// expression it contains, the shape if/while conditions are given in.
func unwrapParens(node *sitter.Node) *sitter.Node {
	for node != nil && node.Kind() == "parenthesized_expression" {
		inner := childExpr(node)
		if inner == nil {
			break
		}
		node = inner
	}
	return node
}
