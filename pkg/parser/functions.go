package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"able/evalscript/pkg/ast"
)

func hasKeywordChild(node *sitter.Node, kind string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func convertFunctionDeclaration(node *sitter.Node, source []byte) (ast.Statement, error) {
	if hasKeywordChild(node, "*") {
		return nil, unsupportedFeature("generator functions")
	}
	var id *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		id = ast.NewIdentifier(nodeText(nameNode, source))
		ast.SetSpan(id, spanOf(nameNode))
	}
	params, err := convertParameterList(node.ChildByFieldName("parameters"), source)
	if err != nil {
		return nil, err
	}
	bodyStmt, err := convertBlockStatement(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	body := bodyStmt.(*ast.BlockStatement)
	async := hasKeywordChild(node, "async")
	return withSpan(node, ast.NewFunctionDeclaration(id, params, body, async)).(ast.Statement), nil
}

func convertFunctionExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	if hasKeywordChild(node, "*") {
		return nil, unsupportedFeature("generator functions")
	}
	var id *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		id = ast.NewIdentifier(nodeText(nameNode, source))
		ast.SetSpan(id, spanOf(nameNode))
	}
	params, err := convertParameterList(node.ChildByFieldName("parameters"), source)
	if err != nil {
		return nil, err
	}
	bodyStmt, err := convertBlockStatement(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	body := bodyStmt.(*ast.BlockStatement)
	async := hasKeywordChild(node, "async")
	return withSpan(node, ast.NewFunctionExpression(id, params, body, async)).(ast.Expression), nil
}

func convertArrowFunction(node *sitter.Node, source []byte) (ast.Expression, error) {
	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		paramsNode = node.ChildByFieldName("parameter")
	}
	params, err := convertParameterList(paramsNode, source)
	if err != nil {
		return nil, err
	}

	bodyNode := node.ChildByFieldName("body")
	async := hasKeywordChild(node, "async")
	if bodyNode != nil && bodyNode.Kind() == "statement_block" {
		bodyStmt, err := convertBlockStatement(bodyNode, source)
		if err != nil {
			return nil, err
		}
		body := bodyStmt.(*ast.BlockStatement)
		return withSpan(node, ast.NewArrowFunctionExpression(params, body, false, async)).(ast.Expression), nil
	}

	exprBody, err := convertExpressionTop(bodyNode, source)
	if err != nil {
		return nil, err
	}
	return withSpan(node, ast.NewArrowFunctionExpression(params, exprBody, true, async)).(ast.Expression), nil
}
