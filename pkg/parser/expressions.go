package parser

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"able/evalscript/pkg/ast"
)

var logicalOperators = map[string]bool{"&&": true, "||": true, "??": true}

// convertExpressionTop converts node and, if the resulting expression is
// an optional member/call/subscript chain, wraps it in a ChainExpression
// — the boundary where the interpreter turns a short-circuited `?.` link
// into undefined (§4.E). Every use site other than the
// object/callee slot of another member/call/subscript should call this
// rather than convertExpression directly.
func convertExpressionTop(node *sitter.Node, source []byte) (ast.Expression, error) {
	expr, err := convertExpression(node, source)
	if err != nil {
		return nil, err
	}
	if expr != nil && containsOptionalLink(expr) {
		return withSpan(node, ast.NewChainExpression(expr)).(ast.Expression), nil
	}
	return expr, nil
}

func containsOptionalLink(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.MemberExpression:
		return e.Optional || containsOptionalLink(e.Object)
	case *ast.CallExpression:
		return e.Optional || containsOptionalLink(e.Callee)
	default:
		return false
	}
}

func convertExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, unsupportedFeature("missing expression")
	}
	switch node.Kind() {
	case "parenthesized_expression":
		return convertExpression(unwrapParens(node), source)

	case "identifier", "undefined":
		return withSpan(node, ast.NewIdentifier(nodeText(node, source))).(ast.Expression), nil

	case "number":
		val, err := strconv.ParseFloat(strings.ReplaceAll(nodeText(node, source), "_", ""), 64)
		if err != nil {
			return nil, unsupportedFeature("number literal %q", nodeText(node, source))
		}
		return withSpan(node, ast.NewNumberLiteral(val)).(ast.Expression), nil

	case "string":
		return withSpan(node, ast.NewStringLiteral(decodeStringLiteral(node, source))).(ast.Expression), nil

	case "template_string":
		return convertTemplateLiteral(node, source)

	case "true":
		return withSpan(node, ast.NewBooleanLiteral(true)).(ast.Expression), nil
	case "false":
		return withSpan(node, ast.NewBooleanLiteral(false)).(ast.Expression), nil
	case "null":
		return withSpan(node, ast.NewNullLiteral()).(ast.Expression), nil

	case "binary_expression":
		return convertBinaryExpression(node, source)

	case "unary_expression":
		return convertUnaryExpression(node, source)

	case "update_expression":
		return convertUpdateExpression(node, source)

	case "assignment_expression", "augmented_assignment_expression":
		return convertAssignmentExpression(node, source)

	case "ternary_expression":
		return convertTernaryExpression(node, source)

	case "call_expression":
		return convertCallExpression(node, source)

	case "member_expression":
		return convertMemberExpression(node, source)

	case "subscript_expression":
		return convertSubscriptExpression(node, source)

	case "array":
		return convertArrayExpression(node, source)

	case "object":
		return convertObjectExpression(node, source)

	case "function_expression", "function":
		return convertFunctionExpression(node, source)

	case "arrow_function":
		return convertArrowFunction(node, source)

	default:
		return nil, unsupportedFeature("expression kind %q", node.Kind())
	}
}

func decodeStringLiteral(node *sitter.Node, source []byte) string {
	raw := nodeText(node, source)
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	replacer := strings.NewReplacer(
		`\n`, "\n", `\t`, "\t", `\r`, "\r",
		`\\`, `\`, `\"`, `"`, `\'`, "'", "\\`", "`",
	)
	return replacer.Replace(raw)
}

func convertTemplateLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	var quasis []string
	var exprs []ast.Expression
	var cur strings.Builder

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "`":
			continue
		case "string_fragment":
			cur.WriteString(nodeText(child, source))
		case "escape_sequence":
			cur.WriteString(strings.NewReplacer(
				`\n`, "\n", `\t`, "\t", `\r`, "\r",
				`\\`, `\`, `\"`, `"`, `\'`, "'", "\\`", "`", `\$`, "$",
			).Replace(nodeText(child, source)))
		case "template_substitution":
			quasis = append(quasis, cur.String())
			cur.Reset()
			inner := childExpr(child)
			expr, err := convertExpressionTop(inner, source)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
	}
	quasis = append(quasis, cur.String())
	return withSpan(node, ast.NewTemplateLiteral(quasis, exprs)).(ast.Expression), nil
}

func convertBinaryExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	left, err := convertExpressionTop(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	right, err := convertExpressionTop(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	op := nodeText(node.ChildByFieldName("operator"), source)
	if op == "" {
		op = operatorBetween(node, source)
	}
	if logicalOperators[op] {
		return withSpan(node, ast.NewLogicalExpression(op, left, right)).(ast.Expression), nil
	}
	return withSpan(node, ast.NewBinaryExpression(op, left, right)).(ast.Expression), nil
}

// operatorBetween extracts the operator token lying between the left and
// right operands when the grammar doesn't expose an "operator" field —
// the same byte-slicing technique the teacher's parser uses to recover
// untagged operator tokens.
func operatorBetween(node *sitter.Node, source []byte) string {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil {
		return ""
	}
	return strings.TrimSpace(string(source[left.EndByte():right.StartByte()]))
}

func convertUnaryExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	arg, err := convertExpressionTop(node.ChildByFieldName("argument"), source)
	if err != nil {
		return nil, err
	}
	op := nodeText(node.ChildByFieldName("operator"), source)
	if op == "" && node.ChildCount() > 0 {
		op = nodeText(node.Child(0), source)
	}
	if op == "delete" {
		return withSpan(node, ast.NewDeleteExpression(arg)).(ast.Expression), nil
	}
	return withSpan(node, ast.NewUnaryExpression(op, arg)).(ast.Expression), nil
}

func convertUpdateExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	argNode := node.ChildByFieldName("argument")
	arg, err := convertExpressionTop(argNode, source)
	if err != nil {
		return nil, err
	}
	var op string
	prefix := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		text := nodeText(child, source)
		if text == "++" || text == "--" {
			op = text
			prefix = argNode != nil && child.StartByte() < argNode.StartByte()
		}
	}
	return withSpan(node, ast.NewUpdateExpression(op, arg, prefix)).(ast.Expression), nil
}

func convertAssignmentExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	left, err := convertExpressionTop(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	right, err := convertExpressionTop(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	op := nodeText(node.ChildByFieldName("operator"), source)
	if op == "" {
		op = operatorBetween(node, source)
	}
	if op == "" {
		op = "="
	}
	return withSpan(node, ast.NewAssignmentExpression(op, left, right)).(ast.Expression), nil
}

func convertTernaryExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	test, err := convertExpressionTop(node.ChildByFieldName("condition"), source)
	if err != nil {
		return nil, err
	}
	cons, err := convertExpressionTop(node.ChildByFieldName("consequence"), source)
	if err != nil {
		return nil, err
	}
	alt, err := convertExpressionTop(node.ChildByFieldName("alternative"), source)
	if err != nil {
		return nil, err
	}
	return withSpan(node, ast.NewConditionalExpression(test, cons, alt)).(ast.Expression), nil
}

func convertCallExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	callee, err := convertExpression(node.ChildByFieldName("function"), source)
	if err != nil {
		return nil, err
	}
	argsNode := node.ChildByFieldName("arguments")
	args, err := convertArgumentList(argsNode, source)
	if err != nil {
		return nil, err
	}
	optional := hasKeywordChild(node, "optional_chain")
	return withSpan(node, ast.NewCallExpression(callee, args, optional)).(ast.Expression), nil
}

func convertArgumentList(node *sitter.Node, source []byte) ([]ast.Expression, error) {
	if node == nil {
		return nil, nil
	}
	args := make([]ast.Expression, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		if child.Kind() == "spread_element" {
			inner, err := convertExpressionTop(childExpr(child), source)
			if err != nil {
				return nil, err
			}
			args = append(args, withSpan(child, ast.NewSpreadElement(inner)).(ast.Expression))
			continue
		}
		expr, err := convertExpressionTop(child, source)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
	return args, nil
}

func convertMemberExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	object, err := convertExpression(node.ChildByFieldName("object"), source)
	if err != nil {
		return nil, err
	}
	propNode := node.ChildByFieldName("property")
	prop := ast.NewIdentifier(nodeText(propNode, source))
	ast.SetSpan(prop, spanOf(propNode))
	optional := hasKeywordChild(node, "optional_chain")
	return withSpan(node, ast.NewMemberExpression(object, prop, false, optional)).(ast.Expression), nil
}

func convertSubscriptExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	object, err := convertExpression(node.ChildByFieldName("object"), source)
	if err != nil {
		return nil, err
	}
	index, err := convertExpressionTop(node.ChildByFieldName("index"), source)
	if err != nil {
		return nil, err
	}
	optional := hasKeywordChild(node, "optional_chain")
	return withSpan(node, ast.NewMemberExpression(object, index, true, optional)).(ast.Expression), nil
}

func convertArrayExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	elements := make([]ast.Expression, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		if child.Kind() == "spread_element" {
			inner, err := convertExpressionTop(childExpr(child), source)
			if err != nil {
				return nil, err
			}
			elements = append(elements, withSpan(child, ast.NewSpreadElement(inner)).(ast.Expression))
			continue
		}
		expr, err := convertExpressionTop(child, source)
		if err != nil {
			return nil, err
		}
		elements = append(elements, expr)
	}
	return withSpan(node, ast.NewArrayExpression(elements)).(ast.Expression), nil
}

func convertObjectExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	props := make([]ast.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		switch child.Kind() {
		case "pair":
			keyNode := child.ChildByFieldName("key")
			valNode := child.ChildByFieldName("value")
			computed := keyNode != nil && keyNode.Kind() == "computed_property_name"
			var keyExpr ast.Expression
			var err error
			if computed {
				keyExpr, err = convertExpressionTop(childExpr(keyNode), source)
			} else if keyNode != nil && keyNode.Kind() == "string" {
				keyExpr = withSpan(keyNode, ast.NewStringLiteral(decodeStringLiteral(keyNode, source))).(ast.Expression)
			} else {
				id := ast.NewIdentifier(nodeText(keyNode, source))
				ast.SetSpan(id, spanOf(keyNode))
				keyExpr = id
			}
			if err != nil {
				return nil, err
			}
			valExpr, err := convertExpressionTop(valNode, source)
			if err != nil {
				return nil, err
			}
			props = append(props, withSpan(child, ast.NewProperty(keyExpr, valExpr, computed, false)))

		case "shorthand_property_identifier":
			name := nodeText(child, source)
			id := ast.NewIdentifier(name)
			ast.SetSpan(id, spanOf(child))
			ref := ast.NewIdentifier(name)
			ast.SetSpan(ref, spanOf(child))
			props = append(props, withSpan(child, ast.NewProperty(id, ref, false, true)))

		case "spread_element":
			inner, err := convertExpressionTop(childExpr(child), source)
			if err != nil {
				return nil, err
			}
			props = append(props, withSpan(child, ast.NewSpreadElement(inner)))

		default:
			return nil, unsupportedFeature("object member kind %q", child.Kind())
		}
	}
	return withSpan(node, ast.NewObjectExpression(props)).(ast.Expression), nil
}
