package interpreter

import (
	"fmt"
	"math"
	"strings"

	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/runtime"
)

func (in *Interpreter) evalLogicalExpression(e *ast.LogicalExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	left, err := in.evalExpression(e.Left, frame)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "&&":
		if !isTruthy(left) {
			return left, nil
		}
		return in.evalExpression(e.Right, frame)
	case "||":
		if isTruthy(left) {
			return left, nil
		}
		return in.evalExpression(e.Right, frame)
	case "??":
		if !runtime.IsNullish(left) {
			return left, nil
		}
		return in.evalExpression(e.Right, frame)
	default:
		return nil, unsupportedFeature("logical operator %q", e.Operator)
	}
}

func (in *Interpreter) evalUnaryExpression(e *ast.UnaryExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	val, err := in.evalExpression(e.Argument, frame)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "!":
		return runtime.NewBool(!isTruthy(val)), nil
	case "-":
		return runtime.NewNumber(-toNumber(val)), nil
	case "+":
		return runtime.NewNumber(toNumber(val)), nil
	case "typeof":
		return runtime.NewString(typeofValue(val)), nil
	default:
		return nil, unsupportedFeature("unary operator %q", e.Operator)
	}
}

func typeofValue(v runtime.Value) string {
	switch v.(type) {
	case runtime.UndefinedValue:
		return "undefined"
	case runtime.NullValue:
		return "object"
	case runtime.BoolValue:
		return "boolean"
	case runtime.NumberValue:
		return "number"
	case runtime.StringValue:
		return "string"
	case *runtime.FunctionValue, *runtime.NativeFunctionValue:
		return "function"
	default:
		return "object"
	}
}

func toNumber(v runtime.Value) float64 {
	switch val := v.(type) {
	case runtime.NumberValue:
		return val.Val
	case runtime.BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case runtime.StringValue:
		return parseNumberString(val.Val)
	case runtime.NullValue:
		return 0
	default:
		return math.NaN()
	}
}

func parseNumberString(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	var f float64
	if _, err := fmt.Sscanf(trimmed, "%g", &f); err != nil {
		return math.NaN()
	}
	return f
}

func (in *Interpreter) evalBinaryExpression(e *ast.BinaryExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	left, err := in.evalExpression(e.Left, frame)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpression(e.Right, frame)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(e.Operator, left, right)
}

func applyBinaryOp(op string, left, right runtime.Value) (runtime.Value, *EvalError) {
	switch op {
	case "+":
		if _, ok := left.(runtime.StringValue); ok {
			return runtime.NewString(stringifyValue(left) + stringifyValue(right)), nil
		}
		if _, ok := right.(runtime.StringValue); ok {
			return runtime.NewString(stringifyValue(left) + stringifyValue(right)), nil
		}
		return runtime.NewNumber(toNumber(left) + toNumber(right)), nil
	case "-":
		return runtime.NewNumber(toNumber(left) - toNumber(right)), nil
	case "*":
		return runtime.NewNumber(toNumber(left) * toNumber(right)), nil
	case "/":
		return runtime.NewNumber(toNumber(left) / toNumber(right)), nil
	case "%":
		return runtime.NewNumber(math.Mod(toNumber(left), toNumber(right))), nil
	case "**":
		return runtime.NewNumber(math.Pow(toNumber(left), toNumber(right))), nil
	case "&":
		return runtime.NewNumber(float64(int64(toNumber(left)) & int64(toNumber(right)))), nil
	case "|":
		return runtime.NewNumber(float64(int64(toNumber(left)) | int64(toNumber(right)))), nil
	case "^":
		return runtime.NewNumber(float64(int64(toNumber(left)) ^ int64(toNumber(right)))), nil
	case "<<":
		return runtime.NewNumber(float64(int64(toNumber(left)) << uint(int64(toNumber(right))&31))), nil
	case ">>":
		return runtime.NewNumber(float64(int64(toNumber(left)) >> uint(int64(toNumber(right))&31))), nil
	case "==":
		return runtime.NewBool(looseEquals(left, right)), nil
	case "===":
		return runtime.NewBool(strictEquals(left, right)), nil
	case "!=":
		return runtime.NewBool(!looseEquals(left, right)), nil
	case "!==":
		return runtime.NewBool(!strictEquals(left, right)), nil
	case "<", "<=", ">", ">=":
		return compareValues(op, left, right), nil
	default:
		return nil, unsupportedFeature("binary operator %q", op)
	}
}

func compareValues(op string, left, right runtime.Value) runtime.Value {
	ls, lok := left.(runtime.StringValue)
	rs, rok := right.(runtime.StringValue)
	var cmp int
	if lok && rok {
		switch {
		case ls.Val < rs.Val:
			cmp = -1
		case ls.Val > rs.Val:
			cmp = 1
		default:
			cmp = 0
		}
	} else {
		ln, rn := toNumber(left), toNumber(right)
		switch {
		case ln < rn:
			cmp = -1
		case ln > rn:
			cmp = 1
		default:
			cmp = 0
		}
	}
	switch op {
	case "<":
		return runtime.NewBool(cmp < 0)
	case "<=":
		return runtime.NewBool(cmp <= 0)
	case ">":
		return runtime.NewBool(cmp > 0)
	default:
		return runtime.NewBool(cmp >= 0)
	}
}

// strictEquals backs `===`/`!==`: no coercion, operands of different
// tags are never equal.
func strictEquals(left, right runtime.Value) bool {
	switch l := left.(type) {
	case runtime.UndefinedValue:
		_, ok := right.(runtime.UndefinedValue)
		return ok
	case runtime.NullValue:
		_, ok := right.(runtime.NullValue)
		return ok
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	default:
		return left == right
	}
}

// looseEquals backs `==`/`!=`: null and undefined are equal only to each
// other, and a bool/number/string mismatch is resolved by coercing to
// number via toNumber before falling back to strictEquals, matching the
// reference language's `==` coercion rules (§4.A).
func looseEquals(left, right runtime.Value) bool {
	if runtime.IsNullish(left) || runtime.IsNullish(right) {
		return runtime.IsNullish(left) && runtime.IsNullish(right)
	}
	if _, ok := left.(runtime.BoolValue); ok {
		return looseEquals(runtime.NewNumber(toNumber(left)), right)
	}
	if _, ok := right.(runtime.BoolValue); ok {
		return looseEquals(left, runtime.NewNumber(toNumber(right)))
	}
	if ln, ok := left.(runtime.NumberValue); ok {
		if _, ok := right.(runtime.StringValue); ok {
			return ln.Val == toNumber(right)
		}
	}
	if rn, ok := right.(runtime.NumberValue); ok {
		if _, ok := left.(runtime.StringValue); ok {
			return toNumber(left) == rn.Val
		}
	}
	return strictEquals(left, right)
}
