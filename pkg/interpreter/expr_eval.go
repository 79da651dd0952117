package interpreter

import (
	"fmt"
	"math"
	"strings"

	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/runtime"
)

func (in *Interpreter) evalExpression(expr ast.Expression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NewNumber(e.Value), nil
	case *ast.StringLiteral:
		return runtime.NewString(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.NewBool(e.Value), nil
	case *ast.NullLiteral:
		return runtime.Null, nil

	case *ast.Identifier:
		if e.Name == "undefined" {
			return runtime.Undefined, nil
		}
		val, ok := frame.Lookup(e.Name)
		if !ok {
			return nil, nameErrorf("Unknown variable %s", e.Name)
		}
		return val, nil

	case *ast.TemplateLiteral:
		return in.evalTemplateLiteral(e, frame)

	case *ast.ArrayExpression:
		return in.evalArrayExpression(e, frame)

	case *ast.ObjectExpression:
		return in.evalObjectExpression(e, frame)

	case *ast.BinaryExpression:
		return in.evalBinaryExpression(e, frame)

	case *ast.LogicalExpression:
		return in.evalLogicalExpression(e, frame)

	case *ast.UnaryExpression:
		return in.evalUnaryExpression(e, frame)

	case *ast.UpdateExpression:
		return in.evalUpdateExpression(e, frame)

	case *ast.AssignmentExpression:
		return in.evalAssignmentExpression(e, frame)

	case *ast.ConditionalExpression:
		test, err := in.evalExpression(e.Test, frame)
		if err != nil {
			return nil, err
		}
		if isTruthy(test) {
			return in.evalExpression(e.Consequent, frame)
		}
		return in.evalExpression(e.Alternate, frame)

	case *ast.MemberExpression:
		val, _, _, err := in.evalChainable(e, frame)
		return val, err

	case *ast.CallExpression:
		val, _, _, err := in.evalChainable(e, frame)
		return val, err

	case *ast.ChainExpression:
		val, _, short, err := in.evalChainable(e.Expression, frame)
		if err != nil {
			return nil, err
		}
		if short {
			return runtime.Undefined, nil
		}
		return val, nil

	case *ast.DeleteExpression:
		return in.evalDeleteExpression(e, frame)

	case *ast.FunctionExpression:
		if e.Async {
			return nil, unsupportedFeature("Async functions are not supported")
		}
		return &runtime.FunctionValue{Name: identName(e.ID), Params: e.Params, Body: e.Body, Env: frame}, nil

	case *ast.ArrowFunctionExpression:
		if e.Async {
			return nil, unsupportedFeature("Async functions are not supported")
		}
		return &runtime.FunctionValue{Params: e.Params, Body: e.Body, Env: frame, IsArrow: true}, nil

	default:
		return nil, unsupportedFeature("expression node %T", expr)
	}
}

func identName(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}

// evalChainable evaluates an expression that may be a link in an
// optional member/call chain. It returns (value, thisVal, shortCircuited,
// err): shortCircuited means a `?.` link hit a nullish object and every
// enclosing link up to the nearest ChainExpression must skip evaluation
// (§4.E). thisVal is the object/callee-receiver used to bind `this` for
// a following call.
func (in *Interpreter) evalChainable(expr ast.Expression, frame *runtime.Frame) (runtime.Value, runtime.Value, bool, *EvalError) {
	switch e := expr.(type) {
	case *ast.MemberExpression:
		objVal, _, short, err := in.evalChainable(e.Object, frame)
		if err != nil {
			return nil, nil, false, err
		}
		if short {
			return runtime.Undefined, runtime.Undefined, true, nil
		}
		if e.Optional && runtime.IsNullish(objVal) {
			return runtime.Undefined, runtime.Undefined, true, nil
		}
		if runtime.IsNullish(objVal) {
			key, kerr := in.memberKey(e, frame)
			if kerr != nil {
				return nil, nil, false, kerr
			}
			return nil, nil, false, typeErrorf("Cannot read properties of %s (reading '%s')", nullishName(objVal), key)
		}
		key, kerr := in.memberKey(e, frame)
		if kerr != nil {
			return nil, nil, false, kerr
		}
		val, gerr := in.memberGet(objVal, key)
		if gerr != nil {
			return nil, nil, false, gerr
		}
		return val, objVal, false, nil

	case *ast.CallExpression:
		calleeVal, thisVal, short, err := in.evalChainable(e.Callee, frame)
		if err != nil {
			return nil, nil, false, err
		}
		if short {
			return runtime.Undefined, runtime.Undefined, true, nil
		}
		if e.Optional && runtime.IsNullish(calleeVal) {
			return runtime.Undefined, runtime.Undefined, true, nil
		}
		if runtime.IsNullish(calleeVal) {
			return nil, nil, false, typeErrorf("%s is not a function", calleeDisplayName(e.Callee))
		}
		if _, isFn := calleeVal.(*runtime.FunctionValue); !isFn {
			if _, isNative := calleeVal.(*runtime.NativeFunctionValue); !isNative {
				return nil, nil, false, typeErrorf("%s is not a function", calleeDisplayName(e.Callee))
			}
		}
		args, aerr := in.evalArguments(e.Arguments, frame)
		if aerr != nil {
			return nil, nil, false, aerr
		}
		result, cerr := in.callValue(calleeVal, thisVal, args)
		if cerr != nil {
			return nil, nil, false, cerr
		}
		return result, runtime.Undefined, false, nil

	default:
		val, err := in.evalExpression(e, frame)
		return val, runtime.Undefined, false, err
	}
}

func (in *Interpreter) evalDeleteExpression(d *ast.DeleteExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	target := d.Argument
	if chain, ok := target.(*ast.ChainExpression); ok {
		target = chain.Expression
	}
	member, ok := target.(*ast.MemberExpression)
	if !ok {
		return nil, typeErrorf("invalid delete target")
	}
	objVal, _, short, err := in.evalChainable(member.Object, frame)
	if err != nil {
		return nil, err
	}
	if short || runtime.IsNullish(objVal) {
		return runtime.NewBool(true), nil
	}
	key, kerr := in.memberKey(member, frame)
	if kerr != nil {
		return nil, kerr
	}
	return runtime.NewBool(in.memberDelete(objVal, key)), nil
}

func (in *Interpreter) evalTemplateLiteral(t *ast.TemplateLiteral, frame *runtime.Frame) (runtime.Value, *EvalError) {
	var sb strings.Builder
	for i, quasi := range t.Quasis {
		sb.WriteString(quasi)
		if i < len(t.Expressions) {
			val, err := in.evalExpression(t.Expressions[i], frame)
			if err != nil {
				return nil, err
			}
			sb.WriteString(stringifyValue(val))
		}
	}
	return runtime.NewString(sb.String()), nil
}

func (in *Interpreter) evalArrayExpression(a *ast.ArrayExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	elements := make([]runtime.Value, 0, len(a.Elements))
	for _, el := range a.Elements {
		if el == nil {
			elements = append(elements, runtime.Undefined)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			val, err := in.evalExpression(spread.Argument, frame)
			if err != nil {
				return nil, err
			}
			arr, ok := val.(*runtime.ArrayValue)
			if !ok {
				return nil, typeErrorf("spread element is not iterable")
			}
			elements = append(elements, arr.Elements...)
			continue
		}
		val, err := in.evalExpression(el, frame)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return runtime.NewArray(elements), nil
}

func (in *Interpreter) evalObjectExpression(o *ast.ObjectExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	obj := runtime.NewObject()
	for _, node := range o.Properties {
		switch p := node.(type) {
		case *ast.Property:
			var key string
			if !p.Computed {
				if id, ok := p.Key.(*ast.Identifier); ok {
					key = id.Name
				} else if lit, ok := p.Key.(*ast.StringLiteral); ok {
					key = lit.Value
				}
			} else {
				keyVal, err := in.evalExpression(p.Key, frame)
				if err != nil {
					return nil, err
				}
				key = valueToKey(keyVal)
			}
			val, err := in.evalExpression(p.Value, frame)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)

		case *ast.SpreadElement:
			val, err := in.evalExpression(p.Argument, frame)
			if err != nil {
				return nil, err
			}
			src, ok := val.(*runtime.ObjectValue)
			if !ok {
				return nil, typeErrorf("spread source is not an object")
			}
			for _, k := range src.Keys() {
				v, _ := src.GetOwn(k)
				obj.Set(k, v)
			}

		default:
			return nil, unsupportedFeature("object property node %T", node)
		}
	}
	return obj, nil
}

func stringifyValue(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.StringValue:
		return val.Val
	case runtime.NumberValue:
		return formatNumber(val.Val)
	case runtime.BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case runtime.UndefinedValue:
		return "undefined"
	case runtime.NullValue:
		return "null"
	case *runtime.ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = stringifyValue(e)
		}
		return strings.Join(parts, ",")
	case *runtime.ObjectValue:
		return "[object Object]"
	case *runtime.FunctionValue, *runtime.NativeFunctionValue:
		return "[function]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%g", f)
}
