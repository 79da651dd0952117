package interpreter

import (
	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/runtime"
)

// evalArguments evaluates a call's argument list, expanding any
// SpreadElement into the arrays it spreads (§4.D "Call").
func (in *Interpreter) evalArguments(nodes []ast.Expression, frame *runtime.Frame) ([]runtime.Value, *EvalError) {
	args := make([]runtime.Value, 0, len(nodes))
	for _, node := range nodes {
		if spread, ok := node.(*ast.SpreadElement); ok {
			val, err := in.evalExpression(spread.Argument, frame)
			if err != nil {
				return nil, err
			}
			arr, ok := val.(*runtime.ArrayValue)
			if !ok {
				return nil, typeErrorf("spread argument is not iterable")
			}
			args = append(args, arr.Elements...)
			continue
		}
		val, err := in.evalExpression(node, frame)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

// callValue invokes callee (a FunctionValue or NativeFunctionValue) with
// this and args, enforcing the call-depth guard around script function
// invocations (§5). Calling anything else is a TypeError.
func (in *Interpreter) callValue(callee runtime.Value, this runtime.Value, args []runtime.Value) (runtime.Value, *EvalError) {
	switch fn := callee.(type) {
	case *runtime.NativeFunctionValue:
		result, err := fn.Fn(this, args)
		if err != nil {
			return nil, typeErrorf("%s", err.Error())
		}
		if result == nil {
			return runtime.Undefined, nil
		}
		return result, nil

	case *runtime.FunctionValue:
		return in.invokeScriptFunction(fn, args)

	default:
		return nil, typeErrorf("value is not a function")
	}
}

// invokeScriptFunction binds args to fn's parameters in a frame nested
// under its closure environment, binds `arguments`, evaluates the body,
// and catches the returnSignal at this boundary (§4.D "Call", §4.C
// "Function declaration/expression").
func (in *Interpreter) invokeScriptFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, *EvalError) {
	if evalErr := in.guard.EnterCall(); evalErr != nil {
		return nil, evalErr
	}
	defer in.guard.ExitCall()

	callFrame := fn.Env.Extend()
	if err := bindParameters(callFrame, fn.Params, args); err != nil {
		return nil, err
	}
	if !fn.IsArrow {
		argumentsArr := runtime.NewArray(append([]runtime.Value(nil), args...))
		_ = callFrame.Declare("arguments", argumentsArr, false)
	}

	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		val, sig, err := in.evalBlockBody(body.Body, callFrame)
		if err != nil {
			return nil, err
		}
		if ret, ok := sig.(returnSignal); ok {
			return ret.value, nil
		}
		_ = val
		return runtime.Undefined, nil

	case ast.Expression:
		return in.evalExpression(body, callFrame)

	default:
		return nil, unsupportedFeature("function body node %T", fn.Body)
	}
}

func bindParameters(frame *runtime.Frame, params []ast.Pattern, args []runtime.Value) *EvalError {
	for i, param := range params {
		switch p := param.(type) {
		case *ast.Identifier:
			var val runtime.Value = runtime.Undefined
			if i < len(args) {
				val = args[i]
			}
			_ = frame.Declare(p.Name, val, true)

		case *ast.RestElement:
			var rest []runtime.Value
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			_ = frame.Declare(p.Argument.Name, runtime.NewArray(rest), true)

		case *ast.UnsupportedPattern:
			return nameErrorf("Unknown variable declaration %s", p.Kind)

		default:
			return nameErrorf("Unknown variable declaration %T", param)
		}
	}
	return nil
}
