package interpreter

import (
	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/runtime"
)

// evalUpdateExpression handles ++/-- on an identifier or member slot,
// returning the pre- or post-update value per Prefix (§4.C). The target's
// object/key subexpressions are resolved once via prepareTarget and reused
// for both the read and the write, so e.g. `a[i++]++` only evaluates `i++`
// a single time.
func (in *Interpreter) evalUpdateExpression(e *ast.UpdateExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	get, set, short, err := in.prepareTarget(e.Argument, frame)
	if err != nil {
		return nil, err
	}
	if short {
		return runtime.Undefined, nil
	}
	old, err := get()
	if err != nil {
		return nil, err
	}
	delta := 1.0
	if e.Operator == "--" {
		delta = -1.0
	}
	updated := runtime.NewNumber(toNumber(old) + delta)

	if err := set(updated); err != nil {
		return nil, err
	}
	if e.Prefix {
		return updated, nil
	}
	return runtime.NewNumber(toNumber(old)), nil
}

// evalAssignmentExpression handles `=` and the compound `op=` forms.
// Compound forms resolve the target's object/key once via prepareTarget,
// reading the current value and writing the result through the same
// resolved slot, so `getObj().x += 1` only calls getObj() once (§4.C).
func (in *Interpreter) evalAssignmentExpression(e *ast.AssignmentExpression, frame *runtime.Frame) (runtime.Value, *EvalError) {
	if e.Operator == "=" {
		val, err := in.evalExpression(e.Right, frame)
		if err != nil {
			return nil, err
		}
		if err := in.storeTo(e.Left, val, frame); err != nil {
			return nil, err
		}
		return val, nil
	}

	get, set, short, err := in.prepareTarget(e.Left, frame)
	if err != nil {
		return nil, err
	}
	if short {
		return runtime.Undefined, nil
	}
	current, err := get()
	if err != nil {
		return nil, err
	}
	rightVal, err := in.evalExpression(e.Right, frame)
	if err != nil {
		return nil, err
	}
	op := e.Operator[:len(e.Operator)-1] // "+=" -> "+"
	result, operr := applyBinaryOp(op, current, rightVal)
	if operr != nil {
		return nil, operr
	}
	if err := set(result); err != nil {
		return nil, err
	}
	return result, nil
}

// storeTo writes value into the slot target refers to, via prepareTarget.
func (in *Interpreter) storeTo(target ast.Expression, value runtime.Value, frame *runtime.Frame) *EvalError {
	_, set, short, err := in.prepareTarget(target, frame)
	if err != nil {
		return err
	}
	if short {
		return nil
	}
	return set(value)
}

// prepareTarget resolves target (an Identifier or MemberExpression) into a
// get/set pair sharing a single evaluation of any object/key
// subexpressions, so callers that both read and write a slot (compound
// assignment, ++/--) never re-run side-effecting subexpressions. short
// reports a `?.` link short-circuiting the whole assignment into a no-op,
// matching evalChainable's propagation (§4.E).
func (in *Interpreter) prepareTarget(target ast.Expression, frame *runtime.Frame) (get func() (runtime.Value, *EvalError), set func(runtime.Value) *EvalError, short bool, evalErr *EvalError) {
	switch t := target.(type) {
	case *ast.Identifier:
		get = func() (runtime.Value, *EvalError) {
			val, ok := frame.Lookup(t.Name)
			if !ok {
				return nil, nameErrorf("Unknown variable %s", t.Name)
			}
			return val, nil
		}
		set = func(v runtime.Value) *EvalError {
			if err := frame.RedefineOwnerCell(t.Name, v); err != nil {
				return bindingError(err.Error())
			}
			return nil
		}
		return get, set, false, nil

	case *ast.MemberExpression:
		objVal, _, objShort, err := in.evalChainable(t.Object, frame)
		if err != nil {
			return nil, nil, false, err
		}
		if objShort {
			return nil, nil, true, nil
		}
		if runtime.IsNullish(objVal) {
			key, _ := in.memberKey(t, frame)
			return nil, nil, false, typeErrorf("Cannot read properties of %s (reading '%s')", nullishName(objVal), key)
		}
		key, kerr := in.memberKey(t, frame)
		if kerr != nil {
			return nil, nil, false, kerr
		}
		get = func() (runtime.Value, *EvalError) {
			return in.memberGet(objVal, key)
		}
		set = func(v runtime.Value) *EvalError {
			return in.memberSet(objVal, key, v)
		}
		return get, set, false, nil

	default:
		return nil, nil, false, typeErrorf("invalid assignment target")
	}
}
