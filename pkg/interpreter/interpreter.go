// Package interpreter walks pkg/ast nodes against pkg/runtime values. It
// is the tree-walking evaluator at the center of the module: no
// bytecode, no compilation pass, just direct recursive dispatch over the
// node set pkg/parser produces.
package interpreter

import (
	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/runtime"
)

// Interpreter holds the state one Evaluate call shares across every node
// it visits: the resource guard and whether a top-level `return` ends the
// program with its value rather than being rejected (§4.E, §6
// allowReturnOutsideFunction).
type Interpreter struct {
	guard                      *Guard
	allowReturnOutsideFunction bool
}

// New builds an Interpreter bound to guard. guard may be nil, meaning no
// resource limits are enforced. allowReturnOutsideFunction controls
// whether a top-level `return` yields the returned value as the program
// result instead of failing as a TypeError.
func New(guard *Guard, allowReturnOutsideFunction bool) *Interpreter {
	if guard == nil {
		guard = NewGuard(0, 0, nil, false)
	}
	return &Interpreter{guard: guard, allowReturnOutsideFunction: allowReturnOutsideFunction}
}

// Run evaluates every top-level statement of prog against global in
// order, returning the value of the last ExpressionStatement it ran
// (statements of other kinds after it leave that value unchanged; the
// result is Undefined if no top-level ExpressionStatement ran) — the
// result Evaluate reports to the host. A top-level
// `return` ends the program immediately with its value when
// allowReturnOutsideFunction is set; otherwise it is a TypeError.
func (in *Interpreter) Run(prog *ast.Program, global *runtime.Frame) (runtime.Value, *EvalError) {
	result := runtime.Value(runtime.Undefined)
	for _, stmt := range prog.Body {
		val, sig, err := in.evalStatement(stmt, global)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			ret, ok := sig.(returnSignal)
			if !ok {
				continue
			}
			if !in.allowReturnOutsideFunction {
				return nil, typeErrorf("return is not allowed outside of a function")
			}
			return ret.value, nil
		}
		if _, ok := stmt.(*ast.ExpressionStatement); ok {
			result = val
		}
	}
	return result, nil
}

// evalStatement dispatches on the statement's concrete type. It returns
// (value, signal, err): value is meaningful only for ExpressionStatement;
// signal is non-nil when a returnSignal is propagating up through a block
// or control-flow statement.
func (in *Interpreter) evalStatement(stmt ast.Statement, frame *runtime.Frame) (runtime.Value, error, *EvalError) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		val, err := in.evalExpression(s.Expression, frame)
		if err != nil {
			return nil, nil, err
		}
		return val, nil, nil

	case *ast.VariableDeclaration:
		return nil, nil, in.evalVariableDeclaration(s, frame)

	case *ast.FunctionDeclaration:
		return nil, nil, in.evalFunctionDeclaration(s, frame)

	case *ast.BlockStatement:
		child := frame.Extend()
		return in.evalBlockBody(s.Body, child)

	case *ast.IfStatement:
		return in.evalIfStatement(s, frame)

	case *ast.WhileStatement:
		return in.evalWhileStatement(s, frame)

	case *ast.ReturnStatement:
		var val runtime.Value = runtime.Undefined
		if s.Argument != nil {
			v, err := in.evalExpression(s.Argument, frame)
			if err != nil {
				return nil, nil, err
			}
			val = v
		}
		return nil, returnSignal{value: val}, nil

	default:
		return nil, nil, unsupportedFeature("statement node %T", stmt)
	}
}

// evalBlockBody runs stmts against frame, stopping and propagating the
// first returnSignal it sees.
func (in *Interpreter) evalBlockBody(stmts []ast.Statement, frame *runtime.Frame) (runtime.Value, error, *EvalError) {
	var last runtime.Value = runtime.Undefined
	for _, stmt := range stmts {
		val, sig, err := in.evalStatement(stmt, frame)
		if err != nil {
			return nil, nil, err
		}
		if sig != nil {
			return nil, sig, nil
		}
		last = val
	}
	return last, nil, nil
}

func (in *Interpreter) evalVariableDeclaration(decl *ast.VariableDeclaration, frame *runtime.Frame) *EvalError {
	writable := decl.Kind != ast.DeclConst
	for _, declarator := range decl.Declarations {
		id, ok := declarator.ID.(*ast.Identifier)
		if !ok {
			if unsupported, ok := declarator.ID.(*ast.UnsupportedPattern); ok {
				return nameErrorf("Unknown variable declaration %s", unsupported.Kind)
			}
			return nameErrorf("Unknown variable declaration %T", declarator.ID)
		}
		var val runtime.Value = runtime.Undefined
		if declarator.Init != nil {
			v, err := in.evalExpression(declarator.Init, frame)
			if err != nil {
				return err
			}
			val = v
		}
		if err := frame.Declare(id.Name, val, writable); err != nil {
			return nameErrorf("%s", err.Error())
		}
	}
	return nil
}

func (in *Interpreter) evalFunctionDeclaration(decl *ast.FunctionDeclaration, frame *runtime.Frame) *EvalError {
	if decl.Async {
		return unsupportedFeature("Async functions are not supported")
	}
	fn := &runtime.FunctionValue{
		Name:   decl.ID.Name,
		Params: decl.Params,
		Body:   decl.Body,
		Env:    frame,
	}
	if err := frame.Declare(decl.ID.Name, fn, false); err != nil {
		return nameErrorf("%s", err.Error())
	}
	return nil
}

func (in *Interpreter) evalIfStatement(s *ast.IfStatement, frame *runtime.Frame) (runtime.Value, error, *EvalError) {
	test, err := in.evalExpression(s.Test, frame)
	if err != nil {
		return nil, nil, err
	}
	if isTruthy(test) {
		return in.evalStatement(s.Consequent, frame)
	}
	if s.Alternate != nil {
		return in.evalStatement(s.Alternate, frame)
	}
	return runtime.Undefined, nil, nil
}

func (in *Interpreter) evalWhileStatement(s *ast.WhileStatement, frame *runtime.Frame) (runtime.Value, error, *EvalError) {
	if in.guard.DisableWhileLoop {
		return nil, nil, unsupportedFeature("While statements are not available")
	}
	for {
		if evalErr := in.guard.CheckLiveness(); evalErr != nil {
			return nil, nil, evalErr
		}
		test, err := in.evalExpression(s.Test, frame)
		if err != nil {
			return nil, nil, err
		}
		if !isTruthy(test) {
			return runtime.Undefined, nil, nil
		}
		_, sig, err := in.evalStatement(s.Body, frame)
		if err != nil {
			return nil, nil, err
		}
		if sig != nil {
			return nil, sig, nil
		}
	}
}

func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.BoolValue:
		return val.Val
	case runtime.UndefinedValue, runtime.NullValue:
		return false
	case runtime.NumberValue:
		return val.Val != 0
	case runtime.StringValue:
		return val.Val != ""
	default:
		return true
	}
}
