// Package evaluator is the module's public surface: Validate checks
// source text for syntax errors without running it, and Evaluate parses
// and runs a script against a host-supplied context under the resource
// limits spec.md §5/§6 describe. Everything underneath (pkg/parser,
// pkg/interpreter, pkg/runtime) is an implementation detail a host never
// touches directly.
package evaluator

import (
	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/interpreter"
	"able/evalscript/pkg/parser"
	"able/evalscript/pkg/runtime"
)

// Options configures a single Validate or Evaluate call (§6).
type Options struct {
	// TimeoutMs bounds wall-clock execution time; <= 0 means unlimited.
	TimeoutMs int
	// MaxCallDepth bounds script function call nesting; <= 0 means unlimited.
	MaxCallDepth int
	// DisableWhileStatements rejects any `while` loop as UnsupportedFeature.
	DisableWhileStatements bool
	// Aborted, if non-nil, is polled at function-call and while-iteration
	// boundaries; setting it true from another goroutine aborts the run.
	Aborted *bool
	// AllowReturnOutsideFunction lets a top-level `return` end the program
	// and yield its value as the result, instead of failing as a
	// TypeError (§4.E, §6).
	AllowReturnOutsideFunction bool
}

// Validate parses source and reports the first syntax error or
// unsupported-feature error it finds, without evaluating anything. The
// Options argument is not consulted: a top-level `return` passes
// Validate whatever AllowReturnOutsideFunction says.
func Validate(source string, _ Options) error {
	_, err := parser.ParseProgram([]byte(source))
	return err
}

// Evaluate parses and runs source against context (the top-level
// variable bindings visible to the script), returning the value of its
// final top-level expression statement converted back to a plain Go
// value (§6 "evaluate").
func Evaluate(source string, context map[string]interface{}, opts Options) (interface{}, error) {
	prog, err := parser.ParseProgram([]byte(source))
	if err != nil {
		return nil, err
	}
	result, evalErr := EvaluateProgram(prog, context, opts)
	if evalErr != nil {
		return nil, evalErr
	}
	return FromScriptValue(result), nil
}

// EvaluateProgram runs an already-parsed program, for callers that want
// to parse once (with parser.ParseProgram) and evaluate the same AST
// repeatedly.
func EvaluateProgram(prog *ast.Program, context map[string]interface{}, opts Options) (runtime.Value, *interpreter.EvalError) {
	global := runtime.NewFrame(nil)
	for name, val := range context {
		_ = global.Declare(name, ToScriptValue(val), true)
	}

	guard := interpreter.NewGuard(opts.TimeoutMs, opts.MaxCallDepth, opts.Aborted, opts.DisableWhileStatements)
	engine := interpreter.New(guard, opts.AllowReturnOutsideFunction)
	return engine.Run(prog, global)
}

// ToScriptValue converts a plain Go value into the interpreter's
// internal value representation (§3.1).
func ToScriptValue(v interface{}) runtime.Value {
	return interpreter.ToValue(v)
}

// FromScriptValue converts an internal value back to a plain Go value
// for the host to consume (§3.1).
func FromScriptValue(v runtime.Value) interface{} {
	return interpreter.FromValue(v, nil)
}
