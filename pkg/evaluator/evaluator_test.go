package evaluator

import "testing"

func TestEvaluateArithmeticAndTemplate(t *testing.T) {
	result, err := Evaluate(`
		let a = 2;
		let b = 3;
		`+"`sum is ${a + b}`;", nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "sum is 5" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestEvaluateFreshContextPerCall(t *testing.T) {
	const src = `x = x + 1; x;`
	first, err := Evaluate(src, map[string]interface{}{"x": 1.0}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Evaluate(src, map[string]interface{}{"x": 1.0}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected independent evaluations to produce the same result, got %v and %v", first, second)
	}
}

func TestEvaluateBlockScopeShadowing(t *testing.T) {
	result, err := Evaluate(`
		let x = "outer";
		if (true) {
			let x = "inner";
		}
		x;
	`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "outer" {
		t.Fatalf("expected shadowed inner binding not to leak, got %#v", result)
	}
}

func TestEvaluateConstReassignmentRejected(t *testing.T) {
	_, err := Evaluate(`const x = 1; x = 2;`, nil, Options{})
	if err == nil {
		t.Fatalf("expected an error reassigning a const")
	}
}

func TestEvaluateConstCompoundAssignmentRejected(t *testing.T) {
	_, err := Evaluate(`const x = 1; x += 1;`, nil, Options{})
	if err == nil {
		t.Fatalf("expected an error compound-assigning a const")
	}
}

func TestEvaluateConstIncrementRejected(t *testing.T) {
	_, err := Evaluate(`const x = 1; x++;`, nil, Options{})
	if err == nil {
		t.Fatalf("expected an error incrementing a const")
	}
}

func TestEvaluateArgumentsBinding(t *testing.T) {
	result, err := Evaluate(`
		function sum() {
			let total = 0;
			let i = 0;
			while (i < arguments.length) {
				total = total + arguments[i];
				i = i + 1;
			}
			return total;
		}
		sum(1, 2, 3);
	`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := result.(float64); !ok || n != 6 {
		t.Fatalf("expected 6, got %#v", result)
	}
}

func TestEvaluateArrowHasNoOwnArguments(t *testing.T) {
	_, err := Evaluate(`
		const f = () => arguments;
		f();
	`, nil, Options{})
	if err == nil {
		t.Fatalf("expected arrow functions to not bind their own arguments")
	}
}

func TestEvaluateOptionalChainShortCircuits(t *testing.T) {
	result, err := Evaluate(`
		let obj = undefined;
		obj?.field?.nested;
	`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected undefined short-circuit result, got %#v", result)
	}
}

func TestEvaluateReadingThroughNullIsTypeError(t *testing.T) {
	_, err := Evaluate(`let obj = null; obj.field;`, nil, Options{})
	if err == nil {
		t.Fatalf("expected a TypeError reading through null")
	}
}

func TestEvaluateUnknownVariableIsNameError(t *testing.T) {
	_, err := Evaluate(`unknownName;`, nil, Options{})
	if err == nil {
		t.Fatalf("expected a NameError for an undeclared identifier")
	}
}

func TestEvaluateWhileDisabled(t *testing.T) {
	_, err := Evaluate(`while (true) { 1; }`, nil, Options{DisableWhileStatements: true})
	if err == nil {
		t.Fatalf("expected While statements are not available error")
	}
}

func TestEvaluateTopLevelReturnRejectedByDefault(t *testing.T) {
	_, err := Evaluate(`return 1;`, nil, Options{})
	if err == nil {
		t.Fatalf("expected a TypeError for a top-level return")
	}
}

func TestEvaluateTopLevelReturnAllowedYieldsValue(t *testing.T) {
	result, err := Evaluate(`
		let x = 1;
		return x + 1;
		x = 99;
	`, nil, Options{AllowReturnOutsideFunction: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := result.(float64); !ok || n != 2 {
		t.Fatalf("expected 2, got %#v", result)
	}
}

func TestEvaluateLooseEqualityCoercesAcrossTypes(t *testing.T) {
	result, err := Evaluate(`(1 == '1') && (true == 1) && (null == undefined) && (0 == false);`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != true {
		t.Fatalf("expected loose equality to hold across types, got %#v", result)
	}
}

func TestEvaluateStrictEqualityRejectsCoercion(t *testing.T) {
	result, err := Evaluate(`(1 === '1') || (true === 1) || (null === undefined);`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != false {
		t.Fatalf("expected strict equality to reject coercion, got %#v", result)
	}
}

func TestEvaluateCompoundAssignEvaluatesMemberObjectOnce(t *testing.T) {
	result, err := Evaluate(`
		let calls = 0;
		let target = { n: 10 };
		function getTarget() {
			calls = calls + 1;
			return target;
		}
		getTarget().n += 5;
		calls;
	`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := result.(float64); !ok || n != 1 {
		t.Fatalf("expected getTarget() to be called exactly once, got %#v", result)
	}
}

func TestEvaluateUpdateExpressionEvaluatesComputedKeyOnce(t *testing.T) {
	result, err := Evaluate(`
		let i = 0;
		let arr = [10, 20, 30];
		arr[i++]++;
		i;
	`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := result.(float64); !ok || n != 1 {
		t.Fatalf("expected the computed index to be evaluated exactly once, got %#v", result)
	}
}

func TestEvaluateMaxCallDepthExceeded(t *testing.T) {
	_, err := Evaluate(`
		function recurse(n) { return recurse(n + 1); }
		recurse(0);
	`, nil, Options{MaxCallDepth: 10})
	if err == nil {
		t.Fatalf("expected a stack-size error")
	}
}

func TestEvaluateSpreadAndRest(t *testing.T) {
	result, err := Evaluate(`
		function sum(...nums) {
			let total = 0;
			let i = 0;
			while (i < nums.length) {
				total = total + nums[i];
				i = i + 1;
			}
			return total;
		}
		let parts = [1, 2, 3];
		sum(...parts, 4);
	`, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := result.(float64); !ok || n != 10 {
		t.Fatalf("expected 10, got %#v", result)
	}
}

func TestValidateReportsSyntaxError(t *testing.T) {
	if err := Validate(`let x = ;`, Options{}); err == nil {
		t.Fatalf("expected a syntax error")
	}
}

func TestValidateAcceptsWellFormedProgram(t *testing.T) {
	if err := Validate(`let x = 1; x + 1;`, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
