package parser

import (
	"testing"

	"able/evalscript/pkg/ast"
)

func TestParseProgramSimpleDeclarations(t *testing.T) {
	prog, err := ParseProgram([]byte(`let x = 1; const y = "hi"; x + y;`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected first statement to be a VariableDeclaration, got %T", prog.Body[0])
	}
	if decl.Kind != ast.DeclLet {
		t.Fatalf("expected let, got %s", decl.Kind)
	}
}

func TestParseProgramFunctionAndIf(t *testing.T) {
	src := `
	function add(a, b) {
		if (a > b) {
			return a;
		} else {
			return b;
		}
	}
	`
	prog, err := ParseProgram([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := prog.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", prog.Body[0])
	}
	if fn.ID.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseProgramArrowAndTemplate(t *testing.T) {
	src := "const greet = (name) => `hello ${name}`;"
	prog, err := ParseProgram([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := prog.Body[0].(*ast.VariableDeclaration)
	arrow, ok := decl.Declarations[0].Init.(*ast.ArrowFunctionExpression)
	if !ok {
		t.Fatalf("expected arrow function, got %T", decl.Declarations[0].Init)
	}
	if !arrow.ExpressionBody {
		t.Fatalf("expected expression-bodied arrow")
	}
	if _, ok := arrow.Body.(*ast.TemplateLiteral); !ok {
		t.Fatalf("expected template literal body, got %T", arrow.Body)
	}
}

func TestParseProgramOptionalChainWraps(t *testing.T) {
	prog, err := ParseProgram([]byte(`a?.b.c;`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	if _, ok := stmt.Expression.(*ast.ChainExpression); !ok {
		t.Fatalf("expected optional member access to be wrapped in a ChainExpression, got %T", stmt.Expression)
	}
}

func TestParseProgramSyntaxError(t *testing.T) {
	_, err := ParseProgram([]byte(`let x = ;`))
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestParseProgramRestParameter(t *testing.T) {
	prog, err := ParseProgram([]byte(`function f(...rest) { return rest; }`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	if _, ok := fn.Params[0].(*ast.RestElement); !ok {
		t.Fatalf("expected RestElement parameter, got %T", fn.Params[0])
	}
}
