package ast

import "testing"

func TestSetSpanAnnotatesNode(t *testing.T) {
	id := NewIdentifier("x")
	span := Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 2}}
	SetSpan(id, span)
	if id.Span() != span {
		t.Fatalf("expected span to be set, got %+v", id.Span())
	}
}

func TestProgramBodyPreserved(t *testing.T) {
	body := []Statement{NewExpressionStatement(NewNumberLiteral(1))}
	prog := NewProgram(body)
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body))
	}
	if prog.NodeType() != NodeProgram {
		t.Fatalf("unexpected node type: %s", prog.NodeType())
	}
}

func TestVariableDeclarationKeepsKind(t *testing.T) {
	decl := NewVariableDeclaration(DeclConst, []*VariableDeclarator{
		NewVariableDeclarator(NewIdentifier("x"), NewNumberLiteral(1)),
	})
	if decl.Kind != DeclConst {
		t.Fatalf("expected const kind")
	}
}
