package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SourceLocation is a best-effort 1-based source span for a SyntaxError.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// SyntaxError is the error type the parser returns for malformed input;
// it corresponds to the SyntaxError kind in spec.md §7's taxonomy.
// Unsupported constructs are reported as plain "UnsupportedFeature: ..."
// errors instead.
type SyntaxError struct {
	Message  string
	Location SourceLocation
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Location.Line, e.Location.Column)
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

// firstSyntaxProblem finds the first MISSING node, falling back to the
// first ERROR node, so the reported location is the earliest offender
// rather than wherever the parser eventually gave up.
func firstSyntaxProblem(root *sitter.Node) *sitter.Node {
	var missing, errored *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.IsMissing() && (missing == nil || node.StartByte() < missing.StartByte()) {
			missing = node
		}
		if node.IsError() && (errored == nil || node.StartByte() < errored.StartByte()) {
			errored = node
		}
	})
	if missing != nil {
		return missing
	}
	return errored
}

func walkNodes(root *sitter.Node, visit func(node *sitter.Node)) {
	if root == nil {
		return
	}
	visit(root)
	for i := uint(0); i < root.ChildCount(); i++ {
		if child := root.Child(i); child != nil {
			walkNodes(child, visit)
		}
	}
}

func syntaxErrorFor(root *sitter.Node) *SyntaxError {
	node := firstSyntaxProblem(root)
	if node == nil {
		node = root
	}
	msg := "syntax error"
	if node != nil && node.IsMissing() {
		msg = fmt.Sprintf("syntax error: missing %s", node.Kind())
	} else if node != nil && node.IsError() {
		msg = "syntax error: unexpected token"
	}
	return &SyntaxError{Message: msg, Location: locationForNode(node)}
}

// unsupportedFeature reports a grammar construct the subset doesn't
// implement — spec.md §7's UnsupportedFeature kind.
func unsupportedFeature(format string, args ...interface{}) error {
	return fmt.Errorf("UnsupportedFeature: "+format, args...)
}
