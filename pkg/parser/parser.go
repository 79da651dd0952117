// Package parser converts source text into pkg/ast nodes. Lexing and
// grammar recognition are delegated to tree-sitter-javascript (via
// pkg/parser/language); this package's job is walking that concrete
// syntax tree into the evaluator's own, much smaller, node set and
// rejecting anything the subset doesn't support.
package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/parser/language"
)

// Parser wraps a tree-sitter parser configured with the grammar.
type Parser struct {
	inner *sitter.Parser
}

// New constructs a Parser. Callers should Close it when done; a fresh
// Parser is cheap enough to build per call if that's simpler.
func New() (*Parser, error) {
	lang := language.JavaScript()
	if lang == nil {
		return nil, fmt.Errorf("parser: grammar not available")
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return &Parser{inner: p}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p == nil || p.inner == nil {
		return
	}
	p.inner.Close()
}

// ParseProgram parses source into an ast.Program. It returns a
// *SyntaxError for malformed input and a plain error (wrapping
// "UnsupportedFeature: ...") for grammar constructs this subset doesn't
// implement, matching spec.md §7's SyntaxError/UnsupportedFeature kinds.
func (p *Parser) ParseProgram(source []byte) (*ast.Program, error) {
	if p == nil || p.inner == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.inner.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parser: empty parse tree")
	}
	if root.HasError() {
		return nil, syntaxErrorFor(root)
	}

	body, err := convertStatementList(root, source)
	if err != nil {
		return nil, err
	}
	prog := ast.NewProgram(body)
	ast.SetSpan(prog, spanOf(root))
	return prog, nil
}

// ParseProgram is a package-level convenience that opens, uses, and
// closes a fresh Parser; the evaluator's Validate/Evaluate entry points
// use this rather than holding a Parser across calls.
func ParseProgram(source []byte) (*ast.Program, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseProgram(source)
}

func convertStatementList(root *sitter.Node, source []byte) ([]ast.Statement, error) {
	body := make([]ast.Statement, 0, root.NamedChildCount())
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if child.Kind() == "comment" || child.Kind() == "hash_bang_line" {
			continue
		}
		stmt, err := convertStatement(child, source)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}
