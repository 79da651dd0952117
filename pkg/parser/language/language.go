// Package language loads the tree-sitter grammar the parser is built on.
// Grounded on the teacher's own pkg/parser/language.Able(), which wraps a
// cgo grammar binding with sitter.NewLanguage; here the grammar is the
// published tree-sitter-javascript, since spec.md's reference language is
// explicitly "a restricted subset of a C-style dynamic scripting
// language."
package language

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// JavaScript returns the grammar used to parse evaluator source text.
func JavaScript() *sitter.Language {
	return sitter.NewLanguage(javascript.Language())
}
