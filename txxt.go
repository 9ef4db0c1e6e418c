// Package txxt parses TXXT, a plain-text, indentation-sensitive document
// format, into a span-exact typed AST (package ast). It is a thin facade
// over the pipeline implemented in lex, blocktree, and assemble: callers
// that only need the final tree should use Parse; Tokenize exposes the
// raw lex.Token stream for tooling (syntax highlighters, formatters).
package txxt

import (
	"github.com/arthurdebert/txxt/assemble"
	"github.com/arthurdebert/txxt/ast"
	"github.com/arthurdebert/txxt/lex"
)

// Parse runs the full pipeline over source, returning the finished
// Document. Parse never fails outright: lexical and structural problems
// are recovered from and surfaced as ast.Error nodes or Diagnostics
// rather than as a Go error, since a TXXT document is meant to always
// render something.
func Parse(source []byte) *ast.Document {
	return assemble.Assemble(source)
}

// Tokenize runs only Pass 0/Pass 1 of the pipeline, returning the flat
// token stream without grouping or assembling it.
func Tokenize(source []byte) []lex.Token {
	return lex.Tokenize(source)
}
