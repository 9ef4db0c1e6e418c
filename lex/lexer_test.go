package lex_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthurdebert/txxt/lex"
)

func ExampleTokenize_plainText() {
	for _, tok := range lex.Tokenize([]byte("Hello\n")) {
		fmt.Printf("%v\n", tok)
	}
	// Output:
	// Text("Hello")
	// Newline
}

func kinds(toks []lex.Token) []lex.Kind {
	out := make([]lex.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeAnnotationWithParameter(t *testing.T) {
	toks := lex.Tokenize([]byte(":: note :lang=en::\n"))
	require.Equal(t, []lex.Kind{
		lex.AnnotationMarker,
		lex.Identifier,
		lex.Colon,
		lex.Parameter,
		lex.AnnotationMarker,
		lex.Newline,
	}, kinds(toks))
	require.Equal(t, "note", toks[1].Value)
	require.Equal(t, "lang=en", toks[3].Value)
}

func TestTokenizeVerbatimWithLabel(t *testing.T) {
	lx := lex.New([]byte("Code:\n    print(1)\n(go)\n"))
	toks := lx.Run()
	require.Empty(t, lx.Errors())
	require.Equal(t, []lex.Kind{
		lex.VerbatimStart,
		lex.VerbatimContent,
		lex.VerbatimEnd,
	}, kinds(toks))
	require.Equal(t, "Code", toks[0].Value)
	require.Equal(t, "print(1)\n", toks[1].Value)
	require.Equal(t, "go", toks[2].Value)
	require.False(t, toks[2].Span.Empty())
}

func TestTokenizeVerbatimWithoutLabelFollowedByContent(t *testing.T) {
	// a verbatim region that closes by dedent (no "(label)" line) and is
	// followed by further sibling content must not report a spurious
	// unterminated error, and its zero-width close must not swallow the
	// following line.
	lx := lex.New([]byte("Code:\n    print(1)\nDone\n"))
	toks := lx.Run()
	require.Empty(t, lx.Errors())
	require.Equal(t, []lex.Kind{
		lex.VerbatimStart,
		lex.VerbatimContent,
		lex.VerbatimEnd,
		lex.Text,
		lex.Newline,
	}, kinds(toks))
	require.Equal(t, "", toks[2].Value)
	require.Equal(t, toks[2].Span.Start, toks[2].Span.End)
	require.Equal(t, "Done", toks[3].Value)
}

func TestTokenizeVerbatimClosedByEOF(t *testing.T) {
	// a verbatim region that runs all the way to end of input with no
	// further line to dedent into is closed by end-of-input: EOF is a
	// line at or below the opening column, trivially, so this is an
	// ordinary close rather than an error.
	lx := lex.New([]byte("Example:\n    text\n"))
	toks := lx.Run()
	require.Empty(t, lx.Errors())
	require.Equal(t, []lex.Kind{
		lex.VerbatimStart,
		lex.VerbatimContent,
		lex.VerbatimEnd,
	}, kinds(toks))
	require.Equal(t, "", toks[2].Value)
	require.Equal(t, toks[2].Span.Start, toks[2].Span.End)
}
