package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthurdebert/txxt/assemble"
	"github.com/arthurdebert/txxt/ast"
)

func TestWalkVisitsNestedBlocks(t *testing.T) {
	doc := assemble.Assemble([]byte("Intro\n    Hello\n"))

	var kinds []string
	ast.Walk(doc.Root(), ast.VisitorFunc(func(b ast.Block) bool {
		switch b.(type) {
		case *ast.Session:
			kinds = append(kinds, "Session")
		case *ast.Paragraph:
			kinds = append(kinds, "Paragraph")
		}
		return true
	}))
	require.Equal(t, []string{"Session", "Paragraph"}, kinds)
}

func TestDocumentNodeAt(t *testing.T) {
	doc := assemble.Assemble([]byte("Hello world\n"))
	para := doc.Root()[0].(*ast.Paragraph)
	offset := para.Span().Start.Offset
	node := doc.NodeAt(offset)
	require.NotNil(t, node)
}

func TestDocumentFingerprintStable(t *testing.T) {
	source := []byte("Hello world\n")
	d1 := assemble.Assemble(source)
	d2 := assemble.Assemble(source)
	require.Equal(t, d1.Fingerprint(), d2.Fingerprint())
}

func TestDocumentAssemblyInfo(t *testing.T) {
	doc := assemble.Assemble([]byte("Intro\n    Hello\n"))
	info := doc.AssemblyInfo()
	require.NotEmpty(t, info.ParserVersion)
	require.Equal(t, info.Fingerprint, doc.Fingerprint())
	// one Session (title "Intro") plus its one Paragraph child ("Hello").
	require.Equal(t, 2, info.BlockCount)
	require.Equal(t, 2, info.InlineCount)
	require.Equal(t, 2, info.MaxDepth)
}

func TestDocumentMetadataEmptyWithoutPreamble(t *testing.T) {
	doc := assemble.Assemble([]byte("Hello world\n"))
	require.Empty(t, doc.Metadata())
}
