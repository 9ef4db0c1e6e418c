package assemble_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthurdebert/txxt/assemble"
	"github.com/arthurdebert/txxt/ast"
)

func diagCodes(doc *ast.Document) []ast.Code {
	var out []ast.Code
	for _, d := range doc.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func TestAssembleParagraphWithInlineFormatting(t *testing.T) {
	doc := assemble.Assemble([]byte("This is *strong* and _em_ text.\n"))
	require.Len(t, doc.Root(), 1)
	para, ok := doc.Root()[0].(*ast.Paragraph)
	require.True(t, ok)

	var sawStrong, sawEmphasis bool
	for _, in := range para.Content {
		switch v := in.(type) {
		case *ast.Strong:
			sawStrong = true
			require.Len(t, v.Children, 1)
			require.Equal(t, "strong", v.Children[0].(*ast.Identity).Text)
		case *ast.Emphasis:
			sawEmphasis = true
			require.Len(t, v.Children, 1)
			require.Equal(t, "em", v.Children[0].(*ast.Identity).Text)
		}
	}
	require.True(t, sawStrong)
	require.True(t, sawEmphasis)
}

func TestAssembleSingleItemListDegradesToParagraph(t *testing.T) {
	doc := assemble.Assemble([]byte("- only\n"))
	require.Len(t, doc.Root(), 1)
	_, ok := doc.Root()[0].(*ast.Paragraph)
	require.True(t, ok)
	require.Contains(t, diagCodes(doc), ast.CodeSingleItemList)
}

func TestAssembleMixedListStyleDiagnostic(t *testing.T) {
	doc := assemble.Assemble([]byte("- one\n1. two\n"))
	require.Len(t, doc.Root(), 1)
	list, ok := doc.Root()[0].(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	require.True(t, list.Inconsistent)
	require.Contains(t, diagCodes(doc), ast.CodeMixedListStyle)
}

func TestAssembleSessionAnchor(t *testing.T) {
	doc := assemble.Assemble([]byte("Intro\n    Hello\n"))
	require.Len(t, doc.Root(), 1)
	sess, ok := doc.Root()[0].(*ast.Session)
	require.True(t, ok)
	require.Equal(t, "intro", sess.Anchor)
	require.Same(t, sess, doc.Anchors()["intro"])
	require.Len(t, sess.Children, 1)
}

func TestAssembleVerbatimWithLanguage(t *testing.T) {
	doc := assemble.Assemble([]byte("Example (go):\n    fmt.Println(1)\n"))
	require.Len(t, doc.Root(), 1)
	v, ok := doc.Root()[0].(*ast.Verbatim)
	require.True(t, ok)
	require.Equal(t, "Example", v.Title)
	require.Equal(t, "go", v.Language)
	require.Equal(t, "fmt.Println(1)\n", v.Content)
}

func TestAssembleDuplicateAnnotationLabel(t *testing.T) {
	doc := assemble.Assemble([]byte(":: note :: first\n\n:: note :: second\n"))
	// Both annotations trail the root container with no non-annotation
	// block ever following them, so they attach to the root's owning
	// parent: Document.metadata (spec.md §4.4 rule 3).
	require.Empty(t, doc.Root())
	require.Len(t, doc.Metadata(), 2)
	require.Equal(t, "note", doc.Metadata()[0].Label)
	require.Equal(t, "first", doc.Metadata()[0].Value[0].(*ast.Identity).Text)
	require.Equal(t, "second", doc.Metadata()[1].Value[0].(*ast.Identity).Text)
	require.Contains(t, diagCodes(doc), ast.CodeDuplicateAnnotationLabel)
}

func TestAssembleSessionBodySeparatedByBlankLine(t *testing.T) {
	// spec.md scenario 4's shape, isolated from its preamble annotation:
	// a session header separated from its indented body by a blank line
	// must not degrade to a paragraph with a lost child.
	doc := assemble.Assemble([]byte("Format Specifications\n\n    Content here.\n"))
	require.Len(t, doc.Root(), 1)
	sess, ok := doc.Root()[0].(*ast.Session)
	require.True(t, ok)
	require.Len(t, sess.Children, 1)
	_, ok = sess.Children[0].(*ast.Paragraph)
	require.True(t, ok)
}

func TestAssemblePreambleAnnotationAttachesToMetadataBeforeSession(t *testing.T) {
	// spec.md scenario 4.
	doc := assemble.Assemble([]byte(":: author :: Jane Doe\n\nFormat Specifications\n\n    Content here.\n"))
	require.Len(t, doc.Metadata(), 1)
	require.Equal(t, "author", doc.Metadata()[0].Label)
	require.Equal(t, "Jane Doe", doc.Metadata()[0].Value[0].(*ast.Identity).Text)

	require.Len(t, doc.Root(), 1)
	sess, ok := doc.Root()[0].(*ast.Session)
	require.True(t, ok)
	require.Empty(t, sess.Annotations)
	require.Len(t, sess.Children, 1)
	_, ok = sess.Children[0].(*ast.Paragraph)
	require.True(t, ok)
}

func TestAssembleAnnotationAttachesToFollowingVerbatim(t *testing.T) {
	// spec.md scenario 6.
	doc := assemble.Assemble([]byte(":: caption :: Figure 1\n\nExample:\n    some text\n(label)\n"))
	require.Empty(t, doc.Metadata())

	require.Len(t, doc.Root(), 1)
	v, ok := doc.Root()[0].(*ast.Verbatim)
	require.True(t, ok)
	require.Len(t, v.Annotations, 1)
	require.Equal(t, "caption", v.Annotations[0].Label)
	require.Equal(t, "Figure 1", v.Annotations[0].Value[0].(*ast.Identity).Text)
}

func TestAssembleVerbatimFollowedByParagraph(t *testing.T) {
	doc := assemble.Assemble([]byte("Code:\n    print(1)\nDone\n"))
	require.Len(t, doc.Root(), 2)
	_, ok := doc.Root()[0].(*ast.Verbatim)
	require.True(t, ok)
	_, ok = doc.Root()[1].(*ast.Paragraph)
	require.True(t, ok)
	require.Empty(t, doc.Diagnostics())
}
