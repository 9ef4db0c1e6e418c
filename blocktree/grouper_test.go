package blocktree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthurdebert/txxt/blocktree"
	"github.com/arthurdebert/txxt/lex"
)

func group(t *testing.T, source string) *blocktree.Block {
	t.Helper()
	lx := lex.New([]byte(source))
	toks := lx.Run()
	require.Empty(t, lx.Errors())
	tree, errs := blocktree.Group(toks)
	require.Empty(t, errs)
	return tree
}

func TestGroupParagraph(t *testing.T) {
	tree := group(t, "Hello world\n")
	require.Len(t, tree.Children, 1)
	require.Equal(t, blocktree.Paragraph, tree.Children[0].Kind)
}

func TestGroupList(t *testing.T) {
	tree := group(t, "- one\n- two\n")
	require.Len(t, tree.Children, 1)
	list := tree.Children[0]
	require.Equal(t, blocktree.List, list.Kind)
	require.Len(t, list.Children, 2)
	require.Equal(t, blocktree.ListItem, list.Children[0].Kind)
	require.Equal(t, "-", list.Children[0].Marker.Value)
}

func TestGroupSessionWithBody(t *testing.T) {
	tree := group(t, "Title\n    Body text\n")
	require.Len(t, tree.Children, 1)
	sess := tree.Children[0]
	require.Equal(t, blocktree.Session, sess.Kind)
	require.Len(t, sess.Children, 1)
	require.Equal(t, blocktree.Paragraph, sess.Children[0].Kind)
}

func TestGroupSessionWithBodySeparatedByBlankLine(t *testing.T) {
	// A session header separated from its indented body by a blank line
	// must still nest the body under the header, not lose it to the
	// intervening BlankLine marker (spec.md §4.3 scenario 4).
	tree := group(t, "Format Specifications\n\n    Content here.\n")
	require.Len(t, tree.Children, 2)
	sess := tree.Children[0]
	require.Equal(t, blocktree.Session, sess.Kind)
	require.Len(t, sess.Children, 1)
	require.Equal(t, blocktree.Paragraph, sess.Children[0].Kind)
	require.Equal(t, blocktree.Blank, tree.Children[1].Kind)
}

func TestGroupVerbatimWithLabel(t *testing.T) {
	tree := group(t, "Code:\n    print(1)\n(go)\n")
	require.Len(t, tree.Children, 1)
	v := tree.Children[0]
	require.Equal(t, blocktree.Verbatim, v.Kind)
	require.Len(t, v.Lines, 3)
}

func TestGroupVerbatimFollowedByParagraphNoBlankLine(t *testing.T) {
	// A verbatim region that closes by dedent, with no blank line before
	// the next paragraph, must still split into two distinct blocks.
	tree := group(t, "Code:\n    print(1)\nDone\n")
	require.Len(t, tree.Children, 2)
	require.Equal(t, blocktree.Verbatim, tree.Children[0].Kind)
	require.Equal(t, blocktree.Paragraph, tree.Children[1].Kind)
}

func TestGroupSessionInContentContainerIsError(t *testing.T) {
	// A definition's body is a content container: a nested session there is
	// structurally invalid (spec.md's ContentContainer invariant).
	lx := lex.New([]byte("Term ::\n    Nested title\n        Nested body\n"))
	toks := lx.Run()
	require.Empty(t, lx.Errors())
	_, errs := blocktree.Group(toks)
	require.NotEmpty(t, errs)
}
