// Package blocktree implements the block grouper (spec.md §4.3): it turns
// a flat lex.Token stream into a hierarchical tree of semantic blocks with
// uniform container semantics, the intermediate representation consumed by
// package assemble.
//
// Grounded on cmd/soc/outline.go's approach of layering a parent-tracking
// structure on top of a scandown.BlockStack's live indent/container
// events; here the "container stack" being tracked is this format's
// Indent/Dedent token pair rather than scandown's block-open/close pairs.
package blocktree

import (
	"fmt"

	"github.com/arthurdebert/txxt/lex"
	"github.com/arthurdebert/txxt/span"
)

// Kind discriminates a Block's semantic role in the intermediate tree
// (spec.md §3.3).
type Kind int

// Kind constants.
const (
	Root Kind = iota
	Session
	Paragraph
	List
	ListItem
	Definition
	Annotation
	Verbatim
	TextLine
	Blank
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "Root"
	case Session:
		return "Session"
	case Paragraph:
		return "Paragraph"
	case List:
		return "List"
	case ListItem:
		return "ListItem"
	case Definition:
		return "Definition"
	case Annotation:
		return "Annotation"
	case Verbatim:
		return "Verbatim"
	case TextLine:
		return "TextLine"
	case Blank:
		return "BlankLine"
	default:
		return fmt.Sprintf("InvalidKind%d", int(k))
	}
}

// Container discriminates the child-kind constraint a Block with children
// enforces (spec.md §3.3): Content permits any kind except Session; Session
// permits any kind including nested Session.
type Container int

// Container constants.
const (
	NoContainer Container = iota
	ContentContainer
	SessionContainer
)

func (c Container) String() string {
	switch c {
	case ContentContainer:
		return "Content"
	case SessionContainer:
		return "Session"
	default:
		return "None"
	}
}

// Block is a node of the intermediate block tree.
type Block struct {
	Kind      Kind
	Container Container

	// Lines holds every raw-line token run folded into this block: for
	// most kinds this is a single line (Header == Lines[0]); Paragraph may
	// fold several consecutive text lines; Verbatim holds the
	// VerbatimStart/Content*/End line runs in source order.
	Lines [][]lex.Token

	// Marker is set only for ListItem: the SequenceMarker token that
	// introduced it (spec.md §3.4, "each ListItem preserves its literal
	// marker_text").
	Marker lex.Token

	Span     span.Span
	Children []*Block
}

// Header returns the block's first line of tokens, the common case used
// by every kind except Paragraph/Verbatim.
func (b *Block) Header() []lex.Token {
	if len(b.Lines) == 0 {
		return nil
	}
	return b.Lines[0]
}

// Error reports a structural error encountered while grouping (spec.md
// §7): a Session placed where only content is allowed.
type Error struct {
	Span    span.Span
	Message string
}
