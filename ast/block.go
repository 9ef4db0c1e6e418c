package ast

import (
	"fmt"

	"github.com/arthurdebert/txxt/lex"
	"github.com/arthurdebert/txxt/span"
)

// Paragraph is a run of inline content with no structural role of its own.
type Paragraph struct {
	SpanVal     span.Span
	Content     []Inline
	Annotations []*Annotation // attached by proximity (spec.md §4.4)
}

// List is a uniform-style or mixed-style run of ListItems (spec.md §3.4).
type List struct {
	SpanVal      span.Span
	Style        lex.ListStyle
	Form         bool // true: Full (hierarchical marker_text observed)
	Inconsistent bool // true: items mix styles; style above is the majority
	Items        []*ListItem
	Annotations  []*Annotation // attached by proximity (spec.md §4.4)
}

// ListItem is one entry of a List, preserving its marker's literal text.
type ListItem struct {
	SpanVal     span.Span
	MarkerText  string
	Style       lex.ListStyle
	Content     []Inline
	Children    []Block
	Annotations []*Annotation // attached by proximity (spec.md §4.4)
}

// Session is a header line plus its nested content (spec.md §3.5), the
// format's only recursive container kind.
type Session struct {
	SpanVal     span.Span
	Title       []Inline
	Anchor      string
	Children    []Block
	Annotations []*Annotation // attached by proximity (spec.md §4.4)
}

// Definition is a "Term ::" header plus its indented content (spec.md
// §4.2 item 3).
type Definition struct {
	SpanVal     span.Span
	Term        []Inline
	Children    []Block
	Annotations []*Annotation // attached by proximity (spec.md §4.4)
}

// Annotation is a ":: label :: value" or ":: label :key=value :: value"
// line plus any nested content attached to it (spec.md §4.2, §4.4
// proximity rule). Annotations holds the annotations left trailing at the
// end of this annotation's own nested content; an annotation that precedes
// this one is not attached here but to the next non-annotation block.
type Annotation struct {
	SpanVal     span.Span
	Label       string
	Params      map[string]string
	Value       []Inline
	Children    []Block
	Annotations []*Annotation
}

// Verbatim is a fenced region of content preserved byte-for-byte (spec.md
// §4.1).
type Verbatim struct {
	SpanVal     span.Span
	Title       string
	Language    string
	Content     string
	Label       string        // identifier of the closing "(label)" line, if present
	Annotations []*Annotation // attached by proximity (spec.md §4.4)
}

// Error is the node the assembler emits for a grouped block of a kind it
// does not recognize. Lexical and structural failures (spec.md §7) do not
// produce Error nodes: they are reported as error-severity Diagnostics and
// the blocks stay in the tree as grouped.
type Error struct {
	SpanVal span.Span
	Message string
}

func (b *Paragraph) Span() span.Span  { return b.SpanVal }
func (b *List) Span() span.Span       { return b.SpanVal }
func (b *ListItem) Span() span.Span   { return b.SpanVal }
func (b *Session) Span() span.Span    { return b.SpanVal }
func (b *Definition) Span() span.Span { return b.SpanVal }
func (b *Annotation) Span() span.Span { return b.SpanVal }
func (b *Verbatim) Span() span.Span   { return b.SpanVal }
func (b *Error) Span() span.Span      { return b.SpanVal }

func (*Paragraph) blockNode()  {}
func (*List) blockNode()       {}
func (*ListItem) blockNode()   {}
func (*Session) blockNode()    {}
func (*Definition) blockNode() {}
func (*Annotation) blockNode() {}
func (*Verbatim) blockNode()   {}
func (*Error) blockNode()      {}

// Format mirrors scandown.Block.Format's two-mode convention: "%v" prints
// a one-line kind summary, "%+v" additionally prints the span and
// kind-specific detail.
func (b *Paragraph) Format(f fmt.State, verb rune) { formatBlock(f, "Paragraph", b.SpanVal, "") }

func (b *List) Format(f fmt.State, verb rune) {
	detail := fmt.Sprintf("style=%v form=%v inconsistent=%v items=%d", b.Style, b.Form, b.Inconsistent, len(b.Items))
	formatBlock(f, "List", b.SpanVal, detail)
}

func (b *ListItem) Format(f fmt.State, verb rune) {
	formatBlock(f, "ListItem", b.SpanVal, fmt.Sprintf("marker=%q", b.MarkerText))
}

func (b *Session) Format(f fmt.State, verb rune) {
	formatBlock(f, "Session", b.SpanVal, fmt.Sprintf("anchor=%q children=%d", b.Anchor, len(b.Children)))
}

func (b *Definition) Format(f fmt.State, verb rune) {
	formatBlock(f, "Definition", b.SpanVal, "")
}

func (b *Annotation) Format(f fmt.State, verb rune) {
	formatBlock(f, "Annotation", b.SpanVal, fmt.Sprintf("label=%q", b.Label))
}

func (b *Verbatim) Format(f fmt.State, verb rune) {
	formatBlock(f, "Verbatim", b.SpanVal, fmt.Sprintf("title=%q lang=%q", b.Title, b.Language))
}

func (b *Error) Format(f fmt.State, verb rune) {
	formatBlock(f, "Error", b.SpanVal, fmt.Sprintf("message=%q", b.Message))
}

func formatBlock(f fmt.State, name string, sp span.Span, detail string) {
	if f.Flag('+') {
		fmt.Fprintf(f, "%s@%+v", name, sp)
		if detail != "" {
			fmt.Fprintf(f, " %s", detail)
		}
		return
	}
	fmt.Fprint(f, name)
}
