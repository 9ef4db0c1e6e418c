package ast

import (
	"fmt"

	"github.com/arthurdebert/txxt/lex"
	"github.com/arthurdebert/txxt/span"
)

// Identity is a run of plain text with no inline formatting applied.
type Identity struct {
	SpanVal span.Span
	Text    string
}

// Strong is "*...*" delimited content.
type Strong struct {
	SpanVal  span.Span
	Children []Inline
}

// Emphasis is "_..._" delimited content.
type Emphasis struct {
	SpanVal  span.Span
	Children []Inline
}

// CodeSpan is "`...`" delimited literal content: never recursively parsed.
type CodeSpan struct {
	SpanVal span.Span
	Text    string
}

// Math is "#...#" delimited literal content: never recursively parsed.
type Math struct {
	SpanVal span.Span
	Text    string
}

// Reference is a "[...]" bracketed reference of any kind (spec.md §4.2):
// file path, section anchor, citation key, footnote number, or page
// number, discriminated by Kind.
type Reference struct {
	SpanVal span.Span
	Kind    lex.RefKind
	Target  string
}

func (in *Identity) Span() span.Span  { return in.SpanVal }
func (in *Strong) Span() span.Span    { return in.SpanVal }
func (in *Emphasis) Span() span.Span  { return in.SpanVal }
func (in *CodeSpan) Span() span.Span  { return in.SpanVal }
func (in *Math) Span() span.Span      { return in.SpanVal }
func (in *Reference) Span() span.Span { return in.SpanVal }

func (*Identity) inlineNode()  {}
func (*Strong) inlineNode()    {}
func (*Emphasis) inlineNode()  {}
func (*CodeSpan) inlineNode()  {}
func (*Math) inlineNode()      {}
func (*Reference) inlineNode() {}

func (in *Identity) Format(f fmt.State, verb rune) { formatInline(f, "Identity", in.SpanVal, in.Text) }
func (in *Strong) Format(f fmt.State, verb rune) {
	formatInline(f, "Strong", in.SpanVal, fmt.Sprintf("children=%d", len(in.Children)))
}
func (in *Emphasis) Format(f fmt.State, verb rune) {
	formatInline(f, "Emphasis", in.SpanVal, fmt.Sprintf("children=%d", len(in.Children)))
}
func (in *CodeSpan) Format(f fmt.State, verb rune) { formatInline(f, "Code", in.SpanVal, in.Text) }
func (in *Math) Format(f fmt.State, verb rune)     { formatInline(f, "Math", in.SpanVal, in.Text) }
func (in *Reference) Format(f fmt.State, verb rune) {
	formatInline(f, "Reference", in.SpanVal, fmt.Sprintf("kind=%v target=%q", in.Kind, in.Target))
}

func formatInline(f fmt.State, name string, sp span.Span, detail string) {
	if f.Flag('+') {
		fmt.Fprintf(f, "%s@%+v=%q", name, sp, detail)
		return
	}
	fmt.Fprint(f, name)
}
