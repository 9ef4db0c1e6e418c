// Package span provides byte-offset-plus-line/column source positions and
// the closed-open spans built from them, shared by every stage of the TXXT
// parsing pipeline.
package span

import "fmt"

// Position identifies a single byte offset within a source buffer, along
// with its 1-based line and column. A tab advances the column to the next
// 4-column tab stop, matching the indentation-width rule in the surface
// grammar; Offset always counts a tab as a single byte.
type Position struct {
	Offset int
	Line   int
	Col    int
}

// Format writes "line:col" (or "line:col(+offset)" under %+v).
func (p Position) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "%d:%d", p.Line, p.Col)
	if f.Flag('+') {
		fmt.Fprintf(f, "(+%d)", p.Offset)
	}
}

// Less reports whether p sorts strictly before other by byte offset.
func (p Position) Less(other Position) bool { return p.Offset < other.Offset }

// Span is a closed-open [Start, End) region of source bytes. A parent
// node's span must cover every child's span, but need not equal their
// union -- it may include intervening whitespace.
type Span struct {
	Start Position
	End   Position
}

// Empty returns true for a zero-width span (among tokens, legal only for
// the synthetic Indent/Dedent tokens and an unlabeled VerbatimEnd).
func (s Span) Empty() bool { return s.Start.Offset == s.End.Offset }

// Len returns the span's width in bytes.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

// Contains reports whether the given byte offset falls within the
// receiver's closed-open range.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Cover returns the smallest span containing both the receiver and other.
func (s Span) Cover(other Span) Span {
	cov := s
	if other.Start.Offset < cov.Start.Offset {
		cov.Start = other.Start
	}
	if other.End.Offset > cov.End.Offset {
		cov.End = other.End
	}
	return cov
}

// Format writes "start-end" using Position's own formatting.
func (s Span) Format(f fmt.State, verb rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "%+v-%+v", s.Start, s.End)
	} else {
		fmt.Fprintf(f, "%v-%v", s.Start, s.End)
	}
}

// Tracker advances a Position across bytes, maintaining offset/line/column,
// honoring the 4-column tab-width rule used by the indentation grammar.
type Tracker struct {
	pos Position
}

// NewTracker returns a Tracker starting at line 1, column 1, offset 0.
func NewTracker() *Tracker {
	return &Tracker{pos: Position{Line: 1, Col: 1}}
}

// Pos returns the current position.
func (t *Tracker) Pos() Position { return t.pos }

// Advance moves the tracker across b, a single byte, updating line/column
// bookkeeping; it returns the position just before consuming b.
func (t *Tracker) Advance(b byte) Position {
	before := t.pos
	t.pos.Offset++
	switch b {
	case '\n':
		t.pos.Line++
		t.pos.Col = 1
	case '\t':
		t.pos.Col += 4 - (t.pos.Col-1)%4
	default:
		t.pos.Col++
	}
	return before
}

// AdvanceBytes advances the tracker across every byte of p in order.
func (t *Tracker) AdvanceBytes(p []byte) {
	for _, b := range p {
		t.Advance(b)
	}
}
