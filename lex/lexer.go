package lex

import (
	"bytes"

	"github.com/arthurdebert/txxt/span"
)

// Error is a lexical-severity issue encountered while scanning (spec.md
// §7): a dedent to a column that matches no enclosing indent level. The
// assembler turns each one into an error-severity Diagnostic with
// ast.CodeIndentMismatch.
type Error struct {
	Pos     span.Position
	Message string
}

// Lexer runs Pass 0 (verbatim scanning) and Pass 1 (tokenization) over a
// complete source buffer, producing an ordered Token stream.
//
// Mirrors scandown.BlockStack in spirit -- a single-pass, line-at-a-time
// scan maintaining a small stack of open structure -- but scans the whole
// buffer at once rather than as a bufio.SplitFunc, since the Pass 0
// verbatim pre-scan already requires looking ahead past the current line.
type Lexer struct {
	source  []byte
	regions *RegionSet
	lines   []lineInfo
	tracker *span.Tracker
	stack   []int
	out     []Token
	errs    []Error
}

// New constructs a Lexer for source, running the verbatim pre-pass
// immediately.
func New(source []byte) *Lexer {
	regions := ScanVerbatim(source)
	return &Lexer{
		source:  source,
		regions: NewRegionSet(regions),
		lines:   scanLines(source),
		tracker: span.NewTracker(),
		stack:   []int{0},
	}
}

// Tokenize is a single-shot convenience wrapping New(source).Run().
func Tokenize(source []byte) []Token {
	return New(source).Run()
}

// Errors returns any lexical errors accumulated during Run.
func (lx *Lexer) Errors() []Error { return lx.errs }

// Run performs the full scan, returning the token stream. It is safe to
// call only once per Lexer.
func (lx *Lexer) Run() []Token {
	i := 0
	for i < len(lx.lines) {
		line := lx.lines[i]

		if isBlankLine(line) {
			lx.emitBlank(line)
			i++
			continue
		}

		if region, ok := lx.regions.At(line.ContentStart); ok {
			i = lx.runVerbatim(i, region)
			continue
		}

		lx.runIndent(line.Indent)
		lx.advanceTo(line.ContentStart)
		lx.classifyLine(line)
		i++
	}

	lx.closeIndent()
	return lx.out
}

func isBlankLine(line lineInfo) bool {
	return len(bytes.TrimSpace(line.Trimmed)) == 0
}

func (lx *Lexer) advanceTo(offset int) {
	pos := lx.tracker.Pos()
	if offset > pos.Offset {
		lx.tracker.AdvanceBytes(lx.source[pos.Offset:offset])
	}
}

func (lx *Lexer) emitBlank(line lineInfo) {
	start := lx.tracker.Pos()
	lx.tracker.AdvanceBytes(lx.source[line.Start:line.End])
	end := lx.tracker.Pos()
	if start.Offset == end.Offset {
		return // a truly empty final line contributes no token
	}
	lx.out = append(lx.out, Token{Kind: BlankLine, Span: span.Span{Start: start, End: end}})
}

// runIndent applies the indent-stack comparison rule (spec.md §4.2) at the
// position the tracker currently occupies (the start of the line, before
// its leading whitespace is consumed): c>top pushes+Indent, c<top pops
// (and signals a mismatch as a lexical Error), c==top is silent.
func (lx *Lexer) runIndent(c int) {
	pos := lx.tracker.Pos()
	top := lx.stack[len(lx.stack)-1]
	switch {
	case c > top:
		lx.stack = append(lx.stack, c)
		lx.out = append(lx.out, Token{Kind: Indent, Span: span.Span{Start: pos, End: pos}})
	case c < top:
		for len(lx.stack) > 0 && lx.stack[len(lx.stack)-1] > c {
			lx.stack = lx.stack[:len(lx.stack)-1]
			lx.out = append(lx.out, Token{Kind: Dedent, Span: span.Span{Start: pos, End: pos}})
		}
		if len(lx.stack) == 0 || lx.stack[len(lx.stack)-1] != c {
			lx.stack = append(lx.stack, c)
			lx.errs = append(lx.errs, Error{Pos: pos, Message: "indentation does not match any enclosing level"})
		}
	}
}

func (lx *Lexer) closeIndent() {
	pos := lx.tracker.Pos()
	for len(lx.stack) > 1 {
		lx.stack = lx.stack[:len(lx.stack)-1]
		lx.out = append(lx.out, Token{Kind: Dedent, Span: span.Span{Start: pos, End: pos}})
	}
}

// classifyLine recognizes and tokenizes one non-blank, non-verbatim line,
// in the priority order of spec.md §4.2.
func (lx *Lexer) classifyLine(line lineInfo) {
	content := bytes.TrimRight(line.Trimmed, " \t")
	raw := lx.source[lx.tracker.Pos().Offset : line.ContentStart+len(line.Trimmed)]

	switch {
	case bytes.HasPrefix(content, []byte("::")):
		lx.out = append(lx.out, lexAnnotationLine(lx.tracker, raw)...)

	case len(content) >= 2 && bytes.HasSuffix(content, []byte("::")) && !bytes.HasPrefix(content, []byte("::")):
		lx.out = append(lx.out, lexDefinitionLine(lx.tracker, raw)...)

	default:
		if m, ok := matchSequenceMarker(raw); ok {
			start := lx.tracker.Pos()
			lx.tracker.AdvanceBytes(raw[:m.width])
			lx.out = append(lx.out, Token{
				Kind:      SequenceMarker,
				Span:      span.Span{Start: start, End: lx.tracker.Pos()},
				Value:     m.text,
				ListStyle: m.style,
				ListForm:  m.form,
			})
			rest := raw[m.width:]
			rest = skipSpaces(lx.tracker, rest)
			if len(rest) > 0 {
				lx.out = append(lx.out, lexInline(lx.tracker, rest)...)
			}
		} else {
			lx.out = append(lx.out, lexInline(lx.tracker, raw)...)
		}
	}

	// advance across, and emit a token for, the line's own trailing bytes
	// (any whitespace trimmed above, plus the newline).
	tail := lx.source[lx.tracker.Pos().Offset:line.End]
	if len(tail) == 0 {
		return
	}
	if nlIdx := bytes.IndexByte(tail, '\n'); nlIdx >= 0 {
		lx.tracker.AdvanceBytes(tail[:nlIdx])
		start := lx.tracker.Pos()
		lx.tracker.Advance('\n')
		lx.out = append(lx.out, Token{Kind: Newline, Span: span.Span{Start: start, End: lx.tracker.Pos()}})
	} else {
		lx.tracker.AdvanceBytes(tail)
	}
}

// runVerbatim tokenizes the full region starting at line index i (whose
// header line was already confirmed to open region), returning the index
// of the next unconsumed line.
func (lx *Lexer) runVerbatim(i int, region *Region) int {
	line := lx.lines[i]

	lx.runIndent(line.Indent)
	lx.advanceTo(region.HeaderStart)

	startPos := lx.tracker.Pos()
	lx.tracker.AdvanceBytes(lx.source[region.HeaderStart:region.HeaderEnd])
	lx.out = append(lx.out, Token{
		Kind:  VerbatimStart,
		Span:  span.Span{Start: startPos, End: lx.tracker.Pos()},
		Value: string(bytes.TrimSpace(lx.source[region.HeaderStart:region.HeaderEnd])),
	})
	lx.advanceTo(line.End)

	j := i + 1
	for j < len(lx.lines) && lx.lines[j].Start < region.ContentEnd {
		cl := lx.lines[j]
		consumed, rest := trimColumns(lx.source[cl.Start:cl.End], region.ContentIndent)
		lx.advanceTo(cl.Start + consumed)
		start := lx.tracker.Pos()
		lx.tracker.AdvanceBytes(rest)
		// rest includes the line's own trailing newline whenever the line
		// has one (lineInfo.End does), so a blank content line inside the
		// region still yields a non-empty span.
		lx.out = append(lx.out, Token{Kind: VerbatimContent, Span: span.Span{Start: start, End: lx.tracker.Pos()}, Value: string(rest)})
		j++
	}

	if region.HasLabel {
		labelLine := lx.lines[j]
		lx.advanceTo(labelLine.ContentStart)
		labelStart := lx.tracker.Pos()
		labelText := bytes.TrimRight(labelLine.Trimmed, " \t")
		lx.tracker.AdvanceBytes(labelText)
		lx.out = append(lx.out, Token{Kind: VerbatimEnd, Span: span.Span{Start: labelStart, End: lx.tracker.Pos()}, Value: region.Label})
		lx.advanceTo(labelLine.End)
		j++
	} else {
		// no closing "(label)" line: VerbatimEnd carries no literal text of
		// its own, so (like Indent/Dedent) it is a documented zero-width
		// exception to the non-empty-span invariant. A line at or below the
		// opening column closes the region (spec.md §4.1); running off the
		// end of input is just that rule's degenerate case, not an error, so
		// no diagnostic is raised here.
		pos := lx.tracker.Pos()
		lx.out = append(lx.out, Token{Kind: VerbatimEnd, Span: span.Span{Start: pos, End: pos}})
	}

	return j
}
