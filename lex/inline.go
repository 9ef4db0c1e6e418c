package lex

import (
	"strconv"
	"strings"

	"github.com/arthurdebert/txxt/span"
)

// inlineScanner walks a single logical line of text content, recognizing
// inline formatting delimiters and reference brackets by local context
// only (spec.md §4.2); it does not balance delimiter pairs -- that is the
// assembler's job (spec.md §4.4), which degrades anything left unmatched
// back to literal text.
type inlineScanner struct {
	tracker *span.Tracker
	line    []byte // remaining bytes of the line, including any trailing newline
	out     []Token
	textBuf []byte
	textAt  span.Position
}

// lexInline tokenizes one line's worth of non-structural content,
// returning its tokens. line must not include the leading indentation (already
// consumed by the caller) but may include a trailing newline.
func lexInline(tracker *span.Tracker, line []byte) []Token {
	s := &inlineScanner{tracker: tracker, line: line}
	s.textAt = tracker.Pos()
	for len(s.line) > 0 {
		b := s.line[0]
		switch {
		case b == '[':
			s.flushText()
			if !s.scanReference() {
				s.consumeLiteral(1)
			}
		case isDelim(b):
			s.flushText()
			if !s.scanDelimiter(b) {
				s.consumeLiteral(1)
			}
		default:
			s.consumeLiteral(1)
		}
	}
	s.flushText()
	return s.out
}

func isDelim(b byte) bool {
	switch b {
	case '*', '_', '`', '#':
		return true
	default:
		return false
	}
}

func (s *inlineScanner) consumeLiteral(n int) {
	if len(s.textBuf) == 0 {
		s.textAt = s.tracker.Pos()
	}
	s.textBuf = append(s.textBuf, s.line[:n]...)
	s.tracker.AdvanceBytes(s.line[:n])
	s.line = s.line[n:]
}

func (s *inlineScanner) flushText() {
	if len(s.textBuf) == 0 {
		return
	}
	end := s.tracker.Pos()
	s.out = append(s.out, Token{
		Kind:  Text,
		Span:  span.Span{Start: s.textAt, End: end},
		Value: string(s.textBuf),
	})
	s.textBuf = s.textBuf[:0]
}

// leftOK reports whether the byte just before the current position (prev,
// 0 if none) is valid context for an opening delimiter: whitespace, line
// start, or another opening delimiter.
func leftOK(prev byte, hasPrev bool) bool {
	if !hasPrev {
		return true
	}
	switch prev {
	case ' ', '\t', '\n':
		return true
	case '*', '_', '`', '#':
		return true
	default:
		return false
	}
}

// rightOKOpen reports whether the byte right after an opening delimiter is
// valid: immediately non-space.
func rightOKOpen(next byte, hasNext bool) bool {
	if !hasNext {
		return false
	}
	return next != ' ' && next != '\t' && next != '\n'
}

// leftOKClose reports whether the byte right before a candidate closing
// delimiter is valid: immediately non-space.
func leftOKClose(prev byte, hasPrev bool) bool {
	return hasPrev && prev != ' ' && prev != '\t' && prev != '\n'
}

// rightOKClose reports whether the byte right after a candidate closing
// delimiter is valid: whitespace, punctuation, line end, or another
// closing delimiter.
func rightOKClose(next byte, hasNext bool) bool {
	if !hasNext {
		return true
	}
	switch next {
	case ' ', '\t', '\n', '.', ',', ';', ':', '!', '?', ')', ']', '"', '\'':
		return true
	case '*', '_', '`', '#':
		return true
	default:
		return false
	}
}

func delimKinds(b byte) (open, close Kind) {
	switch b {
	case '*':
		return StrongOpen, StrongClose
	case '_':
		return EmphasisOpen, EmphasisClose
	case '`':
		return CodeOpen, CodeClose
	case '#':
		return MathOpen, MathClose
	default:
		return noKind, noKind
	}
}

// scanDelimiter attempts to classify the run of delimiter byte b starting
// at s.line[0] as an Open or Close token. It consumes and emits exactly
// one token on success; returns false (consuming nothing) if b is neither
// a valid opener nor closer in context, leaving it to be folded into
// literal text by the caller.
func (s *inlineScanner) scanDelimiter(b byte) bool {
	// lexInline flushes pending literal text before calling here, so the
	// byte just before b is the last source byte of the most recent token
	// on this line: the closing ']' of a reference, or else the last byte
	// of a Text or delimiter token's Value.
	var prevByte byte
	hasPrev := false
	if n := len(s.out); n > 0 {
		switch last := s.out[n-1]; {
		case last.Kind == RefMarker || last.Kind == FootnoteNumber:
			prevByte, hasPrev = ']', true
		case last.Value != "":
			prevByte, hasPrev = last.Value[len(last.Value)-1], true
		}
	}
	var nextByte byte
	hasNext := len(s.line) > 1
	if hasNext {
		nextByte = s.line[1]
	}

	open, closeKind := delimKinds(b)

	if leftOK(prevByte, hasPrev) && rightOKOpen(nextByte, hasNext) {
		start := s.tracker.Pos()
		s.tracker.Advance(b)
		s.line = s.line[1:]
		s.out = append(s.out, Token{Kind: open, Span: span.Span{Start: start, End: s.tracker.Pos()}, Value: string(b)})
		return true
	}
	if leftOKClose(prevByte, hasPrev) && rightOKClose(nextByte, hasNext) {
		start := s.tracker.Pos()
		s.tracker.Advance(b)
		s.line = s.line[1:]
		s.out = append(s.out, Token{Kind: closeKind, Span: span.Span{Start: start, End: s.tracker.Pos()}, Value: string(b)})
		return true
	}
	return false
}

// scanReference recognizes a "[...]" reference bracket on the current
// line, classifying its RefKind by leading content byte (spec.md §4.2).
// Returns false, consuming nothing, if no matching ']' appears on this
// line.
func (s *inlineScanner) scanReference() bool {
	end := indexByteNoNewline(s.line, ']')
	if end < 0 {
		return false
	}
	whole := s.line[:end+1]
	inner := whole[1:end]

	start := s.tracker.Pos()
	s.tracker.AdvanceBytes(whole)
	s.line = s.line[len(whole):]
	refSpan := span.Span{Start: start, End: s.tracker.Pos()}

	kind, value, innerOffset := classifyReference(inner)
	s.out = append(s.out, Token{Kind: RefMarker, Span: refSpan, RefKind: kind, Value: value})

	if kind == RefFootnote {
		numStart := start
		numStart.Offset += 1 + innerOffset
		numStart.Col += 1 + innerOffset
		numEnd := numStart
		numEnd.Offset += len(value)
		numEnd.Col += len(value)
		s.out = append(s.out, Token{Kind: FootnoteNumber, Span: span.Span{Start: numStart, End: numEnd}, Value: value})
	}
	return true
}

func indexByteNoNewline(b []byte, c byte) int {
	for i, x := range b {
		if x == '\n' {
			return -1
		}
		if x == c {
			return i
		}
	}
	return -1
}

// classifyReference discriminates [...] content by leading character,
// returning the reference's kind, its logical value, and the byte offset
// within inner where that value begins (used only for footnote number
// spans).
func classifyReference(inner []byte) (kind RefKind, value string, valueOffset int) {
	s := string(inner)
	switch {
	case strings.HasPrefix(s, "@"):
		return RefCitation, s[1:], 1
	case strings.HasPrefix(s, "#"):
		return RefSection, s[1:], 1
	case strings.HasPrefix(s, "p.") || strings.HasPrefix(s, "p. "):
		rest := strings.TrimPrefix(s, "p.")
		rest = strings.TrimLeft(rest, " ")
		if _, err := strconv.Atoi(rest); err == nil {
			return RefPage, rest, len(s) - len(rest)
		}
		return RefFile, s, 0
	case isAllDigits(s):
		return RefFootnote, s, 0
	default:
		return RefFile, s, 0
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
