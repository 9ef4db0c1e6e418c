package lex

import (
	"bytes"

	"github.com/arthurdebert/txxt/span"
)

// lexAnnotationLine tokenizes a line already known to start with "::"
// (after indentation), recognizing the label, an optional parameter block,
// an optional closing "::", and any trailing inline value content
// (spec.md §4.2 item 1, §4.2 "Parameters").
func lexAnnotationLine(tracker *span.Tracker, content []byte) []Token {
	var out []Token

	start := tracker.Pos()
	tracker.AdvanceBytes(content[:2])
	out = append(out, Token{Kind: AnnotationMarker, Span: span.Span{Start: start, End: tracker.Pos()}, Value: "::"})
	rest := content[2:]
	rest = skipSpaces(tracker, rest)

	// label
	labelEnd := indexAny(rest, " \t:")
	if labelEnd < 0 {
		labelEnd = len(rest)
	}
	if labelEnd > 0 {
		labelStart := tracker.Pos()
		tracker.AdvanceBytes(rest[:labelEnd])
		kind := Identifier
		if bytes.ContainsAny(rest[:labelEnd], " \t") {
			kind = Text
		}
		out = append(out, Token{Kind: kind, Span: span.Span{Start: labelStart, End: tracker.Pos()}, Value: string(rest[:labelEnd])})
		rest = rest[labelEnd:]
	}
	rest = skipSpaces(tracker, rest)

	// optional parameter block: a single ':' (not "::") followed by
	// key=value[,key=value...]
	if len(rest) > 0 && rest[0] == ':' && !(len(rest) > 1 && rest[1] == ':') {
		paramStart := tracker.Pos()
		tracker.Advance(':')
		out = append(out, Token{Kind: Colon, Span: span.Span{Start: paramStart, End: tracker.Pos()}, Value: ":"})
		rest = rest[1:]
		blockEnd := indexAny(rest, " \t")
		if blockEnd < 0 {
			blockEnd = len(rest)
		}
		// the block may still contain a trailing "::" marker glued on
		// (e.g. "lang=en::"); split it off first.
		if dd := bytes.Index(rest[:blockEnd], []byte("::")); dd >= 0 {
			blockEnd = dd
		}
		block := rest[:blockEnd]
		out = append(out, lexParamBlock(tracker, block)...)
		rest = rest[blockEnd:]
	}
	rest = skipSpaces(tracker, rest)

	if len(rest) >= 2 && rest[0] == ':' && rest[1] == ':' {
		markerStart := tracker.Pos()
		tracker.AdvanceBytes(rest[:2])
		out = append(out, Token{Kind: AnnotationMarker, Span: span.Span{Start: markerStart, End: tracker.Pos()}, Value: "::"})
		rest = rest[2:]
		rest = skipSpaces(tracker, rest)
	}

	if len(rest) > 0 {
		out = append(out, lexInline(tracker, rest)...)
	}
	return out
}

// lexDefinitionLine tokenizes a line known to end with "::" (a term
// definition, spec.md §4.2 item 3): inline content for the term, then a
// DefinitionMarker for the trailing "::".
func lexDefinitionLine(tracker *span.Tracker, content []byte) []Token {
	trimmed := bytes.TrimRight(content, " \t")
	termEnd := len(trimmed) - 2
	if termEnd > 0 && trimmed[termEnd-1] == ' ' {
		termEnd--
	}
	if termEnd < 0 {
		termEnd = 0
	}

	var out []Token
	if termEnd > 0 {
		out = append(out, lexInline(tracker, content[:termEnd])...)
	}
	gap := content[termEnd : len(trimmed)-2]
	tracker.AdvanceBytes(gap)

	markerStart := tracker.Pos()
	tracker.AdvanceBytes(trimmed[len(trimmed)-2:])
	out = append(out, Token{Kind: DefinitionMarker, Span: span.Span{Start: markerStart, End: tracker.Pos()}, Value: "::"})

	trailing := content[len(trimmed):]
	tracker.AdvanceBytes(trailing)
	return out
}

// lexParamBlock splits a "key=value,key=value" block into Parameter
// tokens, each spanning its own "key=value" pair.
func lexParamBlock(tracker *span.Tracker, block []byte) []Token {
	var out []Token
	for len(block) > 0 {
		end := indexCommaOutsideQuotes(block)
		var pair []byte
		if end < 0 {
			pair, block = block, nil
		} else {
			pair, block = block[:end], block[end+1:]
		}
		start := tracker.Pos()
		tracker.AdvanceBytes(pair)
		out = append(out, Token{Kind: Parameter, Span: span.Span{Start: start, End: tracker.Pos()}, Value: string(pair)})
		if block != nil {
			tracker.Advance(',')
		}
	}
	return out
}

func indexCommaOutsideQuotes(b []byte) int {
	inQuote := false
	for i, c := range b {
		switch c {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

func skipSpaces(tracker *span.Tracker, b []byte) []byte {
	n := 0
	for n < len(b) && (b[n] == ' ' || b[n] == '\t') {
		n++
	}
	tracker.AdvanceBytes(b[:n])
	return b[n:]
}

func indexAny(b []byte, chars string) int {
	for i, c := range b {
		for _, want := range []byte(chars) {
			if c == want {
				return i
			}
		}
	}
	return -1
}
