package lex

import "strings"

// matchComponent recognizes the body of a single sequence-marker component
// at the start of line: a digit run, a roman numeral run, a single alpha
// letter, or a lone "-" (spec.md §4.2 item 2). It reports the component's
// class, its byte width (not including any "." or ")" delimiter), and
// whether a component was recognized at all; the delimiter and the
// trailing space are checked by matchSequenceMarker.
//
// Grounded on scandown's delimiter/ordinal helpers, retargeted from
// Markdown's bullet/ordinal-only grammar to TXXT's alpha/roman styles.
func matchComponent(line []byte) (style ListStyle, width int, ok bool) {
	if len(line) == 0 {
		return StyleNone, 0, false
	}
	if line[0] == '-' {
		return StylePlain, 1, true
	}
	// digit run
	if isDigit(line[0]) {
		n := 0
		for n < len(line) && isDigit(line[n]) {
			n++
		}
		return StyleNumerical, n, true
	}
	// roman numeral run (all same case)
	if w := romanRunLen(line, true); w > 0 {
		return StyleRomanLower, w, true
	}
	if w := romanRunLen(line, false); w > 0 {
		return StyleRomanUpper, w, true
	}
	// single alpha letter
	if isLower(line[0]) {
		return StyleAlphaLower, 1, true
	}
	if isUpper(line[0]) {
		return StyleAlphaUpper, 1, true
	}
	return StyleNone, 0, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func romanRunLen(line []byte, lower bool) int {
	set := "IVXLCDM"
	if lower {
		set = "ivxlcdm"
	}
	n := 0
	for n < len(line) && strings.IndexByte(set, line[n]) >= 0 {
		n++
	}
	// a bare single letter run is only treated as roman if it's one of the
	// letters that also forms a valid roman numeral on its own (all of
	// I,V,X,L,C,D,M qualify); multi-letter runs are accepted as-is, matching
	// this format's convention of never distinguishing "valid" from
	// "well-formed" roman numerals at the lexer layer (left to linters).
	return n
}

// matchedMarker describes a (possibly compound) recognized marker.
type matchedMarker struct {
	text  string
	style ListStyle
	form  bool // true: Full (multi-component, e.g. "1.a.i)")
	width int  // bytes consumed, excluding the trailing space
}

// matchSequenceMarker recognizes a full marker at the start of line,
// including compound hierarchical forms like "1.a.i)" (spec.md §3.4
// form=Full), requiring at least one trailing space/tab after the final
// delimiter.
func matchSequenceMarker(line []byte) (m matchedMarker, ok bool) {
	style, width, ok := matchComponent(line)
	if !ok || width == 0 {
		return matchedMarker{}, false
	}
	pos := width
	if pos >= len(line) {
		return matchedMarker{}, false
	}
	delim := line[pos]
	if delim != '.' && delim != ')' {
		if style == StylePlain {
			// bare "-" has no delimiter byte of its own
		} else {
			return matchedMarker{}, false
		}
	} else {
		pos++
	}

	components := 1
	for pos < len(line) && (line[pos-1] == '.' || line[pos-1] == ')') {
		sub, w, sok := matchComponent(line[pos:])
		if !sok || w == 0 {
			break
		}
		subEnd := pos + w
		if subEnd >= len(line) {
			break
		}
		subDelim := line[subEnd]
		if subDelim != '.' && subDelim != ')' {
			break
		}
		_ = sub
		pos = subEnd + 1
		components++
	}

	if pos >= len(line) {
		// marker consumed the whole remainder with no trailing space: only
		// legal at true EOL (handled by caller passing just the tail)
	} else if c := line[pos]; c != ' ' && c != '\t' {
		return matchedMarker{}, false
	}

	return matchedMarker{
		text:  string(line[:pos]),
		style: style,
		form:  components > 1,
		width: pos,
	}, true
}
