package lex

import (
	"bytes"
	"strings"

	"github.com/arthurdebert/txxt/span"
)

// Region is a single verbatim region identified by the Pass 0 scanner: a
// non-overlapping half-open byte range tagged with the indent of its
// opening line and an optional (lang) label.
//
// Grounded on scandown.BlockStack's line-at-a-time matching style, but run
// as a standalone pre-pass (spec.md §4.1 requires verbatim detection to
// precede, and suspend, normal lexing) rather than interleaved with it.
type Region struct {
	HeaderStart int // byte offset of the first non-whitespace rune of the header line
	HeaderEnd   int // byte offset of the header line's terminating colon (exclusive of trailing ws/newline)
	OpenIndent  int // column width (tabs=4) of the header line

	ContentStart  int // byte offset where verbatim content begins (start of the line after the header)
	ContentEnd    int // byte offset where verbatim content ends (exclusive)
	ContentIndent int // column width (tabs=4) trimmed from every content line

	HasLabel  bool
	Label     string
	LabelSpan span.Span

	End int // byte offset where the whole region ends (content end, or after the label line)
}

// lineInfo describes one physical line of source, split on '\n', keeping
// the trailing newline (if any) within End.
type lineInfo struct {
	Start, End   int // [Start,End) includes any trailing \n
	ContentStart int // Start of non-whitespace content (rune-column tracked separately)
	Indent       int // column width of leading whitespace, tabs=4
	Trimmed      []byte
}

func scanLines(source []byte) []lineInfo {
	var lines []lineInfo
	start := 0
	for start <= len(source) {
		nl := bytes.IndexByte(source[start:], '\n')
		var end int
		if nl < 0 {
			end = len(source)
		} else {
			end = start + nl + 1
		}
		line := source[start:end]
		indent, rest := leadingIndent(line)
		trimmed := bytes.TrimRight(rest, "\r\n")
		lines = append(lines, lineInfo{
			Start:        start,
			End:          end,
			ContentStart: start + (len(line) - len(rest)),
			Indent:       indent,
			Trimmed:      trimmed,
		})
		if nl < 0 {
			break
		}
		start = end
	}
	return lines
}

// leadingIndent reports the column-width (tabs=4) of line's leading
// space/tab run, and returns the remaining bytes.
func leadingIndent(line []byte) (indent int, rest []byte) {
	rest = line
	for len(rest) > 0 {
		switch rest[0] {
		case ' ':
			indent++
			rest = rest[1:]
		case '\t':
			indent += 4 - indent%4
			rest = rest[1:]
		default:
			return indent, rest
		}
	}
	return indent, rest
}

// isVerbatimHeader reports whether trimmed (a line's content, without
// leading indent or trailing newline) is a verbatim-opening line: its
// non-whitespace content ends in a solitary colon, not a doubled "::"
// (which belongs to an annotation/definition marker instead).
func isVerbatimHeader(trimmed []byte) (headerEnd int, ok bool) {
	t := bytes.TrimRight(trimmed, " \t")
	if len(t) == 0 || t[len(t)-1] != ':' {
		return 0, false
	}
	if len(t) >= 2 && t[len(t)-2] == ':' {
		return 0, false // "::" is an annotation/definition marker, not verbatim
	}
	return len(t) - 1, true
}

// parseLabel recognizes a "(identifier)" label line: nothing besides the
// parenthesized token once surrounding whitespace is trimmed. The caller
// checks that the line sits at the opening indent.
func parseLabel(trimmed []byte) (label string, ok bool) {
	s := strings.TrimSpace(string(trimmed))
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		return "", false
	}
	for _, r := range inner {
		if !(r == '-' || r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return "", false
		}
	}
	return inner, true
}

// ScanVerbatim runs the Pass 0 pre-pass over source, identifying every
// verbatim region as a non-overlapping half-open byte range.
func ScanVerbatim(source []byte) []Region {
	lines := scanLines(source)
	var regions []Region

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if len(bytes.TrimSpace(line.Trimmed)) == 0 {
			continue // blank lines never open a region
		}
		headerEnd, ok := isVerbatimHeader(line.Trimmed)
		if !ok {
			continue
		}

		// find the first following line that isn't blank
		j := i + 1
		for j < len(lines) && len(bytes.TrimSpace(lines[j].Trimmed)) == 0 {
			j++
		}
		if j >= len(lines) || lines[j].Indent <= line.Indent {
			continue // no indented successor: not verbatim (spec.md §4.1 edge case)
		}

		region := Region{
			HeaderStart:   line.ContentStart,
			HeaderEnd:     line.ContentStart + headerEnd,
			OpenIndent:    line.Indent,
			ContentStart:  lines[i+1].Start,
			ContentIndent: lines[j].Indent,
		}

		k := i + 1
		for k < len(lines) {
			cur := lines[k]
			if len(bytes.TrimSpace(cur.Trimmed)) == 0 {
				k++
				continue
			}
			if cur.Indent > line.Indent {
				k++
				continue
			}
			break
		}
		// k now indexes the first line at-or-below openIndent (or len(lines));
		// running off the end of lines closes the region just as validly as
		// dedenting into a real line does (spec.md §4.1).
		region.ContentEnd = lineStartOrEnd(lines, k)
		region.End = region.ContentEnd

		if k < len(lines) && lines[k].Indent == line.Indent {
			if label, ok := parseLabel(lines[k].Trimmed); ok {
				region.HasLabel = true
				region.Label = label
				labelLine := lines[k]
				region.LabelSpan = span.Span{} // offsets only: Line/Col stay zero (the lexer's VerbatimEnd token carries full positions)
				region.LabelSpan.Start.Offset = labelLine.ContentStart
				region.LabelSpan.End.Offset = labelLine.ContentStart + len(bytes.TrimRight(labelLine.Trimmed, " \t"))
				region.End = labelLine.End
				k++
			}
		}

		regions = append(regions, region)
		i = k - 1 // resume scanning after the consumed region (nested verbatim not permitted)
	}

	return regions
}

func lineStartOrEnd(lines []lineInfo, k int) int {
	if k < len(lines) {
		return lines[k].Start
	}
	if len(lines) == 0 {
		return 0
	}
	return lines[len(lines)-1].End
}

// trimColumns strips up to limit columns (tabs=4) of leading whitespace
// from line, returning how many bytes were consumed and the remainder.
// Ported from scandown's trimIndent, generalized to report the byte count
// consumed rather than a column count.
func trimColumns(line []byte, limit int) (bytesConsumed int, rest []byte) {
	cols := 0
	rest = line
	for cols < limit && len(rest) > 0 {
		switch rest[0] {
		case ' ':
			cols++
			bytesConsumed++
			rest = rest[1:]
		case '\t':
			cols += 4 - cols%4
			bytesConsumed++
			rest = rest[1:]
		default:
			return bytesConsumed, rest
		}
	}
	return bytesConsumed, rest
}

// RegionSet indexes Regions by their header line's starting byte offset,
// for O(1) lookup by the lexer as it walks lines in source order.
type RegionSet struct {
	byHeaderStart map[int]*Region
}

// NewRegionSet builds a RegionSet from a slice of Regions.
func NewRegionSet(regions []Region) *RegionSet {
	rs := &RegionSet{byHeaderStart: make(map[int]*Region, len(regions))}
	for i := range regions {
		rs.byHeaderStart[regions[i].HeaderStart] = &regions[i]
	}
	return rs
}

// At returns the Region opening at the given header-line start offset, if
// any.
func (rs *RegionSet) At(headerStart int) (*Region, bool) {
	if rs == nil {
		return nil, false
	}
	r, ok := rs.byHeaderStart[headerStart]
	return r, ok
}
