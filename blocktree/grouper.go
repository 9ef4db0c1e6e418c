package blocktree

import (
	"github.com/arthurdebert/txxt/lex"
	"github.com/arthurdebert/txxt/span"
)

// rawLine is one physical source line's worth of tokens (or a blank-line
// marker), together with any lines nested one indent level deeper that
// immediately follow it (before the next sibling or a dedent).
type rawLine struct {
	tokens   []lex.Token
	blank    bool
	children []*rawLine
}

// Group runs the block grouper over a complete token stream, producing the
// root of the intermediate block tree (spec.md §4.3, three sub-phases:
// token tree, blank-line splitting, semantic classification).
func Group(tokens []lex.Token) (*Block, []Error) {
	root := buildRawTree(tokens)
	g := &grouper{}
	out := &Block{Kind: Root, Container: SessionContainer}
	g.classifyContainer(root.children, out)
	return out, g.errs
}

// buildRawTree threads Indent/Dedent events into a tree of rawLines,
// grouping tokens into physical lines by source line number rather than by
// Newline token presence, since VerbatimContent lines carry no Newline
// token of their own.
func buildRawTree(tokens []lex.Token) *rawLine {
	root := &rawLine{}
	hostStack := []*rawLine{root}
	var cur []lex.Token
	curLine := -1

	flush := func() {
		if cur == nil {
			return
		}
		host := hostStack[len(hostStack)-1]
		host.children = append(host.children, &rawLine{tokens: cur})
		cur = nil
		curLine = -1
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case lex.Indent:
			flush()
			host := hostStack[len(hostStack)-1]
			var newHost *rawLine
			// a blank line between a header and its indented body (a
			// session separated from its content by a blank line, spec.md
			// §4.3 scenario 4) must not become the indent's host: skip back
			// over any trailing blank rawLines to the last real content
			// line, so the body still nests under its header instead of
			// under the blank marker.
			n := len(host.children)
			for n > 0 && host.children[n-1].blank {
				n--
			}
			if n > 0 {
				newHost = host.children[n-1]
			} else {
				// defensive: an Indent with no preceding non-blank sibling
				// line; attach to a synthetic empty line so descendants
				// aren't lost.
				newHost = &rawLine{}
				host.children = append(host.children, newHost)
			}
			hostStack = append(hostStack, newHost)
		case lex.Dedent:
			flush()
			if len(hostStack) > 1 {
				hostStack = hostStack[:len(hostStack)-1]
			}
		case lex.Newline:
			// line-number tracking already flushes at the boundary; a
			// Newline token carries no further structural meaning here.
		case lex.BlankLine:
			flush()
			host := hostStack[len(hostStack)-1]
			host.children = append(host.children, &rawLine{blank: true})
		case lex.VerbatimEnd:
			// always its own line: an unlabeled close is a zero-width
			// token whose position numerically coincides with whatever
			// source line follows, and must never merge with it.
			flush()
			host := hostStack[len(hostStack)-1]
			host.children = append(host.children, &rawLine{tokens: []lex.Token{tok}})
		default:
			line := tok.Span.Start.Line
			if curLine != -1 && line != curLine {
				flush()
			}
			curLine = line
			cur = append(cur, tok)
		}
	}
	flush()
	return root
}

type grouper struct {
	errs []Error
}

// classifyContainer splits lines (the children of one host rawLine) on
// blank-line markers and classifies each maximal non-blank run into a
// single Block, appended to parent.Children in source order alongside a
// BlankLine Block per blank marker.
func (g *grouper) classifyContainer(lines []*rawLine, parent *Block) {
	var run []*rawLine
	flushRun := func() {
		if len(run) == 0 {
			return
		}
		g.classifyRun(run, parent)
		run = nil
	}

	for _, rl := range lines {
		if rl.blank {
			flushRun()
			parent.Children = append(parent.Children, &Block{Kind: Blank})
			continue
		}
		run = append(run, rl)
	}
	flushRun()
}

func containsSession(b *Block) bool {
	return b.Kind == Session
}

func (g *grouper) emit(parent *Block, block *Block) {
	if block == nil {
		return
	}
	if parent.Container == ContentContainer && containsSession(block) {
		g.errs = append(g.errs, Error{
			Span:    block.Span,
			Message: "a session cannot appear inside a content container",
		})
	}
	parent.Children = append(parent.Children, block)
}

// classifyRun classifies one maximal non-blank run of sibling rawLines,
// appending the resulting Block(s) to parent in source order, per the
// priority order of spec.md §4.3. Most branches produce exactly one Block
// from the whole run; a verbatim region is the exception, since it carries
// its own definite end marker and so may end partway through a run that a
// document author left unseparated from the content that follows it (no
// blank line required).
func (g *grouper) classifyRun(group []*rawLine, parent *Block) {
	first := group[0]
	if len(first.tokens) == 0 {
		return
	}
	head := first.tokens[0]

	switch {
	case head.Kind == lex.AnnotationMarker:
		block := &Block{Kind: Annotation, Container: ContentContainer, Lines: [][]lex.Token{first.tokens}}
		body := append([]*rawLine{}, first.children...)
		body = append(body, group[1:]...)
		g.classifyContainer(body, block)
		block.Span = spanOfGroup(group)
		g.emit(parent, block)

	case endsWithDefinitionMarker(first.tokens):
		block := &Block{Kind: Definition, Container: ContentContainer, Lines: [][]lex.Token{first.tokens}}
		body := append([]*rawLine{}, first.children...)
		body = append(body, group[1:]...)
		g.classifyContainer(body, block)
		block.Span = spanOfGroup(group)
		g.emit(parent, block)

	case head.Kind == lex.SequenceMarker && isListGroup(group):
		block := &Block{Kind: List, Container: ContentContainer}
		for _, rl := range group {
			item := &Block{Kind: ListItem, Container: ContentContainer, Lines: [][]lex.Token{rl.tokens}}
			if len(rl.tokens) > 0 {
				item.Marker = rl.tokens[0]
			}
			g.classifyContainer(rl.children, item)
			item.Span = spanOfLine(rl)
			block.Children = append(block.Children, item)
		}
		block.Span = spanOfGroup(group)
		g.emit(parent, block)

	case head.Kind == lex.VerbatimStart:
		n := verbatimPrefixLen(group)
		block := &Block{Kind: Verbatim}
		for _, rl := range group[:n] {
			block.Lines = append(block.Lines, rl.tokens)
		}
		block.Span = spanOfGroup(group[:n])
		g.emit(parent, block)
		if n < len(group) {
			g.classifyRun(group[n:], parent)
		}

	case len(group) == 1 && len(first.children) > 0:
		block := &Block{Kind: Session, Container: SessionContainer, Lines: [][]lex.Token{first.tokens}}
		g.classifyContainer(first.children, block)
		block.Span = spanOfGroup(group)
		g.emit(parent, block)

	default:
		block := &Block{Kind: Paragraph}
		for _, rl := range group {
			block.Lines = append(block.Lines, rl.tokens)
		}
		block.Span = spanOfGroup(group)
		g.emit(parent, block)
	}
}

// verbatimPrefixLen returns how many leading lines of group belong to the
// single verbatim region opened by group[0]: every line through, and
// including, the one carrying its VerbatimEnd token.
func verbatimPrefixLen(group []*rawLine) int {
	for i, rl := range group {
		for _, tok := range rl.tokens {
			if tok.Kind == lex.VerbatimEnd {
				return i + 1
			}
		}
	}
	return len(group)
}

func endsWithDefinitionMarker(tokens []lex.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	return tokens[len(tokens)-1].Kind == lex.DefinitionMarker
}

// isListGroup reports whether group satisfies spec.md §4.3's List
// condition: the group contains >= 2 marker-led items, or exactly one with
// indented children (otherwise it degrades to a plain Paragraph).
func isListGroup(group []*rawLine) bool {
	for _, rl := range group {
		if len(rl.tokens) == 0 || rl.tokens[0].Kind != lex.SequenceMarker {
			return false
		}
	}
	if len(group) >= 2 {
		return true
	}
	return len(group[0].children) > 0
}

func spanOfLine(rl *rawLine) span.Span {
	if len(rl.tokens) == 0 {
		return span.Span{}
	}
	s := rl.tokens[0].Span
	for _, t := range rl.tokens[1:] {
		s = s.Cover(t.Span)
	}
	for _, child := range rl.children {
		s = s.Cover(spanOfLine(child))
	}
	return s
}

func spanOfGroup(group []*rawLine) span.Span {
	var s span.Span
	first := true
	for _, rl := range group {
		ls := spanOfLine(rl)
		if ls.Empty() && len(rl.tokens) == 0 && len(rl.children) == 0 {
			continue
		}
		if first {
			s = ls
			first = false
		} else {
			s = s.Cover(ls)
		}
	}
	return s
}
