package assemble

import (
	"github.com/arthurdebert/txxt/ast"
	"github.com/arthurdebert/txxt/lex"
	"github.com/arthurdebert/txxt/span"
)

// inlineFrame accumulates the Inline children belonging to one open
// delimiter scope (or, at index 0, the line's top level).
type inlineFrame struct {
	children []ast.Inline
}

type openDelim struct {
	kind  lex.Kind
	tok   lex.Token
	frame int // index into frames this open pushed
}

// assembleInline turns one logical line's worth of lex.Tokens into its
// final Inline tree, balancing Strong/Emphasis nesting and degrading
// anything left unmatched at end-of-line back to literal text (spec.md
// §4.4). Code and Math spans are copied verbatim from source and never
// themselves scanned for nested delimiters.
func (a *assembler) assembleInline(tokens []lex.Token) []ast.Inline {
	frames := []*inlineFrame{{}}
	var opens []openDelim

	top := func() *inlineFrame { return frames[len(frames)-1] }
	emit := func(in ast.Inline) { top().children = append(top().children, in) }

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Kind {
		case lex.Text, lex.Identifier:
			emit(&ast.Identity{SpanVal: tok.Span, Text: a.arena.Put(tok.Value).Text()})

		case lex.StrongOpen, lex.EmphasisOpen:
			frames = append(frames, &inlineFrame{})
			opens = append(opens, openDelim{kind: tok.Kind, tok: tok, frame: len(frames) - 1})

		case lex.StrongClose:
			a.closeDelim(&frames, &opens, lex.StrongOpen, tok, func(sp span.Span, kids []ast.Inline) ast.Inline {
				return &ast.Strong{SpanVal: sp, Children: kids}
			})

		case lex.EmphasisClose:
			a.closeDelim(&frames, &opens, lex.EmphasisOpen, tok, func(sp span.Span, kids []ast.Inline) ast.Inline {
				return &ast.Emphasis{SpanVal: sp, Children: kids}
			})

		case lex.CodeOpen:
			if j, ok := findClose(tokens, i+1, lex.CodeClose); ok {
				text := a.arena.Put(string(a.source[tok.Span.End.Offset:tokens[j].Span.Start.Offset])).Text()
				emit(&ast.CodeSpan{SpanVal: tok.Span.Cover(tokens[j].Span), Text: text})
				i = j
			} else {
				emit(&ast.Identity{SpanVal: tok.Span, Text: tok.Value})
			}

		case lex.MathOpen:
			if j, ok := findClose(tokens, i+1, lex.MathClose); ok {
				text := a.arena.Put(string(a.source[tok.Span.End.Offset:tokens[j].Span.Start.Offset])).Text()
				emit(&ast.Math{SpanVal: tok.Span.Cover(tokens[j].Span), Text: text})
				i = j
			} else {
				emit(&ast.Identity{SpanVal: tok.Span, Text: tok.Value})
			}

		case lex.CodeClose, lex.MathClose:
			// reached only when no matching Open consumed it: unmatched,
			// degrade to literal text.
			emit(&ast.Identity{SpanVal: tok.Span, Text: tok.Value})

		case lex.RefMarker:
			emit(&ast.Reference{SpanVal: tok.Span, Kind: tok.RefKind, Target: tok.Value})
			if tok.RefKind == lex.RefFootnote && i+1 < len(tokens) && tokens[i+1].Kind == lex.FootnoteNumber {
				i++
			}
		}
		i++
	}

	// unwind any still-open Strong/Emphasis scopes: each degrades its own
	// opening delimiter to literal text and splices its (already resolved)
	// children into its parent scope, innermost first.
	for len(opens) > 0 {
		o := opens[len(opens)-1]
		opens = opens[:len(opens)-1]
		inner := frames[o.frame]
		frames = frames[:o.frame]
		parent := top()
		parent.children = append(parent.children, &ast.Identity{SpanVal: o.tok.Span, Text: o.tok.Value})
		parent.children = append(parent.children, inner.children...)
	}

	return frames[0].children
}

func findClose(tokens []lex.Token, from int, kind lex.Kind) (int, bool) {
	for j := from; j < len(tokens); j++ {
		if tokens[j].Kind == kind {
			return j, true
		}
	}
	return 0, false
}

// closeDelim resolves a close-delimiter token against the innermost open
// of the matching kind. If the top of the open stack isn't that kind (a
// mismatched interleave, e.g. "*_foo*_"), the close degrades to literal
// text instead of being treated as a match.
func (a *assembler) closeDelim(framesP *[]*inlineFrame, opensP *[]openDelim, wantOpen lex.Kind, closeTok lex.Token, build func(span.Span, []ast.Inline) ast.Inline) {
	frames := *framesP
	opens := *opensP
	if len(opens) == 0 || opens[len(opens)-1].kind != wantOpen {
		top := frames[len(frames)-1]
		top.children = append(top.children, &ast.Identity{SpanVal: closeTok.Span, Text: closeTok.Value})
		return
	}
	o := opens[len(opens)-1]
	opens = opens[:len(opens)-1]
	inner := frames[o.frame]
	frames = frames[:o.frame]
	node := build(o.tok.Span.Cover(closeTok.Span), inner.children)
	frames[len(frames)-1].children = append(frames[len(frames)-1].children, node)
	*framesP = frames
	*opensP = opens
}
