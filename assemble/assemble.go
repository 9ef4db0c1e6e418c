// Package assemble turns a blocktree.Block tree (and the lex.Token stream
// it was built from) into the final ast.Document: inline content is
// parsed and delimiter-balanced, list styling is derived and checked for
// consistency, annotations and definitions gain their parsed label/term,
// sessions gain their anchor slug, and every recovered error or soft issue
// is collected into Document.Diagnostics, except an unmatched inline
// delimiter, which degrades to literal text without a diagnostic.
//
// Grounded on cmd/soc/ui.go's dispatch-over-a-parsed-tree shape: a single
// top-level entry point that walks a structural tree built by an earlier
// pass and produces the caller-facing model, plus internal/scanio's
// Error-with-position shape for recoverable issues.
package assemble

import (
	"crypto/sha256"
	"sort"

	"github.com/arthurdebert/txxt/ast"
	"github.com/arthurdebert/txxt/blocktree"
	"github.com/arthurdebert/txxt/internal/anchor"
	"github.com/arthurdebert/txxt/internal/txxtarena"
	"github.com/arthurdebert/txxt/lex"
	"github.com/arthurdebert/txxt/span"
)

func spanAt(pos span.Position) span.Span { return span.Span{Start: pos, End: pos} }

// parserVersion identifies this assembler build in every Document's
// assembly_info (spec.md §3.4/§4.4), bumped whenever the assembled tree's
// shape changes in a way a caller comparing two runs would care about.
const parserVersion = "0.1.0"

type assembler struct {
	source   []byte
	anchors  *anchor.Table
	arena    *txxtarena.Arena
	slugs    map[string]*ast.Session
	diags    []ast.Diagnostic
	metadata []*ast.Annotation
}

// Assemble runs the complete pipeline (lex -> blocktree -> assemble) over
// source, returning the finished Document.
func Assemble(source []byte) *ast.Document {
	lx := lex.New(source)
	tokens := lx.Run()
	tree, blockErrs := blocktree.Group(tokens)

	a := &assembler{
		source:  source,
		anchors: &anchor.Table{},
		arena:   &txxtarena.Arena{},
		slugs:   map[string]*ast.Session{},
	}
	for _, e := range lx.Errors() {
		a.diags = append(a.diags, ast.Diagnostic{
			Severity: ast.SeverityError,
			Span:     spanAt(e.Pos),
			Code:     ast.CodeIndentMismatch,
			Message:  e.Message,
		})
	}
	for _, e := range blockErrs {
		a.diags = append(a.diags, ast.Diagnostic{
			Severity: ast.SeverityError,
			Span:     e.Span,
			Code:     ast.CodeSessionInContent,
			Message:  e.Message,
		})
	}

	top, _ := a.blocks(tree.Children, true)
	blockCount, inlineCount, maxDepth := countAll(top)
	info := ast.AssemblyInfo{
		ParserVersion: parserVersion,
		BlockCount:    blockCount,
		InlineCount:   inlineCount,
		MaxDepth:      maxDepth,
		Fingerprint:   sha256.Sum256(source),
	}
	sort.SliceStable(a.diags, func(i, j int) bool {
		return a.diags[i].Span.Start.Offset < a.diags[j].Span.Start.Offset
	})
	return ast.NewDocument(top, a.diags, a.slugs, a.metadata, info)
}

// blocks assembles one container's children, attaching each Annotation it
// finds to the next non-annotation block by proximity rather than
// emitting it as an ordinary sibling (spec.md §4.4, §9's post-order
// pending-list flush). Annotations pending when the container closes with
// nothing left to attach to are returned to the caller, which owns the
// block this container belongs to (rule 3: they attach to "the
// container's owning parent block"). At the root container specifically,
// a leading run (before any non-annotation child) attaches to
// Document.metadata instead (rule 1) when the block after it is a
// Session, and any trailing run always does — the root has no owning
// parent block of its own, only the Document.
func (a *assembler) blocks(in []*blocktree.Block, isRoot bool) (out []ast.Block, leftover []*ast.Annotation) {
	var pending []*ast.Annotation
	seenLabels := map[string]bool{}
	sawBlock := false

	for _, b := range in {
		if b.Kind == blocktree.Blank {
			continue
		}
		if b.Kind == blocktree.Annotation {
			ann := a.annotation(b, seenLabels)
			pending = append(pending, ann.(*ast.Annotation))
			continue
		}
		block := a.block(b, seenLabels)
		if block == nil {
			continue
		}
		if len(pending) > 0 {
			_, nextIsSession := block.(*ast.Session)
			if isRoot && !sawBlock && nextIsSession {
				// a Session is the document's own outline structure, not an
				// ordinary content block: preamble annotations in front of
				// the document's opening Session are document-level
				// metadata (spec.md §4.4 rule 1, scenario 4), while
				// preamble annotations in front of ordinary content attach
				// to that content directly (rule 2, scenario 6).
				a.metadata = append(a.metadata, pending...)
			} else {
				attachAnnotations(block, pending)
			}
			pending = nil
		}
		sawBlock = true
		out = append(out, block)
	}

	if len(pending) > 0 {
		if isRoot {
			a.metadata = append(a.metadata, pending...)
		} else {
			leftover = pending
		}
	}
	return out, leftover
}

func (a *assembler) block(b *blocktree.Block, seenLabels map[string]bool) ast.Block {
	switch b.Kind {
	case blocktree.Paragraph:
		return a.paragraph(b)

	case blocktree.List:
		return a.list(b)

	case blocktree.Session:
		return a.session(b)

	case blocktree.Definition:
		return a.definition(b)

	case blocktree.Verbatim:
		return a.verbatim(b)

	default:
		return &ast.Error{SpanVal: b.Span, Message: "unrecognized block"}
	}
}

// attachAnnotations appends anns to the Annotations field of whichever
// concrete Block kind to holds; a no-op for kinds that can't carry one
// (only the recovered Error kind, which has no stable identity for a
// later diagnostic to re-attach annotations to).
func attachAnnotations(to ast.Block, anns []*ast.Annotation) {
	switch v := to.(type) {
	case *ast.Paragraph:
		v.Annotations = append(v.Annotations, anns...)
	case *ast.List:
		v.Annotations = append(v.Annotations, anns...)
	case *ast.ListItem:
		v.Annotations = append(v.Annotations, anns...)
	case *ast.Session:
		v.Annotations = append(v.Annotations, anns...)
	case *ast.Definition:
		v.Annotations = append(v.Annotations, anns...)
	case *ast.Annotation:
		v.Annotations = append(v.Annotations, anns...)
	case *ast.Verbatim:
		v.Annotations = append(v.Annotations, anns...)
	}
}

func (a *assembler) paragraph(b *blocktree.Block) ast.Block {
	var content []ast.Inline
	for _, line := range b.Lines {
		content = append(content, a.assembleInline(line)...)
	}
	if len(b.Lines) > 0 && len(b.Lines[0]) > 0 && b.Lines[0][0].Kind == lex.SequenceMarker {
		a.diags = append(a.diags, ast.Diagnostic{
			Severity: ast.SeverityWarning,
			Span:     b.Span,
			Code:     ast.CodeSingleItemList,
			Message:  "a single list item with no nested content is rendered as a paragraph",
		})
	}
	return &ast.Paragraph{SpanVal: b.Span, Content: content}
}

func (a *assembler) list(b *blocktree.Block) ast.Block {
	list := &ast.List{SpanVal: b.Span}
	counts := map[lex.ListStyle]int{}
	for _, child := range b.Children {
		item := &ast.ListItem{
			SpanVal:    child.Span,
			MarkerText: child.Marker.Value,
			Style:      child.Marker.ListStyle,
		}
		header := child.Header()
		if len(header) > 1 {
			item.Content = a.assembleInline(header[1:])
		}
		var leftover []*ast.Annotation
		item.Children, leftover = a.blocks(child.Children, false)
		attachAnnotations(item, leftover)
		list.Items = append(list.Items, item)
		counts[child.Marker.ListStyle]++
		if child.Marker.ListForm {
			list.Form = true
		}
	}
	var majority lex.ListStyle
	best := -1
	for style, n := range counts {
		if n > best {
			best, majority = n, style
		}
	}
	list.Style = majority
	list.Inconsistent = len(counts) > 1
	if list.Inconsistent {
		a.diags = append(a.diags, ast.Diagnostic{
			Severity: ast.SeverityWarning,
			Span:     b.Span,
			Code:     ast.CodeMixedListStyle,
			Message:  "list items use more than one marker style",
		})
	}
	return list
}

func (a *assembler) session(b *blocktree.Block) ast.Block {
	title := a.assembleInline(b.Header())
	slug := a.anchors.Slug(plainText(title))
	sess := &ast.Session{SpanVal: b.Span, Title: title, Anchor: slug}
	var leftover []*ast.Annotation
	sess.Children, leftover = a.blocks(b.Children, false)
	attachAnnotations(sess, leftover)
	a.slugs[slug] = sess
	return sess
}

func (a *assembler) definition(b *blocktree.Block) ast.Block {
	header := b.Header()
	term := header
	if len(header) > 0 && header[len(header)-1].Kind == lex.DefinitionMarker {
		term = header[:len(header)-1]
	}
	def := &ast.Definition{
		SpanVal: b.Span,
		Term:    a.assembleInline(term),
	}
	var leftover []*ast.Annotation
	def.Children, leftover = a.blocks(b.Children, false)
	attachAnnotations(def, leftover)
	return def
}

func (a *assembler) annotation(b *blocktree.Block, seenLabels map[string]bool) ast.Block {
	header := b.Header()
	ann := &ast.Annotation{SpanVal: b.Span, Params: map[string]string{}}

	i := 0
	if i < len(header) && header[i].Kind == lex.AnnotationMarker {
		i++
	}
	if i < len(header) && (header[i].Kind == lex.Identifier || header[i].Kind == lex.Text) {
		ann.Label = header[i].Value
		i++
	}
	if i < len(header) && header[i].Kind == lex.Colon {
		i++
	}
	for i < len(header) && header[i].Kind == lex.Parameter {
		key, value := splitParam(header[i].Value)
		ann.Params[key] = value
		i++
	}
	if i < len(header) && header[i].Kind == lex.AnnotationMarker {
		i++
	}
	ann.Value = a.assembleInline(header[i:])
	var leftover []*ast.Annotation
	ann.Children, leftover = a.blocks(b.Children, false)
	ann.Annotations = append(ann.Annotations, leftover...)

	if ann.Label != "" {
		if seenLabels[ann.Label] {
			a.diags = append(a.diags, ast.Diagnostic{
				Severity: ast.SeverityWarning,
				Span:     b.Span,
				Code:     ast.CodeDuplicateAnnotationLabel,
				Message:  "annotation label \"" + ann.Label + "\" repeats an earlier one in this container",
			})
		}
		seenLabels[ann.Label] = true
	}
	return ann
}

func (a *assembler) verbatim(b *blocktree.Block) ast.Block {
	v := &ast.Verbatim{SpanVal: b.Span}
	for _, line := range b.Lines {
		for _, tok := range line {
			switch tok.Kind {
			case lex.VerbatimStart:
				v.Title, v.Language = splitVerbatimTitle(tok.Value)
			case lex.VerbatimContent:
				// tok.Value already carries its own line terminator (the
				// lexer folds a verbatim content line's trailing newline
				// into the same token, rather than emitting a separate
				// Newline), so no extra separator belongs here. Writing
				// through the arena gives the final Document its own copy
				// of the content, independent of the source buffer the
				// lexer scanned from.
				a.arena.WriteString(tok.Value)
			case lex.VerbatimEnd:
				v.Label = tok.Value
			}
		}
	}
	v.Content = a.arena.Take().Text()
	return v
}

func splitVerbatimTitle(value string) (title, language string) {
	// "Code example (go)" -> title="Code example", language="go"
	open := -1
	for i := len(value) - 1; i >= 0; i-- {
		if value[i] == '(' {
			open = i
			break
		}
	}
	if open < 0 || value[len(value)-1] != ')' {
		return value, ""
	}
	return trimSpaceRight(value[:open]), value[open+1 : len(value)-1]
}

func trimSpaceRight(s string) string {
	n := len(s)
	for n > 0 && (s[n-1] == ' ' || s[n-1] == '\t') {
		n--
	}
	return s[:n]
}

func splitParam(pair string) (key, value string) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:]
		}
	}
	return pair, ""
}

func plainText(inlines []ast.Inline) string {
	var out []byte
	for _, in := range inlines {
		if id, ok := in.(*ast.Identity); ok {
			out = append(out, id.Text...)
		}
	}
	return string(out)
}
