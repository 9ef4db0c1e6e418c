// Package ast defines the final, span-exact, typed document tree (spec.md
// §3.3-§3.5) produced by package assemble: a Document of Block nodes, each
// carrying Inline content, plus any Diagnostics raised along the way.
//
// Grounded on scandown.BlockType's closed variant set and its Format
// convention (terse %v, verbose %+v), adapted from scandown's single flat
// Block type to a small sealed interface hierarchy so each TXXT block kind
// carries only the fields it needs.
package ast

import "github.com/arthurdebert/txxt/span"

// Node is implemented by every AST element, block or inline.
type Node interface {
	Span() span.Span
}

// Block is implemented by every block-level node.
type Block interface {
	Node
	blockNode()
}

// Inline is implemented by every inline-level node.
type Inline interface {
	Node
	inlineNode()
}

// AssemblyInfo is the reproducibility record spec.md §3.4/§4.4 calls
// "assembly_info": the parser version that produced a Document, a
// structural census of it (total blocks, total inlines, deepest container
// nesting), and a content fingerprint, all computed fresh per call with no
// global state.
type AssemblyInfo struct {
	ParserVersion string
	BlockCount    int
	InlineCount   int
	MaxDepth      int
	Fingerprint   [32]byte
}

// Document is the root of a parsed TXXT source: its top-level Blocks, the
// full pre-order flattening of every Block and Inline reachable from them,
// any Diagnostics raised during assembly, the Session anchor table used to
// resolve "[#id]" references, and any preamble Annotations attached to the
// document itself rather than to a Block (spec.md §4.4 proximity rule 1).
type Document struct {
	TopLevel    []Block
	diagnostics []Diagnostic
	anchors     map[string]*Session
	metadata    []*Annotation
	info        AssemblyInfo

	blocksFlat  []Block
	inlinesFlat []Inline
}

// NewDocument constructs a Document from the assembler's finished output.
// It is the only way to populate a Document's unexported fields, keeping
// Diagnostics/Anchors/Metadata/AssemblyInfo read-only to everyone outside
// package assemble.
func NewDocument(top []Block, diagnostics []Diagnostic, anchors map[string]*Session, metadata []*Annotation, info AssemblyInfo) *Document {
	return &Document{
		TopLevel:    top,
		diagnostics: diagnostics,
		anchors:     anchors,
		metadata:    metadata,
		info:        info,
	}
}

// Root returns the document's top-level blocks.
func (d *Document) Root() []Block { return d.TopLevel }

// Blocks returns every Block in the document, pre-order, including nested
// ones (List items, Session/Definition/Annotation children).
func (d *Document) Blocks() []Block {
	if d.blocksFlat == nil {
		for _, b := range d.TopLevel {
			d.blocksFlat = append(d.blocksFlat, flattenBlock(b)...)
		}
	}
	return d.blocksFlat
}

// Inlines returns every Inline in the document, pre-order.
func (d *Document) Inlines() []Inline {
	if d.inlinesFlat == nil {
		for _, b := range d.Blocks() {
			d.inlinesFlat = append(d.inlinesFlat, inlinesOf(b)...)
		}
	}
	return d.inlinesFlat
}

// Diagnostics returns every non-fatal issue raised while assembling the
// document (spec.md §4.6), in span order.
func (d *Document) Diagnostics() []Diagnostic { return d.diagnostics }

// Anchors returns the document's Session slug table, used to resolve
// "[#slug]" section references.
func (d *Document) Anchors() map[string]*Session { return d.anchors }

// Metadata returns the preamble Annotations: those appearing before any
// non-annotation child of the document's own top-level container when
// that first child is a Session (spec.md §4.4 proximity rule 1; before any
// other block kind they attach to that block), plus any left trailing at the very end of the
// document with no following block to attach to (rule 3, the container's
// owning parent being the Document itself at the root).
func (d *Document) Metadata() []*Annotation { return d.metadata }

// AssemblyInfo returns the document's assembly_info record (spec.md
// §3.4/§4.4): parser version, block/inline counts, max nesting depth, and
// the source fingerprint.
func (d *Document) AssemblyInfo() AssemblyInfo { return d.info }

// Fingerprint returns the SHA-256 digest of the source this Document was
// parsed from, recorded by the assembler for reproducibility checks.
func (d *Document) Fingerprint() [32]byte { return d.info.Fingerprint }

// NodeAt returns the most deeply nested Node whose span contains offset,
// or nil if offset falls outside the document entirely.
func (d *Document) NodeAt(offset int) Node {
	var best Node
	for _, b := range d.Blocks() {
		if b.Span().Contains(offset) {
			best = b
		}
	}
	for _, in := range d.Inlines() {
		if in.Span().Contains(offset) {
			best = in
		}
	}
	return best
}

func flattenBlock(b Block) []Block {
	out := []Block{b}
	for _, c := range childrenOf(b) {
		out = append(out, flattenBlock(c)...)
	}
	return out
}

// childrenOf returns a Block's direct Block children, if any, including
// any Annotations attached to it by proximity (spec.md §4.4) so every
// attached Annotation stays reachable through Document.Blocks()/NodeAt
// even though it is no longer a top-level sibling of the block it
// attaches to.
func childrenOf(b Block) []Block {
	var out []Block
	switch v := b.(type) {
	case *Paragraph:
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	case *List:
		for _, it := range v.Items {
			out = append(out, it)
		}
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	case *ListItem:
		out = append(out, v.Children...)
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	case *Session:
		out = append(out, v.Children...)
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	case *Definition:
		out = append(out, v.Children...)
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	case *Annotation:
		out = append(out, v.Children...)
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	case *Verbatim:
		out = append(out, annotationsAsBlocks(v.Annotations)...)
	}
	return out
}

func annotationsAsBlocks(anns []*Annotation) []Block {
	out := make([]Block, len(anns))
	for i, a := range anns {
		out[i] = a
	}
	return out
}

func inlinesOf(b Block) []Inline {
	var roots []Inline
	switch v := b.(type) {
	case *Paragraph:
		roots = v.Content
	case *Session:
		roots = v.Title
	case *Definition:
		roots = v.Term
	case *Annotation:
		roots = v.Value
	case *ListItem:
		roots = v.Content
	}
	var out []Inline
	for _, in := range roots {
		out = append(out, flattenInline(in)...)
	}
	return out
}

func flattenInline(in Inline) []Inline {
	out := []Inline{in}
	switch v := in.(type) {
	case *Strong:
		for _, c := range v.Children {
			out = append(out, flattenInline(c)...)
		}
	case *Emphasis:
		for _, c := range v.Children {
			out = append(out, flattenInline(c)...)
		}
	}
	return out
}
