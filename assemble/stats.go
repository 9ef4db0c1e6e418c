package assemble

import "github.com/arthurdebert/txxt/ast"

// countAll walks a finished top-level Block slice to produce the census
// assembly_info carries (spec.md §3.4/§4.4): total Block count, total
// Inline count, and the deepest container nesting reached. It re-walks
// the already-built tree rather than threading counters through the
// assembler itself, keeping Assemble's per-call bookkeeping out of the
// hot assembly path.
func countAll(top []ast.Block) (blocks, inlines, maxDepth int) {
	var walk func(bs []ast.Block, depth int)
	walk = func(bs []ast.Block, depth int) {
		for _, b := range bs {
			blocks++
			if depth > maxDepth {
				maxDepth = depth
			}
			inlines += countInlines(blockInlines(b))
			walk(blockChildren(b), depth+1)
		}
	}
	walk(top, 1)
	return blocks, inlines, maxDepth
}

// blockChildren returns a Block's direct Block children, including any
// Annotations attached to it by proximity, mirroring ast.childrenOf.
func blockChildren(b ast.Block) []ast.Block {
	var out []ast.Block
	switch v := b.(type) {
	case *ast.Paragraph:
		out = appendAnnotations(out, v.Annotations)
	case *ast.List:
		for _, it := range v.Items {
			out = append(out, it)
		}
		out = appendAnnotations(out, v.Annotations)
	case *ast.ListItem:
		out = append(out, v.Children...)
		out = appendAnnotations(out, v.Annotations)
	case *ast.Session:
		out = append(out, v.Children...)
		out = appendAnnotations(out, v.Annotations)
	case *ast.Definition:
		out = append(out, v.Children...)
		out = appendAnnotations(out, v.Annotations)
	case *ast.Annotation:
		out = append(out, v.Children...)
		out = appendAnnotations(out, v.Annotations)
	case *ast.Verbatim:
		out = appendAnnotations(out, v.Annotations)
	}
	return out
}

func appendAnnotations(out []ast.Block, anns []*ast.Annotation) []ast.Block {
	for _, a := range anns {
		out = append(out, a)
	}
	return out
}

// blockInlines returns a Block's own Inline content roots (not its
// children's), mirroring ast.inlinesOf.
func blockInlines(b ast.Block) []ast.Inline {
	switch v := b.(type) {
	case *ast.Paragraph:
		return v.Content
	case *ast.Session:
		return v.Title
	case *ast.Definition:
		return v.Term
	case *ast.Annotation:
		return v.Value
	case *ast.ListItem:
		return v.Content
	default:
		return nil
	}
}

func countInlines(roots []ast.Inline) int {
	count := 0
	var walk func(in ast.Inline)
	walk = func(in ast.Inline) {
		count++
		switch v := in.(type) {
		case *ast.Strong:
			for _, c := range v.Children {
				walk(c)
			}
		case *ast.Emphasis:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	for _, in := range roots {
		walk(in)
	}
	return count
}
