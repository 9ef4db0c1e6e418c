// Package lex tokenizes TXXT source text: it runs the verbatim pre-pass
// (Pass 0), then the main lexer (Pass 1), producing a positioned,
// source-ordered Token stream with Indent/Dedent/Newline structural events,
// sequence/annotation/definition markers, inline formatting delimiters, and
// reference markers.
//
// The design directly follows scandown.BlockStack: a stack-shaped scanner
// consuming one line at a time, except where scandown tracks open block
// containers this package tracks indent levels and verbatim regions.
package lex

import (
	"fmt"
	"io"

	"github.com/arthurdebert/txxt/span"
)

// Kind discriminates a Token's grammatical role.
type Kind int

// Kind constants for the token variants named in spec.md §3.2, except
// Dash: a line-leading "-" is a SequenceMarker and any other "-" is Text.
const (
	noKind Kind = iota

	// Structural
	Newline
	BlankLine
	Indent
	Dedent

	// Sequence / structure markers
	SequenceMarker
	AnnotationMarker
	DefinitionMarker
	Colon
	Parameter

	// Content
	Text
	Identifier
	VerbatimStart
	VerbatimContent
	VerbatimEnd

	// References
	RefMarker
	FootnoteNumber

	// Inline formatting delimiters
	StrongOpen
	StrongClose
	EmphasisOpen
	EmphasisClose
	CodeOpen
	CodeClose
	MathOpen
	MathClose
)

// RefKind discriminates a RefMarker token's reference kind.
type RefKind int

// RefKind constants.
const (
	RefNone RefKind = iota
	RefFile
	RefSection
	RefCitation
	RefFootnote
	RefPage
)

// ListStyle classifies a SequenceMarker's grammar class, used downstream by
// the assembler to derive List.style.
type ListStyle int

// ListStyle constants.
const (
	StyleNone ListStyle = iota
	StylePlain
	StyleNumerical
	StyleAlphaLower
	StyleAlphaUpper
	StyleRomanLower
	StyleRomanUpper
)

// Token is a single lexical unit with its source span and any
// kind-specific value.
type Token struct {
	Kind Kind
	Span span.Span

	// Value carries the token's literal text (Text, Identifier,
	// VerbatimContent, marker_text for SequenceMarker, "::" for
	// AnnotationMarker, key=value text for Parameter).
	Value string

	// RefKind is set only for RefMarker tokens.
	RefKind RefKind

	// ListStyle and ListForm are set only for SequenceMarker tokens, the
	// grammar class and multi-component form ("1.a.i)") inferred at lex
	// time from marker_text alone, purely descriptive -- the assembler
	// remains the authority on a List's final style/form per spec.md §4.4.
	ListStyle ListStyle
	ListForm  bool // true => Full (hierarchical marker), false => Short
}

// Format writes a terse "%v" or verbose "%+v" representation, mirroring
// scandown.Block.Format's two-mode convention.
func (t Token) Format(f fmt.State, verb rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "%v@%+v", t.Kind, t.Span)
		if t.Value != "" {
			fmt.Fprintf(f, "=%q", t.Value)
		}
		if t.Kind == RefMarker {
			fmt.Fprintf(f, " refKind=%v", t.RefKind)
		}
		if t.Kind == SequenceMarker {
			fmt.Fprintf(f, " style=%v form=%v", t.ListStyle, t.ListForm)
		}
		return
	}
	fmt.Fprintf(f, "%v", t.Kind)
	if t.Value != "" {
		fmt.Fprintf(f, "(%q)", t.Value)
	}
}

// Format writes the Kind's name.
func (k Kind) Format(f fmt.State, verb rune) { io.WriteString(f, k.String()) }

// String returns the Kind's name.
func (k Kind) String() string {
	switch k {
	case Newline:
		return "Newline"
	case BlankLine:
		return "BlankLine"
	case Indent:
		return "Indent"
	case Dedent:
		return "Dedent"
	case SequenceMarker:
		return "SequenceMarker"
	case AnnotationMarker:
		return "AnnotationMarker"
	case DefinitionMarker:
		return "DefinitionMarker"
	case Colon:
		return "Colon"
	case Parameter:
		return "Parameter"
	case Text:
		return "Text"
	case Identifier:
		return "Identifier"
	case VerbatimStart:
		return "VerbatimStart"
	case VerbatimContent:
		return "VerbatimContent"
	case VerbatimEnd:
		return "VerbatimEnd"
	case RefMarker:
		return "RefMarker"
	case FootnoteNumber:
		return "FootnoteNumber"
	case StrongOpen:
		return "StrongOpen"
	case StrongClose:
		return "StrongClose"
	case EmphasisOpen:
		return "EmphasisOpen"
	case EmphasisClose:
		return "EmphasisClose"
	case CodeOpen:
		return "CodeOpen"
	case CodeClose:
		return "CodeClose"
	case MathOpen:
		return "MathOpen"
	case MathClose:
		return "MathClose"
	default:
		return fmt.Sprintf("InvalidKind%d", int(k))
	}
}

// String returns the RefKind's name.
func (k RefKind) String() string {
	switch k {
	case RefFile:
		return "file"
	case RefSection:
		return "section"
	case RefCitation:
		return "citation"
	case RefFootnote:
		return "footnote"
	case RefPage:
		return "page"
	default:
		return "none"
	}
}

// String returns the ListStyle's name.
func (s ListStyle) String() string {
	switch s {
	case StylePlain:
		return "Plain"
	case StyleNumerical:
		return "Numerical"
	case StyleAlphaLower:
		return "AlphaLower"
	case StyleAlphaUpper:
		return "AlphaUpper"
	case StyleRomanLower:
		return "RomanLower"
	case StyleRomanUpper:
		return "RomanUpper"
	default:
		return "None"
	}
}
