package ast

import (
	"fmt"

	"github.com/arthurdebert/txxt/span"
)

// Severity classifies a Diagnostic's impact on the surrounding tree.
type Severity int

// Severity constants.
const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Code identifies a specific diagnostic rule (spec.md §4.6).
type Code string

// Code constants for soft issues and recovered hard failures.
// CodeUnmatchedDelimiter is never raised by package assemble: an unmatched
// inline delimiter degrades to literal text with no diagnostic.
const (
	CodeSingleItemList           Code = "single-item-list"
	CodeMixedListStyle           Code = "mixed-list-style"
	CodeDuplicateAnnotationLabel Code = "duplicate-annotation-label"
	CodeUnmatchedDelimiter       Code = "unmatched-delimiter"
	CodeIndentMismatch           Code = "indent-mismatch"
	CodeSessionInContent         Code = "session-in-content"
)

// Diagnostic is one non-fatal issue or recovered error, located by its
// Span (spec.md §4.6): degraded or mixed-style lists, duplicate labels, or
// structural/lexical errors the assembler recovered from.
type Diagnostic struct {
	Severity Severity
	Span     span.Span
	Code     Code
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Code, d.Message)
}
