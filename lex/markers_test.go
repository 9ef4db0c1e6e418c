package lex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchSequenceMarkerNumerical(t *testing.T) {
	m, ok := matchSequenceMarker([]byte("1. foo"))
	require.True(t, ok)
	require.Equal(t, "1.", m.text)
	require.Equal(t, StyleNumerical, m.style)
	require.False(t, m.form)
	require.Equal(t, 2, m.width)
}

func TestMatchSequenceMarkerAlphaLower(t *testing.T) {
	m, ok := matchSequenceMarker([]byte("a) foo"))
	require.True(t, ok)
	require.Equal(t, "a)", m.text)
	require.Equal(t, StyleAlphaLower, m.style)
}

func TestMatchSequenceMarkerSingleRomanLetter(t *testing.T) {
	// a bare "i"/"I" is classified as Roman, not Alpha (spec.md §3.4).
	m, ok := matchSequenceMarker([]byte("i. foo"))
	require.True(t, ok)
	require.Equal(t, StyleRomanLower, m.style)
}

func TestMatchSequenceMarkerDash(t *testing.T) {
	m, ok := matchSequenceMarker([]byte("- foo"))
	require.True(t, ok)
	require.Equal(t, "-", m.text)
	require.Equal(t, StylePlain, m.style)
}

func TestMatchSequenceMarkerCompoundForm(t *testing.T) {
	m, ok := matchSequenceMarker([]byte("1.a.i) foo"))
	require.True(t, ok)
	require.Equal(t, "1.a.i)", m.text)
	require.True(t, m.form)
}

func TestMatchSequenceMarkerRequiresTrailingSpace(t *testing.T) {
	_, ok := matchSequenceMarker([]byte("1.foo"))
	require.False(t, ok)
}

func TestMatchSequenceMarkerRejectsNonMarkerText(t *testing.T) {
	_, ok := matchSequenceMarker([]byte("Hello world"))
	require.False(t, ok)
}
