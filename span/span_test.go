package span_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthurdebert/txxt/span"
)

func TestTrackerTabWidth(t *testing.T) {
	tr := span.NewTracker()
	tr.AdvanceBytes([]byte("ab\tc"))
	pos := tr.Pos()
	require.Equal(t, 4, pos.Offset) // tabs are one byte each
	require.Equal(t, 6, pos.Col)    // "ab" -> col 3, tab rounds up to col 5, "c" -> col 6
}

func TestTrackerNewline(t *testing.T) {
	tr := span.NewTracker()
	tr.AdvanceBytes([]byte("abc\ndef"))
	pos := tr.Pos()
	require.Equal(t, 2, pos.Line)
	require.Equal(t, 4, pos.Col)
}

func TestSpanCover(t *testing.T) {
	a := span.Span{Start: span.Position{Offset: 5}, End: span.Position{Offset: 10}}
	b := span.Span{Start: span.Position{Offset: 2}, End: span.Position{Offset: 7}}
	cov := a.Cover(b)
	require.Equal(t, 2, cov.Start.Offset)
	require.Equal(t, 10, cov.End.Offset)
}

func TestSpanContains(t *testing.T) {
	s := span.Span{Start: span.Position{Offset: 5}, End: span.Position{Offset: 10}}
	require.True(t, s.Contains(5))
	require.True(t, s.Contains(9))
	require.False(t, s.Contains(10))
	require.False(t, s.Contains(4))
}

func TestSpanEmpty(t *testing.T) {
	s := span.Span{Start: span.Position{Offset: 3}, End: span.Position{Offset: 3}}
	require.True(t, s.Empty())
}
