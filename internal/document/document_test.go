package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineTableBasics(t *testing.T) {
	d, err := Of("abc\ndef")
	require.NoError(t, err)
	require.Equal(t, 2, d.LineCount())
	require.Equal(t, 0, d.IndexOfLine(0))
	require.Equal(t, 4, d.IndexOfLine(1))
	require.Equal(t, -1, d.IndexOfLine(2))
	require.Equal(t, -1, d.IndexOfLine(-1))
}

func TestLineTableTrailingTerminator(t *testing.T) {
	d, err := Of("abc\n")
	require.NoError(t, err)
	require.Equal(t, 2, d.LineCount())
	require.Equal(t, 4, d.IndexOfLine(1))
	require.Equal(t, -1, d.IndexOfLine(2))
}

func TestIndexOfPositionBoundary(t *testing.T) {
	d, err := Of("abc\ndef")
	require.NoError(t, err)
	// character == lineLength returns offset of terminator
	require.Equal(t, 3, d.IndexOfPosition(Position{Line: 0, Character: 3}))
	// character == lineLength+1 is invalid
	require.Equal(t, -1, d.IndexOfPosition(Position{Line: 0, Character: 4}))
	require.Equal(t, 4, d.IndexOfPosition(Position{Line: 1, Character: 0}))
	require.Equal(t, 7, d.IndexOfPosition(Position{Line: 1, Character: 3}))
}

func TestPositionRoundTrip(t *testing.T) {
	text := "structure Foo {\n    bar: String\n}\n"
	d, err := Of(text)
	require.NoError(t, err)
	for i := 0; i <= len(text); i++ {
		pos, ok := d.PositionAtIndex(i)
		require.True(t, ok, "offset %d", i)
		back := d.IndexOfPosition(pos)
		require.Equal(t, i, back, "round trip at offset %d (pos %+v)", i, pos)
	}
}

func TestApplyEditRoundTrip(t *testing.T) {
	d, err := Of("abc\ndef")
	require.NoError(t, err)
	before := d.CopyText()

	r := Range{Start: Position{Line: 1, Character: 3}, End: Position{Line: 1, Character: 3}}
	err = d.ApplyEdit(r, "g")
	require.NoError(t, err)
	require.Equal(t, "abc\ndefg", d.CopyText())
	require.Equal(t, 4, d.IndexOfLine(1))

	// inverse edit: delete the appended "g"
	inverse := Range{Start: Position{Line: 1, Character: 3}, End: Position{Line: 1, Character: 4}}
	err = d.ApplyEdit(inverse, "")
	require.NoError(t, err)
	require.Equal(t, before, d.CopyText())
}

func TestApplyEditMultiline(t *testing.T) {
	d, err := Of("structure Foo {\n}\n")
	require.NoError(t, err)
	r := Range{Start: Position{Line: 0, Character: 15}, End: Position{Line: 0, Character: 15}}
	err = d.ApplyEdit(r, "\n    bar: String")
	require.NoError(t, err)
	require.Equal(t, "structure Foo {\n    bar: String\n}\n", d.CopyText())
	require.Equal(t, 4, d.LineCount())
}

func TestApplyEditInvalidRange(t *testing.T) {
	d, err := Of("abc")
	require.NoError(t, err)
	before := d.CopyText()

	err = d.ApplyEdit(Range{Start: Position{Line: 5, Character: 0}, End: Position{Line: 5, Character: 0}}, "x")
	require.Error(t, err)
	require.Equal(t, before, d.CopyText())

	err = d.ApplyEdit(Range{Start: Position{Line: 0, Character: 2}, End: Position{Line: 0, Character: 0}}, "x")
	require.Error(t, err)
	require.Equal(t, before, d.CopyText())
}

func TestCopyAndBorrowSpans(t *testing.T) {
	d, err := Of("namespace com.foo")
	require.NoError(t, err)
	require.Equal(t, "namespace", d.CopySpan(0, 9))
	require.Equal(t, "com.foo", d.BorrowSpan(10, 17))
}

func TestNextLastIndexOf(t *testing.T) {
	d, err := Of("use a.b#C\nuse d.e#F\n")
	require.NoError(t, err)
	first := d.NextIndexOf("use", 0)
	require.Equal(t, 0, first)
	second := d.NextIndexOf("use", first+1)
	require.Equal(t, 10, second)
	require.Equal(t, -1, d.NextIndexOf("use", 100))

	last := d.LastIndexOf("use", len(d.CopyText()))
	require.Equal(t, 10, last)
}

func TestCRLFLineTerminators(t *testing.T) {
	d, err := Of("a\r\nb\rc\n")
	require.NoError(t, err)
	require.Equal(t, 4, d.LineCount())
	require.Equal(t, 0, d.IndexOfLine(0))
	require.Equal(t, 3, d.IndexOfLine(1))
	require.Equal(t, 5, d.IndexOfLine(2))
	require.Equal(t, 7, d.IndexOfLine(3))
}

func TestInvalidUTF8Rejected(t *testing.T) {
	_, err := Of(string([]byte{0xff, 0xfe, 0xfd}))
	require.ErrorIs(t, err, ErrInvalidText)
}
