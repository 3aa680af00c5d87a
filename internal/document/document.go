// Package document implements the mutable, line-indexed text buffer that
// backs every open Smithy file. It is the only mutable shared state the
// syntax core touches; callers above it (the workspace store) are
// responsible for serializing edits and reads per document.
package document

import (
	"errors"
	"sort"
	"unicode/utf8"
)

// ErrInvalidText is returned by Of when the supplied bytes are not valid UTF-8.
var ErrInvalidText = errors.New("document: invalid utf-8 text")

// Position is a zero-based (line, character) pair. Character counts UTF-16
// code units within the line, matching LSP convention.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open [Start, End) span of Positions.
type Range struct {
	Start Position
	End   Position
}

// Document owns a mutable text buffer plus a sorted line-start offset table.
//
// Invariant: lineStarts[0] == 0, lineStarts is strictly increasing, and the
// final line has no trailing terminator unless the text itself ends with
// one. The table is patched (not rebuilt) on every edit, but patching is
// defined to be observably equivalent to a from-scratch rebuild.
type Document struct {
	text       []byte
	lineStarts []int
}

// Of constructs a Document from initial text.
func Of(text string) (*Document, error) {
	b := []byte(text)
	if !utf8.Valid(b) {
		return nil, ErrInvalidText
	}
	return &Document{
		text:       b,
		lineStarts: buildLineStarts(b),
	}, nil
}

// buildLineStarts scans text for \n, \r, and \r\n line terminators, treated
// uniformly, and returns the offset immediately following each one, with a
// leading 0 for the first line.
func buildLineStarts(text []byte) []int {
	starts := make([]int, 1, 8)
	starts[0] = 0
	for i := 0; i < len(text); {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			starts = append(starts, i)
		case '\n':
			i++
			starts = append(starts, i)
		default:
			i++
		}
	}
	return starts
}

// LineCount returns the number of lines in the table, including a trailing
// empty line when the text ends with a line terminator.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// TextLength returns the length of the text in bytes.
func (d *Document) TextLength() int {
	return len(d.text)
}

// IndexOfLine returns the offset of line n's first character, or -1 if n is
// out of range.
func (d *Document) IndexOfLine(n int) int {
	if n < 0 || n >= len(d.lineStarts) {
		return -1
	}
	return d.lineStarts[n]
}

// LineOfIndex returns the index of the line containing offset, via binary
// search over the line table. Offsets past end-of-text resolve to the last
// line.
func (d *Document) LineOfIndex(offset int) int {
	if offset < 0 {
		return 0
	}
	i := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// lineContentBytes returns line n's bytes, excluding its trailing terminator.
func (d *Document) lineContentBytes(n int) []byte {
	start := d.lineStarts[n]
	var end int
	if n+1 < len(d.lineStarts) {
		end = d.lineStarts[n+1]
		end = stripTerminatorEnd(d.text, start, end)
	} else {
		end = len(d.text)
	}
	return d.text[start:end]
}

// stripTerminatorEnd returns the content end offset for a line whose table
// says the next line starts at nextStart, walking back over whichever
// terminator (\r\n, \n, or \r) produced that boundary.
func stripTerminatorEnd(text []byte, start, nextStart int) int {
	if nextStart <= start {
		return nextStart
	}
	last := text[nextStart-1]
	if last != '\n' && last != '\r' {
		return nextStart
	}
	if last == '\n' && nextStart-2 >= start && text[nextStart-2] == '\r' {
		return nextStart - 2
	}
	return nextStart - 1
}

// IndexOfPosition returns the absolute offset for a Position, or -1 if the
// position is past the end of its line (character == lineLength+1). A
// character equal to the logical line length resolves to the offset of the
// line's terminator (or end-of-text for the last line).
func (d *Document) IndexOfPosition(p Position) int {
	lineStart := d.IndexOfLine(int(p.Line))
	if lineStart == -1 {
		return -1
	}
	content := d.lineContentBytes(int(p.Line))
	byteOff, ok := utf16ColumnToByteOffset(content, int(p.Character))
	if !ok {
		return -1
	}
	return lineStart + byteOff
}

// PositionAtIndex is the inverse of IndexOfPosition. It returns false for
// offsets beyond the last real character.
func (d *Document) PositionAtIndex(offset int) (Position, bool) {
	if offset < 0 || offset > len(d.text) {
		return Position{}, false
	}
	line := d.LineOfIndex(offset)
	content := d.lineContentBytes(line)
	lineStart := d.lineStarts[line]
	byteCol := offset - lineStart
	if byteCol > len(content) {
		// offset falls inside the line terminator itself; clamp to EOL.
		byteCol = len(content)
	}
	return Position{
		Line:      uint32(line),
		Character: uint32(utf16ColumnFromByteOffset(content, byteCol)),
	}, true
}

// CopyText returns an independent copy of the full document text.
func (d *Document) CopyText() string {
	return string(d.text)
}

// CopySpan returns an independent copy of text[start:end]. Out-of-range
// bounds are clamped rather than panicking.
func (d *Document) CopySpan(start, end int) string {
	s, e := d.clampSpan(start, end)
	return string(d.text[s:e])
}

// BorrowText returns a view of the buffer that MUST NOT outlive the next
// edit applied to this Document.
func (d *Document) BorrowText() string {
	return unsafeBytesToString(d.text)
}

// BorrowSpan returns a view aliasing the buffer for [start, end). As with
// BorrowText, the result MUST NOT outlive the next edit.
func (d *Document) BorrowSpan(start, end int) string {
	s, e := d.clampSpan(start, end)
	return unsafeBytesToString(d.text[s:e])
}

func (d *Document) clampSpan(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(d.text) {
		end = len(d.text)
	}
	if start > end {
		start = end
	}
	return start, end
}

// NextIndexOf returns the offset of the first occurrence of needle at or
// after from, or -1 if not found or from is out of range.
func (d *Document) NextIndexOf(needle string, from int) int {
	if from < 0 || from > len(d.text) || needle == "" {
		return -1
	}
	idx := indexOf(d.text[from:], needle)
	if idx == -1 {
		return -1
	}
	return from + idx
}

// LastIndexOf returns the offset of the last occurrence of needle strictly
// before from, or -1 if not found or from is out of range.
func (d *Document) LastIndexOf(needle string, from int) int {
	if from < 0 || needle == "" {
		return -1
	}
	if from > len(d.text) {
		from = len(d.text)
	}
	idx := lastIndexOf(d.text[:from], needle)
	if idx == -1 {
		return -1
	}
	return idx
}
