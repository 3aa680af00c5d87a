package syntax

import "strings"

// DocumentIdKind classifies an extracted shape-id token by the '.', '#' and
// '$' it contains (see classify).
type DocumentIdKind int

const (
	DocID DocumentIdKind = iota
	DocNamespace
	DocAbsoluteID
	DocRelativeWithMember
	DocAbsoluteWithMember
)

func (k DocumentIdKind) String() string {
	switch k {
	case DocID:
		return "ID"
	case DocNamespace:
		return "NAMESPACE"
	case DocAbsoluteID:
		return "ABSOLUTE_ID"
	case DocRelativeWithMember:
		return "RELATIVE_WITH_MEMBER"
	case DocAbsoluteWithMember:
		return "ABSOLUTE_WITH_MEMBER"
	default:
		return "UNKNOWN"
	}
}

// IsMember reports whether this id points at a member (carries a `$`)
// rather than a shape itself; feature handlers use this to decide whether
// completion/definition should search shapes or members.
func (k DocumentIdKind) IsMember() bool {
	return k == DocRelativeWithMember || k == DocAbsoluteWithMember
}

// DocumentId is a single identifier token extracted at a cursor position.
type DocumentId struct {
	Kind  DocumentIdKind
	Value string
	Start int
	End   int
}

func isIDChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '.' || c == '#' || c == '$'
}

// DocumentIDAt scans left and right from offset over the shape-id character
// class and returns the resulting token, classified by its punctuation. It
// returns false when offset sits outside any token, or in the whitespace
// immediately following one. The boundary is asymmetric: an offset at a
// token's first character resolves to it, an offset just past its last
// character does not.
func DocumentIDAt(doc DocumentText, offset int) (DocumentId, bool) {
	text := doc.BorrowText()
	if offset < 0 || offset > len(text) {
		return DocumentId{}, false
	}

	start := offset
	for start > 0 && isIDChar(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isIDChar(text[end]) {
		end++
	}

	if start == end || offset >= end {
		return DocumentId{}, false
	}

	value := text[start:end]
	return DocumentId{Kind: classify(value), Value: value, Start: start, End: end}, true
}

func classify(value string) DocumentIdKind {
	hashIdx := strings.IndexByte(value, '#')
	dollarIdx := strings.IndexByte(value, '$')
	switch {
	case hashIdx != -1 && dollarIdx > hashIdx:
		return DocAbsoluteWithMember
	case hashIdx != -1:
		return DocAbsoluteID
	case dollarIdx != -1:
		return DocRelativeWithMember
	case strings.IndexByte(value, '.') != -1:
		return DocNamespace
	default:
		return DocID
	}
}
