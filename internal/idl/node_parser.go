package idl

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NodeParseResult is the outcome of ParseNode: a single JSON-like value tree
// plus every error recovered while building it.
type NodeParseResult struct {
	Value  *Node
	Errors []Error
}

// DocumentText is the minimal surface ParseIDL/ParseNode need from a
// document.Document, kept narrow so this package does not import the
// document package and create a dependency cycle with callers that need
// both.
type DocumentText interface {
	BorrowText() string
}

// ParseNode parses a standalone JSON-like node value document. Node values
// inside IDL text (metadata, trait, default and member values) are parsed
// by ParseIDL's own scanner in IDL mode, not by this function. JSON mode is
// used: commas are required separators, not whitespace.
func ParseNode(doc DocumentText) NodeParseResult {
	s := newScanner(doc.BorrowText(), true)
	value := s.parseNodeValue()
	return NodeParseResult{Value: value, Errors: s.errors}
}

// parseNodeValue dispatches on the next non-whitespace character per the
// node grammar table.
func (s *scanner) parseNodeValue() *Node {
	s.skipWhitespaceAndComments()
	if s.eof() {
		start := s.pos
		s.addError(start, start, msgExpectedNode)
		return errNode(start, start, msgExpectedNode)
	}
	c := s.peek()
	switch {
	case c == '{':
		return s.parseObject()
	case c == '[':
		return s.parseArray()
	case c == '"':
		return s.parseStringOrTextBlock()
	case c == '-' || isDigit(c):
		return s.parseNumber()
	case isIdentStart(c):
		return s.parseIdentNode()
	default:
		start := s.pos
		for !s.eof() && !s.isWhitespace(s.peek()) && !isStructuralBreakpoint(s.peek()) {
			s.pos++
		}
		if s.pos == start {
			s.pos++
		}
		lex := s.text[start:s.pos]
		s.addError(start, s.pos, msgUnexpectedToken(lex))
		return errNode(start, s.pos, msgUnexpectedToken(lex))
	}
}

func (s *scanner) parseObject() *Node {
	start := s.pos
	s.pos++ // consume '{'
	kvps := s.parseKvpsUntil('}')
	s.skipWhitespaceAndComments()
	end := kvps.End
	if !s.eof() && s.peek() == '}' {
		s.pos++
		end = s.pos
	} else {
		s.addError(start, end, msgMissingCloseBrace)
	}
	return &Node{Kind: NodeObj, Start: start, End: end, Body: kvps}
}

func (s *scanner) parseArray() *Node {
	start := s.pos
	s.pos++ // consume '['
	items := make([]*Node, 0, 4)
	for {
		s.skipWhitespaceAndComments()
		if s.eof() || s.peek() == ']' {
			break
		}
		v := s.parseNodeValue()
		items = append(items, v)
		s.skipWhitespaceAndComments()
		if s.jsonMode {
			if !s.eof() && s.peek() == ',' {
				s.pos++
				continue
			}
			break
		}
	}
	end := s.pos
	if !s.eof() && s.peek() == ']' {
		s.pos++
		end = s.pos
	} else {
		s.addError(start, end, msgMissingCloseBracket)
	}
	return &Node{Kind: NodeArr, Start: start, End: end, Items: items}
}

// parseKvpsUntil parses zero or more Kvp items up to (but not consuming)
// closer, returning the Kvps node. It is shared by object bodies and naked
// trait-application argument lists.
func (s *scanner) parseKvpsUntil(closer byte) *Node {
	start := s.pos
	items := make([]*Node, 0, 4)
	for {
		s.skipWhitespaceAndComments()
		if s.eof() || s.peek() == closer {
			break
		}
		before := s.pos
		kvp := s.parseKvp(closer)
		items = append(items, kvp)
		if s.pos == before {
			// guard against pathological zero-progress parses
			s.pos++
		}
		s.skipWhitespaceAndComments()
		if s.jsonMode {
			if !s.eof() && s.peek() == ',' {
				s.pos++
				continue
			}
			break
		}
	}
	return &Node{Kind: NodeKvps, Start: start, End: s.pos, Items: items}
}

func (s *scanner) parseKvp(closer byte) *Node {
	start := s.pos
	s.skipWhitespaceAndComments()

	var key *Node
	switch {
	case !s.eof() && s.peek() == '"':
		key = s.parseStringOrTextBlock()
	case !s.eof() && isIdentStart(s.peek()):
		key = s.parseIdentNode()
	default:
		key = s.parseNodeValue()
		s.addError(key.Start, key.End, "unexpected "+key.Kind.String())
	}

	s.skipWhitespaceAndComments()
	colonPos := -1
	if !s.eof() && s.peek() == ':' {
		colonPos = s.pos
		s.pos++
	} else if !s.eof() && s.peek() == closer {
		s.addError(s.pos, s.pos, msgExpectedColon)
		s.addError(s.pos, s.pos, msgExpectedValue)
		return &Node{Kind: NodeKvp, Start: start, End: s.pos, Key: key, ColonPos: -1, Value: nil}
	} else {
		s.addError(s.pos, s.pos, msgExpectedColon)
	}

	value := s.parseNodeValue()
	kvpValue := value
	if value.Kind == NodeErr {
		kvpValue = nil
	}
	return &Node{Kind: NodeKvp, Start: start, End: value.End, Key: key, ColonPos: colonPos, Value: kvpValue}
}

func (s *scanner) parseIdentNode() *Node {
	start := s.pos
	ident, _, end := s.readIdentifier()
	return &Node{Kind: NodeIdent, Start: start, End: end, Text: ident, IsIdent: true}
}

func (s *scanner) parseNumber() *Node {
	start := s.pos
	if s.peek() == '-' {
		s.pos++
	}
	for !s.eof() && !s.isWhitespace(s.peek()) && !isStructuralBreakpoint(s.peek()) {
		s.pos++
	}
	end := s.pos
	lit := s.text[start:end]
	dec, err := decimal.NewFromString(lit)
	if err != nil {
		s.addError(start, end, msgNotValidNumber(lit))
		return errNode(start, end, msgNotValidNumber(lit))
	}
	return &Node{Kind: NodeNum, Start: start, End: end, Number: dec, Text: lit}
}

func (s *scanner) parseStringOrTextBlock() *Node {
	start := s.pos
	if s.peekAt(1) == '"' && s.peekAt(2) == '"' {
		return s.parseTextBlock(start)
	}
	return s.parseSingleLineString(start)
}

func (s *scanner) parseTextBlock(start int) *Node {
	s.pos = start + 3 // consume the opening """
	closeIdx := strings.Index(s.text[s.pos:], `"""`)
	if closeIdx == -1 {
		end := len(s.text)
		s.pos = end
		s.addError(start, end, msgUnclosedTextBlock)
		return errNode(start, end, msgUnclosedTextBlock)
	}
	contentEnd := s.pos + closeIdx
	text := s.text[s.pos:contentEnd]
	s.pos = contentEnd + 3
	return &Node{Kind: NodeStr, Start: start, End: s.pos, Text: text, IsTextBlock: true}
}

func (s *scanner) parseSingleLineString(start int) *Node {
	s.pos = start + 1 // consume opening quote
	for !s.eof() {
		c := s.peek()
		switch c {
		case '\\':
			s.pos += 2
			if s.pos > len(s.text) {
				s.pos = len(s.text)
			}
		case '"':
			s.pos++
			text := s.text[start+1 : s.pos-1]
			return &Node{Kind: NodeStr, Start: start, End: s.pos, Text: text}
		case '\n':
			end := s.pos
			s.addError(start, end, msgUnclosedString)
			return errNode(start, end, msgUnclosedString)
		default:
			s.pos++
		}
	}
	end := s.pos
	s.addError(start, end, msgUnclosedString)
	return errNode(start, end, msgUnclosedString)
}

// parseTraitParenValue parses a trait application's parenthesized content,
// assuming the opening '(' has already been consumed by the caller. It
// implements the "naked Kvps" quirk: if the first token is a string/
// identifier immediately followed by ':', the whole parenthesized body is
// parsed as a bare Kvps sequence (no enclosing Obj); otherwise a single
// node is parsed.
func (s *scanner) parseTraitParenValue() *Node {
	start := s.pos
	if s.looksLikeNakedKvps() {
		kvps := s.parseKvpsUntil(')')
		s.closeParen(start, kvps.End)
		return kvps
	}
	value := s.parseNodeValue()
	s.closeParen(start, value.End)
	return value
}

func (s *scanner) looksLikeNakedKvps() bool {
	save := s.pos
	defer func() { s.pos = save }()

	s.skipWhitespaceAndComments()
	if s.eof() {
		return false
	}
	switch {
	case s.peek() == '"':
		s.parseStringOrTextBlock()
	case isIdentStart(s.peek()):
		s.readIdentifier()
	default:
		return false
	}
	s.skipWhitespaceAndComments()
	return !s.eof() && s.peek() == ':'
}

func (s *scanner) closeParen(start, contentEnd int) {
	s.skipWhitespaceAndComments()
	if !s.eof() && s.peek() == ')' {
		s.pos++
		return
	}
	s.addError(start, contentEnd, msgMissingCloseParen)
}
