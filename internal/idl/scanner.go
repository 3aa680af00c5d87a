package idl

// scanner is the shared single-pass cursor used by both the Node parser
// and the IDL statement parser. It never raises: every malformed
// construct is handled by its caller via error nodes/statements.
type scanner struct {
	text     string
	pos      int
	jsonMode bool
	errors   []Error
}

func newScanner(text string, jsonMode bool) *scanner {
	return &scanner{text: text, jsonMode: jsonMode}
}

func (s *scanner) eof() bool { return s.pos >= len(s.text) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.text[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	i := s.pos + offset
	if i < 0 || i >= len(s.text) {
		return 0
	}
	return s.text[i]
}

func (s *scanner) advance() byte {
	c := s.text[s.pos]
	s.pos++
	return c
}

func (s *scanner) addError(start, end int, msg string) {
	if end < start {
		end = start
	}
	s.errors = append(s.errors, Error{Start: start, End: end, Message: msg})
}

func isWhitespaceChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (s *scanner) isWhitespace(c byte) bool {
	if isWhitespaceChar(c) {
		return true
	}
	return c == ',' && !s.jsonMode
}

// skipWhitespaceAndComments consumes whitespace and `//` line comments in a
// single pass, as required between every logical token.
func (s *scanner) skipWhitespaceAndComments() {
	for !s.eof() {
		c := s.peek()
		if s.isWhitespace(c) {
			s.pos++
			continue
		}
		if c == '/' && s.peekAt(1) == '/' {
			for !s.eof() && s.peek() != '\n' {
				s.pos++
			}
			continue
		}
		break
	}
}

// skipInlineWhitespace consumes space/tab only, stopping at a line break.
func (s *scanner) skipInlineWhitespace() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// isShapeIDChar matches the extended identifier class used for shape ids:
// letters, digits, underscore, and the namespace/member punctuation '.',
// '#', '$'.
func isShapeIDChar(c byte) bool {
	return isIdentPart(c) || c == '.' || c == '#' || c == '$'
}

// isStructuralBreakpoint matches the characters that terminate a bare
// token (used to stop number scanning and bareword scanning) per the
// grammar table in the spec: { [ } ] , : )
func isStructuralBreakpoint(c byte) bool {
	switch c {
	case '{', '[', '}', ']', ',', ':', ')':
		return true
	}
	return false
}

// readIdentifier reads a Smithy identifier: letter/underscore start,
// letter/digit/underscore continuation.
func (s *scanner) readIdentifier() (string, int, int) {
	start := s.pos
	if s.eof() || !isIdentStart(s.peek()) {
		return "", start, start
	}
	s.pos++
	for !s.eof() && isIdentPart(s.peek()) {
		s.pos++
	}
	return s.text[start:s.pos], start, s.pos
}

// readShapeIDToken reads a contiguous run of shape-id characters, used for
// member targets, mixin lists, apply targets, and use imports.
func (s *scanner) readShapeIDToken() (string, int, int) {
	start := s.pos
	for !s.eof() && isShapeIDChar(s.peek()) {
		s.pos++
	}
	return s.text[start:s.pos], start, s.pos
}
