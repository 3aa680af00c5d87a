package idl

import (
	"strings"

	"github.com/smithy-lang/smithy-language-server/internal/utils"
)

// IdlParseResult is the outcome of ParseIDL: a flat, source-ordered
// statement sequence plus the aggregated error list and the handful of
// preamble facts (first version/namespace/imports) cheap enough to capture
// during the same pass.
type IdlParseResult struct {
	Statements []*Statement
	Errors     []Error
	Version    string
	Namespace  string
	Imports    []string
}

// bodiedShapeTypes names the shape types that open a `{ ... }` body.
var bodiedShapeTypes = map[string]bool{
	"structure": true,
	"list":      true,
	"map":       true,
	"union":     true,
	"enum":      true,
	"intEnum":   true,
	"resource":  true,
	"service":   true,
	"operation": true,
}

type idlParser struct {
	*scanner
	statements []*Statement
	version    string
	namespace  string
	imports    []string
}

// ParseIDL runs the single-pass, lenient recursive-descent IDL parser over
// doc's text. It never panics: malformed constructs become Err/Incomplete
// statements and are also recorded in the Errors list.
func ParseIDL(doc DocumentText) *IdlParseResult {
	p := &idlParser{scanner: newScanner(doc.BorrowText(), false)}
	for {
		p.skipWhitespaceAndComments()
		if p.eof() {
			break
		}
		p.parseTopLevelStatement(-1)
	}
	return &IdlParseResult{
		Statements: p.statements,
		Errors:     p.errors,
		Version:    p.version,
		Namespace:  p.namespace,
		Imports:    p.imports,
	}
}

func (p *idlParser) emit(st *Statement) int {
	idx := len(p.statements)
	st.StatementIndex = idx
	p.statements = append(p.statements, st)
	return idx
}

func (p *idlParser) parseTopLevelStatement(parent int) {
	c := p.peek()
	switch {
	case c == '@':
		p.parseTraitApplication(parent)
	case c == '$':
		p.parseControl(parent)
	case isIdentStart(c):
		p.parseIdentifierLed(parent)
	default:
		p.parseSkipError(parent)
	}
}

func (p *idlParser) parseIdentifierLed(parent int) {
	start := p.pos
	ident, _, _ := p.readIdentifier()
	switch ident {
	case "apply":
		p.parseApply(parent, start)
	case "metadata":
		p.parseMetadata(parent, start)
	case "use":
		p.parseUse(parent, start)
	case "namespace":
		p.parseNamespace(parent, start)
	default:
		p.parseShapeDef(parent, start, ident)
	}
}

func (p *idlParser) parseControl(parent int) {
	start := p.pos
	p.pos++ // consume '$'
	key, _, _ := p.readIdentifier()
	if key == "" {
		end := p.pos
		p.addError(start, end, msgExpectedIdentifier)
		p.emit(&Statement{Kind: StIncomplete, Start: start, End: end, Parent: parent, Message: msgExpectedIdentifier})
		return
	}
	p.skipWhitespaceAndComments()
	if p.eof() || p.peek() != ':' {
		// Open question resolved: `$version "2"` (missing colon) is
		// rejected, matching the later parser's behavior.
		end := p.pos
		p.addError(end, end, msgExpectedColon)
		p.emit(&Statement{Kind: StControl, Start: start, End: end, Parent: parent, ControlKey: key})
		return
	}
	p.pos++ // consume ':'
	value := p.parseNodeValue()
	p.emit(&Statement{Kind: StControl, Start: start, End: value.End, Parent: parent, ControlKey: key, ControlValue: value})
	if key == "version" && p.version == "" && value.Kind == NodeStr {
		p.version = value.Text
	}
}

func (p *idlParser) parseMetadata(parent, start int) {
	p.skipWhitespaceAndComments()
	key := p.parseKeyLikeNode()
	p.skipWhitespaceAndComments()
	if !p.eof() && p.peek() == '=' {
		p.pos++
	} else {
		p.addError(p.pos, p.pos, msgExpectedEquals)
	}
	value := p.parseNodeValue()
	p.emit(&Statement{Kind: StMetadata, Start: start, End: value.End, Parent: parent, MetadataKey: key, MetadataValue: value})
}

// parseKeyLikeNode parses a key position shared by metadata and Kvp: a
// string/text-block or an identifier. Anything else is still parsed (for a
// meaningful error span) and flagged.
func (p *idlParser) parseKeyLikeNode() *Node {
	switch {
	case !p.eof() && p.peek() == '"':
		return p.parseStringOrTextBlock()
	case !p.eof() && isIdentStart(p.peek()):
		return p.parseIdentNode()
	default:
		n := p.parseNodeValue()
		p.addError(n.Start, n.End, "unexpected "+n.Kind.String())
		return n
	}
}

func (p *idlParser) parseUse(parent, start int) {
	p.skipWhitespaceAndComments()
	id, _, idEnd := p.readShapeIDToken()
	end := idEnd
	if id == "" {
		end = p.pos
		p.addError(end, end, msgExpectedIdentifier)
		p.emit(&Statement{Kind: StIncomplete, Start: start, End: end, Parent: parent, Message: msgExpectedIdentifier})
		return
	}
	p.emit(&Statement{Kind: StUse, Start: start, End: end, Parent: parent, Identifier: id})
	p.imports = utils.AppendUnique(p.imports, id)
}

func (p *idlParser) parseNamespace(parent, start int) {
	p.skipWhitespaceAndComments()
	id, _, idEnd := p.readShapeIDToken()
	end := idEnd
	if id == "" {
		end = p.pos
		p.addError(end, end, msgExpectedIdentifier)
		p.emit(&Statement{Kind: StIncomplete, Start: start, End: end, Parent: parent, Message: msgExpectedIdentifier})
		return
	}
	p.emit(&Statement{Kind: StNamespace, Start: start, End: end, Parent: parent, Identifier: id})
	if p.namespace == "" {
		p.namespace = id
	}
}

func (p *idlParser) parseApply(parent, start int) {
	p.skipWhitespaceAndComments()
	target, _, targetEnd := p.readShapeIDToken()
	end := targetEnd
	if target == "" {
		end = p.pos
	}
	applyIdx := p.emit(&Statement{Kind: StApply, Start: start, End: end, Parent: parent, ApplyTarget: target})
	p.skipWhitespaceAndComments()
	switch {
	case !p.eof() && p.peek() == '{':
		p.parseBlock(parent, applyIdx, p.parseTraitOnlyMember)
	case !p.eof() && p.peek() == '@':
		p.parseTraitApplication(parent)
	}
}

func (p *idlParser) parseTraitOnlyMember(blockIdx int) {
	p.skipWhitespaceAndComments()
	if p.eof() {
		return
	}
	if p.peek() == '@' {
		p.parseTraitApplication(blockIdx)
		return
	}
	p.parseSkipError(blockIdx)
}

func (p *idlParser) parseTraitApplication(parent int) {
	start := p.pos
	p.pos++ // consume '@'
	name, _, nameEnd := p.readShapeIDToken()
	end := nameEnd
	if name == "" {
		p.addError(start, p.pos, msgExpectedIdentifier)
	}
	var value *Node
	if !p.eof() && p.peek() == '(' {
		p.pos++
		value = p.parseTraitParenValue()
		end = p.pos
	}
	p.emit(&Statement{Kind: StTraitApplication, Start: start, End: end, Parent: parent, TraitName: name, TraitValue: value})
}

func (p *idlParser) parseShapeDef(parent, start int, shapeType string) {
	p.skipWhitespaceAndComments()
	name, _, nameEnd := p.readIdentifier()
	if name == "" {
		end := p.pos
		p.addError(end, end, msgExpectedIdentifier)
		p.emit(&Statement{Kind: StIncomplete, Start: start, End: end, Parent: parent, Message: msgExpectedIdentifier})
		return
	}
	shapeIdx := p.emit(&Statement{Kind: StShapeDef, Start: start, End: nameEnd, Parent: parent, ShapeType: shapeType, ShapeName: name})

	p.skipWhitespaceAndComments()
	forStart := p.pos
	if p.matchKeyword("for") {
		p.skipWhitespaceAndComments()
		resID, _, resEnd := p.readShapeIDToken()
		if resID == "" {
			resEnd = p.pos
			p.addError(resEnd, resEnd, msgExpectedIdentifier)
		}
		p.emit(&Statement{Kind: StForResource, Start: forStart, End: resEnd, Parent: parent, ResourceID: resID})
	}

	p.skipWhitespaceAndComments()
	p.parseOptionalMixins(parent)

	p.skipWhitespaceAndComments()
	if bodiedShapeTypes[shapeType] {
		p.parseShapeBody(parent, shapeIdx, shapeType)
	}
}

// parseOptionalMixins parses a `with [A, B]` clause if present. Per the
// lenient philosophy, a missing `[` after `with` is tolerated with no
// mixin targets rather than raising a new error class.
func (p *idlParser) parseOptionalMixins(parent int) int {
	withStart := p.pos
	if !p.matchKeyword("with") {
		return -1
	}
	p.skipWhitespaceAndComments()
	var targets []string
	end := p.pos
	if !p.eof() && p.peek() == '[' {
		p.pos++
		for {
			p.skipWhitespaceAndComments()
			if p.eof() || p.peek() == ']' {
				break
			}
			id, _, _ := p.readShapeIDToken()
			if id == "" {
				p.pos++
				continue
			}
			targets = append(targets, id)
			p.skipWhitespaceAndComments()
		}
		if !p.eof() && p.peek() == ']' {
			p.pos++
			end = p.pos
		} else {
			p.addError(withStart, p.pos, msgMissingCloseBracket)
		}
	}
	return p.emit(&Statement{Kind: StMixins, Start: withStart, End: end, Parent: parent, MixinTargets: targets})
}

func (p *idlParser) matchKeyword(kw string) bool {
	save := p.pos
	ident, _, _ := p.readIdentifier()
	if ident == kw {
		return true
	}
	p.pos = save
	return false
}

func (p *idlParser) parseShapeBody(parent, shapeIdx int, shapeType string) {
	var memberFn func(int)
	switch shapeType {
	case "structure", "list", "map", "union":
		memberFn = p.parseStructureLikeMember
	case "enum", "intEnum":
		memberFn = p.parseEnumMember
	case "resource", "service":
		memberFn = p.parseNodeMemberStatement
	case "operation":
		memberFn = p.parseOperationMember
	default:
		memberFn = p.parseStructureLikeMember
	}
	p.parseBlock(parent, shapeIdx, memberFn)
}

// parseBlock parses a `{ ... }` body, emitting a Block statement up front
// (so member statements can reference it as their Parent) and patching its
// End/LastStatementIndex once the closing brace (or EOF) is found.
// lexicalParent is the Block's own nesting parent (-1 at top level);
// openerIdx is the statement index that introduced this body (ShapeDef or
// an InlineMemberDef).
func (p *idlParser) parseBlock(lexicalParent, openerIdx int, parseMember func(blockIdx int)) int {
	start := p.pos
	blockIdx := p.emit(&Statement{Kind: StBlock, Start: start, Parent: lexicalParent, OpenerIndex: openerIdx})

	if !p.eof() && p.peek() == '{' {
		p.pos++
	} else {
		p.addError(p.pos, p.pos, msgExpectedOpenBrace)
	}

	for {
		p.skipWhitespaceAndComments()
		if p.eof() {
			p.addError(p.pos, p.pos, msgExpectedCloseBrace)
			break
		}
		if p.peek() == '}' {
			p.pos++
			break
		}
		before := p.pos
		parseMember(blockIdx)
		if p.pos == before {
			p.pos++
		}
	}

	p.statements[blockIdx].End = p.pos
	p.statements[blockIdx].LastStatementIndex = len(p.statements) - 1
	return blockIdx
}

func (p *idlParser) parseStructureLikeMember(blockIdx int) {
	p.skipWhitespaceAndComments()
	if p.eof() {
		return
	}
	switch {
	case p.peek() == '@':
		p.parseTraitApplication(blockIdx)
	case p.peek() == '$':
		p.parseElidedMember(blockIdx)
	case isIdentStart(p.peek()):
		p.parsePlainMemberDef(blockIdx)
	default:
		p.parseSkipError(blockIdx)
	}
}

func (p *idlParser) parseElidedMember(blockIdx int) {
	start := p.pos
	p.pos++ // consume '$'
	name, _, nameEnd := p.readIdentifier()
	end := nameEnd
	if name == "" {
		end = p.pos
		p.addError(end, end, msgExpectedIdentifier)
	}
	p.emit(&Statement{Kind: StElidedMemberDef, Start: start, End: end, Parent: blockIdx, MemberName: name})
}

func (p *idlParser) parsePlainMemberDef(blockIdx int) {
	start := p.pos
	name, _, _ := p.readIdentifier()
	p.skipWhitespaceAndComments()
	if p.eof() || p.peek() != ':' {
		end := p.pos
		p.addError(end, end, msgExpectedColon)
		p.emit(&Statement{Kind: StMemberDef, Start: start, End: end, Parent: blockIdx, MemberName: name})
		return
	}
	p.pos++ // consume ':'
	p.skipWhitespaceAndComments()
	target, _, targetEnd := p.readShapeIDToken()
	end := targetEnd
	if target == "" {
		end = p.pos
		p.addError(end, end, msgExpectedIdentifier)
	}
	var def *Node
	p.skipWhitespaceAndComments()
	if !p.eof() && p.peek() == '=' {
		p.pos++
		def = p.parseNodeValue()
		end = def.End
	}
	p.emit(&Statement{Kind: StMemberDef, Start: start, End: end, Parent: blockIdx, MemberName: name, MemberTarget: target, DefaultValue: def})
}

func (p *idlParser) parseEnumMember(blockIdx int) {
	p.skipWhitespaceAndComments()
	if p.eof() {
		return
	}
	if p.peek() == '@' {
		p.parseTraitApplication(blockIdx)
		return
	}
	if !isIdentStart(p.peek()) {
		p.parseSkipError(blockIdx)
		return
	}
	start := p.pos
	name, _, nameEnd := p.readIdentifier()
	end := nameEnd
	var val *Node
	p.skipWhitespaceAndComments()
	if !p.eof() && p.peek() == '=' {
		p.pos++
		val = p.parseNodeValue()
		end = val.End
	}
	p.emit(&Statement{Kind: StEnumMemberDef, Start: start, End: end, Parent: blockIdx, MemberName: name, EnumValue: val})
}

func (p *idlParser) parseNodeMemberStatement(blockIdx int) {
	p.skipWhitespaceAndComments()
	if p.eof() {
		return
	}
	if p.peek() == '@' {
		p.parseTraitApplication(blockIdx)
		return
	}
	if !isIdentStart(p.peek()) {
		p.parseSkipError(blockIdx)
		return
	}
	start := p.pos
	name, _, _ := p.readIdentifier()
	p.skipWhitespaceAndComments()
	if p.eof() || p.peek() != ':' {
		end := p.pos
		p.addError(end, end, msgExpectedColon)
		p.emit(&Statement{Kind: StNodeMemberDef, Start: start, End: end, Parent: blockIdx, MemberName: name})
		return
	}
	p.pos++
	val := p.parseNodeValue()
	p.emit(&Statement{Kind: StNodeMemberDef, Start: start, End: val.End, Parent: blockIdx, MemberName: name, NodeValue: val})
}

func (p *idlParser) parseOperationMember(blockIdx int) {
	p.skipWhitespaceAndComments()
	if p.eof() {
		return
	}
	if p.peek() == '@' {
		p.parseTraitApplication(blockIdx)
		return
	}
	if !isIdentStart(p.peek()) {
		p.parseSkipError(blockIdx)
		return
	}
	start := p.pos
	name, _, _ := p.readIdentifier()
	p.skipWhitespaceAndComments()

	if !p.eof() && p.peek() == ':' && p.peekAt(1) == '=' {
		p.parseInlineMemberDef(blockIdx, start, name)
		return
	}

	if p.eof() || p.peek() != ':' {
		end := p.pos
		p.addError(end, end, msgExpectedColon)
		p.emit(&Statement{Kind: StNodeMemberDef, Start: start, End: end, Parent: blockIdx, MemberName: name})
		return
	}
	p.pos++
	val := p.parseNodeValue()
	p.emit(&Statement{Kind: StNodeMemberDef, Start: start, End: val.End, Parent: blockIdx, MemberName: name, NodeValue: val})
}

func (p *idlParser) parseInlineMemberDef(blockIdx int, start int, name string) {
	p.pos += 2 // consume ':='
	idx := p.emit(&Statement{Kind: StInlineMemberDef, Start: start, End: p.pos, Parent: blockIdx, MemberName: name, InlineBody: -1})

	for {
		p.skipWhitespaceAndComments()
		if !p.eof() && p.peek() == '@' {
			p.parseTraitApplication(blockIdx)
			continue
		}
		break
	}

	p.skipWhitespaceAndComments()
	forStart := p.pos
	if p.matchKeyword("for") {
		p.skipWhitespaceAndComments()
		resID, _, resEnd := p.readShapeIDToken()
		if resID == "" {
			resEnd = p.pos
		}
		p.emit(&Statement{Kind: StForResource, Start: forStart, End: resEnd, Parent: blockIdx, ResourceID: resID})
	}

	p.skipWhitespaceAndComments()
	p.parseOptionalMixins(blockIdx)

	p.skipWhitespaceAndComments()
	if !p.eof() && p.peek() == '{' {
		bodyIdx := p.parseBlock(blockIdx, idx, p.parseStructureLikeMember)
		p.statements[idx].InlineBody = bodyIdx
		p.statements[idx].End = p.statements[bodyIdx].End
	} else {
		p.addError(p.pos, p.pos, msgExpectedOpenBrace)
	}
}

// parseSkipError implements the IDL grammar's top-level/member fallback:
// "anything else -> skip until the next plausible statement start,
// emitting an Err statement covering the skipped span."
func (p *idlParser) parseSkipError(parent int) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isIdentStart(c) || c == '@' || c == '$' || c == '}' {
			break
		}
		p.pos++
	}
	if p.pos == start && !p.eof() {
		p.pos++
	}
	end := p.pos
	lexeme := strings.TrimSpace(p.text[start:end])
	msg := msgUnexpectedToken(lexeme)
	if lexeme == "" {
		msg = msgUnexpectedEOF
	}
	p.addError(start, end, msg)
	p.emit(&Statement{Kind: StErr, Start: start, End: end, Parent: parent, Message: msg})
}
