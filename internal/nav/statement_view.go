// Package nav implements the two navigation primitives editor features use
// to answer "what is at this cursor position" queries against a parsed
// document: StatementView over the flat idl.Statement sequence, and
// NodeCursor over a single idl.Node value tree.
package nav

import "github.com/smithy-lang/smithy-language-server/internal/idl"

// StatementView is the statement (if any) containing a document offset,
// found by binary search over a flat, source-ordered statement slice.
type StatementView struct {
	Statements []*idl.Statement
	Index      int // -1 for an empty view
}

func (v StatementView) IsEmpty() bool { return v.Index < 0 || v.Index >= len(v.Statements) }

// Statement returns the viewed statement, or nil for an empty view.
func (v StatementView) Statement() *idl.Statement {
	if v.IsEmpty() {
		return nil
	}
	return v.Statements[v.Index]
}

// ViewAt finds the statement whose [Start, End) span contains offset. When
// the hit is a Block, it descends into the block's child range to find the
// innermost non-block statement at offset; if no child contains it, the
// Block itself is the view. When offset falls in a gap between statements,
// the view is the parent Block of the nearest preceding statement if that
// block still encloses offset, otherwise empty.
func ViewAt(statements []*idl.Statement, offset int) StatementView {
	if len(statements) == 0 {
		return StatementView{statements, -1}
	}
	idx := rightmostStartLE(statements, 0, len(statements)-1, offset)
	if idx == -1 {
		return StatementView{statements, -1}
	}
	st := statements[idx]
	if offset < st.End {
		if st.Kind == idl.StBlock {
			idx = descendBlock(statements, st, offset)
		}
		return StatementView{statements, idx}
	}
	if st.Parent != -1 {
		parent := statements[st.Parent]
		if offset < parent.End {
			return StatementView{statements, st.Parent}
		}
	}
	return StatementView{statements, -1}
}

// rightmostStartLE returns the largest index in [lo, hi] whose Start is
// <= offset, or -1 if none qualifies.
func rightmostStartLE(statements []*idl.Statement, lo, hi, offset int) int {
	result := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if statements[mid].Start <= offset {
			result = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return result
}

func descendBlock(statements []*idl.Statement, block *idl.Statement, offset int) int {
	lo := block.StatementIndex + 1
	hi := block.LastStatementIndex
	if lo > hi {
		return block.StatementIndex
	}
	childIdx := rightmostStartLE(statements, lo, hi, offset)
	if childIdx == -1 {
		return block.StatementIndex
	}
	child := statements[childIdx]
	if offset >= child.End {
		return block.StatementIndex
	}
	if child.Kind == idl.StBlock {
		return descendBlock(statements, child, offset)
	}
	return childIdx
}

func (v StatementView) enclosingBlockIndex() int {
	s := v.Statement()
	if s == nil {
		return -1
	}
	if s.Kind == idl.StBlock {
		return v.Index
	}
	if s.Parent == -1 {
		return -1
	}
	return s.Parent
}

// NearestShapeDefBefore walks statements backward from the view until a
// ShapeDef is found.
func (v StatementView) NearestShapeDefBefore() *idl.Statement {
	if v.IsEmpty() {
		return nil
	}
	for i := v.Index; i >= 0; i-- {
		if v.Statements[i].Kind == idl.StShapeDef {
			return v.Statements[i]
		}
	}
	return nil
}

// NearestShapeDefAfter walks forward skipping only TraitApplications until
// a ShapeDef is found; any other intervening statement aborts with nil, so
// "@trait\n@trait\nstructure Foo" resolves to Foo from either trait.
func (v StatementView) NearestShapeDefAfter() *idl.Statement {
	if v.IsEmpty() {
		return nil
	}
	for i := v.Index; i < len(v.Statements); i++ {
		switch v.Statements[i].Kind {
		case idl.StShapeDef:
			return v.Statements[i]
		case idl.StTraitApplication:
			continue
		default:
			return nil
		}
	}
	return nil
}

// ForResourceAndMixins is the result of NearestForResourceAndMixinsBefore.
type ForResourceAndMixins struct {
	ForResource *idl.Statement
	Mixins      *idl.Statement
}

// NearestForResourceAndMixinsBefore finds the view's enclosing Block and
// inspects the (at most) two statements immediately preceding it -- the
// positions a ForResource and/or Mixins clause would occupy between a
// ShapeDef and its body.
func (v StatementView) NearestForResourceAndMixinsBefore() ForResourceAndMixins {
	var result ForResourceAndMixins
	blockIdx := v.enclosingBlockIndex()
	if blockIdx == -1 {
		return result
	}
	for off := 1; off <= 2; off++ {
		i := blockIdx - off
		if i < 0 {
			continue
		}
		switch v.Statements[i].Kind {
		case idl.StForResource:
			result.ForResource = v.Statements[i]
		case idl.StMixins:
			result.Mixins = v.Statements[i]
		}
	}
	return result
}

// OtherMemberNames walks the enclosing block's member range and collects
// the names of sibling member definitions, excluding the one at the view.
func (v StatementView) OtherMemberNames() []string {
	blockIdx := v.enclosingBlockIndex()
	if blockIdx == -1 {
		return nil
	}
	block := v.Statements[blockIdx]
	var names []string
	for i := block.StatementIndex + 1; i <= block.LastStatementIndex; i++ {
		if i == v.Index {
			continue
		}
		if name := memberName(v.Statements[i]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func memberName(s *idl.Statement) string {
	switch s.Kind {
	case idl.StMemberDef, idl.StElidedMemberDef, idl.StEnumMemberDef, idl.StNodeMemberDef, idl.StInlineMemberDef:
		return s.MemberName
	}
	return ""
}
