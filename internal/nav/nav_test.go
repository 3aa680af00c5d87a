package nav

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smithy-lang/smithy-language-server/internal/idl"
)

type plainText string

func (p plainText) BorrowText() string { return string(p) }

func TestViewAtFindsMemberInsideBlock(t *testing.T) {
	src := `structure Foo {
    name: String
}
`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	nameOffset := 25 // inside the "name: String" member, after the colon
	view := ViewAt(res.Statements, nameOffset)
	require.False(t, view.IsEmpty())
	require.Equal(t, idl.StMemberDef, view.Statement().Kind)
	require.Equal(t, "name", view.Statement().MemberName)
}

func TestViewAtEmptyBlockReturnsBlockItself(t *testing.T) {
	src := `structure Foo {}`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	offset := len(`structure Foo {`)
	view := ViewAt(res.Statements, offset)
	require.False(t, view.IsEmpty())
	require.Equal(t, idl.StBlock, view.Statement().Kind)
}

func TestNearestShapeDefAfterSkipsTraits(t *testing.T) {
	src := `@required
@documentation("x")
structure Foo {}
`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	view := StatementView{Statements: res.Statements, Index: 0}
	shape := view.NearestShapeDefAfter()
	require.NotNil(t, shape)
	require.Equal(t, "Foo", shape.ShapeName)
}

func TestNearestShapeDefBefore(t *testing.T) {
	src := `structure Foo {
    name: String
}
`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	view := ViewAt(res.Statements, len(src)-10)
	shape := view.NearestShapeDefBefore()
	require.NotNil(t, shape)
	require.Equal(t, "Foo", shape.ShapeName)
}

func TestOtherMemberNamesExcludesSelf(t *testing.T) {
	src := `structure Foo {
    a: String
    b: String
    c: String
}
`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	var bIdx int
	for i, s := range res.Statements {
		if s.Kind == idl.StMemberDef && s.MemberName == "b" {
			bIdx = i
		}
	}
	view := StatementView{Statements: res.Statements, Index: bIdx}
	others := view.OtherMemberNames()
	require.ElementsMatch(t, []string{"a", "c"}, others)
}

func TestNearestForResourceAndMixinsBefore(t *testing.T) {
	src := `resource City {}

structure GetCityOutput for City with [SomeMixin] {
    cityId: String
}
`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	var memberIdx int
	for i, s := range res.Statements {
		if s.Kind == idl.StMemberDef {
			memberIdx = i
		}
	}
	view := StatementView{Statements: res.Statements, Index: memberIdx}
	fr := view.NearestForResourceAndMixinsBefore()
	require.NotNil(t, fr.ForResource)
	require.Equal(t, "City", fr.ForResource.ResourceID)
	require.NotNil(t, fr.Mixins)
	require.Equal(t, []string{"SomeMixin"}, fr.Mixins.MixinTargets)
}

func TestNodeCursorIntoObjectValue(t *testing.T) {
	res := idl.ParseNode(plainText(`{"a": 1, "b": {"c": 2}}`))
	require.Empty(t, res.Errors)

	// offset inside the nested "c" value (the 2)
	offset := len(`{"a": 1, "b": {"c": `)
	cursor := NewNodeCursor(res.Value, offset)
	require.NotEmpty(t, cursor.Path)

	term, ok := cursor.Terminal()
	require.True(t, ok)
	require.Equal(t, EdgeTerminal, term.Kind)
	require.Equal(t, idl.NodeNum, term.Node.Kind)

	var sawValueForKeyB, sawValueForKeyC bool
	for _, e := range cursor.Path {
		if e.Kind == EdgeValueForKey && e.Name == "b" {
			sawValueForKeyB = true
		}
		if e.Kind == EdgeValueForKey && e.Name == "c" {
			sawValueForKeyC = true
		}
	}
	require.True(t, sawValueForKeyB)
	require.True(t, sawValueForKeyC)
}

func TestNodeCursorOnKey(t *testing.T) {
	res := idl.ParseNode(plainText(`{"abc": 1}`))
	require.Empty(t, res.Errors)

	offset := len(`{"a`)
	cursor := NewNodeCursor(res.Value, offset)
	term, ok := cursor.Terminal()
	require.True(t, ok)
	require.Equal(t, EdgeKey, term.Kind)
	require.Equal(t, "abc", term.Name)
}

func TestNodeCursorIntoTraitNakedKvpsValue(t *testing.T) {
	src := `@httpError(code: 404, message: "not found")
structure NotFound {}
`
	res := idl.ParseIDL(plainText(src))
	require.Empty(t, res.Errors)

	var trait *idl.Statement
	for _, s := range res.Statements {
		if s.Kind == idl.StTraitApplication {
			trait = s
		}
	}
	require.NotNil(t, trait)
	require.NotNil(t, trait.TraitValue)
	require.Equal(t, idl.NodeKvps, trait.TraitValue.Kind)

	// offset inside the "not found" value
	offset := strings.Index(src, "not found")
	cursor := NewNodeCursor(trait.TraitValue, offset)
	require.NotEmpty(t, cursor.Path)

	term, ok := cursor.Terminal()
	require.True(t, ok)
	require.Equal(t, EdgeTerminal, term.Kind)
	require.Equal(t, idl.NodeStr, term.Node.Kind)

	var sawObj, sawValueForKeyMessage bool
	for _, e := range cursor.Path {
		if e.Kind == EdgeObj {
			sawObj = true
		}
		if e.Kind == EdgeValueForKey && e.Name == "message" {
			sawValueForKeyMessage = true
		}
	}
	require.True(t, sawObj)
	require.True(t, sawValueForKeyMessage)
}

func TestNodeCursorNextPreviousCheckpoint(t *testing.T) {
	res := idl.ParseNode(plainText(`{"a": 1}`))
	require.Empty(t, res.Errors)
	cursor := NewNodeCursor(res.Value, len(`{"a": `))

	first, ok := cursor.Next()
	require.True(t, ok)
	require.Equal(t, EdgeObj, first.Kind)

	cursor.SetCheckpoint()
	_, _ = cursor.Next()
	cursor.ReturnToCheckpoint()

	again, ok := cursor.Next()
	require.True(t, ok)
	require.Equal(t, EdgeValueForKey, again.Kind)
}
