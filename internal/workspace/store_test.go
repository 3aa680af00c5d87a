package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/document"
)

func TestStoreOpenCachesParse(t *testing.T) {
	s := NewStore()
	uri := protocol.DocumentUri("file:///a.smithy")
	require.NoError(t, s.Open(uri, "namespace smithy.example\nstructure Foo {}\n"))

	entry, ok := s.Get(uri)
	require.True(t, ok)
	require.NotNil(t, entry.Parse)
	require.Empty(t, entry.Parse.Errors)
	require.Equal(t, "smithy.example", entry.Preamble.NamespaceValue)

	_, ok = s.Models.Lookup("smithy.example#Foo")
	require.True(t, ok)
}

func TestStoreApplyRangeReparsesAndUpdatesIndex(t *testing.T) {
	s := NewStore()
	uri := protocol.DocumentUri("file:///a.smithy")
	require.NoError(t, s.Open(uri, "namespace smithy.example\nstructure Foo {}\n"))

	entry, _ := s.Get(uri)
	before := entry.Doc.CopyText()

	insertPos := document.Position{Line: 1, Character: 13}
	err := s.ApplyRange(uri, document.Range{Start: insertPos, End: insertPos}, "d")
	require.NoError(t, err)

	entry, _ = s.Get(uri)
	require.NotEqual(t, before, entry.Doc.CopyText())
	require.Contains(t, entry.Doc.CopyText(), "structure Food {}")

	_, ok := s.Models.Lookup("smithy.example#Food")
	require.True(t, ok)
	_, ok = s.Models.Lookup("smithy.example#Foo")
	require.False(t, ok)
}

func TestStoreCloseRemovesDocumentAndShapes(t *testing.T) {
	s := NewStore()
	uri := protocol.DocumentUri("file:///a.smithy")
	require.NoError(t, s.Open(uri, "namespace smithy.example\nstructure Foo {}\n"))

	s.Close(uri)
	_, ok := s.Get(uri)
	require.False(t, ok)
	_, ok = s.Models.Lookup("smithy.example#Foo")
	require.False(t, ok)
}

func TestStoreReplaceWholeOnUntrackedURI(t *testing.T) {
	s := NewStore()
	uri := protocol.DocumentUri("file:///new.smithy")
	require.NoError(t, s.ReplaceWhole(uri, "namespace smithy.example\n"))

	entry, ok := s.Get(uri)
	require.True(t, ok)
	require.Equal(t, "smithy.example", entry.Preamble.NamespaceValue)
}
