package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type plainText string

func (p plainText) BorrowText() string { return string(p) }

func TestExtractPreambleBasics(t *testing.T) {
	src := `// leading comment
$version: "2"

namespace smithy.example

use smithy.example.other#Thing
use smithy.example.other#Other

structure Foo {}
`
	p := ExtractPreamble(plainText(src))
	require.NotNil(t, p.Version)
	require.Equal(t, "2", p.VersionValue)
	require.NotNil(t, p.Namespace)
	require.Equal(t, "smithy.example", p.NamespaceValue)
	require.Len(t, p.Uses, 2)
	require.Equal(t, "smithy.example.other#Thing", p.Uses[0].Value)
	require.True(t, p.UsesBlankSeparatedFromNamespace)
	require.True(t, p.BlankBeforeBody)
	require.Equal(t, "Input", p.OperationInputSuffix)
	require.Equal(t, "Output", p.OperationOutputSuffix)
}

func TestExtractPreambleMissingNamespace(t *testing.T) {
	src := `use smithy.example#Thing
structure Foo {}
`
	p := ExtractPreamble(plainText(src))
	require.Nil(t, p.Namespace)
	require.Len(t, p.Uses, 1)
	require.False(t, p.UsesBlankSeparatedFromNamespace)
	require.False(t, p.BlankBeforeBody)
}

func TestExtractPreambleCustomOperationSuffixes(t *testing.T) {
	src := `$operationInputSuffix: "Request"
$operationOutputSuffix: "Response"
namespace smithy.example
`
	p := ExtractPreamble(plainText(src))
	require.Equal(t, "Request", p.OperationInputSuffix)
	require.Equal(t, "Response", p.OperationOutputSuffix)
}

func TestExtractPreambleToleratesInvalidImport(t *testing.T) {
	src := `namespace smithy.example
use not!!valid
structure Foo {}
`
	p := ExtractPreamble(plainText(src))
	require.Len(t, p.Uses, 1)
	require.Equal(t, "not!!valid", p.Uses[0].Value)
}

func TestDocumentIDAtAbsoluteId(t *testing.T) {
	src := `use com.foo#Bar`
	idx := len(src) - 2 // cursor inside "Bar"
	id, ok := DocumentIDAt(plainText(src), idx)
	require.True(t, ok)
	require.Equal(t, DocAbsoluteID, id.Kind)
	require.Equal(t, "com.foo#Bar", id.Value)

	idx2 := len("use com") // cursor inside "com.foo" portion
	id2, ok2 := DocumentIDAt(plainText(src), idx2)
	require.True(t, ok2)
	require.Equal(t, "com.foo#Bar", id2.Value)
}

func TestDocumentIDAtPlainIdentifier(t *testing.T) {
	src := `structure Foo {}`
	id, ok := DocumentIDAt(plainText(src), len("structure Fo"))
	require.True(t, ok)
	require.Equal(t, DocID, id.Kind)
	require.Equal(t, "Foo", id.Value)
}

func TestDocumentIDAtNamespace(t *testing.T) {
	src := `namespace smithy.example`
	id, ok := DocumentIDAt(plainText(src), len("namespace smithy"))
	require.True(t, ok)
	require.Equal(t, DocNamespace, id.Kind)
	require.Equal(t, "smithy.example", id.Value)
}

func TestDocumentIDAtMember(t *testing.T) {
	src := `Foo$bar`
	id, ok := DocumentIDAt(plainText(src), 5)
	require.True(t, ok)
	require.Equal(t, DocRelativeWithMember, id.Kind)
	require.Equal(t, "Foo$bar", id.Value)
}

func TestDocumentIDAtAbsoluteWithMember(t *testing.T) {
	src := `com.foo#Bar$baz`
	id, ok := DocumentIDAt(plainText(src), 10)
	require.True(t, ok)
	require.Equal(t, DocAbsoluteWithMember, id.Kind)
}

func TestDocumentIDAtWhitespaceAfterReturnsNull(t *testing.T) {
	src := `Foo bar`
	_, ok := DocumentIDAt(plainText(src), 3) // right after "Foo", before the space
	require.False(t, ok)
}

func TestDocumentIDAtOutsideAnyToken(t *testing.T) {
	src := `   `
	_, ok := DocumentIDAt(plainText(src), 1)
	require.False(t, ok)
}
