package server

import (
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/idl"
	"github.com/smithy-lang/smithy-language-server/internal/nav"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

// onCompletion offers shape-id completions whenever the cursor sits on a
// partial shape id, following the teacher's sort.Slice-ordered
// CompletionItem idiom from its own completion handlers.
func (s *Server) onCompletion(_ *glsp.Context, p *protocol.CompletionParams) (any, error) {
	entry, ok := s.store.Get(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset := entry.Doc.IndexOfPosition(document.Position{
		Line:      p.Position.Line,
		Character: p.Position.Character,
	})
	if offset < 0 {
		return nil, nil
	}

	prefix := ""
	if id, ok := traitValueIDAt(entry.Parse, offset); ok {
		prefix = resolveAbsoluteID(id, entry.Preamble.NamespaceValue)
	} else if id, ok := syntax.DocumentIDAt(entry.Doc, offset); ok {
		prefix = resolveAbsoluteID(id, entry.Preamble.NamespaceValue)
	}

	ids := s.store.Models.ShapeIDsWithPrefix(prefix)
	return shapeCompletionItems(ids), nil
}

// traitValueIDAt resolves a shape-id token when offset sits inside a trait's
// value, following it down through nav.StatementView and nav.NodeCursor to
// whatever string or identifier node the cursor landed on.
func traitValueIDAt(parse *idl.IdlParseResult, offset int) (syntax.DocumentId, bool) {
	if parse == nil {
		return syntax.DocumentId{}, false
	}
	st := nav.ViewAt(parse.Statements, offset).Statement()
	if st == nil || st.Kind != idl.StTraitApplication || st.TraitValue == nil {
		return syntax.DocumentId{}, false
	}
	cursor := nav.NewNodeCursor(st.TraitValue, offset)
	edge, ok := cursor.Terminal()
	if !ok || edge.Node == nil {
		return syntax.DocumentId{}, false
	}
	switch edge.Node.Kind {
	case idl.NodeIdent, idl.NodeStr:
		return syntax.DocumentId{Kind: syntax.DocID, Value: edge.Node.Text, Start: edge.Node.Start, End: edge.Node.End}, true
	default:
		return syntax.DocumentId{}, false
	}
}

func shapeCompletionItems(ids []string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	kind := protocol.CompletionItemKindClass
	detail := "shape"
	for _, id := range ids {
		items = append(items, protocol.CompletionItem{
			Label:  id,
			Kind:   &kind,
			Detail: &detail,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Label < items[j].Label
	})

	return items
}
