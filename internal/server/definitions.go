package server

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

// onDefinition resolves the shape id under the cursor and looks it up in the
// cross-document shape index, mirroring the teacher's onDefinition analyzer
// type-assertion pattern: resolve, look up, return the location or nil.
func (s *Server) onDefinition(_ *glsp.Context, p *protocol.DefinitionParams) (any, error) {
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

	id, ok := syntax.DocumentIDAt(entry.Doc, offset)
	if !ok {
		return nil, nil
	}

	absID := resolveAbsoluteID(id, entry.Preamble.NamespaceValue)
	loc, ok := s.store.Models.Lookup(absID)
	if !ok {
		return nil, nil
	}

	return protocol.Location{
		URI: loc.URI,
		Range: protocol.Range{
			Start: protocol.Position{Line: loc.Range.Start.Line, Character: loc.Range.Start.Character},
			End:   protocol.Position{Line: loc.Range.End.Line, Character: loc.Range.End.Character},
		},
	}, nil
}

// resolveAbsoluteID turns an extracted DocumentId into the namespace#Shape
// form the model index keys on, stripping any trailing $member and
// defaulting a bare relative id to the current document's namespace.
func resolveAbsoluteID(id syntax.DocumentId, currentNamespace string) string {
	value := id.Value
	if dollar := strings.IndexByte(value, '$'); dollar != -1 {
		value = value[:dollar]
	}
	if strings.Contains(value, "#") {
		return value
	}
	if currentNamespace == "" {
		return value
	}
	return currentNamespace + "#" + value
}
