package server

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/nav"
)

// onHover summarizes the nearest enclosing shape definition for the
// statement under the cursor, following the teacher's onDefinition shape of
// resolve-then-return-or-nil.
func (s *Server) onHover(_ *glsp.Context, p *protocol.HoverParams) (*protocol.Hover, error) {
	entry, ok := s.store.Get(p.TextDocument.URI)
	if !ok || entry.Parse == nil {
		return nil, nil
	}

	offset := entry.Doc.IndexOfPosition(document.Position{
		Line:      p.Position.Line,
		Character: p.Position.Character,
	})
	if offset < 0 {
		return nil, nil
	}

	view := nav.ViewAt(entry.Parse.Statements, offset)
	if view.IsEmpty() {
		return nil, nil
	}

	shape := view.NearestShapeDefBefore()
	if shape == nil {
		return nil, nil
	}

	value := fmt.Sprintf("%s %s", shape.ShapeType, shape.ShapeName)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: value,
		},
	}, nil
}
