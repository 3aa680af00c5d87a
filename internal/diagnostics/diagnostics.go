// Package diagnostics maps recovered idl.Error values onto LSP
// Diagnostics. It is a pure presentation layer: every error the parser
// records is always published, since the parser never raises a Go error
// itself (see the idl package docs).
package diagnostics

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/idl"
)

const source = "smithy"

// FromParseErrors converts every recovered parse error into a Diagnostic,
// resolving byte offsets against doc's line table.
func FromParseErrors(errs []idl.Error, doc *document.Document) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		start, ok := doc.PositionAtIndex(e.Start)
		if !ok {
			continue
		}
		end, ok := doc.PositionAtIndex(e.End)
		if !ok {
			end = start
		}
		sev := protocol.DiagnosticSeverityError
		src := source
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: start.Line, Character: start.Character},
				End:   protocol.Position{Line: end.Line, Character: end.Character},
			},
			Severity: &sev,
			Source:   &src,
			Message:  e.Message,
		})
	}
	return out
}
