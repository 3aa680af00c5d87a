package server

import (
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/idl"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

const organizeImportsTitle = "Organize imports"

// onCodeAction reports, but does not yet rewrite, missing `use` statements
// for shape ids referenced outside the current namespace, following the
// teacher's onCodeAction shape: resolve context, return a list of actions
// or nil.
func (s *Server) onCodeAction(_ *glsp.Context, p *protocol.CodeActionParams) (any, error) {
	entry, ok := s.store.Get(p.TextDocument.URI)
	if !ok || entry.Parse == nil {
		return nil, nil
	}

	missing := missingImports(entry.Parse.Statements, entry.Preamble)
	if len(missing) == 0 {
		return nil, nil
	}

	kind := protocol.CodeActionKindRefactor
	actions := make([]protocol.CodeAction, 0, len(missing))
	for _, id := range missing {
		actions = append(actions, protocol.CodeAction{
			Title: organizeImportsTitle + ": missing `use " + id + "`",
			Kind:  &kind,
		})
	}
	return actions, nil
}

// missingImports scans stmts for absolute shape-id references (trait names,
// apply/for-resource/member targets, mixin targets) whose namespace differs
// from preamble's and that have no matching `use`, returning the distinct
// ids sorted lexicographically.
func missingImports(stmts []*idl.Statement, preamble syntax.Preamble) []string {
	existing := make(map[string]bool, len(preamble.Uses))
	for _, u := range preamble.Uses {
		existing[u.Value] = true
	}

	seen := make(map[string]bool)
	var missing []string
	for _, st := range stmts {
		for _, ref := range referencedShapeIDs(st) {
			ns, _, ok := splitNamespace(ref)
			if !ok || ns == "" || ns == preamble.NamespaceValue {
				continue
			}
			if existing[ref] || seen[ref] {
				continue
			}
			seen[ref] = true
			missing = append(missing, ref)
		}
	}

	sort.Strings(missing)
	return missing
}

// referencedShapeIDs collects every shape id a single statement references.
func referencedShapeIDs(st *idl.Statement) []string {
	var ids []string
	if st.TraitName != "" {
		ids = append(ids, st.TraitName)
	}
	if st.ApplyTarget != "" {
		ids = append(ids, st.ApplyTarget)
	}
	if st.ResourceID != "" {
		ids = append(ids, st.ResourceID)
	}
	if st.MemberTarget != "" {
		ids = append(ids, st.MemberTarget)
	}
	ids = append(ids, st.MixinTargets...)
	return ids
}

// splitNamespace splits an absolute shape id ("ns#Shape") into its
// namespace and name. ok is false for a bare relative id with no '#'.
func splitNamespace(id string) (ns string, name string, ok bool) {
	idx := strings.IndexByte(id, '#')
	if idx == -1 {
		return "", id, false
	}
	return id[:idx], id[idx+1:], true
}
