// Package modelcache maintains a purely syntactic shape-id -> location
// index built from parsed ShapeDef statements across every tracked
// document. It never loads or validates the Smithy semantic model; it only
// answers "where was this shape id last spelled out" for completion and
// go-to-definition.
package modelcache

import (
	"sort"
	"strings"
	"sync"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/idl"
)

// Location is where a shape was defined.
type Location struct {
	URI   string
	Range document.Range
}

// Index is safe for concurrent use; workspace.Store updates it under its
// own lock, but completion/definition handlers may query it independently.
type Index struct {
	mu     sync.RWMutex
	shapes map[string]Location
	byURI  map[string][]string
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		shapes: make(map[string]Location),
		byURI:  make(map[string][]string),
	}
}

// Update replaces every shape entry previously recorded for uri with the
// ShapeDef statements found in stmts, resolving each to an absolute id
// using namespace (empty namespace yields the bare shape name).
func (ix *Index) Update(uri string, namespace string, doc *document.Document, stmts []*idl.Statement) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.removeLocked(uri)

	ids := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if s.Kind != idl.StShapeDef || s.ShapeName == "" {
			continue
		}
		absID := s.ShapeName
		if namespace != "" {
			absID = namespace + "#" + s.ShapeName
		}
		start, _ := doc.PositionAtIndex(s.Start)
		end, _ := doc.PositionAtIndex(s.End)
		ix.shapes[absID] = Location{URI: uri, Range: document.Range{Start: start, End: end}}
		ids = append(ids, absID)
	}
	ix.byURI[uri] = ids
}

// Remove drops every shape entry recorded for uri, e.g. on didClose.
func (ix *Index) Remove(uri string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(uri)
	delete(ix.byURI, uri)
}

func (ix *Index) removeLocked(uri string) {
	for _, id := range ix.byURI[uri] {
		delete(ix.shapes, id)
	}
}

// Lookup resolves an absolute shape id to its definition location.
func (ix *Index) Lookup(absoluteID string) (Location, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	loc, ok := ix.shapes[absoluteID]
	return loc, ok
}

// ShapeIDsWithPrefix returns every known absolute shape id starting with
// prefix, sorted, for completion.
func (ix *Index) ShapeIDsWithPrefix(prefix string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []string
	for id := range ix.shapes {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
