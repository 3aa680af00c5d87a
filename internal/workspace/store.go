// Package workspace owns every open Document for a single server process.
// Store is the exclusive, mutex-guarded owner the distilled spec's
// concurrency model requires: edits and reads on a given document are
// serialized through it exactly like the teacher's internal/state.State
// serializes access to its own per-document map.
package workspace

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/idl"
	"github.com/smithy-lang/smithy-language-server/internal/modelcache"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

// Entry is everything the server keeps about one open file. Parse and
// Preamble are rebuilt on every edit and cached until the next one, so
// repeated navigation queries between edits never re-parse.
type Entry struct {
	Doc      *document.Document
	Parse    *idl.IdlParseResult
	Preamble syntax.Preamble
}

// Store tracks every open document plus the cross-document shape index.
type Store struct {
	mu     sync.RWMutex
	docs   map[protocol.DocumentUri]*Entry
	Models *modelcache.Index
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		docs:   make(map[protocol.DocumentUri]*Entry),
		Models: modelcache.NewIndex(),
	}
}

// Open registers a newly opened document and runs its first parse.
func (s *Store) Open(uri protocol.DocumentUri, text string) error {
	doc, err := document.Of(text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &Entry{Doc: doc}
	s.reparseLocked(uri, entry)
	s.docs[uri] = entry
	return nil
}

// ReplaceWhole substitutes a tracked document's entire text (the
// `TextDocumentContentChangeEventWhole` LSP variant) and reparses it. An
// untracked uri is added to the store.
func (s *Store) ReplaceWhole(uri protocol.DocumentUri, text string) error {
	doc, err := document.Of(text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.docs[uri]
	if !ok {
		entry = &Entry{}
		s.docs[uri] = entry
	}
	entry.Doc = doc
	s.reparseLocked(uri, entry)
	return nil
}

// ApplyRange applies a single incremental edit to a tracked document and
// reparses it. A no-op if uri is not tracked.
func (s *Store) ApplyRange(uri protocol.DocumentUri, r document.Range, newText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.docs[uri]
	if !ok {
		return nil
	}
	if err := entry.Doc.ApplyEdit(r, newText); err != nil {
		return err
	}
	s.reparseLocked(uri, entry)
	return nil
}

// Close stops tracking a document and drops its shapes from the index.
func (s *Store) Close(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
	s.Models.Remove(string(uri))
}

// Get returns the tracked entry for uri, if any.
func (s *Store) Get(uri protocol.DocumentUri) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[uri]
	return e, ok
}

func (s *Store) reparseLocked(uri protocol.DocumentUri, entry *Entry) {
	res := idl.ParseIDL(entry.Doc)
	entry.Parse = res
	entry.Preamble = syntax.ExtractPreamble(entry.Doc)
	s.Models.Update(string(uri), res.Namespace, entry.Doc, res.Statements)
}
