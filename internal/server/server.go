// Package server wires the syntax core (document, idl, syntax, nav,
// modelcache) to the LSP wire protocol via glsp, following the teacher's
// internal/server package shape: a protocol.Handler struct populated with
// method values, run over stdio.
package server

import (
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/smithy-lang/smithy-language-server/internal/config"
	"github.com/smithy-lang/smithy-language-server/internal/diagnostics"
	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/idl"
	"github.com/smithy-lang/smithy-language-server/internal/workspace"
)

const lsName = "smithy-language-server"

var version = "0.1.0"

// Server owns the workspace store and the glsp handler table. There is at
// most one Server per process, matching the single-threaded cooperative
// scheduling model the core requires: every request runs to completion
// against workspace.Store's own lock before the next is handled.
type Server struct {
	ws    *config.Workspace
	store *workspace.Store
	h     protocol.Handler
}

// NewServer builds the handler table. The workspace root is resolved later,
// during Initialize, exactly as the teacher resolves its container root.
func NewServer() *Server {
	s := &Server{
		ws:    config.NewWorkspace("."),
		store: workspace.NewStore(),
	}
	s.h = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentDefinition: s.onDefinition,
		TextDocumentCompletion: s.onCompletion,
		TextDocumentHover:      s.onHover,
		TextDocumentCodeAction: s.onCodeAction,
	}
	return s
}

// Run starts the stdio transport loop. It does not return until the client
// closes the connection.
func (s *Server) Run() {
	srv := glspserver.NewServer(&s.h, lsName, false)
	srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	caps := s.h.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindIncremental
	caps.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}
	caps.DefinitionProvider = true
	caps.HoverProvider = true
	caps.CodeActionProvider = true
	caps.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"@", "#", "$"},
	}

	var folders []string
	for _, f := range params.WorkspaceFolders {
		folders = append(folders, f.URI)
	}
	root := config.RootFromURI(params.RootURI, folders)
	s.ws = config.NewWorkspace(root)
	s.ws.LoadBuildFile()

	logger := commonlog.GetLoggerf("smithy-language-server.server")
	logger.Infof("initialized workspace at %s", s.ws.Root)

	indexed := 0
	s.ws.WalkSmithyFiles(func(path string) {
		if s.indexSourceFile(path) {
			indexed++
		}
	})
	if indexed > 0 {
		logger.Infof("indexed %d workspace source files", indexed)
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error { return nil }
func (s *Server) shutdown(_ *glsp.Context) error                                   { return nil }
func (s *Server) setTrace(_ *glsp.Context, p *protocol.SetTraceParams) error {
	protocol.SetTraceValue(p.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, p *protocol.DidOpenTextDocumentParams) error {
	if err := s.store.Open(p.TextDocument.URI, p.TextDocument.Text); err != nil {
		commonlog.GetLoggerf("smithy-language-server.server").Warningf("didOpen: %v", err)
		return nil
	}
	s.publishDiagnostics(ctx, p.TextDocument.URI)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, p *protocol.DidChangeTextDocumentParams) error {
	if _, ok := s.store.Get(p.TextDocument.URI); !ok {
		return nil
	}

	for _, c := range p.ContentChanges {
		switch ch := c.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			if err := s.store.ReplaceWhole(p.TextDocument.URI, ch.Text); err != nil {
				commonlog.GetLoggerf("smithy-language-server.server").Warningf("didChange: %v", err)
				return nil
			}
		case protocol.TextDocumentContentChangeEvent:
			r := document.Range{
				Start: document.Position{Line: ch.Range.Start.Line, Character: ch.Range.Start.Character},
				End:   document.Position{Line: ch.Range.End.Line, Character: ch.Range.End.Character},
			}
			if err := s.store.ApplyRange(p.TextDocument.URI, r, ch.Text); err != nil {
				commonlog.GetLoggerf("smithy-language-server.server").Warningf("didChange: %v", err)
				return nil
			}
		}
	}
	s.publishDiagnostics(ctx, p.TextDocument.URI)
	return nil
}

func (s *Server) didClose(_ *glsp.Context, p *protocol.DidCloseTextDocumentParams) error {
	s.store.Close(p.TextDocument.URI)
	return nil
}

// indexSourceFile syntactically parses a workspace source file not
// currently open in the editor and seeds modelcache with its shapes, so
// definition/completion resolve against the whole workspace rather than
// only whatever files the client happens to have open. Unreadable files
// are skipped: modelcache's contract never requires loader success.
func (s *Server) indexSourceFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	doc, err := document.Of(string(data))
	if err != nil {
		return false
	}
	res := idl.ParseIDL(doc)
	s.store.Models.Update(config.FileURI(path), res.Namespace, doc, res.Statements)
	return true
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) {
	entry, ok := s.store.Get(uri)
	if !ok || entry.Parse == nil {
		return
	}
	diags := diagnostics.FromParseErrors(entry.Parse.Errors, entry.Doc)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}
