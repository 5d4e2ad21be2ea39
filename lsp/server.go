// Package lsp implements a language server that reports JSON syntax errors
// as diagnostics.
package lsp

import (
	"math"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jsonv/validator"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "jsonv"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	log     commonlog.Logger

	mu        sync.Mutex
	validator *validator.Validator
	documents map[protocol.DocumentUri]string
}

func NewServer(version string) *Server {
	ls := &Server{
		version:   version,
		log:       commonlog.GetLogger("jsonv.lsp"),
		validator: validator.New(),
		documents: make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

// maxDepthLimit caps the maxDepth a client may request.
const maxDepthLimit = 1 << 20

// Options are read from the client's initializationOptions. A maxDepth
// that is not a whole number between 1 and maxDepthLimit is ignored.
type Options struct {
	Lax      bool
	MaxDepth int
}

func parseOptions(raw any) Options {
	var opts Options
	m, ok := raw.(map[string]any)
	if !ok {
		return opts
	}
	if lax, ok := m["lax"].(bool); ok {
		opts.Lax = lax
	}
	if depth, ok := m["maxDepth"].(float64); ok && depth >= 1 && depth <= maxDepthLimit && depth == math.Trunc(depth) {
		opts.MaxDepth = int(depth)
	}
	return opts
}

func (o Options) newValidator() *validator.Validator {
	vopts := []validator.Option{validator.WithMaxDepth(o.MaxDepth)}
	if o.Lax {
		vopts = append(vopts, validator.WithLaxSeparators())
	}
	return validator.New(vopts...)
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	opts := parseOptions(params.InitializationOptions)
	v := opts.newValidator()
	ls.mu.Lock()
	ls.validator = v
	ls.mu.Unlock()
	ls.log.Infof("initialize: lax=%t maxDepth=%d", v.Lax(), v.MaxDepth())

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	ls.update(doc.URI, doc.Text)
	ls.publish(ctx, doc.URI, &doc.Version)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	ls.update(params.TextDocument.URI, textChange.Text)
	ls.publish(ctx, params.TextDocument.URI, &params.TextDocument.Version)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(params.TextDocument.URI, *params.Text)
	}
	ls.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.mu.Lock()
	delete(ls.documents, uri)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) update(uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, version *protocol.Integer) {
	ls.mu.Lock()
	text, ok := ls.documents[uri]
	v := ls.validator
	ls.mu.Unlock()
	if !ok {
		return
	}

	diagnostics := Diagnose(v, text)
	ls.log.Debugf("%s: %d diagnostics", uri, len(diagnostics))

	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
	if version != nil && *version >= 0 {
		uv := protocol.UInteger(*version)
		params.Version = &uv
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
