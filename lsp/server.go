// Package lsp serves JSON documents over the Language Server Protocol,
// reporting syntax errors found by the combinator grammar.
package lsp

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/parcomb/format"
	"github.com/dhamidi/parcomb/jsonvalue"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

type Server struct {
	name    string
	version string
	log     commonlog.Logger
	parser  *jsonvalue.Parser
	handler protocol.Handler
	server  *server.Server

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

func NewServer(name, version string) *Server {
	ls := &Server{
		name:    name,
		version: version,
		log:     commonlog.GetLogger(name + ".lsp"),
		parser:  jsonvalue.NewParser(),
		docs:    make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, name, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ls.name,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	text, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return ls.format(text, params.Options)
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	diagnostics := ls.diagnose(text)
	ls.log.Debugf("%s: %d diagnostics", uriToPath(uri), len(diagnostics))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *Server) document(uri protocol.DocumentUri) (string, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	text, ok := ls.docs[uri]
	return text, ok
}

// format returns a single edit replacing the whole document, or nothing if
// the document does not parse or is already formatted.
func (ls *Server) format(text string, opts protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	v, err := ls.parser.Parse(text)
	if err != nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := format.NewJSONEncoder(&buf)
	enc.Indent = indentString(opts)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	formatted := buf.String()
	if formatted == text {
		return nil, nil
	}

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endPosition(text),
		},
		NewText: formatted,
	}}, nil
}

func indentString(opts protocol.FormattingOptions) string {
	size := 2
	insertSpaces := true
	if v, ok := opts[protocol.FormattingOptionTabSize]; ok {
		switch n := v.(type) {
		case float64:
			size = int(n)
		case int:
			size = n
		case protocol.UInteger:
			size = int(n)
		}
	}
	if v, ok := opts[protocol.FormattingOptionInsertSpaces].(bool); ok {
		insertSpaces = v
	}
	if !insertSpaces {
		return "\t"
	}
	if size <= 0 {
		size = 2
	}
	return strings.Repeat(" ", size)
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
