// Package lsp serves step completions to editors over the Language Server
// Protocol.
package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	protocol "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/chriserin/gsteps/internal/parser"
)

// Server answers textDocument/completion requests from a fixed set of
// step templates. Open documents are kept in full so that And and But
// lines can be attributed to the category in effect above them.
type Server struct {
	steps  []parser.Step
	logger *slog.Logger

	mu       sync.Mutex
	docs     map[protocol.DocumentURI]string
	shutdown bool
}

func NewServer(steps parser.StepSet, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		steps:  steps.Sorted(),
		logger: logger,
		docs:   map[protocol.DocumentURI]string{},
	}
}

// Run serves one client on rwc until it disconnects, sends exit, or ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))
	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.logger.Debug("request", "method", req.Method, "notification", req.Notif)

	if req.Method == "exit" {
		conn.Close()
		return nil, nil
	}

	s.mu.Lock()
	down := s.shutdown
	s.mu.Unlock()
	if down {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
	}

	switch req.Method {
	case "initialize":
		var kind protocol.TextDocumentSyncKind = protocol.TDSKFull
		return protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync:   &protocol.TextDocumentSyncOptionsOrKind{Kind: &kind},
				CompletionProvider: &protocol.CompletionOptions{TriggerCharacters: []string{" "}},
			},
		}, nil

	case "initialized":
		return nil, nil

	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil

	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		s.setDocument(params.TextDocument.URI, params.TextDocument.Text)
		return nil, nil

	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		// Full sync: the last change carries the whole document.
		if n := len(params.ContentChanges); n > 0 {
			s.setDocument(params.TextDocument.URI, params.ContentChanges[n-1].Text)
		}
		return nil, nil

	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		s.mu.Lock()
		delete(s.docs, params.TextDocument.URI)
		s.mu.Unlock()
		return nil, nil

	case "textDocument/completion":
		var params protocol.CompletionParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		s.mu.Lock()
		text, ok := s.docs[params.TextDocument.URI]
		s.mu.Unlock()
		items := []protocol.CompletionItem{}
		if ok {
			items = Complete(s.steps, strings.Split(text, "\n"), params.Position)
		}
		s.logger.Debug("completion", "uri", params.TextDocument.URI, "items", len(items))
		return protocol.CompletionList{Items: items}, nil
	}

	if req.Notif {
		return nil, nil
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: fmt.Sprintf("method not supported: %s", req.Method)}
}

func (s *Server) setDocument(uri protocol.DocumentURI, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

func decode(req *jsonrpc2.Request, v interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }

// Stdio joins a reader and writer, typically os.Stdin and os.Stdout, into
// the stream Run expects.
func Stdio(in io.Reader, out io.Writer) io.ReadWriteCloser {
	return stdio{Reader: in, Writer: out}
}
