package lsp

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/bridge"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
	"github.com/sourcegraph/jsonrpc2"
)

// Server is the host-facing side of the bridge: it speaks LSP to the
// editor and forwards work to the adapter providers.
type Server struct {
	rootPath        string
	conn            *jsonrpc2.Conn
	documentManager *DocumentManager
	service         analysis.Service

	completion  CompletionProvider
	hover       HoverProvider
	signature   SignatureProvider
	symbols     SymbolProvider
	navigation  NavigationProvider
	formatting  FormattingProvider
	diagnostics DiagnosticsLifecycle
	commands    map[string]CommandProvider
}

// NewServer creates a new LSP server bridging to the given analysis service
func NewServer(service analysis.Service) *Server {
	return &Server{
		documentManager: NewDocumentManager(),
		service:         service,
		commands:        make(map[string]CommandProvider),
	}
}

// DocumentManager returns the server's document store
func (s *Server) DocumentManager() *DocumentManager {
	return s.documentManager
}

// RegisterCompletionProvider registers the completion provider
func (s *Server) RegisterCompletionProvider(provider CompletionProvider) {
	s.completion = provider
}

// RegisterHoverProvider registers the hover provider
func (s *Server) RegisterHoverProvider(provider HoverProvider) {
	s.hover = provider
}

// RegisterSignatureProvider registers the signature help provider
func (s *Server) RegisterSignatureProvider(provider SignatureProvider) {
	s.signature = provider
}

// RegisterSymbolProvider registers the document symbol provider
func (s *Server) RegisterSymbolProvider(provider SymbolProvider) {
	s.symbols = provider
}

// RegisterNavigationProvider registers the navigation provider
func (s *Server) RegisterNavigationProvider(provider NavigationProvider) {
	s.navigation = provider
}

// RegisterFormattingProvider registers the formatting provider
func (s *Server) RegisterFormattingProvider(provider FormattingProvider) {
	s.formatting = provider
}

// RegisterDiagnostics registers the diagnostics lifecycle manager
func (s *Server) RegisterDiagnostics(diagnostics DiagnosticsLifecycle) {
	s.diagnostics = diagnostics
}

// RegisterCommandProvider registers a workspace command provider
func (s *Server) RegisterCommandProvider(provider CommandProvider) {
	for _, command := range provider.Commands() {
		s.commands[command] = provider
	}
}

// PublishDiagnostics implements the marker sink: it hands a full
// replacement diagnostic set for one document to the editor.
func (s *Server) PublishDiagnostics(uri string, diagnostics []protocol.Diagnostic) {
	if s.conn == nil {
		return
	}
	params := protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics}
	if err := s.conn.Notify(context.Background(), "textDocument/publishDiagnostics", params); err != nil {
		log.Printf("error publishing diagnostics for %s: %v", uri, err)
	}
}

// Start serves a single editor connection over the given reader/writer pair.
func (s *Server) Start(in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewBufferedStream(rwc{in, out}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(s.handle))
	s.conn = conn

	// Wait for the connection to close
	<-conn.DisconnectNotify()
	return nil
}

// rwc combines a reader and writer into a single ReadWriteCloser
type rwc struct {
	io.Reader
	io.Writer
}

// Close implements io.Closer
func (rwc) Close() error {
	return nil
}

// handle processes incoming JSON-RPC requests and notifications
func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	// Handle exit notification after shutdown
	if req.Method == "exit" {
		log.Println("Received exit notification, exiting")
		if err := conn.Close(); err != nil {
			log.Printf("error closing connection: %v", err)
		}
		return nil, nil
	}

	switch req.Method {
	case "initialize":
		var params protocol.InitializeParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeParseError, Message: err.Error()}
		}
		return s.initialize(&params), nil

	case "initialized":
		return nil, nil

	case "textDocument/didOpen":
		var params struct {
			TextDocument struct {
				URI     string `json:"uri"`
				Text    string `json:"text"`
				Version int    `json:"version"`
			} `json:"textDocument"`
		}
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		s.documentManager.OpenDocument(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
		s.syncFile(ctx, params.TextDocument.URI, params.TextDocument.Text)
		if s.diagnostics != nil {
			s.diagnostics.DocumentOpened(params.TextDocument.URI)
		}
		return nil, nil

	case "textDocument/didChange":
		var params struct {
			TextDocument struct {
				URI     string `json:"uri"`
				Version int    `json:"version"`
			} `json:"textDocument"`
			ContentChanges []struct {
				Text string `json:"text"`
			} `json:"contentChanges"`
		}
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if len(params.ContentChanges) > 0 {
			text := params.ContentChanges[len(params.ContentChanges)-1].Text
			s.documentManager.UpdateDocument(params.TextDocument.URI, text, params.TextDocument.Version)
			s.syncFile(ctx, params.TextDocument.URI, text)
			if s.diagnostics != nil {
				s.diagnostics.DocumentChanged(params.TextDocument.URI)
			}
		}
		return nil, nil

	case "textDocument/didClose":
		var params struct {
			TextDocument struct {
				URI string `json:"uri"`
			} `json:"textDocument"`
		}
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		s.documentManager.CloseDocument(params.TextDocument.URI)
		if err := s.service.CloseFile(ctx, params.TextDocument.URI); err != nil {
			log.Printf("error closing %s on service: %v", params.TextDocument.URI, err)
		}
		if s.diagnostics != nil {
			s.diagnostics.DocumentClosed(params.TextDocument.URI)
		}
		return nil, nil

	case "workspace/didChangeConfiguration":
		var params protocol.DidChangeConfigurationParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.diagnostics != nil {
			s.diagnostics.SetOptions(decodeValidationOptions(params.Settings))
		}
		return nil, nil

	case "textDocument/completion":
		var params protocol.CompletionParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.completion == nil {
			return nil, nil
		}
		list, err := s.completion.Completions(ctx, params.TextDocument.URI, params.Position)
		return shaped(list, err)

	case "completionItem/resolve":
		var item protocol.CompletionItem
		if err := json.Unmarshal(*req.Params, &item); err != nil {
			return nil, err
		}
		if s.completion == nil {
			return item, nil
		}
		resolved, err := s.completion.Resolve(ctx, item)
		if err != nil {
			return item, nil
		}
		return resolved, nil

	case "textDocument/signatureHelp":
		var params protocol.SignatureHelpParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.signature == nil {
			return nil, nil
		}
		help, err := s.signature.SignatureHelp(ctx, params.TextDocument.URI, params.Position)
		return shaped(help, err)

	case "textDocument/hover":
		var params protocol.HoverParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.hover == nil {
			return nil, nil
		}
		hover, err := s.hover.Hover(ctx, params.TextDocument.URI, params.Position)
		return shaped(hover, err)

	case "textDocument/documentHighlight":
		var params protocol.DocumentHighlightParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.navigation == nil {
			return nil, nil
		}
		highlights, err := s.navigation.DocumentHighlights(ctx, params.TextDocument.URI, params.Position)
		return shaped(highlights, err)

	case "textDocument/definition":
		var params protocol.DefinitionParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.navigation == nil {
			return nil, nil
		}
		locations, err := s.navigation.Definition(ctx, params.TextDocument.URI, params.Position)
		return shaped(locations, err)

	case "textDocument/references":
		var params protocol.ReferenceParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.navigation == nil {
			return nil, nil
		}
		locations, err := s.navigation.References(ctx, params.TextDocument.URI, params.Position)
		return shaped(locations, err)

	case "textDocument/documentSymbol":
		var params protocol.DocumentSymbolParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.symbols == nil {
			return nil, nil
		}
		symbols, err := s.symbols.DocumentSymbols(ctx, params.TextDocument.URI)
		return shaped(symbols, err)

	case "textDocument/rangeFormatting":
		var params protocol.DocumentRangeFormattingParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.formatting == nil {
			return nil, nil
		}
		edits, err := s.formatting.RangeEdits(ctx, params.TextDocument.URI, params.Range, params.Options)
		return shaped(edits, err)

	case "textDocument/onTypeFormatting":
		var params protocol.DocumentOnTypeFormattingParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if s.formatting == nil {
			return nil, nil
		}
		edits, err := s.formatting.OnTypeEdits(ctx, params.TextDocument.URI, params.Position, params.Ch, params.Options)
		return shaped(edits, err)

	case "workspace/executeCommand":
		var params protocol.ExecuteCommandParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		provider, ok := s.commands[params.Command]
		if !ok {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "unknown command: " + params.Command}
		}
		return provider.Execute(ctx, params.Command, params.Arguments)

	case "shutdown":
		if s.diagnostics != nil {
			s.diagnostics.Dispose()
		}
		log.Println("Received shutdown request, waiting for exit notification")
		return nil, nil

	default:
		// Check if this is a notification (no ID)
		if req.ID == (jsonrpc2.ID{}) {
			// This is a notification, no response needed
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "Method not implemented: " + req.Method}
	}
}

// syncFile pushes the latest document text to the analysis service so
// subsequent positional requests see the same snapshot the host does.
func (s *Server) syncFile(ctx context.Context, uri string, text string) {
	if err := s.service.UpdateFile(ctx, uri, text); err != nil {
		log.Printf("error syncing %s to service: %v", uri, err)
	}
}

// shaped maps adapter errors onto the wire contract: stale documents,
// cancellations and service failures all abort silently with an empty
// result; service failures were already logged by the adapter.
func shaped(result interface{}, err error) (interface{}, error) {
	if err != nil {
		return nil, nil
	}
	return result, nil
}

// decodeValidationOptions extracts the validation flags from a
// configuration payload, accepting both flat and sectioned layouts.
func decodeValidationOptions(settings json.RawMessage) bridge.ValidationOptions {
	var flat struct {
		NoSyntaxValidation   bool `json:"noSyntaxValidation"`
		NoSemanticValidation bool `json:"noSemanticValidation"`
	}
	var sectioned struct {
		Lsbridge *struct {
			NoSyntaxValidation   bool `json:"noSyntaxValidation"`
			NoSemanticValidation bool `json:"noSemanticValidation"`
		} `json:"lsbridge"`
	}
	if err := json.Unmarshal(settings, &sectioned); err == nil && sectioned.Lsbridge != nil {
		return bridge.ValidationOptions{
			NoSyntaxValidation:   sectioned.Lsbridge.NoSyntaxValidation,
			NoSemanticValidation: sectioned.Lsbridge.NoSemanticValidation,
		}
	}
	_ = json.Unmarshal(settings, &flat)
	return bridge.ValidationOptions{
		NoSyntaxValidation:   flat.NoSyntaxValidation,
		NoSemanticValidation: flat.NoSemanticValidation,
	}
}

// initialize handles the LSP initialize request
func (s *Server) initialize(params *protocol.InitializeParams) interface{} {
	s.extractRootPath(params)

	return map[string]interface{}{
		"capabilities": map[string]interface{}{
			"textDocumentSync": map[string]interface{}{
				"openClose": true,
				"change":    1, // Full sync
			},
			"completionProvider": map[string]interface{}{
				"triggerCharacters": []string{"."},
				"resolveProvider":   true,
			},
			"signatureHelpProvider": map[string]interface{}{
				"triggerCharacters": []string{"(", ","},
			},
			"hoverProvider":                   true,
			"documentHighlightProvider":       true,
			"definitionProvider":              true,
			"referencesProvider":              true,
			"documentSymbolProvider":          true,
			"documentRangeFormattingProvider": true,
			"documentOnTypeFormattingProvider": map[string]interface{}{
				"firstTriggerCharacter": ";",
				"moreTriggerCharacter":  []string{"}", "\n"},
			},
			"executeCommandProvider": map[string]interface{}{
				"commands": s.commandNames(),
			},
		},
	}
}

// extractRootPath extracts the root path from the initialize params
func (s *Server) extractRootPath(params *protocol.InitializeParams) {
	if params.RootPath != "" {
		s.rootPath = params.RootPath
		return
	}

	if params.RootURI != "" {
		s.rootPath = strings.TrimPrefix(params.RootURI, "file://")
		return
	}

	if len(params.WorkspaceFolders) > 0 {
		s.rootPath = strings.TrimPrefix(params.WorkspaceFolders[0].URI, "file://")
		return
	}

	// Fall back to current directory
	s.rootPath, _ = os.Getwd()
}

func (s *Server) commandNames() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	return names
}
