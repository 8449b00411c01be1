package lsp

import (
	"context"
	"encoding/json"

	"github.com/lsbridge/lsbridge/internal/bridge"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// CompletionProvider is an interface for providing completion items
type CompletionProvider interface {
	// Completions returns the merged candidate list at a position
	Completions(ctx context.Context, uri string, pos protocol.Position) (*protocol.CompletionList, error)
	// Resolve lazily enriches a selected candidate
	Resolve(ctx context.Context, item protocol.CompletionItem) (protocol.CompletionItem, error)
}

// HoverProvider is an interface for providing hover content
type HoverProvider interface {
	Hover(ctx context.Context, uri string, pos protocol.Position) (*protocol.Hover, error)
}

// SignatureProvider is an interface for providing signature help
type SignatureProvider interface {
	SignatureHelp(ctx context.Context, uri string, pos protocol.Position) (*protocol.SignatureHelp, error)
}

// SymbolProvider is an interface for providing document outlines
type SymbolProvider interface {
	DocumentSymbols(ctx context.Context, uri string) ([]protocol.SymbolInformation, error)
}

// NavigationProvider is an interface for providing highlights,
// definitions and references
type NavigationProvider interface {
	DocumentHighlights(ctx context.Context, uri string, pos protocol.Position) ([]protocol.DocumentHighlight, error)
	Definition(ctx context.Context, uri string, pos protocol.Position) ([]protocol.Location, error)
	References(ctx context.Context, uri string, pos protocol.Position) ([]protocol.Location, error)
}

// FormattingProvider is an interface for providing formatting edits
type FormattingProvider interface {
	RangeEdits(ctx context.Context, uri string, rng protocol.Range, options protocol.FormattingOptions) ([]protocol.TextEdit, error)
	OnTypeEdits(ctx context.Context, uri string, pos protocol.Position, key string, options protocol.FormattingOptions) ([]protocol.TextEdit, error)
}

// DiagnosticsLifecycle drives the per-document validation cycle
type DiagnosticsLifecycle interface {
	DocumentOpened(uri string)
	DocumentChanged(uri string)
	DocumentClosed(uri string)
	SetOptions(opts bridge.ValidationOptions)
	Dispose()
}

// CommandProvider is an interface for handling workspace commands
type CommandProvider interface {
	// Commands returns the command names handled by this provider
	Commands() []string
	// Execute runs one of the provider's commands
	Execute(ctx context.Context, command string, args []json.RawMessage) (interface{}, error)
}
