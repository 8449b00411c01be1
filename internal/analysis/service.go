package analysis

import "context"

// Service is the asynchronous request/response boundary to the language
// analysis engine. Requests are keyed by file identifier and numeric
// offsets. Implementations must honor context cancellation; a cancelled
// call returns ctx.Err() and any late result is discarded by callers.
type Service interface {
	// UpdateFile pushes the full current text of a file to the service
	UpdateFile(ctx context.Context, file string, text string) error
	// CloseFile tells the service a file is no longer open
	CloseFile(ctx context.Context, file string) error

	SyntacticDiagnostics(ctx context.Context, file string) ([]Diagnostic, error)
	SemanticDiagnostics(ctx context.Context, file string) ([]Diagnostic, error)

	Completions(ctx context.Context, file string, offset int) (*CompletionInfo, error)
	CompletionDetails(ctx context.Context, file string, offset int, name string) (*EntryDetails, error)

	// NavigateTo performs a fuzzy symbol search across the whole project
	NavigateTo(ctx context.Context, query string) ([]NavigateToItem, error)

	SignatureHelp(ctx context.Context, file string, offset int) (*SignatureHelpItems, error)
	QuickInfo(ctx context.Context, file string, offset int) (*QuickInfo, error)

	Occurrences(ctx context.Context, file string, offset int) ([]Occurrence, error)
	Definition(ctx context.Context, file string, offset int) ([]FileSpan, error)
	References(ctx context.Context, file string, offset int) ([]ReferenceEntry, error)

	NavigationTree(ctx context.Context, file string) (*NavigationTree, error)

	FormatRange(ctx context.Context, file string, start, end int, options FormatOptions) ([]TextEdit, error)
	FormatOnKey(ctx context.Context, file string, offset int, key string, options FormatOptions) ([]TextEdit, error)
}
