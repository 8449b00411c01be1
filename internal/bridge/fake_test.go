package bridge

import (
	"context"
	"sync"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// fakeDocs is an in-memory document source.
type fakeDocs map[string]string

func (d fakeDocs) DocumentText(uri string) (string, bool) {
	text, ok := d[uri]
	return text, ok
}

// fakeService implements analysis.Service with overridable behavior
// and records every method call.
type fakeService struct {
	mu    sync.Mutex
	calls []string

	completionsFn       func(file string, offset int) (*analysis.CompletionInfo, error)
	completionDetailsFn func(file string, offset int, name string) (*analysis.EntryDetails, error)
	navigateToFn        func(query string) ([]analysis.NavigateToItem, error)
	syntacticFn         func(file string) ([]analysis.Diagnostic, error)
	semanticFn          func(file string) ([]analysis.Diagnostic, error)
	quickInfoFn         func(file string, offset int) (*analysis.QuickInfo, error)
	signatureHelpFn     func(file string, offset int) (*analysis.SignatureHelpItems, error)
	occurrencesFn       func(file string, offset int) ([]analysis.Occurrence, error)
	definitionFn        func(file string, offset int) ([]analysis.FileSpan, error)
	referencesFn        func(file string, offset int) ([]analysis.ReferenceEntry, error)
	navigationTreeFn    func(file string) (*analysis.NavigationTree, error)
	formatRangeFn       func(file string, start, end int, options analysis.FormatOptions) ([]analysis.TextEdit, error)
	formatOnKeyFn       func(file string, offset int, key string, options analysis.FormatOptions) ([]analysis.TextEdit, error)
}

var _ analysis.Service = (*fakeService)(nil)

func (f *fakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
}

func (f *fakeService) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if call == method {
			count++
		}
	}
	return count
}

func (f *fakeService) UpdateFile(ctx context.Context, file string, text string) error {
	f.record("updateFile")
	return nil
}

func (f *fakeService) CloseFile(ctx context.Context, file string) error {
	f.record("closeFile")
	return nil
}

func (f *fakeService) SyntacticDiagnostics(ctx context.Context, file string) ([]analysis.Diagnostic, error) {
	f.record("syntacticDiagnostics")
	if f.syntacticFn != nil {
		return f.syntacticFn(file)
	}
	return nil, nil
}

func (f *fakeService) SemanticDiagnostics(ctx context.Context, file string) ([]analysis.Diagnostic, error) {
	f.record("semanticDiagnostics")
	if f.semanticFn != nil {
		return f.semanticFn(file)
	}
	return nil, nil
}

func (f *fakeService) Completions(ctx context.Context, file string, offset int) (*analysis.CompletionInfo, error) {
	f.record("completions")
	if f.completionsFn != nil {
		return f.completionsFn(file, offset)
	}
	return nil, nil
}

func (f *fakeService) CompletionDetails(ctx context.Context, file string, offset int, name string) (*analysis.EntryDetails, error) {
	f.record("completionDetails")
	if f.completionDetailsFn != nil {
		return f.completionDetailsFn(file, offset, name)
	}
	return nil, nil
}

func (f *fakeService) NavigateTo(ctx context.Context, query string) ([]analysis.NavigateToItem, error) {
	f.record("navto")
	if f.navigateToFn != nil {
		return f.navigateToFn(query)
	}
	return nil, nil
}

func (f *fakeService) SignatureHelp(ctx context.Context, file string, offset int) (*analysis.SignatureHelpItems, error) {
	f.record("signatureHelp")
	if f.signatureHelpFn != nil {
		return f.signatureHelpFn(file, offset)
	}
	return nil, nil
}

func (f *fakeService) QuickInfo(ctx context.Context, file string, offset int) (*analysis.QuickInfo, error) {
	f.record("quickInfo")
	if f.quickInfoFn != nil {
		return f.quickInfoFn(file, offset)
	}
	return nil, nil
}

func (f *fakeService) Occurrences(ctx context.Context, file string, offset int) ([]analysis.Occurrence, error) {
	f.record("occurrences")
	if f.occurrencesFn != nil {
		return f.occurrencesFn(file, offset)
	}
	return nil, nil
}

func (f *fakeService) Definition(ctx context.Context, file string, offset int) ([]analysis.FileSpan, error) {
	f.record("definition")
	if f.definitionFn != nil {
		return f.definitionFn(file, offset)
	}
	return nil, nil
}

func (f *fakeService) References(ctx context.Context, file string, offset int) ([]analysis.ReferenceEntry, error) {
	f.record("references")
	if f.referencesFn != nil {
		return f.referencesFn(file, offset)
	}
	return nil, nil
}

func (f *fakeService) NavigationTree(ctx context.Context, file string) (*analysis.NavigationTree, error) {
	f.record("navigationTree")
	if f.navigationTreeFn != nil {
		return f.navigationTreeFn(file)
	}
	return nil, nil
}

func (f *fakeService) FormatRange(ctx context.Context, file string, start, end int, options analysis.FormatOptions) ([]analysis.TextEdit, error) {
	f.record("formatRange")
	if f.formatRangeFn != nil {
		return f.formatRangeFn(file, start, end, options)
	}
	return nil, nil
}

func (f *fakeService) FormatOnKey(ctx context.Context, file string, offset int, key string, options analysis.FormatOptions) ([]analysis.TextEdit, error) {
	f.record("formatOnKey")
	if f.formatOnKeyFn != nil {
		return f.formatOnKeyFn(file, offset, key, options)
	}
	return nil, nil
}

// fakeSink records published diagnostic sets in order.
type fakeSink struct {
	mu        sync.Mutex
	published []publishRecord
}

type publishRecord struct {
	uri         string
	diagnostics []protocol.Diagnostic
}

func (s *fakeSink) PublishDiagnostics(uri string, diagnostics []protocol.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, publishRecord{uri: uri, diagnostics: diagnostics})
}

func (s *fakeSink) records() []publishRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]publishRecord, len(s.published))
	copy(out, s.published)
	return out
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func (s *fakeSink) last() (publishRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.published) == 0 {
		return publishRecord{}, false
	}
	return s.published[len(s.published)-1], true
}
