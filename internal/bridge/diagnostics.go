package bridge

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// diagnosticSource tags published markers so the host can scope them.
const diagnosticSource = "lsbridge"

// defaultQuietPeriod is the editing-silence window before a validation
// pass fires.
const defaultQuietPeriod = 500 * time.Millisecond

// MarkerSink receives full replacement diagnostic sets scoped by
// document. Publishing an empty list clears previously shown markers.
type MarkerSink interface {
	PublishDiagnostics(uri string, diagnostics []protocol.Diagnostic)
}

// ValidationOptions are the global configuration flags controlling
// which diagnostic passes run.
type ValidationOptions struct {
	NoSyntaxValidation   bool
	NoSemanticValidation bool
}

// DiagnosticsManager tracks one debounce/validate cycle per open
// document. A new content change supersedes a pending timer but never
// cancels an already in-flight validation; that result is discarded on
// arrival only if the document was closed meanwhile.
type DiagnosticsManager struct {
	svc  analysis.Service
	docs DocumentSource
	sink MarkerSink

	mu       sync.Mutex
	entries  map[string]*docEntry
	quiet    time.Duration
	opts     ValidationOptions
	disposed bool
}

// docEntry lives exactly from document open to document close.
type docEntry struct {
	timer *time.Timer
}

// DiagnosticsOption configures the manager.
type DiagnosticsOption func(*DiagnosticsManager)

// WithQuietPeriod overrides the debounce quiet period.
func WithQuietPeriod(d time.Duration) DiagnosticsOption {
	return func(m *DiagnosticsManager) {
		m.quiet = d
	}
}

// WithValidationOptions sets the initial validation flags.
func WithValidationOptions(opts ValidationOptions) DiagnosticsOption {
	return func(m *DiagnosticsManager) {
		m.opts = opts
	}
}

// NewDiagnosticsManager creates a diagnostics lifecycle manager.
func NewDiagnosticsManager(svc analysis.Service, docs DocumentSource, sink MarkerSink, opts ...DiagnosticsOption) *DiagnosticsManager {
	m := &DiagnosticsManager{
		svc:     svc,
		docs:    docs,
		sink:    sink,
		entries: make(map[string]*docEntry),
		quiet:   defaultQuietPeriod,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DocumentOpened starts tracking a document and fires an immediate,
// undebounced validation pass for the initial state.
func (m *DiagnosticsManager) DocumentOpened(uri string) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.entries[uri] = &docEntry{}
	m.mu.Unlock()

	go m.validate(uri)
}

// DocumentChanged restarts the quiet-period timer for a document. N
// changes within the quiet period produce exactly one validation pass.
func (m *DiagnosticsManager) DocumentChanged(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[uri]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	entry.timer = time.AfterFunc(m.quiet, func() {
		m.validate(uri)
	})
}

// DocumentClosed stops tracking a document and retracts its markers.
func (m *DiagnosticsManager) DocumentClosed(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked(uri)
}

func (m *DiagnosticsManager) closeLocked(uri string) {
	entry, ok := m.entries[uri]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	delete(m.entries, uri)
	m.sink.PublishDiagnostics(uri, []protocol.Diagnostic{})
}

// SetOptions applies new global configuration and re-runs the full
// close+reopen sequence for every currently open document, forcing
// re-validation under the new flags.
func (m *DiagnosticsManager) SetOptions(opts ValidationOptions) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.opts = opts

	uris := make([]string, 0, len(m.entries))
	for uri := range m.entries {
		uris = append(uris, uri)
	}
	for _, uri := range uris {
		m.closeLocked(uri)
		m.entries[uri] = &docEntry{}
	}
	m.mu.Unlock()

	for _, uri := range uris {
		go m.validate(uri)
	}
}

// Dispose stops all timers and stops tracking every document. It is
// idempotent; calls after the first have no effect.
func (m *DiagnosticsManager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed {
		return
	}
	m.disposed = true

	for _, entry := range m.entries {
		if entry.timer != nil {
			entry.timer.Stop()
		}
	}
	m.entries = make(map[string]*docEntry)
}

// validate runs one validation pass: up to two concurrent diagnostic
// requests, joined, then a full replacement publish.
func (m *DiagnosticsManager) validate(uri string) {
	m.mu.Lock()
	_, open := m.entries[uri]
	opts := m.opts
	m.mu.Unlock()
	if !open {
		return
	}

	ctx := context.Background()
	passID := uuid.NewString()

	var (
		wg        sync.WaitGroup
		syntactic []analysis.Diagnostic
		semantic  []analysis.Diagnostic
		synErr    error
		semErr    error
	)
	if !opts.NoSyntaxValidation {
		wg.Add(1)
		go func() {
			defer wg.Done()
			syntactic, synErr = m.svc.SyntacticDiagnostics(ctx, uri)
		}()
	}
	if !opts.NoSemanticValidation {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semantic, semErr = m.svc.SemanticDiagnostics(ctx, uri)
		}()
	}
	wg.Wait()

	if synErr != nil || semErr != nil {
		if synErr != nil {
			log.Printf("validation %s: syntactic diagnostics failed for %s: %v", passID, uri, synErr)
		}
		if semErr != nil {
			log.Printf("validation %s: semantic diagnostics failed for %s: %v", passID, uri, semErr)
		}
		return
	}

	// Publish under the lock so a concurrent close cannot interleave
	// between the open check and the marker publish.
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, stillOpen := m.entries[uri]; !stillOpen {
		// Closed while the request was in flight; no stale-marker leak.
		return
	}

	text, ok := m.docs.DocumentText(uri)
	if !ok {
		return
	}
	mapper := NewMapper(text)

	diagnostics := make([]protocol.Diagnostic, 0, len(syntactic)+len(semantic))
	for _, d := range append(syntactic, semantic...) {
		diag := protocol.Diagnostic{
			Range:    mapper.SpanToProtocol(d.Span),
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  d.Message,
		}
		if d.Code != 0 {
			diag.Code = d.Code
		}
		diagnostics = append(diagnostics, diag)
	}

	m.sink.PublishDiagnostics(uri, diagnostics)
}
