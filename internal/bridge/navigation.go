package bridge

import (
	"context"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// Navigator adapts the service's offset-based navigation results
// (occurrences, definition, references) into host locations.
type Navigator struct {
	svc  analysis.Service
	docs DocumentSource
}

// NewNavigator creates a navigation adapter.
func NewNavigator(svc analysis.Service, docs DocumentSource) *Navigator {
	return &Navigator{svc: svc, docs: docs}
}

// DocumentHighlights returns the occurrences of the symbol at a
// position within its own document.
func (n *Navigator) DocumentHighlights(ctx context.Context, uri string, pos protocol.Position) ([]protocol.DocumentHighlight, error) {
	mapper, err := mapperFor(n.docs, uri)
	if err != nil {
		return nil, err
	}

	offset := mapper.PositionToOffset(mapper.FromProtocol(pos))
	occurrences, err := n.svc.Occurrences(ctx, uri, offset)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("occurrences", err)
		return nil, nil
	}

	highlights := make([]protocol.DocumentHighlight, 0, len(occurrences))
	for _, occ := range occurrences {
		kind := protocol.DocumentHighlightKindRead
		if occ.IsWriteAccess {
			kind = protocol.DocumentHighlightKindWrite
		}
		highlights = append(highlights, protocol.DocumentHighlight{
			Range: mapper.SpanToProtocol(occ.Span),
			Kind:  kind,
		})
	}
	return highlights, nil
}

// Definition returns the declaration sites of the symbol at a position.
func (n *Navigator) Definition(ctx context.Context, uri string, pos protocol.Position) ([]protocol.Location, error) {
	mapper, err := mapperFor(n.docs, uri)
	if err != nil {
		return nil, err
	}

	offset := mapper.PositionToOffset(mapper.FromProtocol(pos))
	spans, err := n.svc.Definition(ctx, uri, offset)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("definition", err)
		return nil, nil
	}
	return n.locations(uri, mapper, spans), nil
}

// References returns every reference to the symbol at a position.
func (n *Navigator) References(ctx context.Context, uri string, pos protocol.Position) ([]protocol.Location, error) {
	mapper, err := mapperFor(n.docs, uri)
	if err != nil {
		return nil, err
	}

	offset := mapper.PositionToOffset(mapper.FromProtocol(pos))
	entries, err := n.svc.References(ctx, uri, offset)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("references", err)
		return nil, nil
	}

	spans := make([]analysis.FileSpan, 0, len(entries))
	for _, entry := range entries {
		spans = append(spans, entry.FileSpan)
	}
	return n.locations(uri, mapper, spans), nil
}

// locations converts file spans to host locations. Spans in files that
// are not open cannot be projected into line/column form and are
// skipped, matching the stale-document rule.
func (n *Navigator) locations(uri string, mapper *Mapper, spans []analysis.FileSpan) []protocol.Location {
	locations := make([]protocol.Location, 0, len(spans))
	for _, span := range spans {
		m := mapper
		if span.File != uri {
			other, err := mapperFor(n.docs, span.File)
			if err != nil {
				continue
			}
			m = other
		}
		locations = append(locations, protocol.Location{
			URI:   span.File,
			Range: m.SpanToProtocol(span.Span),
		})
	}
	return locations
}
