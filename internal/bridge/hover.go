package bridge

import (
	"context"
	"strings"
	"sync"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// HoverProvider shapes hover content from up to three concurrently
// fetched facts, choosing among them by a fixed precedence policy.
type HoverProvider struct {
	svc  analysis.Service
	docs DocumentSource
}

// NewHoverProvider creates a hover adapter.
func NewHoverProvider(svc analysis.Service, docs DocumentSource) *HoverProvider {
	return &HoverProvider{svc: svc, docs: docs}
}

// Hover returns hover content at a position, or nil when none of the
// fetched facts apply.
func (h *HoverProvider) Hover(ctx context.Context, uri string, pos protocol.Position) (*protocol.Hover, error) {
	mapper, err := mapperFor(h.docs, uri)
	if err != nil {
		return nil, err
	}

	bpos := mapper.FromProtocol(pos)
	offset := mapper.PositionToOffset(bpos)
	word := mapper.WordUntil(bpos)

	var (
		wg        sync.WaitGroup
		quickInfo *analysis.QuickInfo
		signature *analysis.SignatureHelpItems
		details   *analysis.EntryDetails
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := h.svc.QuickInfo(ctx, uri, offset)
		if err != nil {
			logServiceError("quickInfo", err)
			return
		}
		quickInfo = result
	}()
	go func() {
		defer wg.Done()
		result, err := h.svc.SignatureHelp(ctx, uri, offset)
		if err != nil {
			logServiceError("signatureHelp", err)
			return
		}
		signature = result
	}()
	if word.Word != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := h.svc.CompletionDetails(ctx, uri, offset, word.Word)
			if err != nil {
				logServiceError("completionDetails", err)
				return
			}
			details = result
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if quickInfo != nil && details != nil {
		contents := partsToString(details.Documentation)
		if contents == "" {
			contents = partsToString(quickInfo.DisplayParts)
		}
		rng := mapper.SpanToProtocol(quickInfo.Span)
		return &protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: contents},
			Range:    &rng,
		}, nil
	}

	if signature != nil && len(signature.Items) > 0 {
		if hover := signatureHover(mapper, signature); hover != nil {
			return hover, nil
		}
	}

	if quickInfo != nil {
		rng := mapper.SpanToProtocol(quickInfo.Span)
		return &protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: partsToString(quickInfo.DisplayParts)},
			Range:    &rng,
		}, nil
	}

	return nil, nil
}

// signatureHover builds hover content for the active parameter of the
// selected overload.
func signatureHover(mapper *Mapper, items *analysis.SignatureHelpItems) *protocol.Hover {
	item := items.Items[clampIndex(items.SelectedItemIndex, len(items.Items))]
	if len(item.Parameters) == 0 {
		return nil
	}

	param := item.Parameters[clampIndex(items.ArgumentIndex, len(item.Parameters))]
	contents := partsToString(param.Documentation)
	if contents == "" {
		contents = partsToString(param.DisplayParts)
	}

	span := items.ApplicableSpan
	if items.ArgumentCount > 1 {
		span = argumentSpan(mapper, span, items.ArgumentIndex)
	}

	rng := mapper.SpanToProtocol(span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: contents},
		Range:    &rng,
	}
}

// argumentSpan narrows the applicable span to the argIndex-th
// comma-delimited argument substring. Splitting positionally keeps the
// computation correct even when an argument's text recurs earlier in
// the substring: each piece's offset is the cumulative length of the
// pieces and separators before it, the first non-overlapping split.
func argumentSpan(mapper *Mapper, span analysis.Span, argIndex int) analysis.Span {
	start, end := span.Start, span.End()
	if start < 0 {
		start = 0
	}
	if end > len(mapper.runes) {
		end = len(mapper.runes)
	}
	if start > end {
		start = end
	}
	raw := string(mapper.runes[start:end])

	pieces := strings.Split(raw, ",")
	idx := clampIndex(argIndex, len(pieces))

	offset := start
	for i := 0; i < idx; i++ {
		offset += len([]rune(pieces[i])) + 1
	}
	return analysis.Span{Start: offset, Length: len([]rune(pieces[idx]))}
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
