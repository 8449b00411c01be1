package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
	"github.com/lsbridge/lsbridge/internal/snippet"
)

// Candidate origin sources.
const (
	sourceDirect  = "direct"
	sourceSymbol  = "symbol"
	sourceSnippet = "snippet"
)

// resolveData travels inside a completion item so that lazy resolution
// knows where the candidate came from.
type resolveData struct {
	Source string `json:"source"`
	Name   string `json:"name"`
	File   string `json:"file,omitempty"`
	Offset int    `json:"offset,omitempty"`
	// SkipSnippet suppresses a trailing snippet body when non-whitespace
	// text already follows the cursor on the current line.
	SkipSnippet bool `json:"skipSnippet,omitempty"`
}

// Completer merges three candidate sources into one ranked,
// deduplicated, range-correct completion list: direct completions at
// the cursor, fuzzy cross-file symbol search, and static snippets.
type Completer struct {
	svc      analysis.Service
	docs     DocumentSource
	snippets *snippet.Table
}

// NewCompleter creates a completion merge engine.
func NewCompleter(svc analysis.Service, docs DocumentSource, snippets *snippet.Table) *Completer {
	return &Completer{svc: svc, docs: docs, snippets: snippets}
}

// Completions returns the merged candidate list at a position.
// Direct candidates come first in service order, snippets alongside
// them, fuzzy-symbol candidates appended; the host performs final
// ranking and filtering for display.
func (c *Completer) Completions(ctx context.Context, uri string, pos protocol.Position) (*protocol.CompletionList, error) {
	mapper, err := mapperFor(c.docs, uri)
	if err != nil {
		return nil, err
	}

	bpos := mapper.FromProtocol(pos)
	offset := mapper.PositionToOffset(bpos)
	word := mapper.WordUntil(bpos)
	prev := mapper.QualifierBefore(bpos.Line, word)
	isNamespace := prev.Word != ""
	skipSnippet := mapper.HasTextAfter(bpos)

	// The replacement range spans backward from the cursor across the
	// already-typed word. Violating this corrupts replace-on-accept.
	wordRange := mapper.RangeToProtocol(Range{
		Start: Position{Line: bpos.Line, Column: word.StartColumn},
		End:   bpos,
	})
	// Qualified candidates replace the qualifier and its separator too.
	qualifiedRange := mapper.RangeToProtocol(Range{
		Start: Position{Line: bpos.Line, Column: prev.StartColumn},
		End:   bpos,
	})

	var (
		wg      sync.WaitGroup
		info    *analysis.CompletionInfo
		symbols []analysis.NavigateToItem
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := c.svc.Completions(ctx, uri, offset)
		if err != nil {
			logServiceError("completions", err)
			return
		}
		info = result
	}()
	go func() {
		defer wg.Done()
		result, err := c.svc.NavigateTo(ctx, word.Word)
		if err != nil {
			logServiceError("navto", err)
			return
		}
		symbols = result
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var items []protocol.CompletionItem

	if info != nil {
		for _, entry := range info.Entries {
			if excluded(entry.Name) {
				continue
			}
			items = append(items, protocol.CompletionItem{
				Label:    entry.Name,
				Kind:     completionKind(entry.Kind),
				SortText: entry.SortText,
				TextEdit: &protocol.TextEdit{Range: wordRange, NewText: entry.Name},
				Data: marshalResolveData(resolveData{
					Source:      sourceDirect,
					Name:        entry.Name,
					File:        uri,
					Offset:      offset,
					SkipSnippet: skipSnippet,
				}),
			})
		}
	}

	for _, def := range c.snippets.All() {
		items = append(items, protocol.CompletionItem{
			Label:    def.Prefix,
			Kind:     protocol.CompletionItemKindSnippet,
			TextEdit: &protocol.TextEdit{Range: wordRange, NewText: def.Prefix},
			Data:     marshalResolveData(resolveData{Source: sourceSnippet, Name: def.Prefix}),
		})
	}

	for _, sym := range symbols {
		if !functionLike(sym.Kind) || sym.KindModifiers == "" {
			continue
		}
		// Already reachable through the direct source when the cursor
		// qualifier names this symbol's container.
		if isNamespace && sym.ContainerName == prev.Word {
			continue
		}

		label := sym.Name
		if sym.ContainerName != "" {
			label = sym.ContainerName + "." + sym.Name
		}

		insertText := sym.Name
		editRange := wordRange
		switch {
		case isNamespace:
			insertText = prev.Word + "." + sym.Name
			editRange = qualifiedRange
		case sym.ContainerName != "":
			insertText = sym.ContainerName + "." + sym.Name
		}

		items = append(items, protocol.CompletionItem{
			Label:      label,
			Kind:       completionKind(sym.Kind),
			FilterText: insertText,
			TextEdit:   &protocol.TextEdit{Range: editRange, NewText: insertText},
			Data: marshalResolveData(resolveData{
				Source:      sourceSymbol,
				Name:        sym.Name,
				File:        sym.File,
				Offset:      sym.Span.Start,
				SkipSnippet: skipSnippet,
			}),
		})
	}

	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// Resolve lazily enriches a candidate when the host highlights it.
// Missing details leave the candidate unchanged.
func (c *Completer) Resolve(ctx context.Context, item protocol.CompletionItem) (protocol.CompletionItem, error) {
	if len(item.Data) == 0 {
		return item, nil
	}
	var data resolveData
	if err := json.Unmarshal(item.Data, &data); err != nil {
		return item, nil
	}

	// Snippet candidates resolve from the static table, no service
	// round-trip needed.
	if data.Source == sourceSnippet {
		def, ok := c.snippets.Lookup(item.Label)
		if !ok {
			return item, nil
		}
		item.Detail = def.Description
		item.InsertText = def.Body
		item.InsertTextFormat = protocol.InsertTextFormatSnippet
		if item.TextEdit != nil {
			item.TextEdit.NewText = def.Body
		}
		return item, nil
	}

	details, err := c.svc.CompletionDetails(ctx, data.File, data.Offset, data.Name)
	if err != nil {
		if ctx.Err() != nil {
			return item, ctx.Err()
		}
		logServiceError("completionDetails", err)
		return item, nil
	}
	if details == nil {
		return item, nil
	}

	if detail := partsToString(details.DisplayParts); detail != "" {
		item.Detail = detail
	}
	if doc := partsToString(details.Documentation); doc != "" {
		item.Documentation = &protocol.MarkupContent{Kind: protocol.PlainText, Value: doc}
	}
	if details.CodeSnippet != "" && !data.SkipSnippet {
		item.InsertText = details.CodeSnippet
		item.InsertTextFormat = protocol.InsertTextFormatSnippet
		if item.TextEdit != nil {
			item.TextEdit.NewText = details.CodeSnippet
		}
	}
	return item, nil
}

func marshalResolveData(data resolveData) json.RawMessage {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return raw
}

func logServiceError(method string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	log.Printf("analysis service %s failed: %v", method, err)
}
