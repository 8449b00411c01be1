package bridge

import (
	"context"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// Formatter translates the host's editor-agnostic formatting options
// into the service's option schema and shapes the returned edits.
type Formatter struct {
	svc  analysis.Service
	docs DocumentSource
}

// NewFormatter creates a formatting adapter.
func NewFormatter(svc analysis.Service, docs DocumentSource) *Formatter {
	return &Formatter{svc: svc, docs: docs}
}

// houseStyle maps the host options onto the service schema. Everything
// beyond indent width/character is a fixed house style: smart indent,
// spaces after commas, semicolons, binary operators and control-flow
// keywords, no padding inside parens/brackets/template braces, braces
// never on a new line.
func houseStyle(options protocol.FormattingOptions) analysis.FormatOptions {
	return analysis.FormatOptions{
		IndentSize:          options.TabSize,
		TabSize:             options.TabSize,
		NewLineCharacter:    "\n",
		ConvertTabsToSpaces: options.InsertSpaces,
		IndentStyle:         "Smart",

		InsertSpaceAfterCommaDelimiter:                  true,
		InsertSpaceAfterSemicolonInForStatements:        true,
		InsertSpaceBeforeAndAfterBinaryOperators:        true,
		InsertSpaceAfterKeywordsInControlFlowStatements: true,

		InsertSpaceAfterFunctionKeywordForAnonymousFunctions:        false,
		InsertSpaceAfterOpeningAndBeforeClosingNonemptyParens:       false,
		InsertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets:     false,
		InsertSpaceAfterOpeningAndBeforeClosingTemplateStringBraces: false,
		PlaceOpenBraceOnNewLineForFunctions:                         false,
		PlaceOpenBraceOnNewLineForControlBlocks:                     false,
	}
}

// RangeEdits formats a given range of a document.
func (f *Formatter) RangeEdits(ctx context.Context, uri string, rng protocol.Range, options protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	mapper, err := mapperFor(f.docs, uri)
	if err != nil {
		return nil, err
	}

	start := mapper.PositionToOffset(mapper.FromProtocol(rng.Start))
	end := mapper.PositionToOffset(mapper.FromProtocol(rng.End))

	edits, err := f.svc.FormatRange(ctx, uri, start, end, houseStyle(options))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("formatRange", err)
		return nil, nil
	}
	return shapeEdits(mapper, edits), nil
}

// OnTypeEdits formats after a single just-typed character, passing the
// triggering character through to the service.
func (f *Formatter) OnTypeEdits(ctx context.Context, uri string, pos protocol.Position, key string, options protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	mapper, err := mapperFor(f.docs, uri)
	if err != nil {
		return nil, err
	}

	offset := mapper.PositionToOffset(mapper.FromProtocol(pos))
	edits, err := f.svc.FormatOnKey(ctx, uri, offset, key, houseStyle(options))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("formatOnKey", err)
		return nil, nil
	}
	return shapeEdits(mapper, edits), nil
}

func shapeEdits(mapper *Mapper, edits []analysis.TextEdit) []protocol.TextEdit {
	shaped := make([]protocol.TextEdit, 0, len(edits))
	for _, edit := range edits {
		shaped = append(shaped, protocol.TextEdit{
			Range:   mapper.SpanToProtocol(edit.Span),
			NewText: edit.NewText,
		})
	}
	return shaped
}
