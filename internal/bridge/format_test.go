package bridge

import (
	"context"
	"testing"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseStyle(t *testing.T) {
	opts := houseStyle(protocol.FormattingOptions{TabSize: 2, InsertSpaces: true})

	assert.Equal(t, 2, opts.IndentSize)
	assert.Equal(t, 2, opts.TabSize)
	assert.True(t, opts.ConvertTabsToSpaces)
	assert.Equal(t, "Smart", opts.IndentStyle)
	assert.Equal(t, "\n", opts.NewLineCharacter)

	assert.True(t, opts.InsertSpaceAfterCommaDelimiter)
	assert.True(t, opts.InsertSpaceAfterSemicolonInForStatements)
	assert.True(t, opts.InsertSpaceBeforeAndAfterBinaryOperators)
	assert.True(t, opts.InsertSpaceAfterKeywordsInControlFlowStatements)

	assert.False(t, opts.InsertSpaceAfterFunctionKeywordForAnonymousFunctions)
	assert.False(t, opts.InsertSpaceAfterOpeningAndBeforeClosingNonemptyParens)
	assert.False(t, opts.InsertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets)
	assert.False(t, opts.InsertSpaceAfterOpeningAndBeforeClosingTemplateStringBraces)
	assert.False(t, opts.PlaceOpenBraceOnNewLineForFunctions)
	assert.False(t, opts.PlaceOpenBraceOnNewLineForControlBlocks)
}

func TestRangeEditsTranslatesOffsetsAndOptions(t *testing.T) {
	var gotStart, gotEnd int
	var gotOptions analysis.FormatOptions
	svc := &fakeService{
		formatRangeFn: func(file string, start, end int, options analysis.FormatOptions) ([]analysis.TextEdit, error) {
			gotStart, gotEnd, gotOptions = start, end, options
			return []analysis.TextEdit{
				{Span: analysis.Span{Start: 3, Length: 2}, NewText: " "},
			}, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "ab\ncd  ef"}
	formatter := NewFormatter(svc, docs)

	edits, err := formatter.RangeEdits(context.Background(), "file:///a.ts",
		protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 1, Character: 6},
		},
		protocol.FormattingOptions{TabSize: 4, InsertSpaces: false},
	)
	require.NoError(t, err)

	assert.Equal(t, 0, gotStart)
	assert.Equal(t, 9, gotEnd)
	assert.Equal(t, 4, gotOptions.TabSize)
	assert.False(t, gotOptions.ConvertTabsToSpaces)

	require.Len(t, edits, 1)
	assert.Equal(t, " ", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, edits[0].Range.End)
}

func TestOnTypeEditsPassesKeyThrough(t *testing.T) {
	var gotKey string
	var gotOffset int
	svc := &fakeService{
		formatOnKeyFn: func(file string, offset int, key string, options analysis.FormatOptions) ([]analysis.TextEdit, error) {
			gotKey, gotOffset = key, offset
			return nil, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "x=1;"}
	formatter := NewFormatter(svc, docs)

	edits, err := formatter.OnTypeEdits(context.Background(), "file:///a.ts",
		protocol.Position{Line: 0, Character: 4}, ";", protocol.FormattingOptions{TabSize: 4})
	require.NoError(t, err)

	assert.Equal(t, ";", gotKey)
	assert.Equal(t, 4, gotOffset)
	assert.Empty(t, edits)
}

func TestFormatClosedDocument(t *testing.T) {
	formatter := NewFormatter(&fakeService{}, fakeDocs{})

	_, err := formatter.RangeEdits(context.Background(), "file:///gone.ts", protocol.Range{}, protocol.FormattingOptions{})
	assert.ErrorIs(t, err, ErrDocumentClosed)
}
