package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
	"github.com/lsbridge/lsbridge/internal/snippet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptySnippets() *snippet.Table {
	return snippet.NewTable(nil)
}

func itemLabels(list *protocol.CompletionList) []string {
	labels := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestCompletionsFiltersExcludedKeywords(t *testing.T) {
	svc := &fakeService{
		completionsFn: func(file string, offset int) (*analysis.CompletionInfo, error) {
			return &analysis.CompletionInfo{Entries: []analysis.CompletionEntry{
				{Name: "import", Kind: "keyword"},
				{Name: "await", Kind: "keyword"},
				{Name: "if", Kind: "keyword"},
				{Name: "foo", Kind: "var"},
			}}, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "i"}
	completer := NewCompleter(svc, docs, emptySnippets())

	list, err := completer.Completions(context.Background(), "file:///a.ts", protocol.Position{Line: 0, Character: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"if", "foo"}, itemLabels(list))
}

func TestCompletionsReplacementRanges(t *testing.T) {
	svc := &fakeService{
		completionsFn: func(file string, offset int) (*analysis.CompletionInfo, error) {
			return &analysis.CompletionInfo{Entries: []analysis.CompletionEntry{
				{Name: "prepare", Kind: "method"},
			}}, nil
		},
		navigateToFn: func(query string) ([]analysis.NavigateToItem, error) {
			return []analysis.NavigateToItem{
				{Name: "prefix", Kind: "function", KindModifiers: "export", ContainerName: "util", File: "file:///lib.ts", Span: analysis.Span{Start: 10, Length: 6}},
			}, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "obj.pre"}
	completer := NewCompleter(svc, docs, emptySnippets())

	list, err := completer.Completions(context.Background(), "file:///a.ts", protocol.Position{Line: 0, Character: 7})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)

	// The direct candidate replaces exactly the typed word.
	direct := list.Items[0]
	assert.Equal(t, "prepare", direct.Label)
	require.NotNil(t, direct.TextEdit)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 4},
		End:   protocol.Position{Line: 0, Character: 7},
	}, direct.TextEdit.Range)

	// A differently-contained fuzzy candidate in a qualified context
	// replaces the qualifier too and inserts through the typed qualifier.
	fuzzy := list.Items[1]
	assert.Equal(t, "util.prefix", fuzzy.Label)
	assert.Equal(t, "obj.prefix", fuzzy.TextEdit.NewText)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 7},
	}, fuzzy.TextEdit.Range)
}

func TestCompletionsNamespaceDedup(t *testing.T) {
	svc := &fakeService{
		navigateToFn: func(query string) ([]analysis.NavigateToItem, error) {
			return []analysis.NavigateToItem{
				{Name: "parse", Kind: "function", KindModifiers: "export", ContainerName: "obj", File: "file:///lib.ts"},
				{Name: "render", Kind: "function", KindModifiers: "export", ContainerName: "view", File: "file:///lib.ts"},
			}, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "obj.p"}
	completer := NewCompleter(svc, docs, emptySnippets())

	list, err := completer.Completions(context.Background(), "file:///a.ts", protocol.Position{Line: 0, Character: 5})
	require.NoError(t, err)

	// The candidate contained by the typed qualifier is already served
	// by the direct source and must not appear twice.
	assert.Equal(t, []string{"view.render"}, itemLabels(list))
}

func TestCompletionsFuzzyFilter(t *testing.T) {
	svc := &fakeService{
		navigateToFn: func(query string) ([]analysis.NavigateToItem, error) {
			return []analysis.NavigateToItem{
				{Name: "Widget", Kind: "class", KindModifiers: "export", File: "file:///lib.ts"},
				{Name: "internalHelper", Kind: "function", KindModifiers: "", File: "file:///lib.ts"},
				{Name: "build", Kind: "function", KindModifiers: "export", File: "file:///lib.ts"},
			}, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "bu"}
	completer := NewCompleter(svc, docs, emptySnippets())

	list, err := completer.Completions(context.Background(), "file:///a.ts", protocol.Position{Line: 0, Character: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"build"}, itemLabels(list))
}

func TestCompletionsMergeOrder(t *testing.T) {
	svc := &fakeService{
		completionsFn: func(file string, offset int) (*analysis.CompletionInfo, error) {
			return &analysis.CompletionInfo{Entries: []analysis.CompletionEntry{
				{Name: "forward", Kind: "var"},
			}}, nil
		},
		navigateToFn: func(query string) ([]analysis.NavigateToItem, error) {
			return []analysis.NavigateToItem{
				{Name: "format", Kind: "function", KindModifiers: "export", File: "file:///lib.ts"},
			}, nil
		},
	}
	docs := fakeDocs{"file:///a.ts": "for"}
	completer := NewCompleter(svc, docs, snippet.NewTable(snippet.Builtin()))

	list, err := completer.Completions(context.Background(), "file:///a.ts", protocol.Position{Line: 0, Character: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"forward", "for", "if", "while", "format"}, itemLabels(list))
	assert.Equal(t, protocol.CompletionItemKindSnippet, list.Items[1].Kind)
}

func TestCompletionsRecordSkipSnippet(t *testing.T) {
	svc := &fakeService{
		completionsFn: func(file string, offset int) (*analysis.CompletionInfo, error) {
			return &analysis.CompletionInfo{Entries: []analysis.CompletionEntry{
				{Name: "push", Kind: "method"},
			}}, nil
		},
	}
	// Non-whitespace text after the cursor suppresses snippet expansion.
	docs := fakeDocs{"file:///a.ts": "list.pu)"}
	completer := NewCompleter(svc, docs, emptySnippets())

	list, err := completer.Completions(context.Background(), "file:///a.ts", protocol.Position{Line: 0, Character: 7})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	var data resolveData
	require.NoError(t, json.Unmarshal(list.Items[0].Data, &data))
	assert.True(t, data.SkipSnippet)
	assert.Equal(t, sourceDirect, data.Source)
	assert.Equal(t, "push", data.Name)
}

func TestResolveSnippetWithoutServiceRoundTrip(t *testing.T) {
	svc := &fakeService{}
	completer := NewCompleter(svc, fakeDocs{}, snippet.NewTable(snippet.Builtin()))

	item := protocol.CompletionItem{
		Label:    "for",
		Kind:     protocol.CompletionItemKindSnippet,
		TextEdit: &protocol.TextEdit{NewText: "for"},
		Data:     marshalResolveData(resolveData{Source: sourceSnippet, Name: "for"}),
	}

	resolved, err := completer.Resolve(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, "For Loop", resolved.Detail)
	assert.Contains(t, resolved.InsertText, "${1:index}")
	assert.Equal(t, protocol.InsertTextFormatSnippet, resolved.InsertTextFormat)
	assert.Equal(t, resolved.InsertText, resolved.TextEdit.NewText)
	assert.Zero(t, svc.callCount("completionDetails"))
}

func TestResolveDetails(t *testing.T) {
	svc := &fakeService{
		completionDetailsFn: func(file string, offset int, name string) (*analysis.EntryDetails, error) {
			return &analysis.EntryDetails{
				Name: name,
				Kind: "method",
				DisplayParts: []analysis.SymbolDisplayPart{
					{Text: "(method) push(item: T): number", Kind: "text"},
				},
				Documentation: []analysis.SymbolDisplayPart{
					{Text: "Appends an item.", Kind: "text"},
				},
				CodeSnippet: "push(${1:item})$0",
			}, nil
		},
	}
	completer := NewCompleter(svc, fakeDocs{}, emptySnippets())

	item := protocol.CompletionItem{
		Label:    "push",
		TextEdit: &protocol.TextEdit{NewText: "push"},
		Data:     marshalResolveData(resolveData{Source: sourceDirect, Name: "push", File: "file:///a.ts", Offset: 7}),
	}

	resolved, err := completer.Resolve(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, "(method) push(item: T): number", resolved.Detail)
	require.NotNil(t, resolved.Documentation)
	assert.Equal(t, "Appends an item.", resolved.Documentation.Value)
	assert.Equal(t, "push(${1:item})$0", resolved.InsertText)
	assert.Equal(t, protocol.InsertTextFormatSnippet, resolved.InsertTextFormat)
}

func TestResolveHonorsSkipSnippet(t *testing.T) {
	svc := &fakeService{
		completionDetailsFn: func(file string, offset int, name string) (*analysis.EntryDetails, error) {
			return &analysis.EntryDetails{Name: name, CodeSnippet: "push(${1:item})$0"}, nil
		},
	}
	completer := NewCompleter(svc, fakeDocs{}, emptySnippets())

	item := protocol.CompletionItem{
		Label:    "push",
		TextEdit: &protocol.TextEdit{NewText: "push"},
		Data:     marshalResolveData(resolveData{Source: sourceDirect, Name: "push", SkipSnippet: true}),
	}

	resolved, err := completer.Resolve(context.Background(), item)
	require.NoError(t, err)

	assert.Empty(t, resolved.InsertText)
	assert.Equal(t, "push", resolved.TextEdit.NewText)
	assert.Zero(t, resolved.InsertTextFormat)
}

func TestResolveFailSoft(t *testing.T) {
	svc := &fakeService{
		completionDetailsFn: func(file string, offset int, name string) (*analysis.EntryDetails, error) {
			return nil, errors.New("service unavailable")
		},
	}
	completer := NewCompleter(svc, fakeDocs{}, emptySnippets())

	item := protocol.CompletionItem{
		Label: "push",
		Data:  marshalResolveData(resolveData{Source: sourceDirect, Name: "push"}),
	}

	resolved, err := completer.Resolve(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, item, resolved)
}

func TestResolveWithoutData(t *testing.T) {
	completer := NewCompleter(&fakeService{}, fakeDocs{}, emptySnippets())

	item := protocol.CompletionItem{Label: "plain"}
	resolved, err := completer.Resolve(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, item, resolved)
}

func TestCompletionsClosedDocument(t *testing.T) {
	completer := NewCompleter(&fakeService{}, fakeDocs{}, emptySnippets())

	_, err := completer.Completions(context.Background(), "file:///gone.ts", protocol.Position{})
	assert.ErrorIs(t, err, ErrDocumentClosed)
}
