package analysis

// Span is a contiguous region of document text in offset form,
// as reported by the analysis service.
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the offset one past the last character of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Diagnostic is a single syntactic or semantic problem reported for a file
type Diagnostic struct {
	Span    Span   `json:"span"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// SymbolDisplayPart is one fragment of a rendered symbol description
type SymbolDisplayPart struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// CompletionInfo is the direct completion result at an offset
type CompletionInfo struct {
	IsMemberCompletion bool              `json:"isMemberCompletion"`
	Entries            []CompletionEntry `json:"entries"`
}

// CompletionEntry is one direct completion candidate
type CompletionEntry struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	KindModifiers string `json:"kindModifiers,omitempty"`
	SortText      string `json:"sortText,omitempty"`
}

// EntryDetails carries lazily resolved detail for a completion entry
type EntryDetails struct {
	Name          string              `json:"name"`
	Kind          string              `json:"kind"`
	DisplayParts  []SymbolDisplayPart `json:"displayParts,omitempty"`
	Documentation []SymbolDisplayPart `json:"documentation,omitempty"`
	// CodeSnippet is an optional expanded insertion text, e.g. a call
	// with parameter placeholders. Empty when the service has none.
	CodeSnippet string `json:"codeSnippet,omitempty"`
}

// NavigateToItem is one fuzzy symbol search result
type NavigateToItem struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	KindModifiers string `json:"kindModifiers,omitempty"`
	ContainerName string `json:"containerName,omitempty"`
	File          string `json:"file"`
	Span          Span   `json:"span"`
}

// QuickInfo is the symbol summary at an offset
type QuickInfo struct {
	Kind          string              `json:"kind"`
	Span          Span                `json:"span"`
	DisplayParts  []SymbolDisplayPart `json:"displayParts,omitempty"`
	Documentation []SymbolDisplayPart `json:"documentation,omitempty"`
}

// SignatureHelpItems is the set of overloads applicable at a call site
type SignatureHelpItems struct {
	Items             []SignatureHelpItem `json:"items"`
	ApplicableSpan    Span                `json:"applicableSpan"`
	SelectedItemIndex int                 `json:"selectedItemIndex"`
	ArgumentIndex     int                 `json:"argumentIndex"`
	ArgumentCount     int                 `json:"argumentCount"`
}

// SignatureHelpItem is one overload with its display fragments
type SignatureHelpItem struct {
	PrefixDisplayParts    []SymbolDisplayPart      `json:"prefixDisplayParts,omitempty"`
	SuffixDisplayParts    []SymbolDisplayPart      `json:"suffixDisplayParts,omitempty"`
	SeparatorDisplayParts []SymbolDisplayPart      `json:"separatorDisplayParts,omitempty"`
	Parameters            []SignatureHelpParameter `json:"parameters,omitempty"`
	Documentation         []SymbolDisplayPart      `json:"documentation,omitempty"`
}

// SignatureHelpParameter is one parameter of an overload
type SignatureHelpParameter struct {
	Name          string              `json:"name"`
	DisplayParts  []SymbolDisplayPart `json:"displayParts,omitempty"`
	Documentation []SymbolDisplayPart `json:"documentation,omitempty"`
}

// NavigationTree is the hierarchical symbol tree of a file
type NavigationTree struct {
	Text          string           `json:"text"`
	Kind          string           `json:"kind"`
	KindModifiers string           `json:"kindModifiers,omitempty"`
	Spans         []Span           `json:"spans"`
	ChildItems    []NavigationTree `json:"childItems,omitempty"`
}

// FileSpan is a span inside a named file
type FileSpan struct {
	File string `json:"file"`
	Span Span   `json:"span"`
}

// ReferenceEntry is one reference search result
type ReferenceEntry struct {
	FileSpan
	IsWriteAccess bool `json:"isWriteAccess"`
}

// Occurrence is one occurrence of the symbol under the cursor within a file
type Occurrence struct {
	Span          Span `json:"span"`
	IsWriteAccess bool `json:"isWriteAccess"`
}

// TextEdit is one replacement produced by the formatter
type TextEdit struct {
	Span    Span   `json:"span"`
	NewText string `json:"newText"`
}

// FormatOptions is the service's formatting-options schema
type FormatOptions struct {
	IndentSize                                                  int    `json:"indentSize"`
	TabSize                                                     int    `json:"tabSize"`
	NewLineCharacter                                            string `json:"newLineCharacter"`
	ConvertTabsToSpaces                                         bool   `json:"convertTabsToSpaces"`
	IndentStyle                                                 string `json:"indentStyle"`
	InsertSpaceAfterCommaDelimiter                              bool   `json:"insertSpaceAfterCommaDelimiter"`
	InsertSpaceAfterSemicolonInForStatements                    bool   `json:"insertSpaceAfterSemicolonInForStatements"`
	InsertSpaceBeforeAndAfterBinaryOperators                    bool   `json:"insertSpaceBeforeAndAfterBinaryOperators"`
	InsertSpaceAfterKeywordsInControlFlowStatements             bool   `json:"insertSpaceAfterKeywordsInControlFlowStatements"`
	InsertSpaceAfterFunctionKeywordForAnonymousFunctions        bool   `json:"insertSpaceAfterFunctionKeywordForAnonymousFunctions"`
	InsertSpaceAfterOpeningAndBeforeClosingNonemptyParens       bool   `json:"insertSpaceAfterOpeningAndBeforeClosingNonemptyParenthesis"`
	InsertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets     bool   `json:"insertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets"`
	InsertSpaceAfterOpeningAndBeforeClosingTemplateStringBraces bool   `json:"insertSpaceAfterOpeningAndBeforeClosingTemplateStringBraces"`
	PlaceOpenBraceOnNewLineForFunctions                         bool   `json:"placeOpenBraceOnNewLineForFunctions"`
	PlaceOpenBraceOnNewLineForControlBlocks                     bool   `json:"placeOpenBraceOnNewLineForControlBlocks"`
}
