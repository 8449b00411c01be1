package protocol

// DocumentSymbolParams represents the parameters for a documentSymbol request
type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// SymbolKind is the presentation kind of a document symbol
type SymbolKind int

const (
	SymbolKindFile          SymbolKind = 1
	SymbolKindModule        SymbolKind = 2
	SymbolKindNamespace     SymbolKind = 3
	SymbolKindPackage       SymbolKind = 4
	SymbolKindClass         SymbolKind = 5
	SymbolKindMethod        SymbolKind = 6
	SymbolKindProperty      SymbolKind = 7
	SymbolKindField         SymbolKind = 8
	SymbolKindConstructor   SymbolKind = 9
	SymbolKindEnum          SymbolKind = 10
	SymbolKindInterface     SymbolKind = 11
	SymbolKindFunction      SymbolKind = 12
	SymbolKindVariable      SymbolKind = 13
	SymbolKindConstant      SymbolKind = 14
	SymbolKindString        SymbolKind = 15
	SymbolKindNumber        SymbolKind = 16
	SymbolKindBoolean       SymbolKind = 17
	SymbolKindArray         SymbolKind = 18
	SymbolKindObject        SymbolKind = 19
	SymbolKindKey           SymbolKind = 20
	SymbolKindNull          SymbolKind = 21
	SymbolKindEnumMember    SymbolKind = 22
	SymbolKindStruct        SymbolKind = 23
	SymbolKindEvent         SymbolKind = 24
	SymbolKindOperator      SymbolKind = 25
	SymbolKindTypeParameter SymbolKind = 26
)

// SymbolInformation represents one entry of a flat symbol outline
type SymbolInformation struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	Location      Location   `json:"location"`
	ContainerName string     `json:"containerName,omitempty"`
}

// DocumentHighlightParams represents the parameters for a documentHighlight request
type DocumentHighlightParams struct {
	TextDocumentPositionParams
}

// DocumentHighlightKind classifies a highlighted occurrence
type DocumentHighlightKind int

const (
	// DocumentHighlightKindText is a textual occurrence
	DocumentHighlightKindText DocumentHighlightKind = 1
	// DocumentHighlightKindRead is a read access of a symbol
	DocumentHighlightKindRead DocumentHighlightKind = 2
	// DocumentHighlightKindWrite is a write access of a symbol
	DocumentHighlightKindWrite DocumentHighlightKind = 3
)

// DocumentHighlight represents one highlighted occurrence inside a document
type DocumentHighlight struct {
	Range Range                 `json:"range"`
	Kind  DocumentHighlightKind `json:"kind,omitempty"`
}

// DefinitionParams represents the parameters for a definition request
type DefinitionParams struct {
	TextDocumentPositionParams
}

// ReferenceParams represents the parameters for a references request
type ReferenceParams struct {
	TextDocumentPositionParams
	Context ReferenceContext `json:"context"`
}

// ReferenceContext carries reference request options
type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}
