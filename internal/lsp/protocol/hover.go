package protocol

// HoverParams represents the parameters for a hover request
type HoverParams struct {
	TextDocumentPositionParams
	WorkDoneToken interface{} `json:"workDoneToken,omitempty"`
}

// Hover represents the result of a hover request
type Hover struct {
	// The hover's content
	Contents MarkupContent `json:"contents"`

	// An optional range inside the text document that is used to
	// visualize the hover, e.g. by changing the background color
	Range *Range `json:"range,omitempty"`
}
