package bridge

import (
	"strings"

	"github.com/lsbridge/lsbridge/internal/analysis"
)

// DocumentSource provides the live text of open documents. The bridge
// never owns document content; the host editor does.
type DocumentSource interface {
	// DocumentText returns the current text of an open document, or
	// false when the document reference is stale.
	DocumentText(uri string) (string, bool)
}

// mapperFor builds a position mapper over the current text of a
// document, failing when the document is no longer open.
func mapperFor(docs DocumentSource, uri string) (*Mapper, error) {
	text, ok := docs.DocumentText(uri)
	if !ok {
		return nil, ErrDocumentClosed
	}
	return NewMapper(text), nil
}

// partsToString concatenates symbol display fragments into one string.
func partsToString(parts []analysis.SymbolDisplayPart) string {
	if len(parts) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}
