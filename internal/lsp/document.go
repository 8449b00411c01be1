package lsp

import (
	"sync"
)

// TextDocument represents a document open in the editor
type TextDocument struct {
	URI     string
	Text    string
	Version int
}

// DocumentManager manages text documents
type DocumentManager struct {
	documents map[string]*TextDocument
	mu        sync.RWMutex
}

// NewDocumentManager creates a new document manager
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*TextDocument),
	}
}

// OpenDocument adds or updates a document
func (m *DocumentManager) OpenDocument(uri string, text string, version int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = &TextDocument{
		URI:     uri,
		Text:    text,
		Version: version,
	}
}

// UpdateDocument updates an existing document
func (m *DocumentManager) UpdateDocument(uri string, text string, version int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if doc, ok := m.documents[uri]; ok {
		doc.Text = text
		doc.Version = version
		return
	}

	// If the document doesn't exist, create it
	m.documents[uri] = &TextDocument{
		URI:     uri,
		Text:    text,
		Version: version,
	}
}

// CloseDocument removes a document
func (m *DocumentManager) CloseDocument(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.documents, uri)
}

// GetDocument returns a document by URI
func (m *DocumentManager) GetDocument(uri string) (*TextDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[uri]
	return doc, ok
}

// DocumentText returns the text of a document by URI
func (m *DocumentManager) DocumentText(uri string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if doc, ok := m.documents[uri]; ok {
		return doc.Text, true
	}
	return "", false
}

// OpenURIs returns the URIs of all open documents
func (m *DocumentManager) OpenURIs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uris := make([]string, 0, len(m.documents))
	for uri := range m.documents {
		uris = append(uris, uri)
	}
	return uris
}
