package bridge

import "errors"

// ErrDocumentClosed is returned when the target document was closed
// between request issuance and processing. Callers treat the whole
// pending operation as cancelled, never retried.
var ErrDocumentClosed = errors.New("document is no longer open")
