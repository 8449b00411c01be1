package protocol

import "encoding/json"

// ExecuteCommandParams represents the parameters for a workspace/executeCommand request
type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// DidChangeConfigurationParams represents the parameters for a
// workspace/didChangeConfiguration notification
type DidChangeConfigurationParams struct {
	Settings json.RawMessage `json:"settings"`
}
