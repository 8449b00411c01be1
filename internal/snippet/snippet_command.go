package snippet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// CreateParams are the arguments of the lsbridge/snippet/create command.
type CreateParams struct {
	Prefix      string `json:"prefix"`
	Body        string `json:"body"`
	Description string `json:"description,omitempty"`
}

// CommandProvider exposes snippet management over workspace/executeCommand.
// Written snippets take effect on the next start; the in-memory table
// stays immutable for the process lifetime.
type CommandProvider struct {
	userPath string
}

// NewCommandProvider creates a command provider writing to the given
// user snippet file.
func NewCommandProvider(userPath string) *CommandProvider {
	return &CommandProvider{userPath: userPath}
}

// Commands returns the command names handled by this provider.
func (p *CommandProvider) Commands() []string {
	return []string{"lsbridge/snippet/create"}
}

// Execute runs a snippet command.
func (p *CommandProvider) Execute(ctx context.Context, command string, args []json.RawMessage) (interface{}, error) {
	switch command {
	case "lsbridge/snippet/create":
		if len(args) == 0 {
			return nil, fmt.Errorf("missing arguments for %s", command)
		}
		var params CreateParams
		if err := json.Unmarshal(args[0], &params); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", command, err)
		}
		return nil, p.createSnippet(params)
	default:
		return nil, fmt.Errorf("unknown command: %s", command)
	}
}

// createSnippet appends a snippet definition to the user snippet file,
// creating the file on first use.
func (p *CommandProvider) createSnippet(params CreateParams) error {
	if params.Prefix == "" || params.Body == "" {
		return fmt.Errorf("snippet prefix and body must not be empty")
	}

	data, err := os.ReadFile(p.userPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read snippet file: %w", err)
		}
		data = []byte("{}")
	}

	out, err := sjson.SetBytes(data, params.Prefix+".body", params.Body)
	if err != nil {
		return fmt.Errorf("failed to set snippet body: %w", err)
	}
	if params.Description != "" {
		out, err = sjson.SetBytes(out, params.Prefix+".description", params.Description)
		if err != nil {
			return fmt.Errorf("failed to set snippet description: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(p.userPath), 0o755); err != nil {
		return fmt.Errorf("failed to create snippet directory: %w", err)
	}
	if err := os.WriteFile(p.userPath, pretty.Pretty(out), 0o644); err != nil {
		return fmt.Errorf("failed to write snippet file: %w", err)
	}
	return nil
}
