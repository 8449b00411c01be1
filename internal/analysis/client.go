package analysis

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"

	"github.com/sourcegraph/jsonrpc2"
)

// Client talks to an analysis service running as a child process,
// speaking JSON-RPC 2.0 over the process's stdin/stdout.
type Client struct {
	cmd  *exec.Cmd
	conn *jsonrpc2.Conn
}

var _ Service = (*Client)(nil)

// Dial spawns the analysis service and connects to it.
func Dial(ctx context.Context, command string, args ...string) (*Client, error) {
	cmd := exec.Command(command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open service stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open service stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start analysis service %q: %w", command, err)
	}

	stream := jsonrpc2.NewBufferedStream(rwc{stdout, stdin}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(handleServiceNotification))

	return &Client{cmd: cmd, conn: conn}, nil
}

// rwc combines a reader and writer into a single ReadWriteCloser
type rwc struct {
	io.Reader
	io.Writer
}

// Close implements io.Closer
func (rwc) Close() error {
	return nil
}

// handleServiceNotification ignores service-initiated traffic; the
// bridge is strictly request/response toward the service.
func handleServiceNotification(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	if req.Notif {
		return nil, nil
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method}
}

// Close shuts down the connection and waits for the service to exit.
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil {
		log.Printf("error closing service connection: %v", err)
	}
	return c.cmd.Wait()
}

type fileParams struct {
	File string `json:"file"`
}

type fileTextParams struct {
	File string `json:"file"`
	Text string `json:"text"`
}

type fileOffsetParams struct {
	File   string `json:"file"`
	Offset int    `json:"offset"`
}

type detailsParams struct {
	File   string `json:"file"`
	Offset int    `json:"offset"`
	Name   string `json:"name"`
}

type navtoParams struct {
	Query string `json:"query"`
}

type formatRangeParams struct {
	File    string        `json:"file"`
	Start   int           `json:"start"`
	End     int           `json:"end"`
	Options FormatOptions `json:"options"`
}

type formatOnKeyParams struct {
	File    string        `json:"file"`
	Offset  int           `json:"offset"`
	Key     string        `json:"key"`
	Options FormatOptions `json:"options"`
}

func (c *Client) UpdateFile(ctx context.Context, file string, text string) error {
	return c.conn.Call(ctx, "updateFile", fileTextParams{File: file, Text: text}, nil)
}

func (c *Client) CloseFile(ctx context.Context, file string) error {
	return c.conn.Call(ctx, "closeFile", fileParams{File: file}, nil)
}

func (c *Client) SyntacticDiagnostics(ctx context.Context, file string) ([]Diagnostic, error) {
	var result []Diagnostic
	if err := c.conn.Call(ctx, "syntacticDiagnostics", fileParams{File: file}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SemanticDiagnostics(ctx context.Context, file string) ([]Diagnostic, error) {
	var result []Diagnostic
	if err := c.conn.Call(ctx, "semanticDiagnostics", fileParams{File: file}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Completions(ctx context.Context, file string, offset int) (*CompletionInfo, error) {
	var result *CompletionInfo
	if err := c.conn.Call(ctx, "completions", fileOffsetParams{File: file, Offset: offset}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CompletionDetails(ctx context.Context, file string, offset int, name string) (*EntryDetails, error) {
	var result *EntryDetails
	if err := c.conn.Call(ctx, "completionDetails", detailsParams{File: file, Offset: offset, Name: name}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) NavigateTo(ctx context.Context, query string) ([]NavigateToItem, error) {
	var result []NavigateToItem
	if err := c.conn.Call(ctx, "navto", navtoParams{Query: query}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SignatureHelp(ctx context.Context, file string, offset int) (*SignatureHelpItems, error) {
	var result *SignatureHelpItems
	if err := c.conn.Call(ctx, "signatureHelp", fileOffsetParams{File: file, Offset: offset}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) QuickInfo(ctx context.Context, file string, offset int) (*QuickInfo, error) {
	var result *QuickInfo
	if err := c.conn.Call(ctx, "quickInfo", fileOffsetParams{File: file, Offset: offset}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Occurrences(ctx context.Context, file string, offset int) ([]Occurrence, error) {
	var result []Occurrence
	if err := c.conn.Call(ctx, "occurrences", fileOffsetParams{File: file, Offset: offset}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Definition(ctx context.Context, file string, offset int) ([]FileSpan, error) {
	var result []FileSpan
	if err := c.conn.Call(ctx, "definition", fileOffsetParams{File: file, Offset: offset}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) References(ctx context.Context, file string, offset int) ([]ReferenceEntry, error) {
	var result []ReferenceEntry
	if err := c.conn.Call(ctx, "references", fileOffsetParams{File: file, Offset: offset}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) NavigationTree(ctx context.Context, file string) (*NavigationTree, error) {
	var result *NavigationTree
	if err := c.conn.Call(ctx, "navigationTree", fileParams{File: file}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) FormatRange(ctx context.Context, file string, start, end int, options FormatOptions) ([]TextEdit, error) {
	var result []TextEdit
	if err := c.conn.Call(ctx, "formatRange", formatRangeParams{File: file, Start: start, End: end, Options: options}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) FormatOnKey(ctx context.Context, file string, offset int, key string, options FormatOptions) ([]TextEdit, error) {
	var result []TextEdit
	if err := c.conn.Call(ctx, "formatOnKey", formatOnKeyParams{File: file, Offset: offset, Key: key, Options: options}, &result); err != nil {
		return nil, err
	}
	return result, nil
}
