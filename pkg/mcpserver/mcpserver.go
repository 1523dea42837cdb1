// Package mcpserver serves catalog queries as MCP tools using the official
// MCP Go SDK, so agents can search the same catalog the TUI shows.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler answers one tool call with plain text.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool is one catalog query offered to MCP clients.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// Server is an MCP server with a fixed tool set.
type Server struct {
	sdk *mcp.Server
}

// New builds a server announcing itself as name/version with tools.
func New(name, version string, tools ...Tool) *Server {
	sdk := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	for _, t := range tools {
		sdk.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, toolHandler(t.Handler))
	}

	return &Server{sdk: sdk}
}

// ServeStdio serves on the process's stdin and stdout until the client
// disconnects or ctx ends.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.ServeTransport(ctx, &mcp.StdioTransport{})
}

// ServeTransport serves a single client connection on t.
func (s *Server) ServeTransport(ctx context.Context, t mcp.Transport) error {
	return s.sdk.Run(ctx, t)
}

// toolHandler turns handler errors into IsError results so the client sees
// the message instead of a protocol failure.
func toolHandler(h Handler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := req.Params.Arguments
		if len(input) == 0 {
			input = json.RawMessage("{}")
		}

		text, err := h(ctx, input)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}, nil
	}
}
