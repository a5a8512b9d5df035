// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes amend's script operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/amend-dev/amend"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `amend MCP server — applies and validates revision scripts against YAML/JSON documents.

A revision script is an ordered list of steps; each step addresses a location with a key path (e.g. server.host or items[key.with.dots]) and names an operation: set, merge, concat, splice, or remove. Steps apply sequentially and the input document is never mutated.

Configuration: defaults are configurable via AMEND_* environment variables set in your MCP client config.

Key settings:
- AMEND_STRICT (default: false) — fail on the first step that cannot be applied instead of skipping it with a warning`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "amend", Version: amend.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply",
		Description: "Apply a revision script to a YAML or JSON document. Steps apply sequentially; each sees the result of the previous ones. Use dry_run=true to preview which steps would apply without returning the transformed document. Strict mode (first failing step aborts) defaults to the AMEND_STRICT env var.",
	}, handleApply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a revision script document. Checks required fields, the revision version, known operations with their required fields, and key path syntax in step selects. Returns a list of validation errors with their locations.",
	}, handleValidate)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
