package commands

import (
	"context"
	"errors"
	"flag"

	"github.com/amend-dev/amend/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: amend mcp\n\n")
		Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio, exposing\n")
		Writef(fs.Output(), "script application and validation as MCP tools.\n\n")
		Writef(fs.Output(), "Configuration via environment variables:\n")
		Writef(fs.Output(), "  AMEND_STRICT        fail steps instead of skipping (default: false)\n")
		Writef(fs.Output(), "\nExample MCP client configuration:\n")
		Writef(fs.Output(), "  {\"command\": \"amend\", \"args\": [\"mcp\"]}\n")
	}

	return fs
}

// HandleMCP executes the mcp command, blocking until the client disconnects.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return mcpserver.Run(context.Background())
}
