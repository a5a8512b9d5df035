package main

import (
	"fmt"
	"os"

	"github.com/amend-dev/amend"
	"github.com/amend-dev/amend/cmd/amend/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("amend v%s\n", amend.Version())
	case "help", "-h", "--help":
		printUsage()
	case "apply":
		if err := commands.HandleApply(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "eval":
		if err := commands.HandleEval(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("amend - declarative structural updates for YAML and JSON documents")
	fmt.Println()
	fmt.Println("Usage: amend <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  apply      Apply a revision script to a document")
	fmt.Println("  validate   Validate a revision script")
	fmt.Println("  eval       Apply a single inline step to a document")
	fmt.Println("  mcp        Run an MCP server over stdio")
	fmt.Println("  version    Print the version")
	fmt.Println("  help       Print this help")
	fmt.Println()
	fmt.Println("Run 'amend <command> -h' for command-specific flags.")
}
