// Package amend provides composable structural updates for immutable,
// tree-shaped documents.
//
// amend treats a document as an immutable snapshot: nested records, ordered
// sequences, and scalars. Instead of deep-copying the whole tree and
// patching it by hand, callers describe a change declaratively and the
// engine produces a new tree, copying only the containers along the path of
// the change and sharing every untouched subtree with the original.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - value: the immutable document tree (Record, Sequence, scalars)
//   - action: the combinator engine that builds and applies updates
//   - keypath: the path syntax addressing nested locations
//   - script: declarative revision documents stored as YAML or JSON
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/amend-dev/amend
//
// # Quick Start
//
// Build a document and apply a composed update:
//
//	import (
//	    "github.com/amend-dev/amend/action"
//	    "github.com/amend-dev/amend/value"
//	)
//
//	doc := value.New(map[string]any{
//	    "server": map[string]any{"host": "localhost", "port": 8080},
//	    "admins": []any{"root@example.com"},
//	})
//
//	next, err := action.Apply(doc, action.SelectAll([]action.PathUpdate{
//	    {Path: "server.host", Update: action.Lit("prod.example.com")},
//	    {Path: "admins", Update: action.Concat(action.Lit([]any{"ops@example.com"}))},
//	}))
//
// The original doc is unchanged; next shares the untouched subtrees.
//
// Apply a revision script from a file:
//
//	import "github.com/amend-dev/amend/script"
//
//	result, err := script.ApplyWithOptions(
//	    script.WithDocumentFile("state.yaml"),
//	    script.WithScriptFile("changes.yaml"),
//	)
//
// # Command Line
//
// The amend CLI applies revision scripts to YAML or JSON documents:
//
//	amend apply --doc state.yaml changes.yaml
//	amend validate changes.yaml
//	amend eval --doc state.yaml --select server.port --op set --value 443
//
// It can also serve the same operations to MCP clients over stdio:
//
//	amend mcp
package amend
