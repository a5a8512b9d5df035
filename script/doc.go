// Package script provides revision scripts: declarative, ordered change
// sets for document trees, stored as YAML or JSON.
//
// A revision script captures a list of transformation steps as plain data,
// so a change set can be reviewed, versioned, and transported separately
// from the code that applies it. Each step addresses a location with a key
// path (see the keypath package) and names an operation: set, merge,
// concat, splice, or remove. Steps are applied sequentially, each seeing
// the result of the previous ones, and the input document is never mutated.
//
// # Quick Start
//
// Apply a script using functional options (recommended):
//
//	result, err := script.ApplyWithOptions(
//	    script.WithDocumentFile("state.yaml"),
//	    script.WithScriptFile("changes.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Applied %d steps\n", result.StepsApplied)
//
// Or use a reusable Runner instance:
//
//	r := script.NewRunner()
//	r.Strict = true
//	result, err := r.Apply(doc, s)
//
// # Script Document Structure
//
// A script document contains:
//   - revision: The script format version (must be "1.0")
//   - info: Metadata with title and version
//   - steps: Ordered list of transformation steps
//
// Example script document:
//
//	revision: "1.0"
//	info:
//	  title: Production Settings
//	  version: 1.0.0
//	steps:
//	  - select: server.host
//	    op: set
//	    value: prod.example.com
//	  - select: server
//	    op: merge
//	    value:
//	      port: 443
//	      tls: true
//	  - select: admins
//	    op: concat
//	    value: [ops@example.com]
//	  - select: debug
//	    op: remove
//
// # Error Handling
//
// By default a failing step is recorded as a warning and skipped; with
// Strict enabled the first failure aborts application. Validation errors
// (unknown ops, malformed selects, missing required fields) are reported
// before any step runs.
package script
