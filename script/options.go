package script

import (
	"fmt"
	"os"

	"github.com/amend-dev/amend/value"
)

// Option is a function that configures a script application operation.
type Option func(*applyConfig) error

// applyConfig holds configuration for a script application operation.
type applyConfig struct {
	// Input source for the document (exactly one must be set)
	documentFilePath *string
	document         *value.Value

	// Input source for the script (exactly one must be set)
	scriptFilePath *string
	script         *Script

	// Configuration options
	strict bool
}

// WithDocumentFile specifies a YAML or JSON file as the document source.
func WithDocumentFile(path string) Option {
	return func(cfg *applyConfig) error {
		if path == "" {
			return fmt.Errorf("document path cannot be empty")
		}
		cfg.documentFilePath = &path
		return nil
	}
}

// WithDocument specifies an already-built document tree as the source.
func WithDocument(doc *value.Value) Option {
	return func(cfg *applyConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		cfg.document = doc
		return nil
	}
}

// WithScriptFile specifies a file path as the script source.
func WithScriptFile(path string) Option {
	return func(cfg *applyConfig) error {
		if path == "" {
			return fmt.Errorf("script path cannot be empty")
		}
		cfg.scriptFilePath = &path
		return nil
	}
}

// WithScript specifies an already-parsed script as the source.
func WithScript(s *Script) Option {
	return func(cfg *applyConfig) error {
		if s == nil {
			return fmt.Errorf("script cannot be nil")
		}
		cfg.script = s
		return nil
	}
}

// WithStrict enables strict mode where a failing step causes an error.
//
// By default, steps that fail are skipped with a warning. When strict mode
// is enabled, the first failing step aborts application instead.
func WithStrict(strict bool) Option {
	return func(cfg *applyConfig) error {
		cfg.strict = strict
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts ...Option) (*applyConfig, error) {
	cfg := &applyConfig{
		strict: false, // Default: non-strict
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	docSources := 0
	if cfg.documentFilePath != nil {
		docSources++
	}
	if cfg.document != nil {
		docSources++
	}
	if docSources == 0 {
		return nil, fmt.Errorf("must specify a document source (use WithDocumentFile or WithDocument)")
	}
	if docSources > 1 {
		return nil, fmt.Errorf("must specify exactly one document source")
	}

	scriptSources := 0
	if cfg.scriptFilePath != nil {
		scriptSources++
	}
	if cfg.script != nil {
		scriptSources++
	}
	if scriptSources == 0 {
		return nil, fmt.Errorf("must specify a script source (use WithScriptFile or WithScript)")
	}
	if scriptSources > 1 {
		return nil, fmt.Errorf("must specify exactly one script source")
	}

	return cfg, nil
}

// loadInputs loads the document and script from the configuration.
func loadInputs(cfg *applyConfig) (*value.Value, *Script, error) {
	doc := cfg.document
	if cfg.documentFilePath != nil {
		data, err := os.ReadFile(*cfg.documentFilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("script: failed to read document: %w", err)
		}
		doc, err = value.FromYAML(data)
		if err != nil {
			return nil, nil, fmt.Errorf("script: failed to decode document: %w", err)
		}
	}

	s := cfg.script
	if cfg.scriptFilePath != nil {
		var err error
		s, err = ParseFile(*cfg.scriptFilePath)
		if err != nil {
			return nil, nil, err
		}
	}

	return doc, s, nil
}

// ApplyWithOptions applies a revision script to a document using functional
// options.
//
// Example:
//
//	result, err := script.ApplyWithOptions(
//	    script.WithDocumentFile("state.yaml"),
//	    script.WithScriptFile("changes.yaml"),
//	    script.WithStrict(true),
//	)
func ApplyWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("script: invalid options: %w", err)
	}

	doc, s, err := loadInputs(cfg)
	if err != nil {
		return nil, err
	}

	r := &Runner{Strict: cfg.strict}
	return r.Apply(doc, s)
}

// DryRunWithOptions previews script application using functional options.
//
// Example:
//
//	result, err := script.DryRunWithOptions(
//	    script.WithDocumentFile("state.yaml"),
//	    script.WithScriptFile("changes.yaml"),
//	)
//	for _, change := range result.Changes {
//	    fmt.Printf("would %s at %s\n", change.Operation, change.Select)
//	}
func DryRunWithOptions(opts ...Option) (*DryRunResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("script: invalid options: %w", err)
	}

	doc, s, err := loadInputs(cfg)
	if err != nil {
		return nil, err
	}

	r := &Runner{Strict: cfg.strict}
	return r.DryRun(doc, s)
}
