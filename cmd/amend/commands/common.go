// Package commands provides CLI command handlers for amend.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amend-dev/amend/value"
	"go.yaml.in/yaml/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// ReadDocument loads a YAML or JSON document from a file path, or from stdin
// when the path is StdinFilePath.
func ReadDocument(path string) (*value.Value, error) {
	var data []byte
	var err error
	if path == StdinFilePath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("commands: reading document %s: %w", FormatDocPath(path), err)
	}
	return value.FromYAML(data)
}

// MarshalDocument marshals a document tree in the format implied by the
// output path extension: JSON for .json, YAML otherwise.
func MarshalDocument(doc *value.Value, outputPath string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return value.ToJSON(doc)
	}
	return value.ToYAML(doc)
}

// WriteDocument writes a marshaled document to the output path, or to
// stdout when the path is empty.
func WriteDocument(doc *value.Value, outputPath string) error {
	data, err := MarshalDocument(doc, outputPath)
	if err != nil {
		return err
	}
	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := RejectSymlinkOutput(filepath.Clean(outputPath)); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("commands: writing output: %w", err)
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// File doesn't exist yet — safe to write.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatDocPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatDocPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// opTitle renders an operation name for text reports, title-cased with
// proper Unicode rules (strings.Title is deprecated).
var opTitle = cases.Title(language.English)

// FormatOperation returns a display form of a step operation, e.g. "Set".
func FormatOperation(op string) string {
	return opTitle.String(op)
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
