package mcpserver

import (
	"fmt"
	"os"

	"github.com/amend-dev/amend/script"
	"github.com/amend-dev/amend/value"
)

// docInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML or JSON document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// resolve loads the document from whichever source is set.
func (d docInput) resolve() (*value.Value, error) {
	switch {
	case d.File != "" && d.Content != "":
		return nil, fmt.Errorf("mcpserver: document must set exactly one of file or content")
	case d.File != "":
		data, err := os.ReadFile(d.File)
		if err != nil {
			return nil, fmt.Errorf("mcpserver: reading document: %w", err)
		}
		return value.FromYAML(data)
	case d.Content != "":
		return value.FromYAML([]byte(d.Content))
	default:
		return nil, fmt.Errorf("mcpserver: document must set file or content")
	}
}

// scriptInput represents the two ways a script can be provided to a tool.
// Exactly one of File or Content must be set.
type scriptInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a revision script on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline revision script content (JSON or YAML)"`
}

// resolve loads the script from whichever source is set.
func (s scriptInput) resolve() (*script.Script, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("mcpserver: script must set exactly one of file or content")
	case s.File != "":
		return script.ParseFile(s.File)
	case s.Content != "":
		return script.Parse([]byte(s.Content))
	default:
		return nil, fmt.Errorf("mcpserver: script must set file or content")
	}
}
