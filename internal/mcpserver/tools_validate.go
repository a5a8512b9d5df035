package mcpserver

import (
	"context"

	"github.com/amend-dev/amend/script"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Script scriptInput `json:"script" jsonschema:"The revision script to validate"`
}

type validateIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validateOutput struct {
	Valid      bool            `json:"valid"`
	StepCount  int             `json:"step_count"`
	ErrorCount int             `json:"error_count"`
	Errors     []validateIssue `json:"errors,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	s, err := input.Script.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	errs := script.Validate(s)
	output := validateOutput{
		Valid:      len(errs) == 0,
		StepCount:  len(s.Steps),
		ErrorCount: len(errs),
	}
	for _, e := range errs {
		output.Errors = append(output.Errors, validateIssue{
			Path:    e.Path,
			Field:   e.Field,
			Message: e.Message,
		})
	}
	return nil, output, nil
}
