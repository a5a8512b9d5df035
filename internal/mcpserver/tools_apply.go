package mcpserver

import (
	"context"

	"github.com/amend-dev/amend/script"
	"github.com/amend-dev/amend/value"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type applyInput struct {
	Document docInput    `json:"document"          jsonschema:"The document to transform"`
	Script   scriptInput `json:"script"            jsonschema:"The revision script to apply"`
	Strict   *bool       `json:"strict,omitempty"  jsonschema:"Fail on the first step that cannot be applied"`
	DryRun   bool        `json:"dry_run,omitempty" jsonschema:"Preview which steps would apply without returning the document"`
}

type appliedChange struct {
	StepIndex int    `json:"step_index"`
	Select    string `json:"select,omitempty"`
	Operation string `json:"operation"`
}

type applyOutput struct {
	StepsApplied int             `json:"steps_applied"`
	StepsSkipped int             `json:"steps_skipped"`
	Changes      []appliedChange `json:"changes,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`

	// Document is the transformed document as YAML; empty for dry runs.
	Document string `json:"document,omitempty"`
}

func handleApply(_ context.Context, _ *mcp.CallToolRequest, input applyInput) (*mcp.CallToolResult, applyOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}

	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}
	s, err := input.Script.resolve()
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	r := &script.Runner{Strict: strict}

	if input.DryRun {
		result, err := r.DryRun(doc, s)
		if err != nil {
			return errResult(err), applyOutput{}, nil
		}
		output := applyOutput{
			StepsApplied: result.WouldApply,
			StepsSkipped: result.WouldSkip,
			Warnings:     result.Warnings.Strings(),
		}
		for _, c := range result.Changes {
			output.Changes = append(output.Changes, appliedChange{
				StepIndex: c.StepIndex,
				Select:    c.Select,
				Operation: c.Operation,
			})
		}
		return nil, output, nil
	}

	result, err := r.Apply(doc, s)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	data, err := value.ToYAML(result.Document)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	output := applyOutput{
		StepsApplied: result.StepsApplied,
		StepsSkipped: result.StepsSkipped,
		Warnings:     result.Warnings.Strings(),
		Document:     string(data),
	}
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, appliedChange{
			StepIndex: c.StepIndex,
			Select:    c.Select,
			Operation: c.Operation,
		})
	}
	return nil, output, nil
}
