package script

import (
	"fmt"

	"github.com/amend-dev/amend/action"
	"github.com/amend-dev/amend/keypath"
	"github.com/amend-dev/amend/value"
)

// Runner applies revision scripts to document trees.
type Runner struct {
	// Strict causes Apply to fail on the first step error instead of
	// recording a warning and skipping the step.
	Strict bool
}

// NewRunner creates a new Runner with default settings.
func NewRunner() *Runner {
	return &Runner{
		Strict: false,
	}
}

// Apply applies a script to a document, one step at a time in order. Each
// step sees the result of all prior steps. The input document is never
// mutated; the returned Result holds the new tree.
func (r *Runner) Apply(doc *value.Value, s *Script) (*Result, error) {
	if errs := Validate(s); len(errs) > 0 {
		return nil, errs[0]
	}

	result := &Result{}
	cur := doc

	for i, step := range s.Steps {
		u, err := compileStep(step)
		if err == nil {
			var next *value.Value
			next, err = action.Apply(cur, u)
			if err == nil {
				cur = next
				result.Changes = append(result.Changes, ChangeRecord{
					StepIndex: i,
					Select:    step.Select,
					Operation: step.Op,
				})
				result.StepsApplied++
				continue
			}
		}

		if r.Strict {
			return nil, &ApplyError{StepIndex: i, Select: step.Select, Cause: err}
		}
		result.AddWarning(&Warning{
			Category:  WarnStepError,
			StepIndex: i,
			Select:    step.Select,
			Message:   "step execution failed",
			Cause:     err,
		})
		result.StepsSkipped++
	}

	result.Document = cur
	return result, nil
}

// DryRun evaluates a script against a document and reports what each step
// would do without returning the transformed tree. Since application is
// pure, DryRun runs the same evaluation as Apply and discards the result.
func (r *Runner) DryRun(doc *value.Value, s *Script) (*DryRunResult, error) {
	applied, err := (&Runner{Strict: r.Strict}).Apply(doc, s)
	if err != nil {
		return nil, err
	}

	result := &DryRunResult{
		WouldApply: applied.StepsApplied,
		WouldSkip:  applied.StepsSkipped,
		Warnings:   applied.Warnings,
	}
	for _, c := range applied.Changes {
		result.Changes = append(result.Changes, ProposedChange{
			StepIndex: c.StepIndex,
			Select:    c.Select,
			Operation: c.Operation,
		})
	}
	return result, nil
}

// DryRunResult contains the result of a dry-run script preview.
type DryRunResult struct {
	// WouldApply is the number of steps that would be successfully applied.
	WouldApply int

	// WouldSkip is the number of steps that would be skipped.
	WouldSkip int

	// Changes lists the steps that would be applied.
	Changes []ProposedChange

	// Warnings contains non-fatal issues that would occur during
	// application.
	Warnings Warnings
}

// ProposedChange describes a step that would be applied by a dry run.
type ProposedChange struct {
	// StepIndex is the zero-based index of the step in the script.
	StepIndex int

	// Select is the key path the step addresses.
	Select string

	// Operation is the step's op.
	Operation string
}

// HasChanges returns true if any steps would be applied.
func (r *DryRunResult) HasChanges() bool {
	return r.WouldApply > 0
}

// compileStep translates a script step into the engine update it denotes.
func compileStep(step Step) (action.Update, error) {
	switch step.Op {
	case OpSet:
		return at(step.Select, action.Lit(step.Value))
	case OpMerge:
		return at(step.Select, action.Merge(action.Lit(step.Value)))
	case OpConcat:
		return at(step.Select, action.Concat(action.Lit(step.Value)))
	case OpSplice:
		start, length, ok := step.window()
		if !ok {
			return action.Update{}, fmt.Errorf("script: splice requires start and length")
		}
		return at(step.Select, action.Range(start, length, action.Lit(spliceValue(step.Value))))
	case OpRemove:
		return compileRemove(step)
	default:
		return action.Update{}, fmt.Errorf("script: unknown op %q", step.Op)
	}
}

// compileRemove handles the remove op: either a window deletion on the
// sequence at the select path, or deletion of the child the path addresses.
func compileRemove(step Step) (action.Update, error) {
	if start, length, ok := step.window(); ok {
		return at(step.Select, action.Range(start, length, action.Lit([]any{})))
	}

	keys, err := keypath.Parse(step.Select)
	if err != nil {
		return action.Update{}, fmt.Errorf("script: invalid select: %w", err)
	}
	parent, last := keys[:len(keys)-1], keys[len(keys)-1]

	return action.SelectKeys(parent, action.Transform(func(ctx *value.Value) (*value.Value, error) {
		switch ctx.Kind() {
		case value.KindRecord:
			rec, _ := ctx.AsRecord()
			return value.New(rec.Without(last.Name())), nil
		case value.KindSequence:
			seq, _ := ctx.AsSequence()
			idx, ok := last.Index()
			if !ok || idx < 0 {
				return nil, &action.IndexError{Op: "remove", Key: last.Name()}
			}
			return value.New(seq.Splice(idx, 1, value.NewSequence())), nil
		default:
			return nil, &action.ShapeError{Op: "remove", Want: "record or sequence", Got: ctx.Kind()}
		}
	})), nil
}

// at scopes u to the select path; an empty path applies u at the root.
func at(path string, u action.Update) (action.Update, error) {
	if path == "" {
		return u, nil
	}
	keys, err := keypath.Parse(path)
	if err != nil {
		return action.Update{}, fmt.Errorf("script: invalid select: %w", err)
	}
	return action.SelectKeys(keys, u), nil
}

// spliceValue normalizes a splice payload: a missing value means the window
// is deleted, i.e. replaced with the empty sequence.
func spliceValue(v any) any {
	if v == nil {
		return []any{}
	}
	return v
}
