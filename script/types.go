package script

import (
	"fmt"

	"github.com/amend-dev/amend/value"
)

// Step operations.
const (
	// OpSet replaces the value at the selected location.
	OpSet = "set"
	// OpMerge overlays a record onto the record at the selected location.
	OpMerge = "merge"
	// OpConcat appends a sequence to the sequence at the selected location.
	OpConcat = "concat"
	// OpSplice replaces the window [start, start+length) of the sequence at
	// the selected location; the replacement may differ in length.
	OpSplice = "splice"
	// OpRemove deletes the selected record field, or with start/length set,
	// deletes a window from the sequence at the selected location.
	OpRemove = "remove"
)

// Script is a revision document: an ordered list of steps applied
// sequentially to a document tree. Scripts are plain data, so large change
// sets can be stored, transported, and reviewed before being applied.
type Script struct {
	// Revision is the script format version (e.g. "1.0").
	// This field is required.
	Revision string `yaml:"revision" json:"revision"`

	// Info contains metadata about the script.
	// This field is required.
	Info Info `yaml:"info" json:"info"`

	// Steps is the ordered list of transformation steps.
	// At least one step is required.
	Steps []Step `yaml:"steps" json:"steps"`
}

// Info contains metadata about a revision script.
type Info struct {
	// Title is the human-readable name of the script.
	// This field is required.
	Title string `yaml:"title" json:"title"`

	// Version is the version of the script document.
	// This field is required.
	Version string `yaml:"version" json:"version"`
}

// Step is a single transformation in a script.
type Step struct {
	// Select is the key path addressing the location to transform. An empty
	// path addresses the document root.
	Select string `yaml:"select,omitempty" json:"select,omitempty"`

	// Op names the operation: set, merge, concat, splice, or remove.
	// This field is required.
	Op string `yaml:"op" json:"op"`

	// Description is an optional human-readable explanation of the step.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Value is the operation payload: the replacement for set and splice,
	// the overlay record for merge, the appended sequence for concat.
	// Unused by remove.
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	// Start is the first index of the window for splice, and for remove on
	// a sequence.
	Start *int `yaml:"start,omitempty" json:"start,omitempty"`

	// Length is the window length for splice, and for remove on a sequence.
	Length *int `yaml:"length,omitempty" json:"length,omitempty"`
}

// window reports the step's start/length window, if both are set.
func (s Step) window() (start, length int, ok bool) {
	if s.Start == nil || s.Length == nil {
		return 0, 0, false
	}
	return *s.Start, *s.Length, true
}

// Result contains the outcome of applying a script to a document.
type Result struct {
	// Document is the transformed document tree. The input document is
	// never mutated; Document shares its unchanged subtrees.
	Document *value.Value

	// StepsApplied is the number of steps that were successfully applied.
	StepsApplied int

	// StepsSkipped is the number of steps that were skipped after failing
	// in non-strict mode.
	StepsSkipped int

	// Changes records details of each applied step.
	Changes []ChangeRecord

	// Warnings contains non-fatal issues encountered during application.
	Warnings Warnings
}

// HasChanges returns true if any steps were applied.
func (r *Result) HasChanges() bool {
	return r.StepsApplied > 0
}

// HasWarnings returns true if any warnings were generated.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AddWarning records a warning on the result.
func (r *Result) AddWarning(w *Warning) {
	r.Warnings = append(r.Warnings, w)
}

// ChangeRecord describes a single step applied by a Runner.
type ChangeRecord struct {
	// StepIndex is the zero-based index of the step in the script.
	StepIndex int

	// Select is the key path the step addressed.
	Select string

	// Operation is the step's op.
	Operation string
}

// WarningCategory identifies the type of script warning.
type WarningCategory string

const (
	// WarnStepError indicates a step failed to apply.
	WarnStepError WarningCategory = "step_error"
)

// Warning represents a non-fatal issue encountered while applying a script.
type Warning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// StepIndex is the zero-based index of the step.
	StepIndex int
	// Select is the step's key path.
	Select string
	// Message describes the warning.
	Message string
	// Cause is the underlying error, if applicable.
	Cause error
}

// String returns a formatted warning message.
func (w *Warning) String() string {
	if w.Cause != nil {
		return fmt.Sprintf("step[%d] select %q: %v", w.StepIndex, w.Select, w.Cause)
	}
	return fmt.Sprintf("step[%d] select %q: %s", w.StepIndex, w.Select, w.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (w *Warning) Unwrap() error {
	return w.Cause
}

// Warnings is a collection of Warning.
type Warnings []*Warning

// Strings returns the formatted warning messages.
func (ws Warnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		result[i] = w.String()
	}
	return result
}
