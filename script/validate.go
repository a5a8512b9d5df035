package script

import (
	"fmt"

	"github.com/amend-dev/amend/keypath"
)

// SupportedRevision is the script format version supported by this
// implementation.
const SupportedRevision = "1.0"

// Validate checks a revision script for structural errors.
//
// Returns a slice of validation errors. An empty slice indicates the script
// is valid. Validation checks include:
//   - Required fields (revision, info.title, info.version, steps)
//   - Supported revision (currently only 1.0)
//   - Valid key path syntax in step selects
//   - Known operations with the fields each operation requires
func Validate(s *Script) []ValidationError {
	var errs []ValidationError

	if s.Revision == "" {
		errs = append(errs, ValidationError{
			Field:   "revision",
			Message: "revision is required",
		})
	} else if s.Revision != SupportedRevision {
		errs = append(errs, ValidationError{
			Field:   "revision",
			Message: fmt.Sprintf("unsupported revision %q; only %q is supported", s.Revision, SupportedRevision),
		})
	}

	if s.Info.Title == "" {
		errs = append(errs, ValidationError{
			Field:   "info.title",
			Message: "title is required",
		})
	}

	if s.Info.Version == "" {
		errs = append(errs, ValidationError{
			Field:   "info.version",
			Message: "version is required",
		})
	}

	if len(s.Steps) == 0 {
		errs = append(errs, ValidationError{
			Field:   "steps",
			Message: "at least one step is required",
		})
	}

	for i, step := range s.Steps {
		errs = append(errs, validateStep(step, i)...)
	}

	return errs
}

// validateStep validates a single step.
func validateStep(step Step, index int) []ValidationError {
	var errs []ValidationError
	pathPrefix := fmt.Sprintf("steps[%d]", index)

	if step.Select != "" {
		if _, err := keypath.Parse(step.Select); err != nil {
			errs = append(errs, ValidationError{
				Path:    pathPrefix + ".select",
				Message: fmt.Sprintf("invalid key path: %v", err),
			})
		}
	}

	switch step.Op {
	case OpSet, OpMerge, OpConcat:
		// Value may be any shape for set; merge and concat check shape at
		// apply time against the addressed value.
	case OpSplice:
		if _, _, ok := step.window(); !ok {
			errs = append(errs, ValidationError{
				Path:    pathPrefix,
				Message: "splice requires start and length",
			})
		}
	case OpRemove:
		if step.Select == "" {
			if _, _, ok := step.window(); !ok {
				errs = append(errs, ValidationError{
					Path:    pathPrefix,
					Message: "remove requires a select path or a start/length window",
				})
			}
		}
	case "":
		errs = append(errs, ValidationError{
			Path:    pathPrefix + ".op",
			Message: "op is required",
		})
	default:
		errs = append(errs, ValidationError{
			Path:    pathPrefix + ".op",
			Message: fmt.Sprintf("unknown op %q", step.Op),
		})
	}

	if start, length, ok := step.window(); ok && (start < 0 || length < 0) {
		errs = append(errs, ValidationError{
			Path:    pathPrefix,
			Message: fmt.Sprintf("window %d:%d must not be negative", start, length),
		})
	}

	return errs
}

// IsValid is a convenience function that returns true if the script has no
// validation errors.
func IsValid(s *Script) bool {
	return len(Validate(s)) == 0
}
