package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/amend-dev/amend/script"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Format string
	Quiet  bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the result, no diagnostic messages")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: amend validate [flags] <script-file>\n\n")
		Writef(fs.Output(), "Validate a revision script document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  amend validate changes.yaml\n")
		Writef(fs.Output(), "  amend validate --format json changes.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Script is valid\n")
		Writef(fs.Output(), "  1    Script is invalid or could not be read\n")
	}

	return fs, flags
}

// validationReport is the structured output of the validate command.
type validationReport struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HandleValidate executes the validate command.
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate requires exactly one script file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	s, err := script.ParseFile(fs.Arg(0))
	if err != nil {
		return err
	}

	errs := script.Validate(s)
	report := validationReport{Valid: len(errs) == 0}
	for _, e := range errs {
		report.Errors = append(report.Errors, e.Error())
	}

	if flags.Format != FormatText {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
	} else {
		if report.Valid {
			Writef(os.Stdout, "%s is valid\n", fs.Arg(0))
		} else {
			for _, msg := range report.Errors {
				Writef(os.Stdout, "%s\n", msg)
			}
		}
	}

	if !report.Valid {
		return fmt.Errorf("script has %d validation error(s)", len(report.Errors))
	}
	if !flags.Quiet && flags.Format == FormatText {
		Writef(os.Stderr, "%d step(s) validated\n", len(s.Steps))
	}
	return nil
}
