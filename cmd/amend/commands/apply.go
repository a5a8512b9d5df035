package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/amend-dev/amend/script"
)

// ApplyFlags contains flags for the apply command
type ApplyFlags struct {
	Doc    string
	Output string
	Strict bool
	Quiet  bool
	DryRun bool
}

// SetupApplyFlags creates and configures a FlagSet for the apply command.
// Returns the FlagSet and an ApplyFlags struct with bound flag variables.
func SetupApplyFlags() (*flag.FlagSet, *ApplyFlags) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	flags := &ApplyFlags{}

	fs.StringVar(&flags.Doc, "d", "", "document file to transform (required)")
	fs.StringVar(&flags.Doc, "doc", "", "document file to transform (required)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on the first step that cannot be applied")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "preview changes without applying")
	fs.BoolVar(&flags.DryRun, "n", false, "preview changes without applying")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: amend apply [flags] <script-file>\n\n")
		Writef(fs.Output(), "Apply a revision script to a YAML or JSON document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  amend apply --doc state.yaml changes.yaml\n")
		Writef(fs.Output(), "  amend apply -d state.yaml -o production.yaml changes.yaml\n")
		Writef(fs.Output(), "  amend apply --dry-run -d state.yaml changes.yaml\n")
		Writef(fs.Output(), "  amend apply --strict -d state.yaml changes.yaml\n")
		Writef(fs.Output(), "  cat state.yaml | amend apply -d - changes.yaml\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the document path to read from stdin\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Steps are applied sequentially in order\n")
		Writef(fs.Output(), "  - The input document is never modified\n")
		Writef(fs.Output(), "  - Use --strict to fail when a step cannot be applied\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Script applied successfully\n")
		Writef(fs.Output(), "  1    Script application failed\n")
	}

	return fs, flags
}

// HandleApply executes the apply command.
func HandleApply(args []string) error {
	fs, flags := SetupApplyFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("apply requires exactly one script file")
	}
	if flags.Doc == "" {
		fs.Usage()
		return fmt.Errorf("apply requires a document (--doc)")
	}

	doc, err := ReadDocument(flags.Doc)
	if err != nil {
		return err
	}
	s, err := script.ParseFile(fs.Arg(0))
	if err != nil {
		return err
	}

	r := &script.Runner{Strict: flags.Strict}

	if flags.DryRun {
		result, err := r.DryRun(doc, s)
		if err != nil {
			return err
		}
		for _, change := range result.Changes {
			Writef(os.Stdout, "Would apply %s at %q (step %d)\n",
				FormatOperation(change.Operation), change.Select, change.StepIndex)
		}
		for _, w := range result.Warnings {
			Writef(os.Stderr, "Warning: %s\n", w)
		}
		if !flags.Quiet {
			Writef(os.Stderr, "%d step(s) would apply, %d would be skipped\n",
				result.WouldApply, result.WouldSkip)
		}
		return nil
	}

	result, err := r.Apply(doc, s)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		for _, w := range result.Warnings {
			Writef(os.Stderr, "Warning: %s\n", w)
		}
		Writef(os.Stderr, "Applied %d step(s), skipped %d\n",
			result.StepsApplied, result.StepsSkipped)
	}

	return WriteDocument(result.Document, flags.Output)
}
