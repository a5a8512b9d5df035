package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/amend-dev/amend/script"
	"go.yaml.in/yaml/v4"
)

// EvalFlags contains flags for the eval command
type EvalFlags struct {
	Doc    string
	Output string
	Select string
	Op     string
	Value  string
	Start  int
	Length int
	Window bool
}

// SetupEvalFlags creates and configures a FlagSet for the eval command.
// Returns the FlagSet and an EvalFlags struct with bound flag variables.
func SetupEvalFlags() (*flag.FlagSet, *EvalFlags) {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	flags := &EvalFlags{}

	fs.StringVar(&flags.Doc, "d", "", "document file to transform (required)")
	fs.StringVar(&flags.Doc, "doc", "", "document file to transform (required)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Select, "select", "", "key path to transform (default: document root)")
	fs.StringVar(&flags.Op, "op", "set", "operation: set, merge, concat, splice, remove")
	fs.StringVar(&flags.Value, "value", "", "operation payload, as inline YAML or JSON")
	fs.IntVar(&flags.Start, "start", 0, "window start for splice and remove")
	fs.IntVar(&flags.Length, "length", 0, "window length for splice and remove")
	fs.BoolVar(&flags.Window, "window", false, "use the start/length window")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: amend eval [flags]\n\n")
		Writef(fs.Output(), "Apply a single transformation step to a document, without a script file.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  amend eval --doc state.yaml --select server.port --op set --value 443\n")
		Writef(fs.Output(), "  amend eval -d state.yaml --select server --op merge --value '{tls: true}'\n")
		Writef(fs.Output(), "  amend eval -d state.yaml --select admins --op concat --value '[ops@example.com]'\n")
		Writef(fs.Output(), "  amend eval -d state.yaml --select debug --op remove\n")
		Writef(fs.Output(), "  cat state.yaml | amend eval -d - --select items --op splice --window --start 1 --length 2 --value '[]'\n")
	}

	return fs, flags
}

// HandleEval executes the eval command.
func HandleEval(args []string) error {
	fs, flags := SetupEvalFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("eval takes no positional arguments")
	}
	if flags.Doc == "" {
		fs.Usage()
		return fmt.Errorf("eval requires a document (--doc)")
	}

	step := script.Step{
		Select: flags.Select,
		Op:     flags.Op,
	}
	if flags.Value != "" {
		var payload any
		if err := yaml.Unmarshal([]byte(flags.Value), &payload); err != nil {
			return fmt.Errorf("commands: invalid --value: %w", err)
		}
		step.Value = payload
	}
	if flags.Window {
		start, length := flags.Start, flags.Length
		step.Start, step.Length = &start, &length
	}

	doc, err := ReadDocument(flags.Doc)
	if err != nil {
		return err
	}

	r := &script.Runner{Strict: true}
	result, err := r.Apply(doc, &script.Script{
		Revision: script.SupportedRevision,
		Info:     script.Info{Title: "amend eval", Version: "1.0.0"},
		Steps:    []script.Step{step},
	})
	if err != nil {
		return err
	}

	return WriteDocument(result.Document, flags.Output)
}
