// Package cli implements the jsonassert command line: inspecting the kinds of
// a JSON document and checking it against a YAML expectation file.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// NewRootCmd builds the command tree. Output goes to the command's writers so
// tests can capture it.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonassert",
		Short: "Assert on JSON documents from the shell.",
		Long: `jsonassert checks JSON documents against YAML expectation files using
exact numeric comparison and optional field coverage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("no-color", false, "disable coloured output")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitf(ExitUsageError, err)
	})
	root.AddCommand(newKindsCmd(), newCheckCmd(), newVersionCmd())
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(v, bt string, args []string, stdout, stderr io.Writer) int {
	version = v
	buildTime = bt
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Code != ExitAssertionFailure {
			fmt.Fprintf(stderr, "Error: %v\n", ee.Err)
		}
		return ee.Code
	}
	// argument validation and unknown commands come from cobra itself
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitUsageError
}

func usageArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return exitf(ExitUsageError, err)
		}
		return nil
	}
}
