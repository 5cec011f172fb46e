package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsonassert/internal/expect"
)

type checkOptions struct {
	inputFlags
	expect string
	strict bool
}

func newCheckCmd() *cobra.Command {
	o := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <file|->",
		Short: "Check a document against a YAML expectation file",
		Long: `Check a JSON document against a YAML expectation file.

Scalars are compared with exact numeric semantics, mappings descend into
objects and sequences compare arrays. With --strict every object must have
all of its fields covered by the expectation.

Examples:
  jsonassert check response.json --expect response.expect.yaml
  curl -s localhost:8080/items | jsonassert check - --expect items.yaml --strict`,
		Args: usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}
	o.register(cmd)
	cmd.Flags().StringVarP(&o.expect, "expect", "e", "", "YAML expectation file (required)")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail on fields the expectation does not mention")
	_ = cmd.MarkFlagRequired("expect")
	return cmd
}

func (o *checkOptions) run(cmd *cobra.Command, path string) error {
	opts, err := o.options()
	if err != nil {
		return exitf(ExitUsageError, err)
	}
	tree, err := expect.Load(o.expect)
	if err != nil {
		return exitf(ExitUsageError, err)
	}
	b, err := read(cmd, path)
	if err != nil {
		return exitf(ExitUsageError, err)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	out := newConsole(cmd.OutOrStdout(), noColor)
	t := &collector{}
	v := o.session(t, b, opts)
	for _, w := range t.warnings {
		out.warn(w)
	}
	if v.Node() == nil {
		out.fail(path, t.failures)
		return exitf(ExitParseError, fmt.Errorf("%s: not a valid document", path))
	}

	tree.Apply(v, expect.Options{Strict: o.strict})
	if len(t.failures) > 0 {
		out.fail(path, t.failures)
		return exitf(ExitAssertionFailure, fmt.Errorf("%d failure(s)", len(t.failures)))
	}
	out.pass(path, tree.Len())
	return nil
}
