package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cockroachdb/apd/v3"
	"github.com/spf13/cobra"

	jsonassert "github.com/reoring/jsonassert"
	eng "github.com/reoring/jsonassert/internal/engine"
	yamlsrc "github.com/reoring/jsonassert/source/yaml"
)

func newKindsCmd() *cobra.Command {
	f := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "kinds <file|->",
		Short: "List every JSON Pointer of a document with its kind",
		Long: `List every JSON Pointer of a document with its kind and value.

Numbers are shown with their literal text and, when it differs, the
canonical decimal used for comparisons.

Examples:
  jsonassert kinds response.json
  jsonassert kinds fixture.yaml --yaml`,
		Args: usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return exitf(ExitUsageError, err)
			}
			b, err := read(cmd, args[0])
			if err != nil {
				return exitf(ExitUsageError, err)
			}
			var n *jsonassert.Node
			if f.yaml {
				n, err = jsonassert.Parse(yamlsrc.NewBytes(b), opts...)
			} else {
				n, err = jsonassert.ParseJSON(b, opts...)
			}
			if err != nil {
				return exitf(ExitParseError, err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			listKinds(tw, "", n)
			return tw.Flush()
		},
	}
	f.register(cmd)
	return cmd
}

func listKinds(w io.Writer, ptr string, n *jsonassert.Node) {
	shown := ptr
	if shown == "" {
		shown = "/"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", shown, n.Kind(), describe(n))
	switch n.Kind() {
	case jsonassert.KindObject:
		for _, f := range n.Fields() {
			listKinds(w, eng.JoinPointer(ptr, f.Name), f.Value)
		}
	case jsonassert.KindArray:
		for i, e := range n.Elems() {
			listKinds(w, eng.JoinPointer(ptr, strconv.Itoa(i)), e)
		}
	}
}

func describe(n *jsonassert.Node) string {
	switch n.Kind() {
	case jsonassert.KindObject:
		return fmt.Sprintf("{%d fields}", n.Len())
	case jsonassert.KindArray:
		return fmt.Sprintf("[%d elements]", n.Len())
	case jsonassert.KindNumber:
		lit := n.Text()
		if c := canonical(lit); c != lit {
			return lit + " (= " + c + ")"
		}
		return lit
	}
	return n.String()
}

// canonical renders a number literal without trailing zeros, in plain notation
// when that stays short.
func canonical(lit string) string {
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		return lit
	}
	d.Reduce(d)
	if d.Exponent >= -20 && d.Exponent <= 20 {
		return d.Text('f')
	}
	return d.Text('G')
}
