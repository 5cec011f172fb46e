package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// console writes coloured status lines. noColor applies to this console only.
type console struct {
	w       io.Writer
	noColor bool
}

func newConsole(w io.Writer, noColor bool) *console {
	return &console{w: w, noColor: noColor}
}

func (c *console) paint(attrs ...color.Attribute) func(a ...interface{}) string {
	col := color.New(attrs...)
	if c.noColor {
		col.DisableColor()
	}
	return col.SprintFunc()
}

func (c *console) pass(file string, checked int) {
	green := c.paint(color.FgGreen)
	fmt.Fprintf(c.w, "%s %s (%d top-level expectations)\n", green("✓"), file, checked)
}

func (c *console) fail(file string, failures []string) {
	red := c.paint(color.FgRed)
	bold := c.paint(color.Bold)
	fmt.Fprintf(c.w, "%s %s\n", red("✗"), bold(file))
	for _, f := range failures {
		fmt.Fprintf(c.w, "    %s %s\n", red("-"), f)
	}
	fmt.Fprintf(c.w, "\n%s\n", red(fmt.Sprintf("%d failure(s)", len(failures))))
}

func (c *console) warn(msg string) {
	yellow := c.paint(color.FgYellow)
	fmt.Fprintf(c.w, "%s %s\n", yellow("!"), msg)
}
