package jsonassert

import "strings"

// coverage records which fields of one object a session has looked up. Each
// object session owns its own set; nested sessions never share it.
type coverage struct {
	obj  *Node
	seen map[string]struct{}
}

func newCoverage(obj *Node) *coverage {
	return &coverage{obj: obj, seen: make(map[string]struct{}, obj.Len())}
}

// mark is called on every successful lookup, before any typed check runs.
func (c *coverage) mark(name string) { c.seen[name] = struct{}{} }

// covered lists covered field names in declaration order.
func (c *coverage) covered() []string { return c.filter(true) }

// uncovered lists the remaining field names in declaration order.
func (c *coverage) uncovered() []string { return c.filter(false) }

func (c *coverage) filter(want bool) []string {
	out := []string{}
	for _, f := range c.obj.Fields() {
		if _, ok := c.seen[f.Name]; ok == want {
			out = append(out, f.Name)
		}
	}
	return out
}

func joinNames(names []string) string { return strings.Join(names, ", ") }
