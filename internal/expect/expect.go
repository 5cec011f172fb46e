// Package expect applies YAML expectation files to JSON documents.
//
// An expectation mirrors the shape of the document:
//
//	name: widget          # ContainsValue
//	price: 12.50          # compared as an exact decimal
//	deleted: ~            # ContainsNull
//	id: !type uuid        # ContainsUUID
//	sku: !regex '[A-Z]{3}-\d+'
//	updated: !any         # present, any value
//	owner:                # nested object
//	  login: alice
//	tags: [a, b]          # exact sequence
//	items:                # element-wise
//	  - id: 1
//	  - id: !any
package expect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	jsonassert "github.com/reoring/jsonassert"
)

// Tags understood in expectation files.
const (
	TagAny   = "!any"
	TagRegex = "!regex"
	TagType  = "!type"
)

// ErrEmpty is returned for an expectation file without a document.
var ErrEmpty = errors.New("expect: empty expectation document")

// Tree is a validated expectation document.
type Tree struct {
	root *yaml.Node
}

// Options control how a Tree is applied.
type Options struct {
	// Strict additionally requires every object field to be covered.
	Strict bool
}

// Load reads and validates an expectation file.
func Load(path string) (*Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse validates an expectation document.
func Parse(b []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmpty
	}
	root := resolve(doc.Content[0])
	if err := validate(root, 0); err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

func validate(n *yaml.Node, depth int) error {
	if depth > 1000 {
		return fmt.Errorf("expect: line %d: nesting too deep", n.Line)
	}
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := resolve(n.Content[i]); k.Kind != yaml.ScalarNode {
				return fmt.Errorf("expect: line %d: keys must be scalars", k.Line)
			}
			if err := validate(n.Content[i+1], depth+1); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := validate(c, depth+1); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		switch n.Tag {
		case TagType:
			if _, ok := typeCheck(n.Value); !ok {
				return fmt.Errorf("expect: line %d: unknown type %q", n.Line, n.Value)
			}
		case TagRegex, TagAny:
		default:
			if _, _, err := scalar(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// Len is the number of top-level entries: fields, elements, or 1 for a scalar.
func (t *Tree) Len() int {
	switch t.root.Kind {
	case yaml.MappingNode:
		return len(t.root.Content) / 2
	case yaml.SequenceNode:
		return len(t.root.Content)
	}
	return 1
}

// Apply checks v against the tree. Failures are reported through the session.
func (t *Tree) Apply(v *jsonassert.ValueAssert, opts Options) {
	applyValue(v, t.root, opts)
}

func applyValue(v *jsonassert.ValueAssert, n *yaml.Node, opts Options) {
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		applyObject(v.AsObject(), n, opts)
	case yaml.SequenceNode:
		applyArray(v.AsArray(), n, opts)
	case yaml.ScalarNode:
		applyElement(v, n)
	}
}

func applyObject(o *jsonassert.ObjectAssert, n *yaml.Node, opts Options) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := resolve(n.Content[i]).Value
		val := resolve(n.Content[i+1])
		switch val.Kind {
		case yaml.MappingNode:
			applyObject(o.Object(name), val, opts)
		case yaml.SequenceNode:
			applyArray(o.Array(name), val, opts)
		case yaml.ScalarNode:
			applyField(o, name, val)
		}
	}
	if opts.Strict {
		o.ContainsNoUnassertedFields()
	}
}

// applyArray compares plain scalar sequences in one ContainsExactly; anything
// else is checked element by element after the size.
func applyArray(a *jsonassert.ArrayAssert, n *yaml.Node, opts Options) {
	if vals, ok := plainScalars(n); ok {
		a.ContainsExactly(vals...)
		return
	}
	if a.Node() == nil {
		return
	}
	a.HasSize(len(n.Content))
	for i, c := range n.Content {
		if i >= a.Node().Len() {
			return
		}
		applyValue(a.Elem(i), c, opts)
	}
}

func plainScalars(n *yaml.Node) ([]any, bool) {
	vals := make([]any, 0, len(n.Content))
	for _, c := range n.Content {
		c = resolve(c)
		if c.Kind != yaml.ScalarNode || c.Tag == TagAny || c.Tag == TagRegex || c.Tag == TagType {
			return nil, false
		}
		v, _, err := scalar(c)
		if err != nil {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}

func applyField(o *jsonassert.ObjectAssert, name string, n *yaml.Node) {
	switch n.Tag {
	case TagAny:
		o.Contains(name)
	case TagRegex:
		o.StringMatches(name, n.Value)
	case TagType:
		if n.Value == "uuid" {
			o.ContainsUUID(name)
			return
		}
		t, _ := jsonassert.ParseValueType(n.Value)
		o.ContainsType(name, t)
	default:
		v, isNull, _ := scalar(n)
		if isNull {
			o.ContainsNull(name)
			return
		}
		o.ContainsValue(name, v)
	}
}

func applyElement(v *jsonassert.ValueAssert, n *yaml.Node) {
	switch n.Tag {
	case TagAny:
	case TagRegex:
		v.IsStringMatching(n.Value)
	case TagType:
		if n.Value == "uuid" {
			v.IsUUID()
			return
		}
		t, _ := jsonassert.ParseValueType(n.Value)
		v.Is(t)
	default:
		val, isNull, _ := scalar(n)
		switch x := val.(type) {
		case string:
			v.IsStringEqualTo(x)
		case bool:
			v.IsBooleanEqualTo(x)
		default:
			if isNull {
				v.IsNull()
				return
			}
			v.IsNumberEqualTo(x)
		}
	}
}

func typeCheck(name string) (jsonassert.ValueType, bool) {
	if name == "uuid" {
		return jsonassert.TypeString, true
	}
	return jsonassert.ParseValueType(name)
}

// scalar converts a YAML scalar into the Go value ContainsValue expects.
// Numbers become json.Number when their literal is valid JSON and *big.Int or
// float64 otherwise (0x1F, .5).
func scalar(n *yaml.Node) (v any, isNull bool, err error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, true, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, false, err
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), false, nil
		}
		z, ok := new(big.Int).SetString(n.Value, 0)
		if !ok {
			return nil, false, fmt.Errorf("expect: line %d: invalid integer %q", n.Line, n.Value)
		}
		return z, false, nil
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), false, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, false, err
		}
		return f, false, nil
	case "!!str", "!!timestamp":
		return n.Value, false, nil
	}
	return nil, false, fmt.Errorf("expect: line %d: unsupported tag %s", n.Line, n.Tag)
}
