package jsonassert

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	gojson "github.com/goccy/go-json"
)

// Kind classifies a JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Field is a named member of an object node.
type Field struct {
	Name  string
	Value *Node
}

// Node is an immutable JSON value. Number nodes keep the literal text they were
// parsed from; object nodes keep their fields in declaration order.
type Node struct {
	kind   Kind
	text   string // string value or number literal
	b      bool
	fields []Field
	index  map[string]int
	elems  []*Node
}

var (
	nullNode  = &Node{kind: KindNull}
	trueNode  = &Node{kind: KindBool, b: true}
	falseNode = &Node{kind: KindBool}
)

// NewNull returns the null node.
func NewNull() *Node { return nullNode }

// NewBool returns a boolean node.
func NewBool(v bool) *Node {
	if v {
		return trueNode
	}
	return falseNode
}

// NewString returns a string node.
func NewString(s string) *Node { return &Node{kind: KindString, text: s} }

// NewNumber returns a number node for a JSON number literal such as "1", "-0.5"
// or "0.1E6". The literal is kept verbatim.
func NewNumber(literal string) (*Node, error) {
	if !validNumberLiteral(literal) {
		return nil, fmt.Errorf("jsonassert: invalid number literal %q", literal)
	}
	return &Node{kind: KindNumber, text: literal}, nil
}

// NewObject returns an object node. Field names must be unique.
func NewObject(fields ...Field) (*Node, error) {
	n := &Node{kind: KindObject, fields: make([]Field, 0, len(fields)), index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if _, dup := n.index[f.Name]; dup {
			return nil, fmt.Errorf("jsonassert: duplicate field %q", f.Name)
		}
		if f.Value == nil {
			f.Value = nullNode
		}
		n.index[f.Name] = len(n.fields)
		n.fields = append(n.fields, f)
	}
	return n, nil
}

// NewArray returns an array node; nil elements become null.
func NewArray(elems ...*Node) *Node {
	out := make([]*Node, len(elems))
	for i, e := range elems {
		if e == nil {
			e = nullNode
		}
		out[i] = e
	}
	return &Node{kind: KindArray, elems: out}
}

// Kind reports the node kind. A nil node is null.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// Len returns the number of fields or elements, 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindObject:
		return len(n.fields)
	case KindArray:
		return len(n.elems)
	}
	return 0
}

// Field looks up an object member by name.
func (n *Node) Field(name string) (*Node, bool) {
	if n.Kind() != KindObject {
		return nil, false
	}
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.fields[i].Value, true
}

// Fields returns the object members in declaration order. The slice must not be modified.
func (n *Node) Fields() []Field {
	if n.Kind() != KindObject {
		return nil
	}
	return n.fields
}

// FieldNames returns the object member names in declaration order.
func (n *Node) FieldNames() []string {
	fs := n.Fields()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Elem returns the i-th array element.
func (n *Node) Elem(i int) (*Node, bool) {
	if n.Kind() != KindArray || i < 0 || i >= len(n.elems) {
		return nil, false
	}
	return n.elems[i], true
}

// Elems returns the array elements. The slice must not be modified.
func (n *Node) Elems() []*Node {
	if n.Kind() != KindArray {
		return nil
	}
	return n.elems
}

// Text returns the string value of a string node or the literal of a number node.
func (n *Node) Text() string {
	switch n.Kind() {
	case KindString, KindNumber:
		return n.text
	}
	return ""
}

// Bool returns the value of a boolean node.
func (n *Node) Bool() bool { return n.Kind() == KindBool && n.b }

// String renders the node as compact JSON. Numbers keep their literal text.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.writeTo(&buf)
	return buf.String()
}

func (n *Node) writeTo(buf *bytes.Buffer) {
	switch n.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.b))
	case KindNumber:
		buf.WriteString(n.text)
	case KindString:
		writeJSONString(buf, n.text)
	case KindObject:
		buf.WriteByte('{')
		for i, f := range n.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, f.Name)
			buf.WriteByte(':')
			f.Value.writeTo(buf)
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, e := range n.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.writeTo(buf)
		}
		buf.WriteByte(']')
	}
}

// writeJSONString quotes s without HTML escaping, so <, > and & stay readable
// in failure messages.
func writeJSONString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := gojson.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		buf.WriteString(strconv.Quote(s))
		return
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
}

// Equal reports structural equality. Numbers compare by decimal magnitude and
// object members compare regardless of order.
func (n *Node) Equal(o *Node) bool {
	if n.Kind() != o.Kind() {
		return false
	}
	switch n.Kind() {
	case KindNull:
		return true
	case KindBool:
		return n.b == o.b
	case KindString:
		return n.text == o.text
	case KindNumber:
		return numbersEqual(n, o)
	case KindObject:
		if len(n.fields) != len(o.fields) {
			return false
		}
		for _, f := range n.fields {
			ov, ok := o.Field(f.Name)
			if !ok || !f.Value.Equal(ov) {
				return false
			}
		}
		return true
	case KindArray:
		if len(n.elems) != len(o.elems) {
			return false
		}
		for i := range n.elems {
			if !n.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// FromValue builds a tree from a decoded Go value. Maps are emitted with sorted
// keys. Values of other types are marshalled with go-json and parsed back.
func FromValue(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return nullNode, nil
	case *Node:
		if x == nil {
			return nullNode, nil
		}
		return x, nil
	case bool:
		return NewBool(x), nil
	case string:
		return NewString(x), nil
	case stdjson.Number: // also go-json's Number, an alias
		return NewNumber(string(x))
	case float64:
		return floatNode(x)
	case float32:
		return floatNode(float64(x))
	case int:
		return &Node{kind: KindNumber, text: strconv.FormatInt(int64(x), 10)}, nil
	case int8:
		return &Node{kind: KindNumber, text: strconv.FormatInt(int64(x), 10)}, nil
	case int16:
		return &Node{kind: KindNumber, text: strconv.FormatInt(int64(x), 10)}, nil
	case int32:
		return &Node{kind: KindNumber, text: strconv.FormatInt(int64(x), 10)}, nil
	case int64:
		return &Node{kind: KindNumber, text: strconv.FormatInt(x, 10)}, nil
	case uint:
		return &Node{kind: KindNumber, text: strconv.FormatUint(uint64(x), 10)}, nil
	case uint8:
		return &Node{kind: KindNumber, text: strconv.FormatUint(uint64(x), 10)}, nil
	case uint16:
		return &Node{kind: KindNumber, text: strconv.FormatUint(uint64(x), 10)}, nil
	case uint32:
		return &Node{kind: KindNumber, text: strconv.FormatUint(uint64(x), 10)}, nil
	case uint64:
		return &Node{kind: KindNumber, text: strconv.FormatUint(x, 10)}, nil
	case *big.Int:
		if x == nil {
			return nullNode, nil
		}
		return &Node{kind: KindNumber, text: x.String()}, nil
	case *apd.Decimal:
		if x == nil {
			return nullNode, nil
		}
		return decimalNode(x)
	case apd.Decimal:
		return decimalNode(&x)
	case map[string]any:
		names := make([]string, 0, len(x))
		for k := range x {
			names = append(names, k)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(x))
		for _, k := range names {
			c, err := FromValue(x[k])
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: k, Value: c})
		}
		return NewObject(fields...)
	case []any:
		elems := make([]*Node, len(x))
		for i, e := range x {
			c, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = c
		}
		return NewArray(elems...), nil
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonassert: cannot convert %T: %w", v, err)
	}
	return ParseJSON(b)
}

func floatNode(f float64) (*Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("jsonassert: NaN and Inf are not JSON numbers")
	}
	return &Node{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}, nil
}

func decimalNode(d *apd.Decimal) (*Node, error) {
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("jsonassert: %s is not a JSON number", d.String())
	}
	return NewNumber(d.Text('G'))
}

// validNumberLiteral checks the JSON number grammar:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func validNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
