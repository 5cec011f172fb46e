package jsonassert

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// ValueType is the semantic type a node is coerced to.
type ValueType int

const (
	TypeString  ValueType = iota
	TypeNumber            // any number, compared as an exact decimal
	TypeInteger           // a number without fractional part
	TypeFloat             // any number, read as the nearest float64
	TypeBoolean
	TypeNull
	TypeObject
	TypeArray
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeNull:
		return "null"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

// ParseValueType is the inverse of ValueType.String.
func ParseValueType(s string) (ValueType, bool) {
	for t := TypeString; t <= TypeArray; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// describe is the wording used in failure messages.
func (t ValueType) describe() string {
	switch t {
	case TypeInteger:
		return "integral number"
	case TypeFloat:
		return "number"
	case TypeNull:
		return "<null>"
	case TypeObject:
		return "JSON object"
	case TypeArray:
		return "JSON array"
	}
	return t.String()
}

// Coercions return false when the node kind does not match the requested type.
// They never report; callers decide whether absence is a failure.

func asString(n *Node) (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}
	return n.text, true
}

func asNumber(n *Node) (number, bool) {
	if n.Kind() != KindNumber {
		return number{}, false
	}
	return parseNumber(n.text)
}

// asDecimal fails only for exponents beyond apd's int32 range; asNumber
// accepts those.
func asDecimal(n *Node) (*apd.Decimal, bool) {
	if n.Kind() != KindNumber {
		return nil, false
	}
	return decimalOf(n.text)
}

func asInteger(n *Node) (number, bool) {
	v, ok := asNumber(n)
	if !ok || !v.integral() {
		return number{}, false
	}
	return v, true
}

// asInt64 additionally fails when the integer does not fit in an int64.
func asInt64(n *Node) (int64, bool) {
	v, ok := asInteger(n)
	if !ok {
		return 0, false
	}
	return v.int64()
}

func asFloat(n *Node) (float64, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}
	return floatOf(n.text)
}

func asBool(n *Node) (bool, bool) {
	if n.Kind() != KindBool {
		return false, false
	}
	return n.b, true
}

func asNull(n *Node) bool { return n.Kind() == KindNull }

// asObject and asArray return the node itself; callers may recurse into it.
func asObject(n *Node) (*Node, bool) { return n, n.Kind() == KindObject }

func asArray(n *Node) (*Node, bool) { return n, n.Kind() == KindArray }

func asUUID(n *Node) (uuid.UUID, bool) {
	s, ok := asString(n)
	if !ok {
		return uuid.UUID{}, false
	}
	u, err := uuid.Parse(s)
	return u, err == nil
}

// coercible reports whether n can be coerced to t.
func coercible(n *Node, t ValueType) bool {
	switch t {
	case TypeString:
		_, ok := asString(n)
		return ok
	case TypeNumber:
		_, ok := asNumber(n)
		return ok
	case TypeInteger:
		_, ok := asInteger(n)
		return ok
	case TypeFloat:
		_, ok := asFloat(n)
		return ok
	case TypeBoolean:
		_, ok := asBool(n)
		return ok
	case TypeNull:
		return asNull(n)
	case TypeObject:
		_, ok := asObject(n)
		return ok
	case TypeArray:
		_, ok := asArray(n)
		return ok
	}
	return false
}
