package jsonassert

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// ValueAssert checks a JSON value of any kind: a whole document, a field or an
// array element. The As methods switch to a typed view and report a type
// mismatch when the kind does not fit.
type ValueAssert struct {
	session
}

func newValueAssert(s session) *ValueAssert { return &ValueAssert{session: s} }

func (v *ValueAssert) is(t ValueType) bool {
	if !v.alive() {
		return false
	}
	if !coercible(v.node, t) {
		v.r.helper()
		v.fail(newIssue(v.path, "invalid_type.node", msg{"expected": article(t), "actual": v.node.String()}))
		return false
	}
	return true
}

func article(t ValueType) string {
	switch t {
	case TypeInteger:
		return "an integer"
	case TypeObject:
		return "an object"
	case TypeArray:
		return "an array"
	case TypeNull:
		return "null"
	}
	return "a " + t.String()
}

func (v *ValueAssert) mismatch(kind, expected string) {
	v.r.helper()
	v.fail(newIssue(v.path, "value_mismatch.node", msg{"kind": kind, "expected": expected, "actual": v.node.String()}))
}

// Is requires the value to coerce to t.
func (v *ValueAssert) Is(t ValueType) *ValueAssert {
	v.is(t)
	return v
}

func (v *ValueAssert) IsString() *ValueAssert {
	v.is(TypeString)
	return v
}

func (v *ValueAssert) IsNumber() *ValueAssert {
	v.is(TypeNumber)
	return v
}

func (v *ValueAssert) IsFloat() *ValueAssert {
	v.is(TypeFloat)
	return v
}

// IsInteger requires a number without fractional part.
func (v *ValueAssert) IsInteger() *ValueAssert {
	v.is(TypeInteger)
	return v
}

func (v *ValueAssert) IsBoolean() *ValueAssert {
	v.is(TypeBoolean)
	return v
}

func (v *ValueAssert) IsNull() *ValueAssert {
	v.is(TypeNull)
	return v
}

func (v *ValueAssert) IsObject() *ValueAssert {
	v.is(TypeObject)
	return v
}

func (v *ValueAssert) IsArray() *ValueAssert {
	v.is(TypeArray)
	return v
}

func (v *ValueAssert) IsStringEqualTo(expected string) *ValueAssert {
	if v.is(TypeString) && v.node.text != expected {
		v.mismatch("a string", expected)
	}
	return v
}

// IsNumberEqualTo compares like ObjectAssert.ContainsValue; a string argument
// is read as a number literal.
func (v *ValueAssert) IsNumberEqualTo(expected any) *ValueAssert {
	e, ok := toExpectedNumber(expected)
	if s, isText := expected.(string); isText {
		e, ok = literalNumber(s)
	}
	if !ok {
		if v.alive() {
			v.mismatch("a number", display(expected))
		}
		return v
	}
	t := TypeNumber
	if e.isFloat {
		t = TypeFloat
	}
	if v.is(t) && !e.matches(v.node) {
		v.mismatch("a number", e.String())
	}
	return v
}

// IsUUID requires a string in one of the forms accepted by uuid.Parse.
func (v *ValueAssert) IsUUID() *ValueAssert {
	if !v.alive() {
		return v
	}
	if _, ok := asUUID(v.node); !ok {
		v.r.helper()
		v.fail(newIssue(v.path, "invalid_type.node", msg{"expected": "a UUID string", "actual": v.node.String()}))
	}
	return v
}

// IsStringMatching requires a string fully matching pattern.
func (v *ValueAssert) IsStringMatching(pattern string) *ValueAssert {
	if !v.is(TypeString) {
		return v
	}
	v.r.helper()
	re, err := fullMatch(pattern)
	if err != nil {
		v.fail(newIssue(v.path, "invalid_format.pattern", msg{"pattern": pattern, "detail": err.Error()}))
		return v
	}
	if !re.MatchString(v.node.text) {
		v.fail(newIssue(v.path, "pattern", msg{"pattern": pattern, "actual": v.node.text}))
	}
	return v
}

func (v *ValueAssert) IsIntegerEqualTo(expected int64) *ValueAssert {
	if v.is(TypeInteger) && !intNumber(expected).matches(v.node) {
		v.mismatch("an integer", strconv.FormatInt(expected, 10))
	}
	return v
}

func (v *ValueAssert) IsBooleanEqualTo(expected bool) *ValueAssert {
	if v.is(TypeBoolean) && v.node.b != expected {
		v.mismatch("a boolean", strconv.FormatBool(expected))
	}
	return v
}

// IsEqualTo parses expected as JSON and compares structurally: numbers by
// decimal magnitude, objects regardless of member order.
func (v *ValueAssert) IsEqualTo(expected string) *ValueAssert {
	if !v.alive() {
		return v
	}
	v.r.helper()
	want, _, err := parseText([]byte(expected), v.r.cfg)
	if err != nil {
		v.fail(parseFailure(v.path, "value", err))
		return v
	}
	if !v.node.Equal(want) {
		v.mismatch("a value", want.String())
	}
	return v
}

// AsString returns the string value, or "" after reporting a type mismatch.
func (v *ValueAssert) AsString() string {
	if v.is(TypeString) {
		return v.node.text
	}
	return ""
}

func (v *ValueAssert) AsDecimal() *apd.Decimal {
	if !v.is(TypeNumber) {
		return nil
	}
	d, ok := asDecimal(v.node)
	if !ok {
		v.r.helper()
		v.fail(newIssue(v.path, "invalid_format.string", msg{"expected": "decimal", "actual": v.node.text}))
	}
	return d
}

func (v *ValueAssert) AsFloat() float64 {
	if v.is(TypeFloat) {
		f, _ := asFloat(v.node)
		return f
	}
	return 0
}

// AsInt returns the value of an integral number that fits in an int64.
func (v *ValueAssert) AsInt() int64 {
	if !v.is(TypeInteger) {
		return 0
	}
	n, ok := asInt64(v.node)
	if !ok {
		v.r.helper()
		v.fail(newIssue(v.path, "invalid_type.node", msg{"expected": "a 64-bit integer", "actual": v.node.String()}))
	}
	return n
}

func (v *ValueAssert) AsBool() bool {
	if v.is(TypeBoolean) {
		return v.node.b
	}
	return false
}

// AsObject returns an object session over the value; it is dead when the value
// is not an object.
func (v *ValueAssert) AsObject() *ObjectAssert {
	if v.is(TypeObject) {
		return newObjectAssert(v.child(v.path, v.node))
	}
	return newObjectAssert(v.child(v.path, nil))
}

func (v *ValueAssert) AsArray() *ArrayAssert {
	if v.is(TypeArray) {
		return newArrayAssert(v.child(v.path, v.node))
	}
	return newArrayAssert(v.child(v.path, nil))
}
