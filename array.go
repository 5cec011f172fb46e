package jsonassert

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// ArrayAssert checks the elements of a JSON array.
type ArrayAssert struct {
	session
}

func newArrayAssert(s session) *ArrayAssert { return &ArrayAssert{session: s} }

func (a *ArrayAssert) failAt(i int, key string, data msg) {
	a.r.helper()
	data["index"] = strconv.Itoa(i)
	it := newIssue(a.path.Index(i), key, data)
	it.Index = i
	a.fail(it)
}

// IsEmpty fails when the array has any element.
func (a *ArrayAssert) IsEmpty() *ArrayAssert {
	if a.alive() && a.node.Len() > 0 {
		a.r.helper()
		a.fail(newIssue(a.path, "not_empty", msg{"kind": "array", "actual": a.node.String()}))
	}
	return a
}

// HasSize fails when the array does not have exactly n elements.
func (a *ArrayAssert) HasSize(n int) *ArrayAssert {
	if a.alive() && a.node.Len() != n {
		a.r.helper()
		a.fail(newIssue(a.path, "size_mismatch", msg{"expected": strconv.Itoa(n), "actual": strconv.Itoa(a.node.Len())}))
	}
	return a
}

// ContainsExactly compares the elements positionally with expected values, using
// the same rules as ObjectAssert.ContainsValue. A size mismatch is reported
// first; otherwise the first differing position is.
func (a *ArrayAssert) ContainsExactly(expected ...any) *ArrayAssert {
	if !a.alive() {
		return a
	}
	a.r.helper()
	if a.node.Len() != len(expected) {
		a.fail(newIssue(a.path, "size_mismatch.exactly", msg{
			"expected": strconv.Itoa(len(expected)),
			"actual":   strconv.Itoa(a.node.Len()),
			"array":    a.node.String(),
		}))
		return a
	}
	for i, want := range expected {
		e := a.node.elems[i]
		ok, wrongType, invalid := elementMatches(e, want)
		if wrongType != "" {
			a.failAt(i, "invalid_type.element", msg{"expected": wrongType, "actual": e.String()})
			return a
		}
		if invalid != "" {
			a.failAt(i, "invalid_format.element", msg{"expected": invalid, "actual": e.String()})
			return a
		}
		if !ok {
			a.failAt(i, "value_mismatch.element", msg{"expected": display(want), "actual": e.String(), "array": a.node.String()})
			return a
		}
	}
	return a
}

func (a *ArrayAssert) ContainsExactlyStrings(expected ...string) *ArrayAssert {
	return a.ContainsExactly(toAny(expected)...)
}

func (a *ArrayAssert) ContainsExactlyInts(expected ...int64) *ArrayAssert {
	return a.ContainsExactly(toAny(expected)...)
}

func (a *ArrayAssert) ContainsExactlyFloats(expected ...float64) *ArrayAssert {
	return a.ContainsExactly(toAny(expected)...)
}

func (a *ArrayAssert) ContainsExactlyBools(expected ...bool) *ArrayAssert {
	return a.ContainsExactly(toAny(expected)...)
}

func toAny[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// elementMatches compares one element. wrongType names the expected kind when
// the element cannot be compared at all; invalid names it when the element has
// the right kind but does not parse.
func elementMatches(e *Node, want any) (ok bool, wrongType, invalid string) {
	switch x := want.(type) {
	case nil:
		return asNull(e), typeUnless(asNull(e), TypeNull), ""
	case string:
		s, ok := asString(e)
		return ok && s == x, typeUnless(ok, TypeString), ""
	case bool:
		b, ok := asBool(e)
		return ok && b == x, typeUnless(ok, TypeBoolean), ""
	case time.Time:
		t, err := asLocalDateTime(e)
		switch {
		case errors.Is(err, errAbsent):
			return false, "local date-time", ""
		case err != nil && e.Kind() == KindArray:
			return false, "", "datetime array"
		case err != nil:
			return false, "", "local date-time"
		}
		return sameLocal(t, x), "", ""
	}
	if num, isNum := toExpectedNumber(want); isNum {
		return num.matches(e), typeUnless(e.Kind() == KindNumber, TypeNumber), ""
	}
	n, err := FromValue(want)
	if err != nil {
		return false, "", ""
	}
	return e.Equal(n), "", ""
}

func typeUnless(ok bool, t ValueType) string {
	if ok {
		return ""
	}
	return t.describe()
}

func display(v any) string {
	if num, ok := toExpectedNumber(v); ok {
		return num.String()
	}
	switch x := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return formatLocal(x)
	case *Node:
		return x.String()
	case string, bool:
		return fmt.Sprint(x)
	}
	if n, err := FromValue(v); err == nil {
		return n.String()
	}
	return fmt.Sprint(v)
}

// collect coerces every element of arr, returning the index of the first
// element that does not coerce.
func collect[T any](arr *Node, conv func(*Node) (T, bool)) ([]T, int) {
	out := make([]T, 0, arr.Len())
	for i, e := range arr.Elems() {
		v, ok := conv(e)
		if !ok {
			return nil, i
		}
		out = append(out, v)
	}
	return out, -1
}

// coerceAll coerces the whole array first and reports the complete array when
// any element has the wrong type.
func coerceAll[T any](a *ArrayAssert, t string, conv func(*Node) (T, bool)) ([]T, bool) {
	if !a.alive() {
		return nil, false
	}
	vs, bad := collect(a.node, conv)
	if bad >= 0 {
		a.r.helper()
		a.fail(newIssue(a.path, "invalid_type.array", msg{"expected": t, "actual": a.node.String()}))
		return nil, false
	}
	return vs, true
}

// satisfyAll applies fn in order and reports the first error with its index.
func satisfyAll[T any](a *ArrayAssert, vs []T, fn func(T) error) {
	for i, v := range vs {
		if err := fn(v); err != nil {
			a.r.helper()
			data := msg{"actual": a.node.elems[i].String(), "detail": err.Error(), "index": strconv.Itoa(i)}
			it := newIssue(a.path.Index(i), "predicate.element", data)
			it.Index = i
			it.Cause = err
			a.fail(it)
			return
		}
	}
}

func (a *ArrayAssert) StringsSatisfy(fn func(string) error) *ArrayAssert {
	if vs, ok := coerceAll(a, TypeString.describe(), asString); ok {
		satisfyAll(a, vs, fn)
	}
	return a
}

func (a *ArrayAssert) IntsSatisfy(fn func(int64) error) *ArrayAssert {
	if vs, ok := coerceAll(a, "64-bit integer", asInt64); ok {
		satisfyAll(a, vs, fn)
	}
	return a
}

func (a *ArrayAssert) FloatsSatisfy(fn func(float64) error) *ArrayAssert {
	if vs, ok := coerceAll(a, TypeFloat.describe(), asFloat); ok {
		satisfyAll(a, vs, fn)
	}
	return a
}

func (a *ArrayAssert) DecimalsSatisfy(fn func(*apd.Decimal) error) *ArrayAssert {
	if vs, ok := coerceAll(a, TypeNumber.describe(), asDecimal); ok {
		satisfyAll(a, vs, fn)
	}
	return a
}

func (a *ArrayAssert) BoolsSatisfy(fn func(bool) error) *ArrayAssert {
	if vs, ok := coerceAll(a, TypeBoolean.describe(), asBool); ok {
		satisfyAll(a, vs, fn)
	}
	return a
}

// ObjectsSatisfy runs fn on a session over every element once all of them are
// known to be objects.
func (a *ArrayAssert) ObjectsSatisfy(fn func(*ObjectAssert)) *ArrayAssert {
	for _, o := range a.Objects() {
		fn(o)
	}
	return a
}

func (a *ArrayAssert) ArraysSatisfy(fn func(*ArrayAssert)) *ArrayAssert {
	for _, c := range a.Arrays() {
		fn(c)
	}
	return a
}

// Strings returns the elements as strings, or nil after reporting a type mismatch.
func (a *ArrayAssert) Strings() []string {
	vs, _ := coerceAll(a, TypeString.describe(), asString)
	return vs
}

func (a *ArrayAssert) Ints() []int64 {
	vs, _ := coerceAll(a, "64-bit integer", asInt64)
	return vs
}

func (a *ArrayAssert) Floats() []float64 {
	vs, _ := coerceAll(a, TypeFloat.describe(), asFloat)
	return vs
}

func (a *ArrayAssert) Decimals() []*apd.Decimal {
	vs, _ := coerceAll(a, TypeNumber.describe(), asDecimal)
	return vs
}

func (a *ArrayAssert) Bools() []bool {
	vs, _ := coerceAll(a, TypeBoolean.describe(), asBool)
	return vs
}

// Objects returns a session per element, each with its own coverage.
func (a *ArrayAssert) Objects() []*ObjectAssert {
	nodes, ok := coerceAll(a, TypeObject.describe(), asObject)
	if !ok {
		return nil
	}
	out := make([]*ObjectAssert, len(nodes))
	for i, n := range nodes {
		out[i] = newObjectAssert(a.child(a.path.Index(i), n))
	}
	return out
}

func (a *ArrayAssert) Arrays() []*ArrayAssert {
	nodes, ok := coerceAll(a, TypeArray.describe(), asArray)
	if !ok {
		return nil
	}
	out := make([]*ArrayAssert, len(nodes))
	for i, n := range nodes {
		out[i] = newArrayAssert(a.child(a.path.Index(i), n))
	}
	return out
}

// Elem returns a session over the i-th element; out of range positions are
// reported and yield a dead session.
func (a *ArrayAssert) Elem(i int) *ValueAssert {
	if !a.alive() {
		return newValueAssert(a.child(a.path.Index(i), nil))
	}
	e, ok := a.node.Elem(i)
	if !ok {
		a.failAt(i, "required.element", msg{"actual": strconv.Itoa(a.node.Len())})
	}
	return newValueAssert(a.child(a.path.Index(i), e))
}
