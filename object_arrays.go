package jsonassert

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// arrayField returns a session over an array field whose elements all coerce
// with conv. On any failure the session is nil.
func arrayField[T any](o *ObjectAssert, name, what string, conv func(*Node) (T, bool)) (*ArrayAssert, []T) {
	v, ok := o.typed(name, TypeArray)
	if !ok {
		return nil, nil
	}
	vs, bad := collect(v, conv)
	if bad >= 0 {
		o.failField(name, "invalid_type.array", msg{"expected": what, "actual": v.String()})
		return nil, nil
	}
	return newArrayAssert(o.child(o.path.Field(name), v)), vs
}

// ContainsArrayOfSize requires an array field of n elements that all coerce to t.
func (o *ObjectAssert) ContainsArrayOfSize(name string, t ValueType, n int) *ObjectAssert {
	a, vs := arrayField(o, name, t.describe(), func(e *Node) (*Node, bool) { return e, coercible(e, t) })
	if a != nil && len(vs) != n {
		o.failField(name, "size_mismatch.field", msg{"expected": strconv.Itoa(n), "actual": strconv.Itoa(len(vs))})
	}
	return o
}

// StringArraySatisfies passes the whole array to fn once every element is known
// to be a string.
func (o *ObjectAssert) StringArraySatisfies(name string, fn func([]string) error) *ObjectAssert {
	if a, vs := arrayField(o, name, TypeString.describe(), asString); a != nil {
		o.arrayPredicate(name, a, fn(vs))
	}
	return o
}

func (o *ObjectAssert) IntArraySatisfies(name string, fn func([]int64) error) *ObjectAssert {
	if a, vs := arrayField(o, name, "64-bit integer", asInt64); a != nil {
		o.arrayPredicate(name, a, fn(vs))
	}
	return o
}

func (o *ObjectAssert) FloatArraySatisfies(name string, fn func([]float64) error) *ObjectAssert {
	if a, vs := arrayField(o, name, TypeFloat.describe(), asFloat); a != nil {
		o.arrayPredicate(name, a, fn(vs))
	}
	return o
}

func (o *ObjectAssert) DecimalArraySatisfies(name string, fn func([]*apd.Decimal) error) *ObjectAssert {
	if a, vs := arrayField(o, name, TypeNumber.describe(), asDecimal); a != nil {
		o.arrayPredicate(name, a, fn(vs))
	}
	return o
}

func (o *ObjectAssert) BoolArraySatisfies(name string, fn func([]bool) error) *ObjectAssert {
	if a, vs := arrayField(o, name, TypeBoolean.describe(), asBool); a != nil {
		o.arrayPredicate(name, a, fn(vs))
	}
	return o
}

// ObjectArraySatisfies passes one session per element to fn; each has its own coverage.
func (o *ObjectAssert) ObjectArraySatisfies(name string, fn func([]*ObjectAssert)) *ObjectAssert {
	if a, _ := arrayField(o, name, TypeObject.describe(), asObject); a != nil {
		fn(a.Objects())
	}
	return o
}

func (o *ObjectAssert) ArrayArraySatisfies(name string, fn func([]*ArrayAssert)) *ObjectAssert {
	if a, _ := arrayField(o, name, TypeArray.describe(), asArray); a != nil {
		fn(a.Arrays())
	}
	return o
}

func (o *ObjectAssert) arrayPredicate(name string, a *ArrayAssert, err error) {
	if err != nil {
		o.failPredicate(name, a.node, err)
	}
}
