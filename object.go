package jsonassert

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/reoring/jsonassert/codec"
)

// ObjectAssert checks the fields of a JSON object. Every successful field
// lookup marks the field covered, whether or not the typed check that
// triggered it passes; ContainsNoUnassertedFields fails on the rest.
//
// Methods return the receiver so checks can be chained. A type mismatch aborts
// only the check that found it.
type ObjectAssert struct {
	session
	cov *coverage
}

func newObjectAssert(s session) *ObjectAssert {
	o := &ObjectAssert{session: s}
	if s.node != nil {
		o.cov = newCoverage(s.node)
	}
	return o
}

// lookup finds a field and marks it covered. A missing field is never covered.
func (o *ObjectAssert) lookup(name string) (*Node, bool) {
	if !o.alive() {
		return nil, false
	}
	o.r.helper()
	v, ok := o.node.Field(name)
	if !ok {
		o.fail(newIssue(o.path.Field(name), "required", msg{"field": name}))
		return nil, false
	}
	o.cov.mark(name)
	return v, true
}

// typed looks a field up and checks that it coerces to t.
func (o *ObjectAssert) typed(name string, t ValueType) (*Node, bool) {
	v, ok := o.lookup(name)
	if !ok {
		return nil, false
	}
	if !coercible(v, t) {
		o.failField(name, "invalid_type", msg{"expected": t.describe(), "actual": v.String()})
		return nil, false
	}
	return v, true
}

func (o *ObjectAssert) failField(name, key string, data msg) {
	o.r.helper()
	data["field"] = name
	o.fail(newIssue(o.path.Field(name), key, data))
}

func (o *ObjectAssert) failPredicate(name string, v *Node, err error) {
	o.r.helper()
	it := newIssue(o.path.Field(name), "predicate", msg{"field": name, "actual": v.String(), "detail": err.Error()})
	it.Cause = err
	o.fail(it)
}

// IsEmpty fails when the object has any field.
func (o *ObjectAssert) IsEmpty() *ObjectAssert {
	if o.alive() && o.node.Len() > 0 {
		o.r.helper()
		o.fail(newIssue(o.path, "not_empty", msg{"kind": "object", "actual": o.node.String()}))
	}
	return o
}

// Contains fails when the field is missing.
func (o *ObjectAssert) Contains(name string) *ObjectAssert {
	o.lookup(name)
	return o
}

// ContainsType requires a field that coerces to t.
func (o *ObjectAssert) ContainsType(name string, t ValueType) *ObjectAssert {
	o.typed(name, t)
	return o
}

func (o *ObjectAssert) ContainsString(name string) *ObjectAssert {
	o.typed(name, TypeString)
	return o
}

func (o *ObjectAssert) ContainsNumber(name string) *ObjectAssert {
	o.typed(name, TypeNumber)
	return o
}

// ContainsInteger requires a number without fractional part (1, 1.0, 0.1E7).
func (o *ObjectAssert) ContainsInteger(name string) *ObjectAssert {
	o.typed(name, TypeInteger)
	return o
}

func (o *ObjectAssert) ContainsFloat(name string) *ObjectAssert {
	o.typed(name, TypeFloat)
	return o
}

func (o *ObjectAssert) ContainsBoolean(name string) *ObjectAssert {
	o.typed(name, TypeBoolean)
	return o
}

// ContainsNull requires the field to be present with a null value.
func (o *ObjectAssert) ContainsNull(name string) *ObjectAssert {
	o.typed(name, TypeNull)
	return o
}

func (o *ObjectAssert) ContainsObject(name string) *ObjectAssert {
	o.typed(name, TypeObject)
	return o
}

func (o *ObjectAssert) ContainsArray(name string) *ObjectAssert {
	o.typed(name, TypeArray)
	return o
}

// ContainsUUID requires a string in one of the forms accepted by uuid.Parse.
func (o *ObjectAssert) ContainsUUID(name string) *ObjectAssert {
	o.uuidField(name)
	return o
}

func (o *ObjectAssert) uuidField(name string) (uuid.UUID, bool) {
	v, ok := o.lookup(name)
	if !ok {
		return uuid.UUID{}, false
	}
	u, ok := asUUID(v)
	if !ok {
		o.failField(name, "invalid_type", msg{"expected": "UUID string", "actual": v.String()})
	}
	return u, ok
}

// ContainsAnyLocalDateTime requires a local date-time string or a 5 to 7
// element integer array.
func (o *ObjectAssert) ContainsAnyLocalDateTime(name string) *ObjectAssert {
	o.localDateTime(name)
	return o
}

// ContainsValue compares a field with a Go value. float64 and float32 compare
// bit for bit at their own precision, other numeric types (ints, *apd.Decimal, *big.Int, json.Number) as exact
// decimals. time.Time compares as a local date-time, *Node and composite values
// structurally.
func (o *ObjectAssert) ContainsValue(name string, expected any) *ObjectAssert {
	switch x := expected.(type) {
	case nil:
		return o.ContainsNull(name)
	case string:
		return o.HasString(name, x)
	case bool:
		return o.HasBool(name, x)
	case time.Time:
		return o.HasLocalDateTime(name, x)
	case uuid.UUID:
		if u, ok := o.uuidField(name); ok && u != x {
			o.failField(name, "value_mismatch", msg{"expected": x.String(), "actual": u.String()})
		}
		return o
	}
	if e, ok := toExpectedNumber(expected); ok {
		t := TypeNumber
		if e.isFloat {
			t = TypeFloat
		}
		if v, ok := o.typed(name, t); ok && !e.matches(v) {
			o.failField(name, "value_mismatch", msg{"expected": e.String(), "actual": v.String()})
		}
		return o
	}
	want, err := FromValue(expected)
	if err != nil {
		if v, ok := o.lookup(name); ok {
			o.failField(name, "value_mismatch", msg{"expected": err.Error(), "actual": v.String()})
		}
		return o
	}
	if v, ok := o.lookup(name); ok && !v.Equal(want) {
		o.failField(name, "value_mismatch", msg{"expected": want.String(), "actual": v.String()})
	}
	return o
}

func (o *ObjectAssert) HasString(name, expected string) *ObjectAssert {
	if v, ok := o.typed(name, TypeString); ok && v.text != expected {
		o.failField(name, "value_mismatch", msg{"expected": expected, "actual": v.text})
	}
	return o
}

// HasInt requires an integral number equal to expected.
func (o *ObjectAssert) HasInt(name string, expected int64) *ObjectAssert {
	e := intNumber(expected)
	if v, ok := o.typed(name, TypeInteger); ok && !e.matches(v) {
		o.failField(name, "value_mismatch", msg{"expected": strconv.FormatInt(expected, 10), "actual": v.text})
	}
	return o
}

// HasFloat compares the nearest float64 of the field bit for bit.
func (o *ObjectAssert) HasFloat(name string, expected float64) *ObjectAssert {
	e := floatNumber(expected)
	if v, ok := o.typed(name, TypeFloat); ok && !e.matches(v) {
		o.failField(name, "value_mismatch", msg{"expected": e.String(), "actual": v.text})
	}
	return o
}

// HasDecimal compares exact decimal magnitude; 1.50 equals 1.5E0.
func (o *ObjectAssert) HasDecimal(name string, expected *apd.Decimal) *ObjectAssert {
	e, ok := toExpectedNumber(expected)
	if !ok {
		if v, found := o.lookup(name); found {
			o.failField(name, "value_mismatch", msg{"expected": "<invalid decimal>", "actual": v.String()})
		}
		return o
	}
	if v, ok := o.typed(name, TypeNumber); ok && !e.matches(v) {
		o.failField(name, "value_mismatch", msg{"expected": e.String(), "actual": v.text})
	}
	return o
}

// HasNumber compares with a number literal as an exact decimal, so
// HasNumber("n", "0.1E6") passes for 1E5.
func (o *ObjectAssert) HasNumber(name, literal string) *ObjectAssert {
	e, ok := literalNumber(literal)
	if !ok {
		if _, found := o.lookup(name); found {
			o.failField(name, "invalid_format.string", msg{"expected": "number", "actual": literal})
		}
		return o
	}
	if v, ok := o.typed(name, TypeNumber); ok && !e.matches(v) {
		o.failField(name, "value_mismatch", msg{"expected": literal, "actual": v.text})
	}
	return o
}

func (o *ObjectAssert) HasBool(name string, expected bool) *ObjectAssert {
	if v, ok := o.typed(name, TypeBoolean); ok && v.b != expected {
		o.failField(name, "value_mismatch", msg{"expected": strconv.FormatBool(expected), "actual": v.String()})
	}
	return o
}

// HasLocalDateTime compares wall clocks; the location of expected is ignored.
func (o *ObjectAssert) HasLocalDateTime(name string, expected time.Time) *ObjectAssert {
	if got, ok := o.localDateTime(name); ok && !sameLocal(got, expected) {
		o.failField(name, "value_mismatch", msg{"expected": formatLocal(expected), "actual": formatLocal(got)})
	}
	return o
}

// HasLocalDateTimeString parses expected as an ISO-8601 local date-time
// (2021-06-06T10:11:12) and compares it like HasLocalDateTime.
func (o *ObjectAssert) HasLocalDateTimeString(name, expected string) *ObjectAssert {
	want, err := codec.ParseLocalDateTime(expected)
	if err != nil {
		if _, found := o.lookup(name); found {
			o.failField(name, "invalid_format.string", msg{"expected": "local date-time", "actual": expected})
		}
		return o
	}
	return o.HasLocalDateTime(name, want)
}

// HasZonedDateTime compares instants; the field may carry a [Region/City] suffix.
func (o *ObjectAssert) HasZonedDateTime(name string, expected time.Time) *ObjectAssert {
	v, ok := o.lookup(name)
	if !ok {
		return o
	}
	got, err := asZonedDateTime(v)
	if err != nil {
		o.dateTimeFailure(name, v, err, "zoned date-time")
		return o
	}
	if !got.Equal(expected) {
		o.failField(name, "value_mismatch", msg{"expected": expected.Format(time.RFC3339Nano), "actual": got.Format(time.RFC3339Nano)})
	}
	return o
}

// HasInstant compares instants. Numbers are epoch timestamps in the unit set
// with WithTimestampUnit.
func (o *ObjectAssert) HasInstant(name string, expected time.Time) *ObjectAssert {
	v, ok := o.lookup(name)
	if !ok {
		return o
	}
	got, err := asInstant(v, o.r.cfg.Timestamps)
	if err != nil {
		o.dateTimeFailure(name, v, err, "instant")
		return o
	}
	if !got.Equal(expected) {
		o.failField(name, "value_mismatch", msg{"expected": expected.UTC().Format(time.RFC3339Nano), "actual": got.Format(time.RFC3339Nano)})
	}
	return o
}

func (o *ObjectAssert) localDateTime(name string) (time.Time, bool) {
	v, ok := o.lookup(name)
	if !ok {
		return time.Time{}, false
	}
	t, err := asLocalDateTime(v)
	if err != nil {
		o.dateTimeFailure(name, v, err, "local date-time")
		return time.Time{}, false
	}
	return t, true
}

func (o *ObjectAssert) dateTimeFailure(name string, v *Node, err error, what string) {
	o.r.helper()
	var sizeErr *codec.FieldCountError
	switch {
	case errors.Is(err, errAbsent):
		o.failField(name, "invalid_type", msg{"expected": what, "actual": v.String()})
	case errors.As(err, &sizeErr):
		o.failField(name, "invalid_format.size", msg{"actual": strconv.Itoa(sizeErr.Size)})
	case v.Kind() == KindArray:
		o.failField(name, "invalid_format", msg{"actual": v.String()})
	default:
		o.failField(name, "invalid_format.string", msg{"expected": what, "actual": v.String()})
	}
}

func (o *ObjectAssert) StringSatisfies(name string, fn func(string) error) *ObjectAssert {
	if v, ok := o.typed(name, TypeString); ok {
		if err := fn(v.text); err != nil {
			o.failPredicate(name, v, err)
		}
	}
	return o
}

// IntSatisfies requires an integral number that fits in an int64.
func (o *ObjectAssert) IntSatisfies(name string, fn func(int64) error) *ObjectAssert {
	if v, ok := o.int64Field(name); ok {
		n, _ := asInt64(v)
		if err := fn(n); err != nil {
			o.failPredicate(name, v, err)
		}
	}
	return o
}

func (o *ObjectAssert) int64Field(name string) (*Node, bool) {
	v, ok := o.typed(name, TypeInteger)
	if !ok {
		return nil, false
	}
	if _, ok := asInt64(v); !ok {
		o.failField(name, "invalid_type", msg{"expected": "64-bit integer", "actual": v.String()})
		return nil, false
	}
	return v, true
}

func (o *ObjectAssert) FloatSatisfies(name string, fn func(float64) error) *ObjectAssert {
	if v, ok := o.typed(name, TypeFloat); ok {
		f, _ := asFloat(v)
		if err := fn(f); err != nil {
			o.failPredicate(name, v, err)
		}
	}
	return o
}

func (o *ObjectAssert) DecimalSatisfies(name string, fn func(*apd.Decimal) error) *ObjectAssert {
	if v, ok := o.typed(name, TypeNumber); ok {
		d, ok := asDecimal(v)
		if !ok {
			o.failField(name, "invalid_format.string", msg{"expected": "decimal", "actual": v.text})
			return o
		}
		if err := fn(d); err != nil {
			o.failPredicate(name, v, err)
		}
	}
	return o
}

func (o *ObjectAssert) BoolSatisfies(name string, fn func(bool) error) *ObjectAssert {
	if v, ok := o.typed(name, TypeBoolean); ok {
		if err := fn(v.b); err != nil {
			o.failPredicate(name, v, err)
		}
	}
	return o
}

func (o *ObjectAssert) LocalDateTimeSatisfies(name string, fn func(time.Time) error) *ObjectAssert {
	if t, ok := o.localDateTime(name); ok {
		if err := fn(t); err != nil {
			v, _ := o.node.Field(name)
			o.failPredicate(name, v, err)
		}
	}
	return o
}

// ObjectSatisfies runs fn on a nested session over the field. fn is not called
// when the field is missing or not an object.
func (o *ObjectAssert) ObjectSatisfies(name string, fn func(*ObjectAssert)) *ObjectAssert {
	if c := o.Object(name); c.alive() {
		fn(c)
	}
	return o
}

// ArraySatisfies runs fn on a nested session over the field.
func (o *ObjectAssert) ArraySatisfies(name string, fn func(*ArrayAssert)) *ObjectAssert {
	if c := o.Array(name); c.alive() {
		fn(c)
	}
	return o
}

// fullMatch anchors pattern so that it must match the whole text.
func fullMatch(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// StringMatches requires a string field fully matching pattern.
func (o *ObjectAssert) StringMatches(name, pattern string) *ObjectAssert {
	if v, ok := o.typed(name, TypeString); ok {
		o.matches(name, pattern, v.text)
	}
	return o
}

// NumberMatches matches pattern against the literal text of a number field.
func (o *ObjectAssert) NumberMatches(name, pattern string) *ObjectAssert {
	if v, ok := o.typed(name, TypeNumber); ok {
		o.matches(name, pattern, v.text)
	}
	return o
}

func (o *ObjectAssert) matches(name, pattern, text string) {
	re, err := fullMatch(pattern)
	if err != nil {
		o.failField(name, "invalid_format.pattern", msg{"pattern": pattern, "detail": err.Error()})
		return
	}
	if !re.MatchString(text) {
		o.failField(name, "pattern", msg{"pattern": pattern, "actual": text})
	}
}

func (o *ObjectAssert) ContainsEmptyObject(name string) *ObjectAssert {
	if v, ok := o.typed(name, TypeObject); ok && v.Len() > 0 {
		o.failField(name, "not_empty", msg{"kind": "object", "actual": v.String()})
	}
	return o
}

func (o *ObjectAssert) ContainsEmptyArray(name string) *ObjectAssert {
	if v, ok := o.typed(name, TypeArray); ok && v.Len() > 0 {
		o.failField(name, "not_empty", msg{"kind": "array", "actual": v.String()})
	}
	return o
}

// Object returns a session over a nested object with its own coverage. When
// the field is missing or not an object the failure is reported here and the
// returned session is dead.
func (o *ObjectAssert) Object(name string) *ObjectAssert {
	v, _ := o.typed(name, TypeObject)
	return newObjectAssert(o.child(o.path.Field(name), v))
}

// Array returns a session over a nested array.
func (o *ObjectAssert) Array(name string) *ArrayAssert {
	v, _ := o.typed(name, TypeArray)
	return newArrayAssert(o.child(o.path.Field(name), v))
}

// Value returns a session over a field of any kind.
func (o *ObjectAssert) Value(name string) *ValueAssert {
	v, _ := o.lookup(name)
	return newValueAssert(o.child(o.path.Field(name), v))
}

// ContainsNoUnassertedFields fails, naming the fields in declaration order,
// when any field was never looked up. It may be called repeatedly.
func (o *ObjectAssert) ContainsNoUnassertedFields() bool {
	if !o.alive() {
		return false
	}
	o.r.helper()
	rest := o.cov.uncovered()
	if len(rest) == 0 {
		return true
	}
	o.fail(newIssue(o.path, "unasserted_fields", msg{"fields": joinNames(rest)}))
	return false
}

// Covered lists the fields looked up so far, in declaration order.
func (o *ObjectAssert) Covered() []string {
	if !o.alive() {
		return nil
	}
	return o.cov.covered()
}

// Uncovered lists the fields not looked up so far, in declaration order.
func (o *ObjectAssert) Uncovered() []string {
	if !o.alive() {
		return nil
	}
	return o.cov.uncovered()
}
