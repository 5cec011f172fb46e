package jsonassert

import (
	"errors"
	"time"

	"github.com/reoring/jsonassert/codec"
)

// errAbsent signals that a node has a kind the date-time coercion does not accept.
var errAbsent = errors.New("jsonassert: not a date-time node")

// asLocalDateTime accepts an ISO-8601 local date-time string or an array of
// 5 to 7 integral numbers. Other errors are invalid-format failures.
func asLocalDateTime(n *Node) (time.Time, error) {
	switch n.Kind() {
	case KindString:
		return codec.ParseLocalDateTime(n.text)
	case KindArray:
		return dateTimeFromArray(n)
	}
	return time.Time{}, errAbsent
}

// asZonedDateTime accepts an RFC 3339 string with optional [Region/City]
// suffix; arrays are read as UTC.
func asZonedDateTime(n *Node) (time.Time, error) {
	switch n.Kind() {
	case KindString:
		return codec.ParseZonedDateTime(n.text)
	case KindArray:
		return dateTimeFromArray(n)
	}
	return time.Time{}, errAbsent
}

// asInstant additionally accepts numeric epoch timestamps in the configured unit.
func asInstant(n *Node, unit TimestampUnit) (time.Time, error) {
	switch n.Kind() {
	case KindString:
		return codec.ParseInstant(n.text)
	case KindArray:
		return dateTimeFromArray(n)
	case KindNumber:
		d, _ := decimalOf(n.text)
		return codec.FromEpoch(d, nanosExp(unit))
	}
	return time.Time{}, errAbsent
}

func nanosExp(u TimestampUnit) int32 {
	switch u {
	case TimestampMilliseconds:
		return 6
	case TimestampNanoseconds:
		return 0
	default:
		return 9
	}
}

func dateTimeFromArray(n *Node) (time.Time, error) {
	if l := n.Len(); l < 5 || l > 7 {
		return time.Time{}, &codec.FieldCountError{Size: l}
	}
	fields := make([]int64, n.Len())
	for i, e := range n.elems {
		v, ok := asInt64(e)
		if !ok {
			return time.Time{}, codec.ErrInvalidFields
		}
		fields[i] = v
	}
	return codec.DateTimeFromFields(fields)
}

// sameLocal compares wall clocks, ignoring location.
func sameLocal(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second() &&
		a.Nanosecond() == b.Nanosecond()
}

func formatLocal(t time.Time) string { return t.Format(codec.LocalLayout) }
