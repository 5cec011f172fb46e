// Package codec converts the textual and positional date-time encodings found
// in JSON documents into time.Time values.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// LocalLayout formats local date-times for messages.
const LocalLayout = "2006-01-02T15:04:05.999999999"

var localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}

// ErrInvalidFields is returned when date-time fields do not form a valid
// calendar date and time. Values are never normalised: month 13 is an error.
var ErrInvalidFields = errors.New("codec: invalid date-time fields")

// FieldCountError reports a positional date-time of unsupported length.
type FieldCountError struct{ Size int }

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("codec: expected 5, 6 or 7 date-time fields, got %d", e.Size)
}

// ParseLocalDateTime parses an ISO-8601 local date-time without offset
// (2021-06-06T10:11, 2021-06-06T10:11:12, 2021-06-06T10:11:12.5). The result
// is in UTC and only its wall clock is meaningful.
func ParseLocalDateTime(s string) (time.Time, error) {
	var err error
	for _, layout := range localLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ParseInstant parses an RFC 3339 timestamp with offset.
func ParseInstant(s string) (time.Time, error) { return parseRFC3339(s) }

// ParseZonedDateTime parses an RFC 3339 timestamp optionally followed by a
// region in brackets (2021-06-06T10:11:12+02:00[Europe/Paris]). With a region
// the result is expressed in that location.
func ParseZonedDateTime(s string) (time.Time, error) {
	base, region := s, ""
	if strings.HasSuffix(s, "]") {
		i := strings.LastIndexByte(s, '[')
		if i < 0 {
			return time.Time{}, fmt.Errorf("codec: unbalanced zone suffix in %q", s)
		}
		base, region = s[:i], s[i+1:len(s)-1]
	}
	t, err := parseRFC3339(base)
	if err != nil {
		return time.Time{}, err
	}
	if region == "" {
		return t, nil
	}
	loc, err := time.LoadLocation(region)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// DateTimeFromFields builds a local date-time (in UTC) from
// [year, month, day, hour, minute, second?, nanosecond?].
func DateTimeFromFields(f []int64) (time.Time, error) {
	if len(f) < 5 || len(f) > 7 {
		return time.Time{}, &FieldCountError{Size: len(f)}
	}
	v := [7]int64{}
	copy(v[:], f)
	year, month, day, hour, minute, sec, nsec := v[0], v[1], v[2], v[3], v[4], v[5], v[6]
	switch {
	case year < -999999999 || year > 999999999,
		month < 1 || month > 12,
		hour < 0 || hour > 23,
		minute < 0 || minute > 59,
		sec < 0 || sec > 59,
		nsec < 0 || nsec > 999999999:
		return time.Time{}, ErrInvalidFields
	}
	if day < 1 || day > int64(daysIn(int(year), time.Month(month))) {
		return time.Time{}, ErrInvalidFields
	}
	return time.Date(int(year), time.Month(month), int(day), int(hour), int(minute), int(sec), int(nsec), time.UTC), nil
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var nanosPerSecond = big.NewInt(int64(time.Second))

// FromEpoch converts an epoch timestamp to a UTC time. nanosExp is the power of
// ten turning one unit into nanoseconds (9 for seconds, 6 for milliseconds, 0
// for nanoseconds). Fractions of a nanosecond are rejected.
func FromEpoch(d *apd.Decimal, nanosExp int32) (time.Time, error) {
	if d == nil || d.Form != apd.Finite {
		return time.Time{}, errors.New("codec: epoch value is not finite")
	}
	var scaled apd.Decimal
	scaled.Set(d)
	scaled.Exponent += nanosExp
	scaled.Reduce(&scaled)
	if !scaled.IsZero() && scaled.Exponent < 0 {
		return time.Time{}, fmt.Errorf("codec: %s has a sub-nanosecond fraction", d.String())
	}
	if scaled.NumDigits()+int64(scaled.Exponent) > 40 {
		return time.Time{}, fmt.Errorf("codec: %s is out of range", d.String())
	}
	nanos, ok := new(big.Int).SetString(scaled.Text('f'), 10)
	if !ok {
		return time.Time{}, fmt.Errorf("codec: cannot convert %s", d.String())
	}
	secs, rem := new(big.Int).DivMod(nanos, nanosPerSecond, new(big.Int))
	if !secs.IsInt64() {
		return time.Time{}, fmt.Errorf("codec: %s is out of range", d.String())
	}
	return time.Unix(secs.Int64(), rem.Int64()).UTC(), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
