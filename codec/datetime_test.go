package codec

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cockroachdb/apd/v3"
)

func dec(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestParseLocalDateTime(t *testing.T) {
	cases := map[string]time.Time{
		"2021-06-06T10:11":              time.Date(2021, 6, 6, 10, 11, 0, 0, time.UTC),
		"2021-06-06T10:11:12":           time.Date(2021, 6, 6, 10, 11, 12, 0, time.UTC),
		"2021-06-06T10:11:12.123456789": time.Date(2021, 6, 6, 10, 11, 12, 123456789, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseLocalDateTime(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: got %v want %v", in, got, want)
		}
	}
	for _, in := range []string{"2021-06-06", "2021-06-06T10:11:12Z", "2021-13-06T10:11", ""} {
		if _, err := ParseLocalDateTime(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestParseZonedDateTime_Region(t *testing.T) {
	got, err := ParseZonedDateTime("2021-06-06T10:11:12+02:00[Europe/Paris]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Location().String() != "Europe/Paris" {
		t.Fatalf("location: %s", got.Location())
	}
	if !got.Equal(time.Date(2021, 6, 6, 8, 11, 12, 0, time.UTC)) {
		t.Fatalf("instant: %v", got)
	}
	if _, err := ParseZonedDateTime("2021-06-06T10:11:12Z]"); err == nil {
		t.Fatalf("expected error for unbalanced suffix")
	}
	if _, err := ParseZonedDateTime("2021-06-06T10:11:12Z[Nowhere/City]"); err == nil {
		t.Fatalf("expected error for unknown region")
	}
}

func TestParseInstant(t *testing.T) {
	got, err := ParseInstant("2025-01-01T09:00:00.5+09:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 5e8, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if _, err := ParseInstant("2025-01-01T00:00:00"); err == nil {
		t.Fatalf("expected error without offset")
	}
}

func TestDateTimeFromFields(t *testing.T) {
	got, err := DateTimeFromFields([]int64{2020, 2, 29, 23, 59, 59, 999999999})
	if err != nil {
		t.Fatalf("leap day: %v", err)
	}
	if got.Nanosecond() != 999999999 || got.Day() != 29 {
		t.Fatalf("unexpected: %v", got)
	}
	invalid := [][]int64{
		{2021, 2, 29, 0, 0},
		{2021, 13, 1, 0, 0},
		{2021, 0, 1, 0, 0},
		{2021, 1, 1, 24, 0},
		{2021, 1, 1, 0, 60},
		{2021, 1, 1, 0, 0, 60},
		{2021, 1, 1, 0, 0, 0, 1e9},
		{2021, 1, 0, 0, 0},
	}
	for _, f := range invalid {
		if _, err := DateTimeFromFields(f); !errors.Is(err, ErrInvalidFields) {
			t.Fatalf("%v: expected ErrInvalidFields, got %v", f, err)
		}
	}
	var sizeErr *FieldCountError
	if _, err := DateTimeFromFields([]int64{2021, 1, 1, 0}); !errors.As(err, &sizeErr) || sizeErr.Size != 4 {
		t.Fatalf("expected FieldCountError{4}, got %v", err)
	}
}

func TestFromEpoch(t *testing.T) {
	cases := []struct {
		lit  string
		exp  int32
		want time.Time
	}{
		{"0", 9, time.Unix(0, 0)},
		{"1.5", 9, time.Unix(1, 5e8)},
		{"-1.5", 9, time.Unix(-2, 5e8)},
		{"1E3", 9, time.Unix(1000, 0)},
		{"1500", 6, time.Unix(1, 5e8)},
		{"1500.000001", 6, time.Unix(1, 500000001)},
		{"1000000001", 0, time.Unix(1, 1)},
		{"1.000000001", 9, time.Unix(1, 1)},
	}
	for _, c := range cases {
		got, err := FromEpoch(dec(t, c.lit), c.exp)
		if err != nil {
			t.Fatalf("%s: %v", c.lit, err)
		}
		if !got.Equal(c.want) || got.Location() != time.UTC {
			t.Fatalf("%s: got %v want %v", c.lit, got, c.want)
		}
	}
	for _, bad := range []struct {
		lit string
		exp int32
	}{
		{"1.0000000001", 9},
		{"0.5", 0},
		{"1E40", 9},
		{"NaN", 9},
	} {
		if _, err := FromEpoch(dec(t, bad.lit), bad.exp); err == nil {
			t.Fatalf("%s: expected error", bad.lit)
		}
	}
	if _, err := FromEpoch(nil, 9); err == nil {
		t.Fatalf("nil: expected error")
	}
}
