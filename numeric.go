package jsonassert

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// decimalOf returns the exact decimal value of a number literal. BaseContext
// applies no precision limit, so scientific notation is expanded without
// rounding. Exponents beyond apd's range fall back to the canonical form.
func decimalOf(literal string) (*apd.Decimal, bool) {
	d, _, err := apd.NewFromString(literal)
	if err == nil && d.Form == apd.Finite {
		return d, true
	}
	if n, ok := parseNumber(literal); ok {
		return n.decimal()
	}
	return nil, false
}

// number is the canonical form of a number literal: sign, coefficient without
// trailing zeros and an exponent of any size. Zero is positive with exponent 0.
type number struct {
	neg   bool
	coeff *big.Int
	exp   *big.Int
}

// parseNumber reads a number literal exactly. Unlike apd it accepts any
// exponent, so every valid JSON number has a canonical form.
func parseNumber(literal string) (number, bool) {
	s := literal
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	mant, expText, hasExp := s, "", false
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, expText, hasExp = s[:i], s[i+1:], true
	}
	intPart, frac := mant, ""
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		intPart, frac = mant[:i], mant[i+1:]
	}
	digits := intPart + frac
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return number{}, false
	}
	exp := new(big.Int)
	if hasExp {
		if _, ok := exp.SetString(expText, 10); !ok {
			return number{}, false
		}
	}
	trimmed := strings.TrimRight(digits, "0")
	if trimmed == "" {
		return number{coeff: new(big.Int), exp: new(big.Int)}, true
	}
	exp.Add(exp, big.NewInt(int64(len(digits)-len(trimmed)-len(frac))))
	coeff, _ := new(big.Int).SetString(trimmed, 10)
	return number{neg: neg, coeff: coeff, exp: exp}, true
}

func (n number) equal(o number) bool {
	return n.neg == o.neg && n.coeff.Cmp(o.coeff) == 0 && n.exp.Cmp(o.exp) == 0
}

func (n number) integral() bool { return n.exp.Sign() >= 0 }

// int64 returns the value when it is integral and fits in an int64.
func (n number) int64() (int64, bool) {
	if !n.integral() || !n.exp.IsInt64() || n.exp.Int64() > 18 {
		return 0, false
	}
	v := new(big.Int).Exp(big.NewInt(10), n.exp, nil)
	v.Mul(v, n.coeff)
	if n.neg {
		v.Neg(v)
	}
	return v.Int64(), v.IsInt64()
}

// decimal converts to apd when the exponent fits its int32 field.
func (n number) decimal() (*apd.Decimal, bool) {
	if !n.exp.IsInt64() || n.exp.Int64() > math.MaxInt32 || n.exp.Int64() < math.MinInt32 {
		return nil, false
	}
	d := new(apd.Decimal)
	d.Coeff.SetMathBigInt(n.coeff)
	d.Exponent = int32(n.exp.Int64())
	d.Negative = n.neg
	return d, true
}

// floatOf returns the IEEE double nearest to a number literal. Literals beyond
// the float64 range round to ±Inf.
func floatOf(literal string) (float64, bool) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// floatsEqual compares bit patterns: NaN never matches and -0 differs from 0.
func floatsEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Float64bits(a) == math.Float64bits(b)
}

func numbersEqual(a, b *Node) bool {
	na, ok := parseNumber(a.text)
	if !ok {
		return false
	}
	nb, ok := parseNumber(b.text)
	return ok && na.equal(nb)
}

// expectedNumber classifies an expected Go value for numeric comparison. Floats
// compare as doubles, or as float32 when the expectation is a float32; every
// other numeric type compares as an exact decimal.
type expectedNumber struct {
	num     number
	text    string
	float   float64
	isFloat bool
	bits    int
}

func (e expectedNumber) String() string {
	if e.isFloat {
		return strconv.FormatFloat(e.float, 'g', -1, e.bits)
	}
	return e.text
}

// matches reports whether the number node n equals the expectation.
func (e expectedNumber) matches(n *Node) bool {
	if n.Kind() != KindNumber {
		return false
	}
	if e.isFloat {
		f, err := strconv.ParseFloat(n.text, e.bits)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return false
		}
		if e.bits == 32 {
			return math.Float32bits(float32(f)) == math.Float32bits(float32(e.float))
		}
		return floatsEqual(f, e.float)
	}
	v, ok := parseNumber(n.text)
	return ok && v.equal(e.num)
}

func floatNumber(f float64) expectedNumber {
	return expectedNumber{float: f, isFloat: true, bits: 64}
}

func intNumber(v int64) expectedNumber {
	s := strconv.FormatInt(v, 10)
	n, _ := parseNumber(s)
	return expectedNumber{num: n, text: s}
}

// literalNumber reads a JSON number literal given as text.
func literalNumber(s string) (expectedNumber, bool) {
	if !validNumberLiteral(s) {
		return expectedNumber{}, false
	}
	return textNumber(s)
}

func textNumber(s string) (expectedNumber, bool) {
	n, ok := parseNumber(s)
	return expectedNumber{num: n, text: s}, ok
}

func toExpectedNumber(v any) (expectedNumber, bool) {
	switch x := v.(type) {
	case float64:
		return floatNumber(x), true
	case float32:
		return expectedNumber{float: float64(x), isFloat: true, bits: 32}, true
	case int:
		return intNumber(int64(x)), true
	case int8:
		return intNumber(int64(x)), true
	case int16:
		return intNumber(int64(x)), true
	case int32:
		return intNumber(int64(x)), true
	case int64:
		return intNumber(x), true
	case uint, uint8, uint16, uint32, uint64:
		return textNumber(uintText(x))
	case *apd.Decimal:
		if x == nil || x.Form != apd.Finite {
			return expectedNumber{}, false
		}
		return textNumber(x.String())
	case apd.Decimal:
		if x.Form != apd.Finite {
			return expectedNumber{}, false
		}
		return textNumber(x.String())
	case *big.Int:
		if x == nil {
			return expectedNumber{}, false
		}
		return textNumber(x.String())
	case json.Number:
		return literalNumber(string(x))
	}
	return expectedNumber{}, false
}

func uintText(v any) string {
	switch x := v.(type) {
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	}
	return ""
}
