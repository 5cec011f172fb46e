package jsonassert_test

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonassert "github.com/reoring/jsonassert"
)

func TestValue_KindChecks(t *testing.T) {
	r := &recorder{}
	jsonassert.That(r, `"x"`).IsString()
	jsonassert.That(r, `1E2`).IsNumber().IsInteger().IsFloat()
	jsonassert.That(r, `true`).IsBoolean()
	jsonassert.That(r, `null`).IsNull()
	jsonassert.That(r, `{}`).IsObject()
	jsonassert.That(r, `[]`).IsArray()
	assert.False(t, r.failed(), r.String())

	cases := map[string]func(*jsonassert.ValueAssert){
		`Expected JSON node to be a string, was <1>`:  func(v *jsonassert.ValueAssert) { v.IsString() },
		`Expected JSON node to be an object, was <1>`: func(v *jsonassert.ValueAssert) { v.IsObject() },
		`Expected JSON node to be an array, was <1>`:  func(v *jsonassert.ValueAssert) { v.IsArray() },
		`Expected JSON node to be null, was <1>`:      func(v *jsonassert.ValueAssert) { v.IsNull() },
		`Expected JSON node to be a boolean, was <1>`: func(v *jsonassert.ValueAssert) { v.IsBoolean() },
	}
	for want, check := range cases {
		r := &recorder{}
		check(jsonassert.That(r, `1`))
		require.Len(t, r.errors, 1)
		assert.Equal(t, want, r.errors[0])
	}

	r = &recorder{}
	jsonassert.That(r, `1.5`).IsInteger()
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Expected JSON node to be an integer, was <1.5>`, r.errors[0])
}

func TestValue_Equality(t *testing.T) {
	r := &recorder{}
	jsonassert.That(r, `"x"`).IsStringEqualTo("x")
	jsonassert.That(r, `0.1E7`).IsIntegerEqualTo(1000000).IsNumberEqualTo("1E6").IsNumberEqualTo(1e6)
	jsonassert.That(r, `12.50`).IsNumberEqualTo(apd.New(125, -1))
	jsonassert.That(r, `false`).IsBooleanEqualTo(false)
	jsonassert.That(r, `{"a":[1,{"b":null}]}`).IsEqualTo(`{"a":[1.0,{"b":null}]}`)
	assert.False(t, r.failed(), r.String())

	jsonassert.That(r, `true`).IsBooleanEqualTo(false)
	jsonassert.That(r, `2`).IsIntegerEqualTo(3)
	jsonassert.That(r, `[1]`).IsEqualTo(`[2]`)
	jsonassert.That(r, `[1]`).IsEqualTo(`[2`)
	require.Len(t, r.errors, 4)
	assert.Equal(t, `Expected JSON node to be a boolean equal to <false>, was <true>`, r.errors[0])
	assert.Equal(t, `Expected JSON node to be an integer equal to <3>, was <2>`, r.errors[1])
	assert.Equal(t, `Expected JSON node to be a value equal to <[2]>, was <[1]>`, r.errors[2])
	assert.Contains(t, r.errors[3], "Not a valid JSON value")
}

func TestValue_Conversions(t *testing.T) {
	r := &recorder{}
	assert.Equal(t, "x", jsonassert.That(r, `"x"`).AsString())
	assert.Equal(t, int64(100), jsonassert.That(r, `1E2`).AsInt())
	assert.Equal(t, 0.25, jsonassert.That(r, `0.25`).AsFloat())
	assert.True(t, jsonassert.That(r, `true`).AsBool())
	assert.Equal(t, "1.10", jsonassert.That(r, `1.10`).AsDecimal().Text('f'))
	assert.False(t, r.failed(), r.String())

	assert.Equal(t, int64(0), jsonassert.That(r, `1E30`).AsInt())
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Expected JSON node to be a 64-bit integer, was <1E30>`, r.errors[0])

	o := jsonassert.That(r, `[]`).AsObject()
	assert.Nil(t, o.Node())
	o.Contains("x")
	assert.Len(t, r.errors, 2)
}

func TestValue_HugeExponents(t *testing.T) {
	r := &recorder{}
	jsonassert.That(r, `1E99999999999`).
		IsNumber().
		IsInteger().
		IsEqualTo(`1E99999999999`).
		IsNumberEqualTo("100E99999999997")
	assert.False(t, r.failed(), r.String())

	a, err := jsonassert.ParseJSON([]byte(`[1E99999999999]`))
	require.NoError(t, err)
	b, err := jsonassert.ParseJSON([]byte(`[0.1E100000000000]`))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	d := jsonassert.That(r, `1E200000`).AsDecimal()
	require.NotNil(t, d)
	assert.Equal(t, int32(200000), d.Exponent)
	assert.False(t, r.failed(), r.String())

	assert.Nil(t, jsonassert.That(r, `1E99999999999`).AsDecimal())
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Invalid decimal: <1E99999999999>`, r.errors[0])
}
