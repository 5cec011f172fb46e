package jsonassert_test

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonassert "github.com/reoring/jsonassert"
)

const sample = `{
	"string": "text",
	"intNumber": 1,
	"decimalNumber": 12.50,
	"scientificNumber": 1E5,
	"boolean": true,
	"null": null,
	"object": {"x": 1},
	"emptyObject": {},
	"array": [1, 2, 3],
	"emptyArray": [],
	"id": "2b7c3f1e-4a4d-4f0e-9a59-6c1d1c1b2e3a"
}`

func TestObject_TypedExistence(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, sample)
	o.ContainsString("string").
		ContainsNumber("intNumber").
		ContainsInteger("intNumber").
		ContainsInteger("scientificNumber").
		ContainsFloat("decimalNumber").
		ContainsBoolean("boolean").
		ContainsNull("null").
		ContainsObject("object").
		ContainsArray("array").
		ContainsEmptyObject("emptyObject").
		ContainsEmptyArray("emptyArray").
		ContainsUUID("id")
	assert.False(t, r.failed(), r.String())
	assert.NoError(t, o.Err())
}

func TestObject_TypeMismatchMessages(t *testing.T) {
	cases := []struct {
		name  string
		check func(*jsonassert.ObjectAssert)
		want  string
	}{
		{"string", func(o *jsonassert.ObjectAssert) { o.ContainsString("intNumber") }, `Field "intNumber": Expected string, was: <1>`},
		{"integer", func(o *jsonassert.ObjectAssert) { o.ContainsInteger("decimalNumber") }, `Field "decimalNumber": Expected integral number, was: <12.50>`},
		{"null", func(o *jsonassert.ObjectAssert) { o.ContainsNull("boolean") }, `Field "boolean": Expected <null>, was: <true>`},
		{"object", func(o *jsonassert.ObjectAssert) { o.ContainsObject("array") }, `Field "array": Expected JSON object, was: <[1,2,3]>`},
		{"array", func(o *jsonassert.ObjectAssert) { o.ContainsArray("string") }, `Field "string": Expected JSON array, was: <"text">`},
		{"missing", func(o *jsonassert.ObjectAssert) { o.Contains("nope") }, `Expected field named "nope"`},
		{"not empty", func(o *jsonassert.ObjectAssert) { o.ContainsEmptyArray("array") }, `Field "array": Expected empty array, was: <[1,2,3]>`},
		{"uuid", func(o *jsonassert.ObjectAssert) { o.ContainsUUID("string") }, `Field "string": Expected UUID string, was: <"text">`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &recorder{}
			c.check(jsonassert.ThatObject(r, sample))
			require.Len(t, r.errors, 1)
			assert.Equal(t, c.want, r.errors[0])
		})
	}
}

func TestObject_ValueEquality(t *testing.T) {
	r := &recorder{}
	jsonassert.ThatObject(r, sample).
		HasString("string", "text").
		HasInt("intNumber", 1).
		HasInt("scientificNumber", 100000).
		HasFloat("intNumber", 1.0).
		HasFloat("decimalNumber", 12.5).
		HasDecimal("decimalNumber", apd.New(125, -1)).
		HasNumber("scientificNumber", "0.1E6").
		HasNumber("intNumber", "1.000").
		HasBool("boolean", true).
		ContainsValue("intNumber", 1.0).
		ContainsValue("intNumber", 1).
		ContainsValue("scientificNumber", big.NewInt(100000)).
		ContainsValue("string", "text").
		ContainsValue("null", nil).
		ContainsValue("object", map[string]any{"x": 1.0}).
		ContainsValue("array", []any{1, 2, 3}).
		ContainsValue("id", uuid.MustParse("2b7c3f1e-4a4d-4f0e-9a59-6c1d1c1b2e3a"))
	assert.False(t, r.failed(), r.String())
}

func TestObject_ValueMismatch(t *testing.T) {
	r := &recorder{}
	jsonassert.ThatObject(r, sample).
		HasString("string", "other").
		HasInt("decimalNumber", 12).
		HasNumber("scientificNumber", "1E6").
		HasBool("boolean", false)
	require.Len(t, r.errors, 4)
	assert.Equal(t, `Field "string": Expected value <other>, was: <text>`, r.errors[0])
	assert.Equal(t, `Field "decimalNumber": Expected integral number, was: <12.50>`, r.errors[1])
	assert.Equal(t, `Field "scientificNumber": Expected value <1E6>, was: <1E5>`, r.errors[2])
	assert.Equal(t, `Field "boolean": Expected value <false>, was: <true>`, r.errors[3])
}

func TestObject_FloatComparisonIsBitExact(t *testing.T) {
	r := &recorder{}
	jsonassert.ThatObject(r, `{"a":0.1,"z":-0.0}`).
		HasFloat("a", 0.1).
		HasFloat("z", 0)
	require.Len(t, r.errors, 1)
	assert.Contains(t, r.errors[0], `Field "z"`)
}

func TestObject_Float32ComparesAtItsPrecision(t *testing.T) {
	r := &recorder{}
	jsonassert.ThatObject(r, `{"f":0.1,"g":0.5}`).
		ContainsValue("f", float32(0.1)).
		ContainsValue("g", float32(0.5))
	assert.False(t, r.failed(), r.String())

	jsonassert.ThatObject(r, `{"f":0.1}`).ContainsValue("f", float32(0.2))
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "f": Expected value <0.2>, was: <0.1>`, r.errors[0])
}

func TestObject_MessagesKeepHTMLCharacters(t *testing.T) {
	r := &recorder{}
	jsonassert.ThatObject(r, `{"q":"a<b && c>d"}`).ContainsInteger("q")
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "q": Expected integral number, was: <"a<b && c>d">`, r.errors[0])
}

func TestObject_NumbersBeyondDecimalRange(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"n":1E99999999999,"m":-2.5E-99999999999}`)
	o.ContainsNumber("n").
		ContainsInteger("n").
		HasNumber("n", "0.10E100000000000").
		ContainsValue("n", json.Number("10E99999999998")).
		ContainsNumber("m").
		ContainsFloat("m")
	assert.False(t, r.failed(), r.String())

	o.HasInt("n", 1).ContainsInteger("m")
	require.Len(t, r.errors, 2, r.String())
	assert.Equal(t, `Field "n": Expected value <1>, was: <1E99999999999>`, r.errors[0])
	assert.Equal(t, `Field "m": Expected integral number, was: <-2.5E-99999999999>`, r.errors[1])

	called := false
	o.DecimalSatisfies("n", func(*apd.Decimal) error {
		called = true
		return nil
	})
	assert.False(t, called)
	require.Len(t, r.errors, 3)
	assert.Equal(t, `Field "n": Invalid decimal: <1E99999999999>`, r.errors[2])
}

func TestObject_Patterns(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"id":"abc-123","price":12.50}`)
	o.StringMatches("id", `[a-z]+-\d+`).
		NumberMatches("price", `\d+\.\d{2}`)
	assert.False(t, r.failed(), r.String())

	o.StringMatches("id", `[a-z]+`)
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "id": Expected value matching regex <[a-z]+>, was: <abc-123>`, r.errors[0])
}

func TestObject_Predicates(t *testing.T) {
	errTooSmall := errors.New("too small")
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"n":5,"s":"abc","f":1.5,"b":true,"d":"1.10"}`)
	o.StringSatisfies("s", func(s string) error { return nil }).
		FloatSatisfies("f", func(f float64) error { return nil }).
		BoolSatisfies("b", func(b bool) error { return nil }).
		DecimalSatisfies("n", func(d *apd.Decimal) error { return nil }).
		IntSatisfies("n", func(n int64) error {
			if n < 10 {
				return errTooSmall
			}
			return nil
		})
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "n": Value <5> did not satisfy requirement: too small`, r.errors[0])

	iss, ok := jsonassert.AsIssues(o.Err())
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, jsonassert.CodePredicate, iss[0].Code)
	assert.Equal(t, "n", iss[0].Field)
	assert.ErrorIs(t, iss[0].Cause, errTooSmall)
}

func TestObject_TypeMismatchAbortsOnlyCurrentCheck(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"a":1,"b":"x"}`)
	o.ContainsString("a").ContainsNumber("a").HasString("b", "x")
	require.Len(t, r.errors, 1)
	assert.True(t, o.Failed())
}

func TestObject_NestedSessionOnMismatchIsDead(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"a":1}`)
	child := o.Object("a")
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "a": Expected JSON object, was: <1>`, r.errors[0])

	child.Contains("anything").HasString("x", "y")
	assert.False(t, child.ContainsNoUnassertedFields())
	assert.Len(t, r.errors, 1)
	assert.Nil(t, child.Node())
}

func TestObject_NestedFailuresCarryPath(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"outer":{"inner":{"v":"x"}}}`)
	o.Object("outer").Object("inner").HasString("v", "y")
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "v": Expected value <y>, was: <x> (at /outer/inner/v)`, r.errors[0])

	iss, ok := jsonassert.AsIssues(o.Err())
	require.True(t, ok, "parent sessions collect issues of derived sessions")
	assert.Equal(t, "/outer/inner/v", iss[0].Path)
	assert.Equal(t, "y", iss[0].Expected)
	assert.Equal(t, "x", iss[0].Actual)
}

func TestObject_ObjectAndArraySatisfies(t *testing.T) {
	r := &recorder{}
	called := 0
	jsonassert.ThatObject(r, `{"o":{"k":"v"},"a":["x"],"n":1}`).
		ObjectSatisfies("o", func(o *jsonassert.ObjectAssert) {
			called++
			o.HasString("k", "v")
			o.ContainsNoUnassertedFields()
		}).
		ArraySatisfies("a", func(a *jsonassert.ArrayAssert) {
			called++
			a.ContainsExactlyStrings("x")
		}).
		ObjectSatisfies("n", func(*jsonassert.ObjectAssert) { called++ })
	assert.Equal(t, 2, called)
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Field "n": Expected JSON object, was: <1>`, r.errors[0])
}

func TestObject_IsEmpty(t *testing.T) {
	r := &recorder{}
	jsonassert.ThatObject(r, `{}`).IsEmpty()
	assert.False(t, r.failed())

	jsonassert.ThatObject(r, `{"a":1}`).IsEmpty()
	require.Len(t, r.errors, 1)
	assert.Equal(t, `Expected empty object, was: <{"a":1}>`, r.errors[0])
}

func TestObject_ValueSession(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"v":[1,"a"]}`)
	o.Value("v").IsArray().AsArray().HasSize(2)
	assert.False(t, r.failed(), r.String())
	assert.Equal(t, []string{"v"}, o.Covered())
}
