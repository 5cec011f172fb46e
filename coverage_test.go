package jsonassert_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonassert "github.com/reoring/jsonassert"
)

func TestCoverage_SubsetProperty(t *testing.T) {
	const doc = `{"a":1,"b":"x","c":true,"d":null}`
	names := []string{"a", "b", "c", "d"}
	for mask := 0; mask < 1<<len(names); mask++ {
		var asserted, rest []string
		for i, n := range names {
			if mask&(1<<i) != 0 {
				asserted = append(asserted, n)
			} else {
				rest = append(rest, n)
			}
		}
		r := &recorder{}
		o := jsonassert.ThatObject(r, doc)
		for _, n := range asserted {
			o.Contains(n)
		}
		ok := o.ContainsNoUnassertedFields()
		if len(rest) == 0 {
			assert.True(t, ok, "mask %b", mask)
			assert.False(t, r.failed(), "mask %b", mask)
			continue
		}
		assert.False(t, ok, "mask %b", mask)
		require.Len(t, r.errors, 1, "mask %b", mask)
		assert.Equal(t, "Found additional fields: <["+strings.Join(rest, ", ")+"]>", r.errors[0])
		assert.Equal(t, rest, o.Uncovered())
	}
}

func TestCoverage_FailedTypedCheckStillCovers(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"a":1,"b":2}`)
	o.ContainsString("a").Contains("missing")
	assert.Equal(t, []string{"a"}, o.Covered())
	assert.Equal(t, []string{"b"}, o.Uncovered())
	assert.Len(t, r.errors, 2)
}

func TestCoverage_Idempotent(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"a":1,"b":2,"c":3}`)
	o.HasInt("b", 2)
	first := o.ContainsNoUnassertedFields()
	second := o.ContainsNoUnassertedFields()
	assert.Equal(t, first, second)
	require.Len(t, r.errors, 2)
	assert.Equal(t, r.errors[0], r.errors[1])
	assert.Equal(t, "Found additional fields: <[a, c]>", r.errors[0])

	o.Contains("a").Contains("c")
	assert.True(t, o.ContainsNoUnassertedFields())
	assert.True(t, o.ContainsNoUnassertedFields())
}

func TestCoverage_NestedSessionsAreIndependent(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{"a":{"x":1,"y":2},"b":2}`)
	child := o.Object("a")
	child.Contains("x")
	o.Contains("b")

	assert.True(t, o.ContainsNoUnassertedFields())
	assert.False(t, child.ContainsNoUnassertedFields())
	require.Len(t, r.errors, 1)
	assert.Equal(t, "Found additional fields: <[y]> (at /a)", r.errors[0])

	// a second session over the same object starts empty
	again := o.Object("a")
	assert.Empty(t, again.Covered())
}

func TestCoverage_EveryCheckKindMarks(t *testing.T) {
	r := &recorder{}
	o := jsonassert.ThatObject(r, `{
		"s":"x","n":1,"i":2,"f":1.5,"b":true,"z":null,"o":{},"a":[],
		"re":"abc","dt":[2021,6,6,10,11],"arr":["p"],"v":1
	}`)
	o.ContainsString("s").
		ContainsNumber("n").
		HasInt("i", 2).
		FloatSatisfies("f", func(float64) error { return nil }).
		ContainsBoolean("b").
		ContainsNull("z").
		ContainsEmptyObject("o").
		ContainsEmptyArray("a").
		StringMatches("re", "abc").
		ContainsAnyLocalDateTime("dt").
		StringArraySatisfies("arr", func([]string) error { return nil })
	o.Value("v")
	assert.True(t, o.ContainsNoUnassertedFields(), r.String())
}
