// Package jsonassert provides fluent assertions on JSON documents for Go tests:
//
// - Typed field and element checks with numerically exact comparison (1, 1.0,
// 1E0 and 0.1E1 are the same number; 0.1E7 is an integer)
// - Per-object coverage tracking, so a test can fail when a field was never examined
// - A stable error model via Issues (JSON Pointer, code, message)
// - Pluggable token drivers (encoding/json, goccy/go-json, YAML) with
// duplicate-key, depth and size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place drivers under source/, date-time parsing under codec/, messages under i18n/,
// HTTP response helpers under httpassert/ and the CLI under cmd/jsonassert.
// - Failures are reported through TestingT.Errorf and also collected on the session.
//
// Typical usage:
//
//	obj := jsonassert.ThatObject(t, body)
//	obj.HasString("name", "widget").
//		HasNumber("price", "12.50").
//		ContainsUUID("id")
//	obj.Array("tags").ContainsExactlyStrings("a", "b")
//	obj.ContainsNoUnassertedFields()
package jsonassert
