// Package httpassert starts jsonassert sessions over HTTP response bodies, for
// handler tests built on net/http/httptest.
package httpassert

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"

	jsonassert "github.com/reoring/jsonassert"
	"github.com/reoring/jsonassert/i18n"
)

type tHelper interface{ Helper() }

// DefaultOptions are applied before caller options: duplicate keys in a
// response body are failures.
func DefaultOptions() []jsonassert.Option {
	return []jsonassert.Option{jsonassert.WithDuplicateKeys(jsonassert.Error)}
}

// ThatResponse reads and closes the response body and returns a session over
// it. A non-JSON Content-Type is reported but the body is still parsed.
func ThatResponse(t jsonassert.TestingT, res *http.Response, opts ...jsonassert.Option) *jsonassert.ValueAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	defer res.Body.Close()
	checkContentType(t, res.Header)
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return jsonassert.ThatSource(t, failedBody{fmt.Errorf("reading response body: %w", err)}, opts...)
	}
	return jsonassert.That(t, body, append(DefaultOptions(), opts...)...)
}

// ThatRecorder returns a session over the body written to rec.
func ThatRecorder(t jsonassert.TestingT, rec *httptest.ResponseRecorder, opts ...jsonassert.Option) *jsonassert.ValueAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return ThatResponse(t, rec.Result(), opts...)
}

// ObjectResponse is ThatResponse for bodies that must be JSON objects.
func ObjectResponse(t jsonassert.TestingT, res *http.Response, opts ...jsonassert.Option) *jsonassert.ObjectAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return ThatResponse(t, res, opts...).AsObject()
}

// IsJSONContentType accepts application/json and any +json media type.
func IsJSONContentType(v string) bool {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func checkContentType(t jsonassert.TestingT, h http.Header) {
	ct := h.Get("Content-Type")
	if IsJSONContentType(ct) {
		return
	}
	t.Errorf("%s", i18n.T("content_type", map[string]string{"actual": ct}))
}

// failedBody is a Source whose first token is the body read error, so the
// failure is reported once as a parse error.
type failedBody struct{ err error }

func (b failedBody) NextToken() (jsonassert.Token, error) { return jsonassert.Token{}, b.err }

func (failedBody) Location() int64 { return -1 }
