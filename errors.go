package jsonassert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonassert/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError       = "parse_error"
	CodeDuplicateKey     = "duplicate_key"
	CodeTruncated        = "truncated"
	CodeRequired         = "required"
	CodeInvalidType      = "invalid_type"
	CodeValueMismatch    = "value_mismatch"
	CodeSizeMismatch     = "size_mismatch"
	CodeNotEmpty         = "not_empty"
	CodePattern          = "pattern"
	CodeInvalidFormat    = "invalid_format"
	CodePredicate        = "predicate"
	CodeUnassertedFields = "unasserted_fields"
)

// Issue represents a single assertion failure.
type Issue struct {
	Path    string // JSON Pointer of the checked node (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	// Field names the object member involved, if any.
	Field string
	// Index is the array position involved, -1 when not applicable.
	Index    int
	Expected string
	Actual   string
	Cause    error // Optional: underlying error (parser error, predicate error).
	Offset   int64 // Byte offset in the input source (-1 when unknown).
}

// Issues is a collection of assertion failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Report renders the issue the way it is passed to TestingT.Errorf.
func (it Issue) Report() string {
	msg := it.Message
	if it.Field != "" && it.Code != CodeRequired {
		msg = i18n.T("field", map[string]string{"field": it.Field, "message": msg})
	}
	// top-level fields are already named by the prefix
	if it.Path != "" && it.Path != "/" && (it.Field == "" || it.Path != rootPath().Field(it.Field).Pointer()) {
		msg = i18n.T("at", map[string]string{"message": msg, "path": it.Path})
	}
	return msg
}

// msg is the placeholder data passed to the translator.
type msg map[string]string

// newIssue builds an Issue whose message comes from the translator. key is the
// issue code, optionally refined with a ".variant" suffix.
func newIssue(p pathRef, key string, data msg) Issue {
	code := key
	if i := strings.IndexByte(key, '.'); i >= 0 {
		code = key[:i]
	}
	return Issue{
		Path:     p.Pointer(),
		Code:     code,
		Message:  i18n.T(key, data),
		Field:    data["field"],
		Index:    -1,
		Expected: data["expected"],
		Actual:   data["actual"],
		Offset:   -1,
	}
}
