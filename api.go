package jsonassert

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Text is JSON input given as text.
type Text interface {
	~string | ~[]byte
}

// That parses a JSON document of any kind and returns a session over it. A
// malformed document is reported immediately and the session is dead.
func That[D Text](t TestingT, doc D, opts ...Option) *ValueAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return newValueAssert(start(t, []byte(doc), "value", opts))
}

// ThatObject parses a JSON document that must be an object.
func ThatObject[D Text](t TestingT, doc D, opts ...Option) *ObjectAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return newObjectAssert(requireKind(start(t, []byte(doc), "object", opts), KindObject))
}

// ThatArray parses a JSON document that must be an array.
func ThatArray[D Text](t TestingT, doc D, opts ...Option) *ArrayAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return newArrayAssert(requireKind(start(t, []byte(doc), "array", opts), KindArray))
}

// ThatNode returns a session over an already built tree.
func ThatNode(t TestingT, n *Node, opts ...Option) *ValueAssert {
	r := &reporter{t: t, cfg: buildConfig(opts)}
	r.helper()
	s := session{r: r, path: rootPath(), node: n}
	if n == nil {
		s.fail(newIssue(rootPath(), "parse_error", msg{"kind": "value", "detail": "nil node"}))
	}
	return newValueAssert(s)
}

// ThatValue converts a decoded Go value with FromValue and returns a session over it.
func ThatValue(t TestingT, v any, opts ...Option) *ValueAssert {
	r := &reporter{t: t, cfg: buildConfig(opts)}
	r.helper()
	n, err := FromValue(v)
	return newValueAssert(r.root("value", n, nil, err))
}

// ThatSource reads one JSON value from src.
func ThatSource(t TestingT, src Source, opts ...Option) *ValueAssert {
	r := &reporter{t: t, cfg: buildConfig(opts)}
	r.helper()
	n, warnings, err := parseSource(src, r.cfg)
	return newValueAssert(r.root("value", n, warnings, err))
}

// ThatPath selects a sub-document with a gjson path ("items.0.id"; bracket
// indexes such as "items[0].id" are accepted) and returns a session over it.
// The whole document is validated first.
func ThatPath[D Text](t TestingT, doc D, path string, opts ...Option) *ValueAssert {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	s := start(t, []byte(doc), "value", opts)
	if s.node == nil {
		return newValueAssert(s)
	}
	gpath := convertBracketNotation(path)
	p := rootPath()
	for _, part := range strings.Split(gpath, ".") {
		if part != "" {
			p = p.Field(part)
		}
	}
	res := gjson.GetBytes([]byte(doc), gpath)
	if !res.Exists() {
		s.fail(newIssue(p, "required", msg{"field": path}))
		s.node = nil
		return newValueAssert(s)
	}
	n, _, err := parseText([]byte(res.Raw), s.r.cfg)
	if err != nil {
		s.fail(parseFailure(p, "value", err))
		s.node = nil
		return newValueAssert(s)
	}
	s.path, s.node = p, n
	return newValueAssert(s)
}

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// convertBracketNotation converts array bracket notation to gjson dot notation
// e.g., "[0].id" -> "0.id", "items[0].tags[1]" -> "items.0.tags.1"
func convertBracketNotation(path string) string {
	return strings.TrimPrefix(bracketIndex.ReplaceAllString(path, ".$1"), ".")
}

func start(t TestingT, doc []byte, kind string, opts []Option) session {
	r := &reporter{t: t, cfg: buildConfig(opts)}
	r.helper()
	n, warnings, err := parseText(doc, r.cfg)
	return r.root(kind, n, warnings, err)
}

// root builds the top-level session, reporting parse failures and warnings.
func (r *reporter) root(kind string, n *Node, warnings Issues, err error) session {
	r.helper()
	for _, w := range warnings {
		r.warn(w)
	}
	s := session{r: r, path: rootPath()}
	if err != nil {
		s.fail(parseFailure(rootPath(), kind, err))
		return s
	}
	s.node = n
	return s
}

func requireKind(s session, k Kind) session {
	if s.node != nil && s.node.Kind() != k {
		s.r.helper()
		s.fail(newIssue(s.path, "parse_error", msg{"kind": k.String(), "detail": s.node.String()}))
		s.node = nil
	}
	return s
}

// parseFailure turns a parser error into a single reported Issue, keeping the
// code (parse_error, duplicate_key, truncated), pointer and offset of the cause.
func parseFailure(p pathRef, kind string, err error) Issue {
	detail := err.Error()
	var first *Issue
	if iss, ok := AsIssues(err); ok && len(iss) > 0 {
		first = &iss[0]
		detail = first.Message
	}
	it := newIssue(p, "parse_error", msg{"kind": kind, "detail": detail})
	it.Cause = err
	if first != nil {
		it.Code = first.Code
		it.Offset = first.Offset
		if first.Path != "" && first.Path != "/" {
			it.Path = first.Path
		}
	}
	return it
}
