package engine

import (
	"errors"
	"io"
	"testing"
)

func drain(ts TokenSource) ([]Token, error) {
	var out []Token
	for {
		t, err := ts.NextToken()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}

// {"a":{"x":1,"x":2},"b":[{"y":1},{"y":1}]}
func nestedDup() []Token {
	return []Token{
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "a"},
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "x"},
		{Kind: KindNumber, Number: "1"},
		{Kind: KindKey, String: "x"},
		{Kind: KindNumber, Number: "2"},
		{Kind: KindEndObject},
		{Kind: KindKey, String: "b"},
		{Kind: KindBeginArray},
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "y"},
		{Kind: KindNumber, Number: "1"},
		{Kind: KindEndObject},
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "y"},
		{Kind: KindNumber, Number: "1"},
		{Kind: KindEndObject},
		{Kind: KindEndArray},
		{Kind: KindEndObject},
	}
}

func TestEnforce_DuplicateError(t *testing.T) {
	ts := WrapWithEnforcement(NewSliceSource(nestedDup()), EnforceOptions{OnDuplicate: DupError})
	_, err := drain(ts)
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/a/x" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestEnforce_DuplicateWarnCollects(t *testing.T) {
	var got []SimpleIssue
	ts := WrapWithEnforcement(NewSliceSource(nestedDup()), EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	})
	toks, err := drain(ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != len(nestedDup()) {
		t.Fatalf("tokens dropped: %d", len(toks))
	}
	// keys in sibling objects are independent
	if len(got) != 1 || got[0].Path != "/a/x" {
		t.Fatalf("unexpected issues: %+v", got)
	}
}

func TestEnforce_IgnorePassesThrough(t *testing.T) {
	inner := NewSliceSource(nestedDup())
	if ts := WrapWithEnforcement(inner, EnforceOptions{}); ts != TokenSource(inner) {
		t.Fatalf("expected the inner source to be returned unchanged")
	}
}

func TestEnforce_MaxDepthPath(t *testing.T) {
	ts := WrapWithEnforcement(NewSliceSource(nestedDup()), EnforceOptions{OnDuplicate: DupIgnore, MaxDepth: 2})
	_, err := drain(ts)
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Path != "/b/0" || ie.Message != "max depth exceeded" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestJoinPointer_Escapes(t *testing.T) {
	if got := JoinPointer("/a", "b/c~d"); got != "/a/b~1c~0d" {
		t.Fatalf("got %s", got)
	}
}

func TestStructure_KeysAndValues(t *testing.T) {
	var s Structure
	s.Open(true)
	if k := s.String("a"); k.Kind != KindKey {
		t.Fatalf("expected key, got %v", k.Kind)
	}
	if v := s.String("b"); v.Kind != KindString {
		t.Fatalf("expected string, got %v", v.Kind)
	}
	if k := s.String("c"); k.Kind != KindKey {
		t.Fatalf("expected key, got %v", k.Kind)
	}
	s.Open(false)
	if v := s.String("d"); v.Kind != KindString {
		t.Fatalf("expected string in array, got %v", v.Kind)
	}
	s.Close()
	if k := s.String("e"); k.Kind != KindKey {
		t.Fatalf("expected key after nested array, got %v", k.Kind)
	}
}
