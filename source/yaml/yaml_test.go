package yamlsrc

import (
	"errors"
	"strings"
	"testing"

	eng "github.com/reoring/jsonassert/internal/engine"
)

func kinds(toks []eng.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		switch t.Kind {
		case eng.KindKey:
			parts[i] = "k:" + t.String
		case eng.KindString:
			parts[i] = "s:" + t.String
		case eng.KindNumber:
			parts[i] = "n:" + t.Number
		default:
			parts[i] = t.Kind.String()
		}
	}
	return strings.Join(parts, " ")
}

func TestTokens_KeepsOrderAndLiterals(t *testing.T) {
	toks, err := Tokens(strings.NewReader(`
z: 1.50
a: [0x10, 1e3, "7", yes, true, ~]
base: &b {k: v}
copy: *b
`))
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	want := `{ k:z n:1.50 k:a [ n:16 n:1e3 s:7 s:yes bool null ] k:base { k:k s:v } k:copy { k:k s:v } }`
	if got := kinds(toks); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestTokens_Errors(t *testing.T) {
	if _, err := Tokens(strings.NewReader("")); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := Tokens(strings.NewReader("a: .inf\n")); err == nil {
		t.Fatalf("expected error for infinity")
	}
	if _, err := Tokens(strings.NewReader("? [a]\n: 1\n")); err == nil {
		t.Fatalf("expected error for non-scalar key")
	}
	if _, err := Tokens(strings.NewReader("a: [1\n")); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestNewBytes_ReportsErrorsOnFirstToken(t *testing.T) {
	src := NewBytes([]byte(""))
	if _, err := src.NextToken(); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if src.Location() != -1 {
		t.Fatalf("expected unknown location")
	}
}
