package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"field": "name"}
	// default is en
	if msg := T("required", data); msg != `Expected field named "name"` {
		t.Fatalf("unexpected en message: %q", msg)
	}

	SetLanguage("ja")
	if msg := T("required", data); msg != `フィールド "name" が必要です` {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownKeyFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected key echo, got %q", msg)
	}
}

func TestRender_LeavesUnknownPlaceholders(t *testing.T) {
	got := Render("{a} and {b}", map[string]string{"a": "x{b}"})
	if got != "x{b} and {b}" {
		t.Fatalf("unexpected render: %q", got)
	}
}

type upper struct{}

func (upper) Message(key string, _ map[string]string) string { return "KEY:" + key }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("pattern", nil); msg != "KEY:pattern" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("size_mismatch", map[string]string{"expected": "2", "actual": "3"}); msg != "Expected array size <2>, was <3>" {
		t.Fatalf("default translator not restored: %q", msg)
	}
}
