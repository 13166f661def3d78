package llmjson

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse_DirectValidJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "flat object",
			raw:  `{"document_type":"Bank Statement","confidence":0.9}`,
			want: map[string]any{"document_type": "Bank Statement", "confidence": 0.9},
		},
		{
			name: "nested object",
			raw:  `{"a":{"b":[1,2,3]},"c":null}`,
			want: map[string]any{"a": map[string]any{"b": []any{1.0, 2.0, 3.0}}, "c": nil},
		},
		{
			name: "object with surrounding whitespace",
			raw:  "  \n{\"ok\": true}\n  ",
			want: map[string]any{"ok": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, strict := range []bool{true, false} {
				got, err := Parse(tt.raw, strict)
				if err != nil {
					t.Fatalf("Parse(strict=%v) error = %v", strict, err)
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Fatalf("Parse(strict=%v) = %#v, want %#v", strict, got, tt.want)
				}
			}
		})
	}
}

func TestParse_MatchesPlainDecodeForValidJSON(t *testing.T) {
	raw := `{"key_indicators":["Opening Balance","Deposits"],"confidence":0.87,"nested":{"x":false}}`

	var want map[string]any
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParse_MarkdownFencedJSON(t *testing.T) {
	inner := `{"document_type":"Utility","confidence":0.75}`
	tests := []struct {
		name string
		raw  string
	}{
		{"json-tagged fence", "```json\n" + inner + "\n```"},
		{"untagged fence", "```\n" + inner + "\n```"},
		{"fence with prose before", "Here is the classification:\n```json\n" + inner + "\n```"},
		{"bare json tag without fence", "json\n" + inner},
	}

	want, err := Parse(inner, true)
	if err != nil {
		t.Fatalf("Parse(inner) error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw, true)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Parse() = %#v, want %#v", got, want)
			}
		})
	}
}

func TestParse_ProseWrappedJSON(t *testing.T) {
	raw := `Sure! Based on the document contents I would classify it as follows:

{"document_type": "Salary Slip", "confidence": 0.8}

Let me know if you need anything else.`

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["document_type"] != "Salary Slip" {
		t.Fatalf("document_type = %v, want Salary Slip", got["document_type"])
	}
}

func TestParse_PythonLiterals(t *testing.T) {
	got, err := Parse(`{"ok": True, "bad": False, "val": None}`, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]any{"ok": true, "bad": false, "val": nil}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParse_TrailingCommas(t *testing.T) {
	got, err := Parse(`{"a": 1, "b": 2,}`, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]any{"a": 1.0, "b": 2.0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParse_Comments(t *testing.T) {
	raw := "```json\n" + `{
  // classification output
  "document_type": "Check", /* primary
  label */
  "confidence": 0.6
}` + "\n```"

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["document_type"] != "Check" {
		t.Fatalf("document_type = %v, want Check", got["document_type"])
	}
	if got["confidence"] != 0.6 {
		t.Fatalf("confidence = %v, want 0.6", got["confidence"])
	}
}

func TestParse_UnescapedInnerQuotes(t *testing.T) {
	got, err := Parse(`{"a": "say "hi" now"}`, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["a"] != `say "hi" now` {
		t.Fatalf("a = %q, want %q", got["a"], `say "hi" now`)
	}
}

func TestParse_UnescapedQuotesInCommandValue(t *testing.T) {
	got, err := Parse(`{"command": "grep "ERROR" /var/log/app.log"}`, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["command"] != `grep "ERROR" /var/log/app.log` {
		t.Fatalf("command = %q", got["command"])
	}
}

func TestParse_CombinedMalformations(t *testing.T) {
	raw := "```json\n" + `{
  "document_type": "Bank Statement",
  "verified": True, // OCR quality was good
  "note": "header said "STATEMENT OF ACCOUNT"",
  "key_indicators": ["Opening Balance", "Closing Balance",],
}` + "\n```"

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["verified"] != true {
		t.Fatalf("verified = %v, want true", got["verified"])
	}
	if got["note"] != `header said "STATEMENT OF ACCOUNT"` {
		t.Fatalf("note = %q", got["note"])
	}
	indicators, ok := got["key_indicators"].([]any)
	if !ok || len(indicators) != 2 {
		t.Fatalf("key_indicators = %#v", got["key_indicators"])
	}
}

func TestParse_EmptyInput(t *testing.T) {
	t.Run("strict raises", func(t *testing.T) {
		_, err := Parse("", true)
		var recErr *RecoveryError
		if !errors.As(err, &recErr) {
			t.Fatalf("Parse() error = %v, want *RecoveryError", err)
		}
		if recErr.CleanAttempt != "" {
			t.Fatalf("CleanAttempt = %q, want empty", recErr.CleanAttempt)
		}
	})

	t.Run("non-strict falls back", func(t *testing.T) {
		got, err := Parse("", false)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got["raw_text"] != "" {
			t.Fatalf("raw_text = %v, want empty string", got["raw_text"])
		}
		if got["error"] == "" {
			t.Fatal("error field should be populated")
		}
		if _, ok := got["clean_attempt"]; !ok {
			t.Fatal("clean_attempt field missing")
		}
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := Parse("   \n\t  ", true)
		if err == nil {
			t.Fatal("Parse() should fail on whitespace-only input")
		}
	})
}

func TestParse_NoJSONAtAll(t *testing.T) {
	raw := "Sorry, I cannot help."

	_, err := Parse(raw, true)
	var recErr *RecoveryError
	if !errors.As(err, &recErr) {
		t.Fatalf("Parse() error = %v, want *RecoveryError", err)
	}
	if !errors.Is(err, ErrNoJSONBlock) {
		t.Fatalf("error should wrap ErrNoJSONBlock, got %v", err)
	}

	got, err := Parse(raw, false)
	if err != nil {
		t.Fatalf("Parse(non-strict) error = %v", err)
	}
	if got["raw_text"] != raw {
		t.Fatalf("raw_text = %v, want %q", got["raw_text"], raw)
	}
}

func TestParse_FallbackIsExclusive(t *testing.T) {
	// The non-strict fallback is exactly the three diagnostic keys; no
	// partially salvaged fields leak into it.
	got, err := Parse(`definitely not json`, false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("fallback has %d keys (%v), want 3", len(got), got)
	}
	for _, key := range []string{"raw_text", "error", "clean_attempt"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("fallback missing key %q", key)
		}
	}
}

func TestParse_TopLevelArrayIsNotAnObject(t *testing.T) {
	_, err := Parse(`[1, 2, 3]`, true)
	if err == nil {
		t.Fatal("Parse() should reject a top-level array")
	}
	if !strings.Contains(err.Error(), "not a JSON object") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseValue_TopLevelArray(t *testing.T) {
	got, err := ParseValue(`[1, 2, 3]`, true)
	if err != nil {
		t.Fatalf("ParseValue() error = %v", err)
	}
	if !reflect.DeepEqual(got, []any{1.0, 2.0, 3.0}) {
		t.Fatalf("ParseValue() = %#v", got)
	}
}

func TestParseValue_ArrayBeforeObjectWinsExtraction(t *testing.T) {
	// The array's opening bracket occurs strictly before the object's
	// opening brace, so the array span is the one extracted.
	raw := `result: [1,2] and also {"a":1}`

	got, err := ParseValue(raw, true)
	if err != nil {
		t.Fatalf("ParseValue() error = %v", err)
	}
	if !reflect.DeepEqual(got, []any{1.0, 2.0}) {
		t.Fatalf("ParseValue() = %#v, want [1 2]", got)
	}
}

func TestParse_ObjectPreferredWhenFirst(t *testing.T) {
	raw := `{"a": [1, 2], "b": 3} trailing prose`

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["b"] != 3.0 {
		t.Fatalf("b = %v, want 3", got["b"])
	}
}

func TestParse_NestedBracketsInsideStrings(t *testing.T) {
	raw := `Answer: {"expr": "a{b}c", "arr": "[not an array]"} done`

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["expr"] != "a{b}c" {
		t.Fatalf("expr = %v", got["expr"])
	}
}

func TestParse_StrictErrorCarriesCleanAttempt(t *testing.T) {
	raw := "```json\n{broken\n```"

	_, err := Parse(raw, true)
	var recErr *RecoveryError
	if !errors.As(err, &recErr) {
		t.Fatalf("Parse() error = %v, want *RecoveryError", err)
	}
	if !strings.Contains(recErr.CleanAttempt, "{broken") {
		t.Fatalf("CleanAttempt = %q, should carry the cleaned text", recErr.CleanAttempt)
	}
}

func TestParse_ClassifierShapedResponse(t *testing.T) {
	// A representative full classifier response wrapped the way gpt-4o-mini
	// tends to emit it.
	raw := "json\n" + `{
  "document_type": "Bank Statement",
  "confidence": 0.9,
  "reasoning": "The document contains an account summary with opening and closing balances.",
  "key_indicators": ["Account Summary", "Opening Balance", "Closing Balance"],
  "negative_indicators": ["Employee ID", "Pay to the order of"]
}`

	got, err := Parse(raw, true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["document_type"] != "Bank Statement" {
		t.Fatalf("document_type = %v", got["document_type"])
	}
	if got["confidence"] != 0.9 {
		t.Fatalf("confidence = %v", got["confidence"])
	}
}

func TestParse_ConcurrentUse(t *testing.T) {
	raw := "```json\n" + `{"ok": True,}` + "\n```"
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				got, err := Parse(raw, true)
				if err != nil || got["ok"] != true {
					t.Errorf("Parse() = %#v, %v", got, err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	close(done)
}
