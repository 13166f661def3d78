package llmjson

import (
	"encoding/json"
	"testing"
)

func TestRepairQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "already valid",
			in:   `{"a": "b"}`,
			want: `{"a": "b"}`,
		},
		{
			name: "inner quotes in value",
			in:   `{"a": "say "hi" now"}`,
			want: `{"a": "say \"hi\" now"}`,
		},
		{
			name: "inner quotes at value end",
			in:   `{"cmd": "grep "ERROR""}`,
			want: `{"cmd": "grep \"ERROR\""}`,
		},
		{
			name: "already escaped quotes untouched",
			in:   `{"a": "say \"hi\" now"}`,
			want: `{"a": "say \"hi\" now"}`,
		},
		{
			name: "escaped backslash before quote",
			in:   `{"path": "C:\\"}`,
			want: `{"path": "C:\\"}`,
		},
		{
			name: "multiple values",
			in:   `{"a": "x "y" z", "b": "plain"}`,
			want: `{"a": "x \"y\" z", "b": "plain"}`,
		},
		{
			name: "quote as final character",
			in:   `"tail"`,
			want: `"tail"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairQuotes(tt.in); got != tt.want {
				t.Fatalf("repairQuotes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairQuotes_RoundTrip(t *testing.T) {
	repaired := repairQuotes(`{"a": "say "hi" now"}`)

	var got map[string]any
	if err := json.Unmarshal([]byte(repaired), &got); err != nil {
		t.Fatalf("repaired output does not decode: %v (%q)", err, repaired)
	}
	if got["a"] != `say "hi" now` {
		t.Fatalf("a = %q, want %q", got["a"], `say "hi" now`)
	}
}

// TestRepairQuotes_KnownHeuristicLimitation documents a misfire the lookahead
// cannot avoid: when a string value legitimately ends with a quote followed
// by structural punctuation that belongs to the value, the scan closes the
// string early. This is inherent to the heuristic and intentionally not
// "fixed".
func TestRepairQuotes_KnownHeuristicLimitation(t *testing.T) {
	// The value is meant to be: it ends, "like so". The inner quote right
	// before the comma is judged a closing quote.
	in := `{"a": "it ends, "like so", "b": 1}`
	repaired := repairQuotes(in)

	var got map[string]any
	if err := json.Unmarshal([]byte(repaired), &got); err == nil {
		if got["a"] == `it ends, "like so"` {
			t.Fatalf("heuristic unexpectedly recovered the intended value; update this test")
		}
		return
	}
	// Failing to decode at all is equally acceptable here; the ladder then
	// reports total failure.
}
