package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "model answer", limit: 0, expect: ""},
		{name: "fits", input: "{}", limit: 10, expect: "{}"},
		{name: "cut", input: `{"summary":"x"}`, limit: 4, expect: `{"su...`},
		{name: "trimmed first", input: "\n  answer \n", limit: 3, expect: "ans..."},
		{name: "counts runes", input: "héllo wörld", limit: 7, expect: "héllo w..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestTake(t *testing.T) {
	t.Parallel()

	items := []string{"Go", "Rust", "Zig"}

	if got := Take(items, 2); len(got) != 2 || got[1] != "Rust" {
		t.Fatalf("unexpected prefix %v", got)
	}
	if got := Take(items, 5); len(got) != 3 {
		t.Fatalf("expected all items, got %v", got)
	}
	if got := Take(items, -1); len(got) != 0 {
		t.Fatalf("expected no items, got %v", got)
	}
	if got := Take[int](nil, 3); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
