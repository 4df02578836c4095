package ai

import (
	"context"
	"testing"
)

type namedGenerator struct{}

func (namedGenerator) GenerateContent(context.Context, string, string) (string, error) {
	return "", nil
}
func (namedGenerator) Model() string    { return "m" }
func (namedGenerator) Provider() string { return "custom" }

func TestNormalizeProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ProviderGemini},
		{in: " Gemini ", want: ProviderGemini},
		{in: "OPENAI", want: ProviderOpenAI},
		{in: "claude", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeProvider(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeProvider(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProviderOf(t *testing.T) {
	if got := ProviderOf(namedGenerator{}); got != "custom" {
		t.Fatalf("expected custom provider, got %q", got)
	}
}
