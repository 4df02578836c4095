// Package ai defines the reasoning-service contract used by the assessment
// engine. Concrete providers live in sub-packages.
package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Generator sends a system instruction and a user prompt to a language model
// and returns its textual answer.
type Generator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// Named is implemented by generators that report their provider name.
type Named interface {
	Provider() string
}

// ProviderOf returns the provider name of g or "unknown".
func ProviderOf(g Generator) string {
	if n, ok := g.(Named); ok {
		return n.Provider()
	}
	return "unknown"
}

// NormalizeProvider canonicalises a configured provider name.
func NormalizeProvider(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported ai provider %q", name)
	}
}
