package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/threadsage/threadsage/internal/config"
)

func TestNewRejectsUnsupportedProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.Provider = "cohere"

	if _, err := New(cfg); err == nil || !strings.Contains(err.Error(), "cohere") {
		t.Errorf("New() error = %v, want it to name the unsupported provider", err)
	}
}

func TestNewRequiresProviderKey(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantSub  string
	}{
		{name: "openrouter", provider: "openrouter", wantSub: "OPENROUTER_API_KEY"},
		{name: "default provider", provider: "", wantSub: "OPENROUTER_API_KEY"},
		{name: "anthropic", provider: "anthropic", wantSub: "ANTHROPIC_API_KEY"},
		{name: "google", provider: "google", wantSub: "GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.LLM.Provider = tt.provider

			_, err := New(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("New() error = %v, want it to mention %s", err, tt.wantSub)
			}
		})
	}
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("connection refused")
	genErr := &GenerationError{
		Provider: ProviderOpenRouter,
		Model:    "openai/gpt-4o",
		Message:  "connection refused",
		Err:      cause,
	}

	if !strings.Contains(genErr.Error(), "openai/gpt-4o") || !strings.Contains(genErr.Error(), "connection refused") {
		t.Errorf("Error() = %q, want model and backend message", genErr.Error())
	}
	if !errors.Is(genErr, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}

	var asErr *GenerationError
	if !errors.As(error(genErr), &asErr) {
		t.Error("errors.As should match *GenerationError")
	}
}
