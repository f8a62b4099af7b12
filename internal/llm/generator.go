// Package llm generates answers through a configurable model backend.
package llm

import (
	"context"
	"fmt"

	"github.com/threadsage/threadsage/internal/config"
)

// Supported provider names.
const (
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGoogle     = "google"
)

// Sampling settings shared by every backend. Answers should be factual and
// reasonably deterministic across runs.
const (
	temperature = 0.3
	topP        = 0.9
	maxTokens   = 2048
)

// Request is one generation call: the provider-qualified model identifier,
// the composed system message, and the user's prompt.
type Request struct {
	Model  string
	System string
	Prompt string
}

// Generator produces an answer for a request. Every implementation reports
// failures as *GenerationError.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GenerationError reports a model backend failure. Message carries the
// backend's own wording so the publisher can quote it.
type GenerationError struct {
	Provider string
	Model    string
	Message  string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed for model %s: %s", e.Provider, e.Model, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// New selects the backend for the configured provider.
func New(cfg *config.Config) (Generator, error) {
	switch cfg.LLM.Provider {
	case ProviderOpenRouter, "":
		return newOpenRouterGenerator(cfg)
	case ProviderAnthropic:
		return newAnthropicGenerator(cfg)
	case ProviderGoogle:
		return newGoogleGenerator(cfg)
	default:
		return nil, fmt.Errorf("unsupported model provider %q (supported: %s, %s, %s)",
			cfg.LLM.Provider, ProviderOpenRouter, ProviderAnthropic, ProviderGoogle)
	}
}
