package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/logging"
)

// googleGenerator calls the Gemini API for alias tables that pin Google
// models natively. A leading "google/" vendor prefix is stripped before
// the call.
type googleGenerator struct {
	client *genai.Client
}

func newGoogleGenerator(cfg *config.Config) (*googleGenerator, error) {
	if cfg.LLM.GeminiAPIKey == "" {
		return nil, fmt.Errorf("missing required configuration: GEMINI_API_KEY")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.LLM.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	return &googleGenerator{client: client}, nil
}

func (g *googleGenerator) Generate(ctx context.Context, req Request) (string, error) {
	model := strings.TrimPrefix(req.Model, "google/")
	logging.Info("Requesting completion",
		"provider", ProviderGoogle,
		"model", model,
		"prompt_length", len(req.Prompt))

	temperature32 := float32(temperature)
	topP32 := float32(topP)

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temperature32,
		TopP:              &topP32,
		MaxOutputTokens:   int32(maxTokens),
	}

	res, err := g.client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return "", &GenerationError{Provider: ProviderGoogle, Model: req.Model, Message: err.Error(), Err: err}
	}

	answer := res.Text()
	if answer == "" {
		return "", &GenerationError{Provider: ProviderGoogle, Model: req.Model, Message: "empty completion"}
	}

	logging.Info("Received completion",
		"provider", ProviderGoogle,
		"model", model,
		"length", len(answer))

	return answer, nil
}
