package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/logging"
)

// openRouterGenerator speaks any OpenAI-compatible chat-completions API,
// OpenRouter by default. The model identifier is passed through verbatim,
// so the alias table controls routing entirely.
type openRouterGenerator struct {
	llm llms.Model
}

func newOpenRouterGenerator(cfg *config.Config) (*openRouterGenerator, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("missing required configuration: OPENROUTER_API_KEY")
	}

	model, err := openai.New(
		openai.WithToken(cfg.LLM.APIKey),
		openai.WithBaseURL(cfg.LLM.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize openrouter client: %w", err)
	}

	return &openRouterGenerator{llm: model}, nil
}

func (g *openRouterGenerator) Generate(ctx context.Context, req Request) (string, error) {
	logging.Info("Requesting completion",
		"provider", ProviderOpenRouter,
		"model", req.Model,
		"prompt_length", len(req.Prompt))

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt),
	}

	resp, err := g.llm.GenerateContent(ctx, content,
		llms.WithModel(req.Model),
		llms.WithTemperature(temperature),
		llms.WithTopP(topP),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", &GenerationError{Provider: ProviderOpenRouter, Model: req.Model, Message: err.Error(), Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", &GenerationError{Provider: ProviderOpenRouter, Model: req.Model, Message: "empty completion"}
	}

	answer := resp.Choices[0].Content
	logging.Info("Received completion",
		"provider", ProviderOpenRouter,
		"model", req.Model,
		"length", len(answer))

	return answer, nil
}
