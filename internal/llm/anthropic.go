package llm

import (
	"context"
	"fmt"
	"strings"

	anthropicAPI "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/logging"
)

// anthropicGenerator calls the Anthropic messages API directly, for alias
// tables that pin Claude models natively. A leading "anthropic/" vendor
// prefix on the model identifier is stripped before the call.
type anthropicGenerator struct {
	client *anthropicAPI.Client
}

func newAnthropicGenerator(cfg *config.Config) (*anthropicGenerator, error) {
	if cfg.LLM.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("missing required configuration: ANTHROPIC_API_KEY")
	}

	client := anthropicAPI.NewClient(option.WithAPIKey(cfg.LLM.AnthropicAPIKey))
	return &anthropicGenerator{client: client}, nil
}

func (g *anthropicGenerator) Generate(ctx context.Context, req Request) (string, error) {
	model := strings.TrimPrefix(req.Model, "anthropic/")
	logging.Info("Requesting completion",
		"provider", ProviderAnthropic,
		"model", model,
		"prompt_length", len(req.Prompt))

	message, err := g.client.Messages.New(ctx, anthropicAPI.MessageNewParams{
		Model:       anthropicAPI.F(model),
		MaxTokens:   anthropicAPI.F(int64(maxTokens)),
		Temperature: anthropicAPI.F(float64(temperature)),
		TopP:        anthropicAPI.F(float64(topP)),
		System: anthropicAPI.F([]anthropicAPI.TextBlockParam{
			anthropicAPI.NewTextBlock(req.System),
		}),
		Messages: anthropicAPI.F([]anthropicAPI.MessageParam{
			anthropicAPI.NewUserMessage(
				anthropicAPI.NewTextBlock(req.Prompt),
			),
		}),
	})
	if err != nil {
		return "", &GenerationError{Provider: ProviderAnthropic, Model: req.Model, Message: err.Error(), Err: err}
	}

	var answer string
	for _, content := range message.Content {
		if content.Type == "text" {
			answer += content.Text
		}
	}
	if answer == "" {
		return "", &GenerationError{Provider: ProviderAnthropic, Model: req.Model, Message: "empty completion"}
	}

	logging.Info("Received completion",
		"provider", ProviderAnthropic,
		"model", model,
		"length", len(answer))

	return answer, nil
}
