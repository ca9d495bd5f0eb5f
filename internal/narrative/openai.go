package narrative

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/pkg/errors"
)

// OpenAIGenerator is the fallback summary provider.
type OpenAIGenerator struct {
	client *openai.Client
	model  openai.ChatModel
	logger *zap.Logger
}

// NewOpenAIGenerator returns nil when no API key is configured; the manager
// treats a nil fallback as absent.
func NewOpenAIGenerator(apiKey, model string, logger *zap.Logger) *OpenAIGenerator {
	if apiKey == "" {
		return nil
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	chatModel := openai.ChatModelGPT4oMini
	switch model {
	case "gpt-4o":
		chatModel = openai.ChatModelGPT4o
	case "gpt-4.1":
		chatModel = openai.ChatModelGPT4_1
	case "gpt-4.1-mini":
		chatModel = openai.ChatModelGPT4_1Mini
	case "gpt-5-mini":
		chatModel = openai.ChatModelGPT5Mini
	}

	return &OpenAIGenerator{
		client: &client,
		model:  chatModel,
		logger: logger,
	}
}

func (o *OpenAIGenerator) GenerateSummary(ctx context.Context, input LayerInput) (string, error) {
	if o == nil || o.client == nil {
		return "", errors.NewNarrativeError("openai client not initialized", "openai", nil)
	}

	prompt, err := buildSummaryPrompt(input)
	if err != nil {
		return "", errors.NewNarrativeError("failed to build prompt", "openai", err)
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(256),
	})
	if err != nil {
		o.logger.Warn("OpenAI summary generation failed", zap.Error(err))
		return "", errors.NewNarrativeError("generation failed", "openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewNarrativeError("no choices in OpenAI response", "openai", nil)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.NewNarrativeError("empty response from OpenAI", "openai", nil)
	}

	o.logger.Debug("OpenAI summary received", zap.Int("length", len(text)))
	return text, nil
}
