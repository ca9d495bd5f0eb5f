package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/partie/brandmatch-go/pkg/errors"
)

// GeminiGenerator produces fingerprint summaries with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *GeminiGenerator) GenerateSummary(ctx context.Context, input LayerInput) (string, error) {
	if g.client == nil {
		return "", errors.NewNarrativeError("gemini client not initialized", "gemini", nil)
	}

	prompt, err := buildSummaryPrompt(input)
	if err != nil {
		return "", errors.NewNarrativeError("failed to build prompt", "gemini", err)
	}

	temp := float32(0.4)
	topP := float32(0.95)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 256,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}, config)
	if err != nil {
		g.logger.Warn("Gemini summary generation failed", zap.Error(err))
		return "", errors.NewNarrativeError("generation failed", "gemini", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.NewNarrativeError("empty response from Gemini", "gemini", nil)
	}

	g.logger.Debug("Gemini summary received", zap.Int("length", len(text)))
	return text, nil
}

func buildSummaryPrompt(input LayerInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are summarizing a short-form video creator profile for a content marketplace.
Below is the structured fingerprint (quality, personality, production layers) as JSON.
Write 2-4 plain sentences describing what this creator's content is like.
Do not mention JSON, scores as raw numbers, or internal field names.

%s`, string(payload)), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.TrimSpace(strings.Join(texts, ""))
}
