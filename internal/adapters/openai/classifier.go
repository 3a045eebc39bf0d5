// Package openai classifies moods with an OpenAI chat model.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

// Classifier implements ports.MoodClassifier.
type Classifier struct {
	apiKey string
	model  string
	client *openai.Client
}

var _ ports.MoodClassifier = (*Classifier)(nil)

// NewClassifier creates a classifier. An empty model selects gpt-4o-mini.
func NewClassifier(apiKey, model string) *Classifier {
	return NewClassifierWithConfig(openai.DefaultConfig(apiKey), apiKey, model)
}

// NewClassifierWithConfig allows overriding the API base URL.
func NewClassifierWithConfig(cfg openai.ClientConfig, apiKey, model string) *Classifier {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Classifier{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name identifies the classifier in responses.
func (c *Classifier) Name() string { return "openai" }

// ClassifyMood asks the model for one of the known moods.
func (c *Classifier) ClassifyMood(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai: API key not configured")
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("Classify the mood of the user's text as one of: %s. Respond with a JSON object {\"mood\": \"<name>\"} and nothing else.",
					strings.Join(domain.MoodNames(), ", ")),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   20,
		Temperature: 0,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	var answer struct {
		Mood string `json:"mood"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &answer); err != nil {
		return "", fmt.Errorf("openai: decode mood: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(answer.Mood)), nil
}
