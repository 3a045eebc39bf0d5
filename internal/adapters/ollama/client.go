// Package ollama provides an adapter for the Ollama LLM service.
// It classifies text into one of the known moods by sending it to a local
// Ollama instance and parsing the structured JSON reply.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
)

var systemPrompt = "You are the MoodTune mood classifier. Read the text the user sends, usually song lyrics, and decide which mood it expresses.\n\nRules:\nChoose exactly one of: " +
	strings.Join(domain.MoodNames(), ", ") +
	".\nOutput: Return ONLY a valid JSON object of the form {\"mood\": \"<name>\"}. No conversational text."

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ ports.MoodClassifier = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

type moodAnswer struct {
	Mood string `json:"mood"`
}

// NewClient builds a classifier against baseURL. An empty model selects the default.
func NewClient(baseURL, model string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name identifies the classifier in responses.
func (c *Client) Name() string { return "ollama" }

// ClassifyMood asks the model for a mood. The answer is not validated here.
func (c *Client) ClassifyMood(ctx context.Context, text string) (string, error) {
	payload := chatRequest{
		Model:  c.model,
		Stream: false,
		Format: "json",
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama: %s", parsed.Error)
	}

	content := strings.TrimSpace(parsed.Message.Content)
	if content == "" {
		return "", fmt.Errorf("ollama: empty response")
	}

	var answer moodAnswer
	if err := json.Unmarshal([]byte(content), &answer); err != nil {
		return "", fmt.Errorf("ollama: decode mood: %w", err)
	}

	return strings.ToLower(strings.TrimSpace(answer.Mood)), nil
}
