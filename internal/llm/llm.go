package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// Provider is the interface for text-generation providers.
type Provider interface {
	Generate(ctx context.Context, system, user string) (string, error)
	IsConfigured() bool
}

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	Model     string
	MaxTokens int
	BaseURL   string
	apiKey    string
	client    *http.Client
}

// NewAnthropicProvider creates a provider reading its key from the named
// environment variable.
func NewAnthropicProvider(model string, maxTokens int, apiKeyEnv string) *AnthropicProvider {
	return &AnthropicProvider{
		Model:     model,
		MaxTokens: maxTokens,
		BaseURL:   anthropicBaseURL,
		apiKey:    os.Getenv(apiKeyEnv),
		client:    &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (a *AnthropicProvider) IsConfigured() bool {
	return a.apiKey != ""
}

// Generate sends a system prompt and user message and returns the trimmed
// text of the single response. Errors are not swallowed: a failed generation
// is fatal to the run.
func (a *AnthropicProvider) Generate(ctx context.Context, system, user string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("Anthropic API key not configured")
	}

	body := map[string]any{
		"model":      a.Model,
		"max_tokens": a.MaxTokens,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": user},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.BaseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Anthropic API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("no content in Anthropic response")
	}

	return strings.TrimSpace(result.Content[0].Text), nil
}
