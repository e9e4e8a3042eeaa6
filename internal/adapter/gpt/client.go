// Package gpt talks to a YandexGPT-style completion API and exposes the two
// language-model collaborators of the platform: the content moderation
// filter and the ad text generator.
package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"prism-ads/internal/config/configs"
)

// Client is a minimal completion-API client. Each call is a single bounded
// HTTP request; failures propagate to the caller and are never retried here.
type Client struct {
	http     *http.Client
	url      string
	apiKey   string
	folderID string
}

// NewClient builds a client from configuration.
func NewClient(cfg configs.GPT) *Client {
	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		url:      cfg.URL,
		apiKey:   cfg.APIKey,
		folderID: cfg.FolderID,
	}
}

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []message         `json:"messages"`
}

type completionOptions struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message message `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

// Complete sends the system and user prompts and returns the first
// alternative's text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gpt: api key is not configured")
	}

	body, err := json.Marshal(completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/yandexgpt-lite", c.folderID),
		CompletionOptions: completionOptions{
			Temperature: 0.3,
			MaxTokens:   maxTokens,
		},
		Messages: []message{
			{Role: "system", Text: systemPrompt},
			{Role: "user", Text: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gpt: unexpected status %d: %s", resp.StatusCode, raw)
	}

	var parsed completionResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Result.Alternatives) == 0 {
		return "", fmt.Errorf("gpt: empty completion")
	}
	return parsed.Result.Alternatives[0].Message.Text, nil
}
