// internal/llm/client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an OpenAI-compatible chat-completions endpoint
type Client struct {
	endpoint   Endpoint
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint
func NewClient(endpoint Endpoint, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the backend this client targets
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// Generate sends one chat-completions request and returns the generated text
func (c *Client) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	system := genReq.System
	if len(genReq.Tools) > 0 {
		system += "\n\nAvailable capabilities: " + strings.Join(genReq.Tools, ", ") + "."
	}

	payload := map[string]interface{}{
		"model": c.endpoint.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": genReq.Prompt},
		},
		"stream":      false,
		"temperature": 0.7,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.endpoint.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.endpoint.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from backend")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
