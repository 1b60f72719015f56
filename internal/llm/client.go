// Package llm is the gateway-backed language model client. It backs the
// conversational extraction and meal plan generation capabilities; the
// calculation engine never touches it.
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

	"github.com/parisaaghdam/fitness-pal-agent/internal/config"
)

// Client calls an OpenRouter-style completion gateway over HTTP.
type Client struct {
	httpClient *http.Client
	gatewayURL string
	apiKey     string
	model      string
}

// New builds a client from process configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		gatewayURL: cfg.GatewayURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// Complete sends one completion request and returns the raw text of the
// model's reply.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	completionRequest := map[string]any{
		"model":         c.model,
		"system_prompt": systemPrompt,
		"messages": []map[string]any{
			{"role": "user", "content": userPrompt},
		},
		"max_tokens":  2000,
		"temperature": temperature,
	}

	raw, err := c.callGateway(ctx, "create_completion", completionRequest)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	// The gateway wraps the completion in a JSON envelope with a
	// "content" field; fall back to the raw body when it doesn't.
	var envelope map[string]any
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil {
		if content, ok := envelope["content"].(string); ok {
			return content, nil
		}
	}
	return raw, nil
}

func (c *Client) callGateway(ctx context.Context, toolName string, args any) (string, error) {
	url := fmt.Sprintf("%s/openrouter-gateway", c.gatewayURL)

	requestData := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      toolName,
			"arguments": args,
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var rpcResponse map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rpcResponse); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result, ok := rpcResponse["result"].(map[string]any); ok {
		if content, ok := result["content"].([]any); ok && len(content) > 0 {
			if textContent, ok := content[0].(map[string]any); ok {
				if text, ok := textContent["text"].(string); ok {
					return text, nil
				}
			}
		}
	}

	return "", fmt.Errorf("unexpected gateway response format")
}

// extractJSON pulls the first top-level JSON object out of model output,
// which often wraps it in prose or code fences.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(content, "}")
	if end == -1 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}
