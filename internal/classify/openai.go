package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// openAIClient implements Client against the OpenAI chat completions API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
}

// ClientConfig holds configuration for the remote classification client.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIClient creates a remote classifier backed by an OpenAI-compatible
// chat completions endpoint.
func NewOpenAIClient(cfg ClientConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 120
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Classify sends one classification request to the remote model.
func (c *openAIClient) Classify(ctx context.Context, req Request, categories []string) (RemoteResponse, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a spending category classifier. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text or markdown formatting. Start your response with { and end with }.",
			},
			{
				"role":    "user",
				"content": c.buildPrompt(req, categories),
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return RemoteResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return RemoteResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return RemoteResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RemoteResponse{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return RemoteResponse{}, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return RemoteResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return RemoteResponse{}, fmt.Errorf("no completion choices returned")
	}

	return parseRemoteResponse(completion.Choices[0].Message.Content)
}

// buildPrompt creates the classification prompt for the remote model.
func (c *openAIClient) buildPrompt(req Request, categories []string) string {
	var sb strings.Builder
	sb.WriteString("Classify this purchase into exactly one of the following spending categories:\n")
	for _, cat := range categories {
		fmt.Fprintf(&sb, "- %s\n", cat)
	}

	sb.WriteString("\nPurchase details:\n")
	fmt.Fprintf(&sb, "Merchant: %s\n", req.MerchantName)
	if req.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", req.Description)
	}
	if req.Amount != nil {
		fmt.Fprintf(&sb, "Amount: %s\n", req.Amount.StringFixed(2))
	}

	sb.WriteString(`
Respond with a JSON object in exactly this shape:
{"category": "<one of the listed categories>", "confidence": <0.0-1.0>, "reasoning": "<one short sentence>"}`)
	return sb.String()
}

// parseRemoteResponse extracts the prediction from the model's message.
func parseRemoteResponse(content string) (RemoteResponse, error) {
	content = cleanMarkdownWrapper(content)

	var parsed struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return RemoteResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if parsed.Category == "" {
		return RemoteResponse{}, fmt.Errorf("no category found in response")
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return RemoteResponse{}, fmt.Errorf("confidence %v out of range", parsed.Confidence)
	}

	return RemoteResponse{
		Category:   parsed.Category,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}, nil
}

// cleanMarkdownWrapper strips ```json fences some models insist on adding.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// chatCompletionResponse is the subset of the API response we consume.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
