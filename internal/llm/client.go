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

// Usage reports the token accounting of one completion call.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Response is the result of one completion call.
type Response struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// InvokeParams are the parameters of one completion call.
type InvokeParams struct {
	ModelID     string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Client is the generative-text collaborator. It is used only for narrative
// enrichment and never affects the shape of generated artifacts.
type Client interface {
	Invoke(ctx context.Context, params InvokeParams) (*Response, error)
}

// HTTPClient calls a completion endpoint over HTTP.
type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPClient creates a new HTTPClient instance.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type invokeRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type invokeResponse struct {
	Content string `json:"content"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Invoke sends the prompt to the completion endpoint.
func (c *HTTPClient) Invoke(ctx context.Context, params InvokeParams) (*Response, error) {
	body, err := json.Marshal(invokeRequest{
		Model:       params.ModelID,
		Prompt:      params.Prompt,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion endpoint returned status %d", httpResp.StatusCode)
	}

	var decoded invokeResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &Response{
		Content: decoded.Content,
		Usage: Usage{
			PromptTokens:     decoded.Usage.PromptTokens,
			CompletionTokens: decoded.Usage.CompletionTokens,
			TotalTokens:      decoded.Usage.TotalTokens,
		},
	}, nil
}

// MockClient returns canned completions keyed by prompt content. It stands in
// for the completion endpoint in tests and local runs.
type MockClient struct {
	responses map[string]string
}

// NewMockClient creates a new MockClient with default canned responses.
func NewMockClient() *MockClient {
	return &MockClient{
		responses: map[string]string{
			"compliance":           "Based on ISO 13485 and FDA 21 CFR 820 standards, the compliance requirements include: 1) Quality Management System implementation, 2) Risk management according to ISO 14971, 3) Design controls for medical devices, 4) Document control procedures, and 5) Management review processes.",
			"product_requirements": "For pharmaceutical and medical device products, key requirements include: 1) Material compatibility testing, 2) Biocompatibility evaluation per ISO 10993, 3) Sterility requirements for sterile products, 4) Packaging validation, 5) Labeling compliance with FDA and international standards.",
			"supplier_intelligence": "Supplier evaluation should consider: 1) ISO 13485 or ISO 9001 certification status, 2) FDA registration and inspection history, 3) Financial stability and business continuity plans, 4) Geographic risk assessment, 5) Intellectual property portfolio.",
			"default":              "I understand your question about procurement and compliance. Please specify whether you need help with compliance requirements, product specifications, supplier evaluation, or RFP processes.",
		},
	}
}

// Invoke returns the canned response matching the prompt.
func (c *MockClient) Invoke(_ context.Context, params InvokeParams) (*Response, error) {
	prompt := strings.ToLower(params.Prompt)
	key := "default"
	switch {
	case strings.Contains(prompt, "compliance"), strings.Contains(prompt, "iso"), strings.Contains(prompt, "fda"):
		key = "compliance"
	case strings.Contains(prompt, "product"), strings.Contains(prompt, "requirement"), strings.Contains(prompt, "specification"):
		key = "product_requirements"
	case strings.Contains(prompt, "supplier"), strings.Contains(prompt, "vendor"), strings.Contains(prompt, "risk"):
		key = "supplier_intelligence"
	}

	content := c.responses[key]
	return &Response{
		Content: content,
		Usage: Usage{
			PromptTokens:     len(params.Prompt) / 4,
			CompletionTokens: len(content) / 4,
			TotalTokens:      (len(params.Prompt) + len(content)) / 4,
		},
	}, nil
}
