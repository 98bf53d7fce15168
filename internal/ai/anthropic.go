package ai

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

// anthropicVersion pins the wire format of the Messages API.
const anthropicVersion = "2023-06-01"

type AnthropicProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type anthropicMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicChatReq struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	Messages  []anthropicMsg `json:"messages"`
}

type anthropicChatResp struct {
	Type    string `json:"type"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewAnthropicProvider(baseURL, apiKey, model string) *AnthropicProvider {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &AnthropicProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	if p.Client == nil {
		return "", &APIError{Provider: p.Name(), Message: "http client is nil"}
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", &APIError{Provider: p.Name(), Message: "api key is required"}
	}

	reqBody := anthropicChatReq{
		Model:     p.Model,
		MaxTokens: maxOutputTokens,
		Messages:  []anthropicMsg{{Role: "user", Content: prompt}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/messages", strings.TrimRight(p.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	// Anthropic does not use Bearer tokens; the key rides in x-api-key.
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &HTTPError{Provider: p.Name(), Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{Provider: p.Name(), Status: resp.StatusCode, Body: snippet(body)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", &MalformedError{Provider: p.Name(), Reason: "empty response body"}
	}

	var decoded anthropicChatResp
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &MalformedError{Provider: p.Name(), Reason: err.Error()}
	}
	if decoded.Type == "error" || (decoded.Error != nil && decoded.Error.Message != "") {
		msg := "unknown error"
		if decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return "", &APIError{Provider: p.Name(), Message: msg}
	}
	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &MalformedError{Provider: p.Name(), Reason: "no text block in response"}
}
