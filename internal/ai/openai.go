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

type OpenAIProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type openAIMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatReq struct {
	Model     string      `json:"model"`
	Messages  []openAIMsg `json:"messages"`
	MaxTokens int         `json:"max_tokens"`
}

type openAIChatResp struct {
	Choices []struct {
		Message openAIMsg `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	if p.Client == nil {
		return "", &APIError{Provider: p.Name(), Message: "http client is nil"}
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", &APIError{Provider: p.Name(), Message: "api key is required"}
	}

	reqBody := openAIChatReq{
		Model:     p.Model,
		MaxTokens: maxOutputTokens,
		Messages:  []openAIMsg{{Role: "user", Content: prompt}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(p.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

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

	var decoded openAIChatResp
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &MalformedError{Provider: p.Name(), Reason: err.Error()}
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &APIError{Provider: p.Name(), Message: decoded.Error.Message}
	}
	if len(decoded.Choices) == 0 {
		return "", &MalformedError{Provider: p.Name(), Reason: "no choices in response"}
	}
	return decoded.Choices[0].Message.Content, nil
}

// snippet bounds vendor body text carried in errors so credentials or large
// payloads are never echoed back verbatim.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}
