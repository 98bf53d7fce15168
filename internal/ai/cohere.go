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

type CohereProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type cohereChatReq struct {
	Model     string `json:"model"`
	Message   string `json:"message"`
	MaxTokens int    `json:"max_tokens"`
}

type cohereChatResp struct {
	Text string `json:"text"`
	// Cohere reports application errors as a bare message field.
	Message string `json:"message,omitempty"`
}

func NewCohereProvider(baseURL, apiKey, model string) *CohereProvider {
	if baseURL == "" {
		baseURL = "https://api.cohere.com/v1"
	}
	if model == "" {
		model = "command-r"
	}
	return &CohereProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *CohereProvider) Name() string { return "cohere" }

func (p *CohereProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	if p.Client == nil {
		return "", &APIError{Provider: p.Name(), Message: "http client is nil"}
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", &APIError{Provider: p.Name(), Message: "api key is required"}
	}

	reqBody := cohereChatReq{
		Model:     p.Model,
		Message:   prompt,
		MaxTokens: maxOutputTokens,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/chat", strings.TrimRight(p.BaseURL, "/"))
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

	var decoded cohereChatResp
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &MalformedError{Provider: p.Name(), Reason: err.Error()}
	}
	if decoded.Text == "" && decoded.Message != "" {
		return "", &APIError{Provider: p.Name(), Message: decoded.Message}
	}
	if decoded.Text == "" {
		return "", &MalformedError{Provider: p.Name(), Reason: "no text in response"}
	}
	return decoded.Text, nil
}
