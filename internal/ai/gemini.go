package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type GeminiProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiChatReq struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiChatResp struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func NewGeminiProvider(baseURL, apiKey, model string) *GeminiProvider {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-2.0-flash-lite"
	}
	return &GeminiProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	if p.Client == nil {
		return "", &APIError{Provider: p.Name(), Message: "http client is nil"}
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", &APIError{Provider: p.Name(), Message: "api key is required"}
	}

	var reqBody geminiChatReq
	reqBody.Contents = []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}
	reqBody.GenerationConfig.MaxOutputTokens = maxOutputTokens

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	// Gemini authenticates via a key query parameter, not a header.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(p.BaseURL, "/"), p.Model, url.QueryEscape(p.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

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

	var decoded geminiChatResp
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &MalformedError{Provider: p.Name(), Reason: err.Error()}
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &APIError{Provider: p.Name(), Message: decoded.Error.Message}
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedError{Provider: p.Name(), Reason: "no candidates in response"}
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
