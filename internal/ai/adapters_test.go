package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIInvoke_ExtractsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-4o-mini")
	text, err := p.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if text != "hello there" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestOpenAIInvoke_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != 500 {
		t.Fatalf("expected status 500, got %d", httpErr.Status)
	}
	msg := err.Error()
	if !strings.Contains(msg, "500") || !strings.Contains(msg, "rate limited") {
		t.Fatalf("error message missing status/body: %q", msg)
	}
}

func TestOpenAIInvoke_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %T: %v", err, err)
	}
}

func TestOpenAIInvoke_ErrorInsideOKBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "model overloaded" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestOpenAIInvoke_MissingAPIKey(t *testing.T) {
	p := NewOpenAIProvider("http://localhost:0", "", "")
	_, err := p.Invoke(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestAnthropicInvoke_ExtractsTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected x-api-key: %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("missing anthropic-version header")
		}
		w.Write([]byte(`{"type":"message","content":[{"type":"text","text":"claude reply"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(srv.URL, "test-key", "")
	text, err := p.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if text != "claude reply" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestAnthropicInvoke_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"overloaded"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "overloaded" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestAnthropicInvoke_NoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"message","content":[]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %T: %v", err, err)
	}
}

func TestGeminiInvoke_KeyInQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected key query param, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("gemini must not send Authorization header, got %q", got)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"gemini reply"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "test-key", "gemini-2.0-flash-lite")
	text, err := p.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if text != "gemini reply" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestGeminiInvoke_EmbeddedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "quota exceeded" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestGeminiInvoke_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %T: %v", err, err)
	}
}

func TestCohereInvoke_ExtractsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"text":"cohere reply"}`))
	}))
	defer srv.Close()

	p := NewCohereProvider(srv.URL, "test-key", "")
	text, err := p.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if text != "cohere reply" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestCohereInvoke_MessageOnlyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"invalid request: model not found"}`))
	}))
	defer srv.Close()

	p := NewCohereProvider(srv.URL, "test-key", "")
	_, err := p.Invoke(context.Background(), "hi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
}
