package ai

import (
	"context"
	"errors"
	"testing"
)

type staticProvider struct {
	name string
}

func (p *staticProvider) Name() string { return p.name }

func (p *staticProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "static", nil
}

func TestRegistry_ResolveKnown(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&staticProvider{name: "openai"})

	p, err := reg.Resolve("OpenAI")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name() != "openai" {
		t.Fatalf("unexpected provider: %s", p.Name())
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&staticProvider{name: "openai"})

	_, err := reg.Resolve("unknown-vendor")
	var unsupported *UnsupportedProviderError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedProviderError, got %T: %v", err, err)
	}
	if unsupported.Name != "unknown-vendor" {
		t.Fatalf("unexpected name in error: %q", unsupported.Name)
	}
}
