// Package analytics is a fire-and-forget event side channel. Emit failures
// never influence the outcome of the request that produced the event.
package analytics

import (
	"context"
	"time"
)

const EventAIResponseGenerated = "AI Response Generated"

type Event struct {
	Event          string    `json:"event"`
	DistinctID     string    `json:"distinct_id"`
	Provider       string    `json:"provider"`
	PromptLength   int       `json:"prompt_length"`
	ResponseLength int       `json:"response_length"`
	ChatID         string    `json:"chat_id"`
	Timestamp      time.Time `json:"timestamp"`
	InsertID       string    `json:"insert_id,omitempty"`
}

type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// Noop drops every event. Used when no sink is configured.
type Noop struct{}

func (Noop) Emit(ctx context.Context, ev Event) error {
	_ = ctx
	_ = ev
	return nil
}
