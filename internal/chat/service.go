package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/hu8wei/chathub/internal/ai"
	"github.com/hu8wei/chathub/internal/analytics"
)

var ErrUnauthenticated = errors.New("unauthenticated")

const defaultChatTitle = "New Chat"

// Service orchestrates a respond request: authentication precondition,
// provider dispatch, persistence, and the analytics side channel.
type Service struct {
	repo     *Repo
	registry *ai.Registry
	emitter  analytics.Emitter
}

func NewService(repo *Repo, registry *ai.Registry, emitter analytics.Emitter) *Service {
	if emitter == nil {
		emitter = analytics.Noop{}
	}
	return &Service{repo: repo, registry: registry, emitter: emitter}
}

type promptMetadata struct {
	LatencyMS int64 `json:"latency_ms"`
}

// Respond dispatches the prompt to the named provider and persists the
// result. chatID may be empty: the chat is created only after the provider
// call succeeds, so a failed call never leaves an empty chat behind.
func (s *Service) Respond(ctx context.Context, userID uint64, providerName, prompt, chatID string) (*Prompt, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	provider, err := s.registry.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	if chatID != "" {
		if _, err := s.repo.GetChat(ctx, userID, chatID); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	text, err := provider.Invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	meta, _ := json.Marshal(promptMetadata{LatencyMS: time.Since(start).Milliseconds()})
	msg := &Prompt{
		Provider: provider.Name(),
		Prompt:   prompt,
		Response: text,
		Metadata: string(meta),
	}
	chat, err := s.repo.EnsureChatAndAppend(ctx, userID, chatID, msg)
	if err != nil {
		return nil, err
	}

	s.emitResponseEvent(userID, provider.Name(), prompt, text, chat.ChatID)
	return msg, nil
}

// SavePrompt stores a prompt/response pair the caller already holds,
// bypassing provider dispatch. It runs through the same append path as
// Respond so chat creation and timestamp semantics are identical.
func (s *Service) SavePrompt(ctx context.Context, userID uint64, providerName, prompt, response, chatID string) (*Prompt, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	msg := &Prompt{
		Provider: providerName,
		Prompt:   prompt,
		Response: response,
	}
	if _, err := s.repo.EnsureChatAndAppend(ctx, userID, chatID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) CreateChat(ctx context.Context, userID uint64, title string) (*Chat, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if title == "" {
		title = defaultChatTitle
	}
	return s.repo.CreateChat(ctx, userID, title)
}

func (s *Service) ListChats(ctx context.Context, userID uint64) ([]Chat, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListChats(ctx, userID)
}

func (s *Service) GetChat(ctx context.Context, userID uint64, chatID string) (*Chat, []Prompt, error) {
	if userID == 0 {
		return nil, nil, ErrUnauthenticated
	}
	chat, err := s.repo.GetChat(ctx, userID, chatID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.repo.ListMessages(ctx, userID, chatID)
	if err != nil {
		return nil, nil, err
	}
	return chat, msgs, nil
}

func (s *Service) UpdateTitle(ctx context.Context, userID uint64, chatID, title string) (*Chat, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.repo.UpdateTitle(ctx, userID, chatID, title)
}

func (s *Service) DeleteChat(ctx context.Context, userID uint64, chatID string) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	return s.repo.DeleteChat(ctx, userID, chatID)
}

// emitResponseEvent sends the analytics event without blocking the request.
// Failures are logged and never reach the caller.
func (s *Service) emitResponseEvent(userID uint64, provider, prompt, response, chatID string) {
	ev := analytics.Event{
		Event:          analytics.EventAIResponseGenerated,
		DistinctID:     strconv.FormatUint(userID, 10),
		Provider:       provider,
		PromptLength:   len(prompt),
		ResponseLength: len(response),
		ChatID:         chatID,
		Timestamp:      time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.emitter.Emit(ctx, ev); err != nil {
			log.Printf("[ChatService] analytics emit failed: %v", err)
		}
	}()
}
