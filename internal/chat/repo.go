package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")

// Repo is the transactional gateway over chat and prompt persistence.
// Every query is scoped to the owning user id; callers never pass an owner
// taken from the request body.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateChat(ctx context.Context, userID uint64, title string) (*Chat, error) {
	cid, err := NewChatID()
	if err != nil {
		return nil, err
	}
	c := &Chat{
		ChatID: cid,
		UserID: userID,
		Title:  title,
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return c, nil
}

// ListChats returns the caller's chats, most recently updated first.
func (r *Repo) ListChats(ctx context.Context, userID uint64) ([]Chat, error) {
	var chats []Chat
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return chats, nil
}

func (r *Repo) GetChat(ctx context.Context, userID uint64, chatID string) (*Chat, error) {
	var c Chat
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &c, nil
}

// ListMessages returns a chat's prompt/response pairs oldest first.
func (r *Repo) ListMessages(ctx context.Context, userID uint64, chatID string) ([]Prompt, error) {
	var msgs []Prompt
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND chat_id = ?", userID, chatID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// EnsureChatAndAppend is the single place where a prompt row gets attached
// to a chat. With an empty chatID it creates the chat (title defaulting from
// the prompt text) and inserts the message in one transaction, so a store
// failure never leaves an empty chat or an orphan message. With a chatID it
// verifies ownership, inserts, and touches updated_at atomically.
func (r *Repo) EnsureChatAndAppend(ctx context.Context, userID uint64, chatID string, msg *Prompt) (*Chat, error) {
	var chat *Chat

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if chatID == "" {
			cid, err := NewChatID()
			if err != nil {
				return err
			}
			chat = &Chat{
				ChatID: cid,
				UserID: userID,
				Title:  DeriveTitle(msg.Prompt),
			}
			if err := tx.Create(chat).Error; err != nil {
				return fmt.Errorf("create chat: %w", err)
			}
		} else {
			var c Chat
			err := tx.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&c).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrChatNotFound
				}
				return fmt.Errorf("get chat: %w", err)
			}
			chat = &c
		}

		msg.ChatID = chat.ChatID
		msg.UserID = userID
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("insert prompt: %w", err)
		}

		now := time.Now()
		if err := tx.Model(&Chat{}).
			Where("id = ?", chat.ID).
			Update("updated_at", now).Error; err != nil {
			return fmt.Errorf("touch chat: %w", err)
		}
		chat.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (r *Repo) UpdateTitle(ctx context.Context, userID uint64, chatID, title string) (*Chat, error) {
	result := r.db.WithContext(ctx).
		Model(&Chat{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Update("title", title)
	if result.Error != nil {
		return nil, fmt.Errorf("update title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrChatNotFound
	}
	return r.GetChat(ctx, userID, chatID)
}

// DeleteChat removes the chat's prompt rows and then the chat row as one
// transaction. If the prompt delete fails the chat row survives.
func (r *Repo) DeleteChat(ctx context.Context, userID uint64, chatID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Chat
		err := tx.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&c).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChatNotFound
			}
			return fmt.Errorf("get chat: %w", err)
		}

		if err := tx.Where("chat_id = ? AND user_id = ?", chatID, userID).
			Delete(&Prompt{}).Error; err != nil {
			return fmt.Errorf("delete prompts: %w", err)
		}
		if err := tx.Delete(&Chat{}, c.ID).Error; err != nil {
			return fmt.Errorf("delete chat: %w", err)
		}
		return nil
	})
}
