package chat

import "time"

type Chat struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ChatID    string    `gorm:"type:varchar(26);uniqueIndex;not null" json:"chat_id"`
	UserID    uint64    `gorm:"index;not null" json:"-"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Chat) TableName() string { return "chats" }

// Prompt is one prompt/response pair. Rows are immutable once created and
// always reference a chat owned by the same user.
type Prompt struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    string    `gorm:"type:varchar(26);not null;index:idx_prompts_user_chat,priority:2" json:"chat_id"`
	UserID    uint64    `gorm:"not null;index:idx_prompts_user_chat,priority:1" json:"-"`
	Provider  string    `gorm:"type:varchar(32);not null" json:"provider"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Prompt) TableName() string { return "prompts" }
