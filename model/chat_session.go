package model

import "time"

// DefaultSessionTitle is given to sessions until a title is derived from the first message
const DefaultSessionTitle = "Cuộc trò chuyện mới"

// ChatSession represents a conversation between a user and the admission advisor
type ChatSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	StartedAt time.Time `gorm:"not null;index" json:"started_at"`

	// Relationships
	Messages []ChatMessage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// TableName specifies the table name for ChatSession
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// HasTitle reports whether a title was already derived for the session
func (s *ChatSession) HasTitle() bool {
	return s.Title != "" && s.Title != DefaultSessionTitle
}
