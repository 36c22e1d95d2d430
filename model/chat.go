package model

import "time"

// Sender identifies who wrote a chat message.
// The value stored in the database differs from the one shown to clients
// for the assistant side: "AI" is persisted, "Assistant" is displayed.
type Sender string

const (
	SenderUser      Sender = "User"
	SenderAssistant Sender = "AI"
)

const displayAssistant = "Assistant"

// Display returns the client-facing representation of the sender
func (s Sender) Display() string {
	if s == SenderAssistant {
		return displayAssistant
	}
	return string(SenderUser)
}

// ParseSender maps either representation back to the stored sender.
// Unknown values fall back to the user side.
func ParseSender(v string) Sender {
	switch v {
	case displayAssistant, string(SenderAssistant):
		return SenderAssistant
	default:
		return SenderUser
	}
}

// ChatMessage is a single immutable message within a chat session
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	Sender    Sender    `gorm:"type:varchar(20);not null" json:"sender"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	SentAt    time.Time `gorm:"not null;index" json:"sent_at"`
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}
