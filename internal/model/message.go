package model

import (
	"time"
)

// Conversation represents a 1:1 conversation between two users
type Conversation struct {
	ID            int        `json:"id" db:"id"`
	User1ID       int        `json:"user1_id" db:"user1_id"`
	User2ID       int        `json:"user2_id" db:"user2_id"`
	LastMessageID *int       `json:"last_message_id,omitempty" db:"last_message_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// ConversationSummary is a conversation as shown in the inbox list
type ConversationSummary struct {
	ID          int            `json:"id"`
	OtherUser   ProfileSummary `json:"other_user"`
	LastMessage *Message       `json:"last_message,omitempty"`
	UnreadCount int            `json:"unread_count"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// ConversationCreate represents data for starting a conversation
type ConversationCreate struct {
	UserID int `json:"user_id" binding:"required"`
}

// Message represents a single message within a conversation
type Message struct {
	ID             int       `json:"id" db:"id"`
	ConversationID int       `json:"conversation_id" db:"conversation_id"`
	SenderID       int       `json:"sender_id" db:"sender_id"`
	ReceiverID     int       `json:"receiver_id" db:"receiver_id"`
	Content        string    `json:"content" db:"content"`
	Read           bool      `json:"read" db:"read"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// MessageCreate represents data for sending a message. The conversation ID
// comes from the URL path.
type MessageCreate struct {
	ConversationID int    `json:"-"`
	Content        string `json:"content" binding:"required,max=2000"`
}
