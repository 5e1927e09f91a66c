package models

import (
	"time"
)

type ChatSender string

const (
	SenderUser    ChatSender = "user"
	SenderSupport ChatSender = "support"
)

type ChatMessage struct {
	Id          string     `bson:"id" json:"id"`
	ChatId      string     `bson:"chat_id" json:"chatId"`
	Text        string     `bson:"text" json:"text"`
	Sender      ChatSender `bson:"sender" json:"sender"`
	SenderName  string     `bson:"sender_name" json:"senderName"`
	SenderEmail string     `bson:"sender_email,omitempty" json:"senderEmail,omitempty"`
	Timestamp   time.Time  `bson:"timestamp" json:"timestamp"`
	Read        bool       `bson:"read" json:"read"`
}

// Chat is one visitor conversation. Messages are stored embedded, in
// timestamp order. UnreadCount counts visitor messages not yet read by
// support; it is zeroed by an explicit mark-read.
type Chat struct {
	Id            string        `bson:"_id" json:"_id"`
	VisitorName   string        `bson:"visitor_name" json:"visitorName"`
	VisitorEmail  string        `bson:"visitor_email,omitempty" json:"visitorEmail,omitempty"`
	Messages      []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	LastMessageAt time.Time     `bson:"last_message_at" json:"lastMessageAt"`
	UnreadCount   int           `bson:"unread_count" json:"unreadCount"`
}

type StartChatRequest struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

type ChatMessageRequest struct {
	ChatId      string     `json:"chatId" validate:"required"`
	Text        string     `json:"text" validate:"required,min=1"`
	Sender      ChatSender `json:"sender" validate:"required,oneof=user support"`
	SenderName  string     `json:"senderName" validate:"required"`
	SenderEmail string     `json:"senderEmail" validate:"omitempty,email"`
}

type MarkReadRequest struct {
	ChatId     string `json:"chatId" validate:"required"`
	MarkAsRead bool   `json:"markAsRead" validate:"required"`
}
