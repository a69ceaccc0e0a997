// Package domain contains core concepts of the chat client.
// This file defines chat messages as they are displayed.
// Messages are produced locally (optimistic send, system notices)
// or received from the server, and are never mutated afterwards.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	KindRegular MessageKind = "message"
	KindSystem  MessageKind = "system"
)

const (
	SystemSenderID   = "system"
	SystemSenderName = "System"
)

// Message is one chat line in display order.
type Message struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	SenderID   string      `json:"sender"`
	SenderName string      `json:"senderName"`
	Timestamp  time.Time   `json:"timestamp"`
	Kind       MessageKind `json:"type"`
}

// IsSystem reports whether the message was generated by the client or server
// rather than written by a user.
func (m Message) IsSystem() bool {
	return m.Kind == KindSystem
}

// NewSystemMessage builds a system notice stamped at the given time.
func NewSystemMessage(text string, at time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Text:       text,
		SenderID:   SystemSenderID,
		SenderName: SystemSenderName,
		Timestamp:  at,
		Kind:       KindSystem,
	}
}

// MessagePage is one page of room history.
type MessagePage struct {
	Messages   []Message `json:"messages"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}
