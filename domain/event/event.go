// Package event defines the frames exchanged over the real-time channel.
//
// Every frame is an Envelope {"type": <tag>, "data": <payload>}. The same
// field name is used in both directions. Inbound payloads form a tagged union
// keyed by Type: Decode looks the tag up in a central registry and returns the
// matching struct, so subscribers receive a statically known shape.
package event

import (
	"encoding/json"
	"time"

	"chat-session/domain"
)

type Type string

// Inbound tags consumed by the chat surface.
const (
	TypeNewMessage  Type = "new_message"
	TypeRoomUsers   Type = "room_users"
	TypeUserJoined  Type = "user_joined"
	TypeUserLeft    Type = "user_left"
	TypeAuthSuccess Type = "auth_success"
	TypeAuthError   Type = "auth_error"
	TypePong        Type = "pong"
)

// Outbound tags understood by the server.
const (
	TypeJoinRoom    Type = "join_room"
	TypeLeaveRoom   Type = "leave_room"
	TypeSendMessage Type = "send_message"
	TypeTypingStart Type = "typing_start"
	TypeTypingStop  Type = "typing_stop"
	TypePing        Type = "ping"
)

// Envelope is the wire shape of every frame.
type Envelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound is a decoded server frame.
type Inbound interface {
	Type() Type
}

// RoomScoped is implemented by inbound events that concern a single room.
type RoomScoped interface {
	Room() domain.RoomID
}

type NewMessage struct {
	ID         string        `json:"id"`
	RoomID     domain.RoomID `json:"roomId,omitempty"`
	Text       string        `json:"text"`
	Sender     string        `json:"sender"`
	SenderName string        `json:"senderName"`
	Timestamp  time.Time     `json:"timestamp"`
}

func (NewMessage) Type() Type { return TypeNewMessage }

// ToMessage converts the frame into a regular display message.
func (m NewMessage) ToMessage() domain.Message {
	return domain.Message{
		ID:         m.ID,
		Text:       m.Text,
		SenderID:   m.Sender,
		SenderName: m.SenderName,
		Timestamp:  m.Timestamp,
		Kind:       domain.KindRegular,
	}
}

type RoomUsers struct {
	RoomID domain.RoomID     `json:"roomId"`
	Users  []domain.ChatUser `json:"users"`
}

func (RoomUsers) Type() Type            { return TypeRoomUsers }
func (r RoomUsers) Room() domain.RoomID { return r.RoomID }

type UserJoined struct {
	RoomID   domain.RoomID `json:"roomId"`
	UserID   string        `json:"userId"`
	UserName string        `json:"userName"`
}

func (UserJoined) Type() Type            { return TypeUserJoined }
func (u UserJoined) Room() domain.RoomID { return u.RoomID }

type UserLeft struct {
	RoomID   domain.RoomID `json:"roomId"`
	UserID   string        `json:"userId"`
	UserName string        `json:"userName"`
}

func (UserLeft) Type() Type            { return TypeUserLeft }
func (u UserLeft) Room() domain.RoomID { return u.RoomID }

type AuthSuccess struct {
	UserID string `json:"userId,omitempty"`
}

func (AuthSuccess) Type() Type { return TypeAuthSuccess }

// AuthError is sent by the server when the token in the connection URI
// was rejected.
type AuthError struct {
	Message string `json:"message"`
}

func (AuthError) Type() Type { return TypeAuthError }

type Pong struct{}

func (Pong) Type() Type { return TypePong }

// Raw carries a frame whose tag has no registered schema.
type Raw struct {
	Tag  Type
	Data json.RawMessage
}

func (r Raw) Type() Type { return r.Tag }
