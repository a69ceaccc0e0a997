package event

import "chat-session/domain"

// Outbound is a client frame payload.
type Outbound interface {
	Type() Type
}

type JoinRoom struct {
	RoomID domain.RoomID `json:"roomId"`
}

func (JoinRoom) Type() Type { return TypeJoinRoom }

type LeaveRoom struct {
	RoomID domain.RoomID `json:"roomId"`
}

func (LeaveRoom) Type() Type { return TypeLeaveRoom }

type SendMessage struct {
	RoomID  domain.RoomID `json:"roomId"`
	Message string        `json:"message"`
}

func (SendMessage) Type() Type { return TypeSendMessage }

type TypingStart struct {
	RoomID domain.RoomID `json:"roomId"`
}

func (TypingStart) Type() Type { return TypeTypingStart }

type TypingStop struct {
	RoomID domain.RoomID `json:"roomId"`
}

func (TypingStop) Type() Type { return TypeTypingStop }

type Ping struct{}

func (Ping) Type() Type { return TypePing }
