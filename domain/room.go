package domain

import "time"

type RoomID string

// DefaultRoom is the room joined when none is configured.
const DefaultRoom RoomID = "general"

func (r RoomID) String() string {
	return string(r)
}

// Room is a read-only projection of a server-owned chat room.
type Room struct {
	ID           RoomID    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	MemberCount  int       `json:"memberCount"`
	IsPrivate    bool      `json:"isPrivate"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}
