// Package domain contains core concepts of the chat system.
// This file defines participants: room members as seen by the chat surface
// and the signed-in account profile.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// ChatUser is a member of a room.
type ChatUser struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

// User is the signed-in account profile, persisted next to the tokens.
type User struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
