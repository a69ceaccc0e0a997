// Package projection builds the local timeline of the current room from
// observed events. It handles deduplication, system notices and masking.
// It does not emit events or interact with a UI directly.
package projection

import (
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/moderation"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
)

const WelcomeText = "Welcome to the chat! Start a conversation."

// Timeline holds the messages and members of the room being viewed.
type Timeline struct {
	filter *moderation.Filter
	now    func() time.Time

	mu        sync.RWMutex
	room      domain.RoomID
	messages  []domain.Message
	members   []domain.ChatUser
	seen      map[string]struct{}
	listeners []func(domain.Message)
}

// NewTimeline builds an empty timeline for room. filter may be nil.
func NewTimeline(room domain.RoomID, filter *moderation.Filter) *Timeline {
	return &Timeline{
		filter: filter,
		now:    time.Now,
		room:   room,
		seen:   make(map[string]struct{}),
	}
}

// OnAppend registers a callback run for each message added to the timeline.
func (t *Timeline) OnAppend(fn func(domain.Message)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

func (t *Timeline) Room() domain.RoomID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.room
}

// SetRoom switches the timeline to another room and drops its content.
func (t *Timeline) SetRoom(room domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.room = room
	t.reset()
}

func (t *Timeline) reset() {
	t.messages = nil
	t.members = nil
	t.seen = make(map[string]struct{})
}

// Consume applies one inbound event. Events for another room are ignored.
func (t *Timeline) Consume(_ context.Context, e event.Inbound) error {
	if !t.accepts(e) {
		return nil
	}

	switch evt := e.(type) {
	case event.NewMessage:
		t.Append(evt.ToMessage())
	case event.UserJoined:
		t.Append(domain.NewSystemMessage(fmt.Sprintf("%s joined the room", evt.UserName), t.now()))
	case event.UserLeft:
		t.Append(domain.NewSystemMessage(fmt.Sprintf("%s left the room", evt.UserName), t.now()))
	case event.RoomUsers:
		t.mu.Lock()
		t.members = append([]domain.ChatUser{}, evt.Users...)
		t.mu.Unlock()
	}
	return nil
}

// accepts reports whether e belongs to the current room.
// Presence and member frames must name the room. Messages without a room id
// are taken as is.
func (t *Timeline) accepts(e event.Inbound) bool {
	room := t.Room()
	switch evt := e.(type) {
	case event.NewMessage:
		return evt.RoomID == "" || evt.RoomID == room
	case event.RoomScoped:
		return evt.Room() == room
	}
	return true
}

// Seed replaces the messages with loaded history, keeping the member list.
// A welcome notice is shown when there is no history or it failed to load.
func (t *Timeline) Seed(history []domain.Message, err error) {
	t.mu.Lock()
	t.messages = nil
	t.seen = make(map[string]struct{})
	if err != nil || len(history) == 0 {
		welcome := domain.NewSystemMessage(WelcomeText, t.now())
		t.messages = []domain.Message{welcome}
		t.seen[welcome.ID] = struct{}{}
		t.mu.Unlock()
		return
	}

	t.messages = lo.FilterMap(history, func(msg domain.Message, _ int) (domain.Message, bool) {
		if _, dup := t.seen[msg.ID]; dup && msg.ID != "" {
			return msg, false
		}
		t.seen[msg.ID] = struct{}{}
		return t.masked(msg), true
	})
	t.mu.Unlock()
}

// Append adds msg unless a message with the same id is already shown.
func (t *Timeline) Append(msg domain.Message) bool {
	t.mu.Lock()
	if msg.ID != "" {
		if _, dup := t.seen[msg.ID]; dup {
			t.mu.Unlock()
			return false
		}
		t.seen[msg.ID] = struct{}{}
	}
	msg = t.masked(msg)
	t.messages = append(t.messages, msg)
	listeners := append([]func(domain.Message){}, t.listeners...)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(msg)
	}
	return true
}

func (t *Timeline) masked(msg domain.Message) domain.Message {
	if msg.IsSystem() {
		return msg
	}
	msg.Text, _ = t.filter.Mask(msg.Text)
	return msg
}

func (t *Timeline) Messages() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]domain.Message{}, t.messages...)
}

func (t *Timeline) Members() []domain.ChatUser {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]domain.ChatUser{}, t.members...)
}

// Online returns the members currently flagged online.
func (t *Timeline) Online() []domain.ChatUser {
	return lo.Filter(t.Members(), func(u domain.ChatUser, _ int) bool {
		return u.IsOnline
	})
}
