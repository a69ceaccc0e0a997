package services

import (
	"chat-session/chat"
	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/projection"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const HistoryPageSize = 50

type IChatService interface {
	Send(ctx context.Context, text string) (domain.Message, error)
	Join(ctx context.Context, roomID domain.RoomID) error
	Leave(ctx context.Context, roomID domain.RoomID) error
	LoadHistory(ctx context.Context) error
	Rooms(ctx context.Context) ([]domain.Room, error)
	UserRooms(ctx context.Context) ([]domain.Room, error)
	CreateRoom(ctx context.Context, req chat.CreateRoomRequest) (domain.Room, error)
	RoomUsers(ctx context.Context, roomID domain.RoomID) ([]domain.ChatUser, error)
	Dispatch(ctx context.Context, cmd domain.Command) error
}

// ChatService drives the room being viewed.
// Writes go to the websocket first for immediacy, then to REST for
// persistence. The REST result is what callers see.
type ChatService struct {
	log       *slog.Logger
	authority contract.IAuthority
	client    chat.IClient
	transport contract.ITransport
	timeline  *projection.Timeline
}

func NewChatService(
	log *slog.Logger,
	authority contract.IAuthority,
	client chat.IClient,
	transport contract.ITransport,
	timeline *projection.Timeline,
) *ChatService {
	return &ChatService{
		log:       log,
		authority: authority,
		client:    client,
		transport: transport,
		timeline:  timeline,
	}
}

// Send posts text to the current room.
// When persistence fails the real-time copy has already left, and the error
// is returned so the caller can restore its input.
func (s *ChatService) Send(ctx context.Context, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, errors.ErrMessageEmpty
	}
	room := s.timeline.Room()
	if room == "" {
		return domain.Message{}, errors.ErrNoRoom
	}

	s.transport.SendChatMessage(room, text)

	var saved domain.Message
	err := s.authority.Authorize(ctx, func(ctx context.Context, token string) error {
		msg, err := s.client.SendMessage(ctx, token, chat.SendMessageRequest{RoomID: room, Text: text})
		saved = msg
		return err
	})
	if err != nil {
		s.log.Warn("Message not persisted", "room", room, "error", err)
		return domain.Message{}, fmt.Errorf("send message: %w", err)
	}
	s.timeline.Append(saved)
	return saved, nil
}

// Join switches the timeline to roomID, announces it on both channels and
// loads its history.
func (s *ChatService) Join(ctx context.Context, roomID domain.RoomID) error {
	if roomID == "" {
		return errors.ErrNoRoom
	}
	s.timeline.SetRoom(roomID)
	s.transport.JoinRoom(roomID)

	err := s.authority.Authorize(ctx, func(ctx context.Context, token string) error {
		return s.client.JoinRoom(ctx, token, roomID)
	})
	if err != nil {
		s.log.Warn("REST join failed", "room", roomID, "error", err)
	}
	if histErr := s.LoadHistory(ctx); histErr != nil && err == nil {
		err = histErr
	}
	return err
}

func (s *ChatService) Leave(ctx context.Context, roomID domain.RoomID) error {
	if roomID == "" {
		return errors.ErrNoRoom
	}
	s.transport.LeaveRoom(roomID)
	return s.authority.Authorize(ctx, func(ctx context.Context, token string) error {
		return s.client.LeaveRoom(ctx, token, roomID)
	})
}

// LoadHistory replaces the timeline with the first page of the current room.
// The timeline is seeded even on failure, with the welcome notice.
func (s *ChatService) LoadHistory(ctx context.Context) error {
	room := s.timeline.Room()
	var page domain.MessagePage
	err := s.authority.Authorize(ctx, func(ctx context.Context, token string) error {
		var err error
		page, err = s.client.GetMessages(ctx, token, room, 1, HistoryPageSize)
		return err
	})
	s.timeline.Seed(page.Messages, err)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	return nil
}

func (s *ChatService) Rooms(ctx context.Context) ([]domain.Room, error) {
	return authorized(ctx, s.authority, func(ctx context.Context, token string) ([]domain.Room, error) {
		return s.client.GetRooms(ctx, token)
	})
}

func (s *ChatService) UserRooms(ctx context.Context) ([]domain.Room, error) {
	return authorized(ctx, s.authority, func(ctx context.Context, token string) ([]domain.Room, error) {
		return s.client.GetUserRooms(ctx, token)
	})
}

func (s *ChatService) CreateRoom(ctx context.Context, req chat.CreateRoomRequest) (domain.Room, error) {
	return authorized(ctx, s.authority, func(ctx context.Context, token string) (domain.Room, error) {
		return s.client.CreateRoom(ctx, token, req)
	})
}

func (s *ChatService) RoomUsers(ctx context.Context, roomID domain.RoomID) ([]domain.ChatUser, error) {
	return authorized(ctx, s.authority, func(ctx context.Context, token string) ([]domain.ChatUser, error) {
		return s.client.GetRoomUsers(ctx, token, roomID)
	})
}

// Dispatch runs a command issued by the UI.
func (s *ChatService) Dispatch(ctx context.Context, cmd domain.Command) error {
	switch c := cmd.(type) {
	case domain.PostMessageCommand:
		if c.Room != "" && c.Room != s.timeline.Room() {
			return fmt.Errorf("%w: %s is not the current room", errors.ErrNoRoom, c.Room)
		}
		_, err := s.Send(ctx, c.Text)
		return err
	case domain.JoinRoomCommand:
		return s.Join(ctx, c.Room)
	case domain.LeaveRoomCommand:
		return s.Leave(ctx, c.Room)
	default:
		return fmt.Errorf("%w: unsupported command %T", errors.ErrInvalidRequest, cmd)
	}
}

// authorized runs a REST call returning a value through the 401 retry policy.
func authorized[T any](ctx context.Context, authority contract.IAuthority, call func(ctx context.Context, token string) (T, error)) (T, error) {
	var out T
	err := authority.Authorize(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = call(ctx, token)
		return err
	})
	return out, err
}
