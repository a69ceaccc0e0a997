//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_chat_client.go -package=mocks
package chat

import (
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/rest"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

var validate = validator.New()

// IClient is the REST surface of the chat server.
// Every call takes the bearer token explicitly.
type IClient interface {
	GetRooms(ctx context.Context, token string) ([]domain.Room, error)
	CreateRoom(ctx context.Context, token string, req CreateRoomRequest) (domain.Room, error)
	GetMessages(ctx context.Context, token string, roomID domain.RoomID, page, limit int) (domain.MessagePage, error)
	SendMessage(ctx context.Context, token string, req SendMessageRequest) (domain.Message, error)
	GetRoomUsers(ctx context.Context, token string, roomID domain.RoomID) ([]domain.ChatUser, error)
	GetUserRooms(ctx context.Context, token string) ([]domain.Room, error)
	JoinRoom(ctx context.Context, token string, roomID domain.RoomID) error
	LeaveRoom(ctx context.Context, token string, roomID domain.RoomID) error
}

type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsPrivate   bool   `json:"isPrivate"`
}

type SendMessageRequest struct {
	RoomID domain.RoomID `json:"roomId" validate:"required"`
	Text   string        `json:"text" validate:"required"`
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) GetRooms(ctx context.Context, token string) ([]domain.Room, error) {
	var body struct {
		Rooms []domain.Room `json:"rooms"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/chat/rooms", token, nil, &body); err != nil {
		return nil, err
	}
	return orEmpty(body.Rooms), nil
}

func (c *Client) CreateRoom(ctx context.Context, token string, req CreateRoomRequest) (domain.Room, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return domain.Room{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	var body struct {
		Room domain.Room `json:"room"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/chat/rooms", token, req, &body); err != nil {
		return domain.Room{}, err
	}
	return body.Room, nil
}

// GetMessages fetches one page of history. Non-positive page or limit fall
// back to DefaultPage and DefaultLimit.
func (c *Client) GetMessages(ctx context.Context, token string, roomID domain.RoomID, page, limit int) (domain.MessagePage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))

	var body domain.MessagePage
	path := roomPath(roomID, "messages") + "?" + query.Encode()
	if err := c.call(ctx, http.MethodGet, path, token, nil, &body); err != nil {
		return domain.MessagePage{}, err
	}
	body.Messages = orEmpty(body.Messages)
	return body, nil
}

func (c *Client) SendMessage(ctx context.Context, token string, req SendMessageRequest) (domain.Message, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	var body struct {
		Message domain.Message `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/chat/messages", token, req, &body); err != nil {
		return domain.Message{}, err
	}
	return body.Message, nil
}

func (c *Client) GetRoomUsers(ctx context.Context, token string, roomID domain.RoomID) ([]domain.ChatUser, error) {
	var body struct {
		Users []domain.ChatUser `json:"users"`
	}
	if err := c.call(ctx, http.MethodGet, roomPath(roomID, "users"), token, nil, &body); err != nil {
		return nil, err
	}
	return orEmpty(body.Users), nil
}

func (c *Client) GetUserRooms(ctx context.Context, token string) ([]domain.Room, error) {
	var body struct {
		Rooms []domain.Room `json:"rooms"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/chat/user/rooms", token, nil, &body); err != nil {
		return nil, err
	}
	return orEmpty(body.Rooms), nil
}

func (c *Client) JoinRoom(ctx context.Context, token string, roomID domain.RoomID) error {
	return c.call(ctx, http.MethodPost, roomPath(roomID, "join"), token, nil, nil)
}

func (c *Client) LeaveRoom(ctx context.Context, token string, roomID domain.RoomID) error {
	return c.call(ctx, http.MethodPost, roomPath(roomID, "leave"), token, nil, nil)
}

func (c *Client) call(ctx context.Context, method, path, token string, in, out any) error {
	resp, err := c.rest.Send(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func roomPath(roomID domain.RoomID, action string) string {
	return "/api/chat/rooms/" + url.PathEscape(roomID.String()) + "/" + action
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
