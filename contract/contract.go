//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/rest"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName returns the type name of the worker, used in supervision logs.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// TokenStore persists the session across restarts.
// GetTokens fails with errors.ErrNoTokens unless both halves are stored.
type TokenStore interface {
	SaveTokens(tokens domain.Tokens) error
	GetTokens() (domain.Tokens, error)
	SaveUser(user domain.User) error
	GetUser() (domain.User, error)
	Clear() error
}

// Conn is the part of a websocket connection the transport relies on.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// TokenSource hands out the access token to use for the next dial.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// EventSink consumes decoded inbound frames.
type EventSink interface {
	Consume(ctx context.Context, e event.Inbound) error
}

type IAuthority interface {
	TokenSource
	GetTokens() (domain.Tokens, error)
	StoreTokens(tokens domain.Tokens) error
	Clear() error
	Refresh(ctx context.Context) bool
	Authorize(ctx context.Context, call func(ctx context.Context, accessToken string) error) error
	Do(ctx context.Context, method, path string, body any) (*rest.Response, error)
}

type ITransport interface {
	Connect(ctx context.Context, token string) error
	Disconnect()
	IsConnected() bool
	JoinRoom(roomID domain.RoomID)
	LeaveRoom(roomID domain.RoomID)
	SendChatMessage(roomID domain.RoomID, text string)
	StartTyping(roomID domain.RoomID)
	StopTyping(roomID domain.RoomID)
	Ping()
}
