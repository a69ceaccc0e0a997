package services

import (
	"chat-session/chat"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/mocks"
	"chat-session/projection"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type chatFixture struct {
	svc       *ChatService
	authority *mocks.MockIAuthority
	client    *mocks.MockIClient
	transport *mocks.MockITransport
	timeline  *projection.Timeline
}

func newChatFixture(t *testing.T) chatFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := chatFixture{
		authority: mocks.NewMockIAuthority(ctrl),
		client:    mocks.NewMockIClient(ctrl),
		transport: mocks.NewMockITransport(ctrl),
		timeline:  projection.NewTimeline(domain.DefaultRoom, nil),
	}
	f.svc = NewChatService(logs.GetLoggerFromLevel(slog.LevelDebug), f.authority, f.client, f.transport, f.timeline)
	return f
}

// passThrough lets Authorize run the call with a fixed token.
func (f chatFixture) passThrough() {
	f.authority.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, call func(context.Context, string) error) error {
			return call(ctx, "token-1")
		}).
		AnyTimes()
}

func TestChatService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("should send on the websocket then persist", func(t *testing.T) {
		req := require.New(t)
		f := newChatFixture(t)
		f.passThrough()

		saved := domain.Message{ID: "m1", Text: "hello", SenderID: "u1", Kind: domain.KindRegular}
		gomock.InOrder(
			f.transport.EXPECT().SendChatMessage(domain.DefaultRoom, "hello"),
			f.client.EXPECT().
				SendMessage(gomock.Any(), "token-1", chat.SendMessageRequest{RoomID: domain.DefaultRoom, Text: "hello"}).
				Return(saved, nil),
		)

		msg, err := f.svc.Send(ctx, "  hello \n")
		req.NoError(err)
		req.Equal("m1", msg.ID)
		req.Len(f.timeline.Messages(), 1)
	})

	t.Run("should reject blank text without any call", func(t *testing.T) {
		req := require.New(t)
		f := newChatFixture(t)

		_, err := f.svc.Send(ctx, "   ")
		req.ErrorIs(err, errors.ErrMessageEmpty)
	})

	t.Run("should return the persistence error after the websocket send", func(t *testing.T) {
		req := require.New(t)
		f := newChatFixture(t)
		f.passThrough()

		f.transport.EXPECT().SendChatMessage(domain.DefaultRoom, "hello")
		f.client.EXPECT().
			SendMessage(gomock.Any(), "token-1", gomock.Any()).
			Return(domain.Message{}, errors.NewAPIError(http.StatusInternalServerError, ""))

		_, err := f.svc.Send(ctx, "hello")
		apiErr, ok := errors.AsAPIError(err)
		req.True(ok)
		req.Equal(http.StatusInternalServerError, apiErr.StatusCode)
		req.Empty(f.timeline.Messages())
	})

	t.Run("should surface an expired session", func(t *testing.T) {
		req := require.New(t)
		f := newChatFixture(t)

		f.transport.EXPECT().SendChatMessage(domain.DefaultRoom, "hello")
		f.authority.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(errors.ErrAuthenticationFailed)

		_, err := f.svc.Send(ctx, "hello")
		req.ErrorIs(err, errors.ErrAuthenticationFailed)
	})
}

func TestChatService_JoinLoadsHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("should seed the timeline with history", func(t *testing.T) {
		req := require.New(t)
		f := newChatFixture(t)
		f.passThrough()

		room := domain.RoomID("random")
		f.transport.EXPECT().JoinRoom(room)
		f.client.EXPECT().JoinRoom(gomock.Any(), "token-1", room).Return(nil)
		f.client.EXPECT().GetMessages(gomock.Any(), "token-1", room, 1, HistoryPageSize).Return(domain.MessagePage{
			Messages: []domain.Message{{ID: "1", Text: "old"}, {ID: "2", Text: "older"}},
		}, nil)

		req.NoError(f.svc.Join(ctx, room))
		req.Equal(room, f.timeline.Room())
		req.Len(f.timeline.Messages(), 2)
	})

	t.Run("should show the welcome notice when history fails", func(t *testing.T) {
		req := require.New(t)
		f := newChatFixture(t)
		f.passThrough()

		f.transport.EXPECT().JoinRoom(domain.DefaultRoom)
		f.client.EXPECT().JoinRoom(gomock.Any(), "token-1", domain.DefaultRoom).Return(nil)
		f.client.EXPECT().GetMessages(gomock.Any(), "token-1", domain.DefaultRoom, 1, HistoryPageSize).
			Return(domain.MessagePage{}, errors.NewAPIError(http.StatusBadGateway, ""))

		err := f.svc.Join(ctx, domain.DefaultRoom)
		req.Error(err)
		messages := f.timeline.Messages()
		req.Len(messages, 1)
		req.Equal(projection.WelcomeText, messages[0].Text)
	})
}

func TestChatService_Dispatch(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newChatFixture(t)
	f.passThrough()

	f.transport.EXPECT().LeaveRoom(domain.DefaultRoom)
	f.client.EXPECT().LeaveRoom(gomock.Any(), "token-1", domain.DefaultRoom).Return(nil)
	req.NoError(f.svc.Dispatch(ctx, domain.LeaveRoomCommand{Room: domain.DefaultRoom}))

	err := f.svc.Dispatch(ctx, domain.PostMessageCommand{Room: "elsewhere", Text: "hi"})
	req.ErrorIs(err, errors.ErrNoRoom)

	f.transport.EXPECT().SendChatMessage(domain.DefaultRoom, "hi")
	f.client.EXPECT().SendMessage(gomock.Any(), "token-1", gomock.Any()).Return(domain.Message{ID: "m1", Text: "hi"}, nil)
	req.NoError(f.svc.Dispatch(ctx, domain.PostMessageCommand{Room: domain.DefaultRoom, Text: "hi"}))
}

func TestChatService_RoomQueries(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newChatFixture(t)
	f.passThrough()

	rooms := []domain.Room{{ID: domain.DefaultRoom, Name: "General"}}
	f.client.EXPECT().GetRooms(gomock.Any(), "token-1").Return(rooms, nil)
	f.client.EXPECT().GetUserRooms(gomock.Any(), "token-1").Return(nil, nil)
	f.client.EXPECT().GetRoomUsers(gomock.Any(), "token-1", domain.DefaultRoom).Return([]domain.ChatUser{{ID: "u1"}}, nil)
	f.client.EXPECT().CreateRoom(gomock.Any(), "token-1", chat.CreateRoomRequest{Name: "Go"}).Return(domain.Room{ID: "go", Name: "Go"}, nil)

	got, err := f.svc.Rooms(ctx)
	req.NoError(err)
	req.Equal(rooms, got)

	mine, err := f.svc.UserRooms(ctx)
	req.NoError(err)
	req.Empty(mine)

	users, err := f.svc.RoomUsers(ctx, domain.DefaultRoom)
	req.NoError(err)
	req.Len(users, 1)

	created, err := f.svc.CreateRoom(ctx, chat.CreateRoomRequest{Name: "Go"})
	req.NoError(err)
	req.Equal(domain.RoomID("go"), created.ID)
}
