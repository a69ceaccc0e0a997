package projection

import (
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/moderation"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestTimeline_Consume_NewMessage(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)
	ctx := context.Background()

	var appended []domain.Message
	timeline.OnAppend(func(msg domain.Message) { appended = append(appended, msg) })

	evt1 := event.NewMessage{ID: "1", Text: "Hello Bob", Sender: "alice", SenderName: "Alice", Timestamp: time.Now()}
	evt2 := event.NewMessage{ID: "2", Text: "Hi Bob", Sender: "clara", SenderName: "Clara", Timestamp: time.Now().Add(time.Second)}

	req.NoError(timeline.Consume(ctx, evt1))
	req.NoError(timeline.Consume(ctx, evt2))
	// Same id delivered twice
	req.NoError(timeline.Consume(ctx, evt1))

	messages := timeline.Messages()
	req.Len(messages, 2)
	req.Equal("alice", messages[0].SenderID)
	req.Equal("clara", messages[1].SenderID)
	req.Equal(domain.KindRegular, messages[1].Kind)
	req.Len(appended, 2)
}

func TestTimeline_Consume_OtherRoomIsIgnored(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)
	ctx := context.Background()

	req.NoError(timeline.Consume(ctx, event.UserJoined{RoomID: "random", UserName: "Bob"}))
	req.NoError(timeline.Consume(ctx, event.NewMessage{ID: "1", RoomID: "random", Text: "elsewhere"}))
	req.NoError(timeline.Consume(ctx, event.RoomUsers{RoomID: "random", Users: []domain.ChatUser{{ID: "u1"}}}))

	req.Empty(timeline.Messages())
	req.Empty(timeline.Members())
}

func TestTimeline_Consume_RoomScopedWithoutRoomIsIgnored(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)
	ctx := context.Background()

	req.NoError(timeline.Consume(ctx, event.UserJoined{UserName: "Bob"}))
	req.NoError(timeline.Consume(ctx, event.UserLeft{UserName: "Bob"}))
	req.NoError(timeline.Consume(ctx, event.RoomUsers{Users: []domain.ChatUser{{ID: "u1"}}}))
	req.Empty(timeline.Messages())
	req.Empty(timeline.Members())

	// Messages usually travel without a room id
	req.NoError(timeline.Consume(ctx, event.NewMessage{ID: "1", Text: "hi"}))
	req.NoError(timeline.Consume(ctx, event.NewMessage{ID: "2", RoomID: domain.DefaultRoom, Text: "hello"}))
	req.Len(timeline.Messages(), 2)
}

func TestTimeline_Consume_PresenceBecomesSystemMessages(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	timeline.now = func() time.Time { return at }
	ctx := context.Background()

	req.NoError(timeline.Consume(ctx, event.UserJoined{RoomID: domain.DefaultRoom, UserID: "u2", UserName: "Bob"}))
	req.NoError(timeline.Consume(ctx, event.UserLeft{RoomID: domain.DefaultRoom, UserID: "u2", UserName: "Bob"}))

	messages := timeline.Messages()
	req.Len(messages, 2)
	req.Equal("Bob joined the room", messages[0].Text)
	req.Equal("Bob left the room", messages[1].Text)
	for _, msg := range messages {
		req.True(msg.IsSystem())
		req.Equal(domain.SystemSenderName, msg.SenderName)
		req.Equal(at, msg.Timestamp)
	}
}

func TestTimeline_Consume_RoomUsersReplacesMembers(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)
	ctx := context.Background()

	req.NoError(timeline.Consume(ctx, event.RoomUsers{RoomID: domain.DefaultRoom, Users: []domain.ChatUser{
		{ID: "u1", Name: "Alice", IsOnline: true},
		{ID: "u2", Name: "Bob"},
	}}))
	req.Len(timeline.Members(), 2)
	req.Len(timeline.Online(), 1)

	req.NoError(timeline.Consume(ctx, event.RoomUsers{RoomID: domain.DefaultRoom, Users: []domain.ChatUser{
		{ID: "u3", Name: "Clara", IsOnline: true},
	}}))
	members := timeline.Members()
	req.Len(members, 1)
	req.Equal("u3", members[0].ID)
}

func TestTimeline_Seed(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)

	timeline.Seed(nil, nil)
	messages := timeline.Messages()
	req.Len(messages, 1)
	req.Equal(WelcomeText, messages[0].Text)
	req.True(messages[0].IsSystem())

	timeline.Seed(nil, stderrors.New("history unavailable"))
	req.Len(timeline.Messages(), 1)
	req.Equal(WelcomeText, timeline.Messages()[0].Text)

	history := []domain.Message{
		{ID: "1", Text: "first", Kind: domain.KindRegular},
		{ID: "2", Text: "second", Kind: domain.KindRegular},
	}
	timeline.Seed(history, nil)
	messages = timeline.Messages()
	req.Len(messages, 2)
	req.Equal("first", messages[0].Text)

	// Live copy of a message already loaded from history
	req.False(timeline.Append(domain.Message{ID: "2", Text: "second"}))
	req.Len(timeline.Messages(), 2)
}

func TestTimeline_SetRoomDropsContent(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)
	timeline.Append(domain.Message{ID: "1", Text: "hello"})

	timeline.SetRoom("random")
	req.Equal(domain.RoomID("random"), timeline.Room())
	req.Empty(timeline.Messages())
	req.True(timeline.Append(domain.Message{ID: "1", Text: "hello again"}))
}

func TestTimeline_MasksCensoredWords(t *testing.T) {
	req := require.New(t)
	filter, err := moderation.NewFilter([]string{"badger"}, '*', logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)
	timeline := NewTimeline(domain.DefaultRoom, filter)

	req.NoError(timeline.Consume(context.Background(), event.NewMessage{ID: "1", Text: "a badger here"}))
	timeline.Append(domain.NewSystemMessage("badger joined the room", time.Now()))

	messages := timeline.Messages()
	req.Equal("a ****** here", messages[0].Text)
	req.Equal("badger joined the room", messages[1].Text)
}

func TestTimeline_SeedKeepsMembers(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.DefaultRoom, nil)

	req.NoError(timeline.Consume(context.Background(), event.RoomUsers{RoomID: domain.DefaultRoom, Users: []domain.ChatUser{{ID: "u1"}}}))
	timeline.Seed([]domain.Message{{ID: "1", Text: "old"}}, nil)

	req.Len(timeline.Members(), 1)
	req.Len(timeline.Messages(), 1)
}
