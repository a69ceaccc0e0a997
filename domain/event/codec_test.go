package event

import (
	"encoding/json"
	"testing"
	"time"

	"chat-session/domain"
	"chat-session/errors"

	"github.com/stretchr/testify/require"
)

func TestDecode_NewMessage(t *testing.T) {
	req := require.New(t)
	frame := `{"type":"new_message","data":{"id":"1","text":"hi","sender":"u1","senderName":"A","timestamp":"2024-01-01T00:00:00Z"}}`

	ev, err := Decode([]byte(frame))
	req.NoError(err)

	msg, ok := ev.(NewMessage)
	req.True(ok)
	req.Equal("1", msg.ID)
	req.Equal("hi", msg.Text)
	req.Equal("u1", msg.Sender)
	req.True(msg.Timestamp.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	display := msg.ToMessage()
	req.Equal(domain.KindRegular, display.Kind)
	req.Equal("A", display.SenderName)
}

func TestDecode_RoomScopedEvents(t *testing.T) {
	req := require.New(t)

	ev, err := Decode([]byte(`{"type":"user_joined","data":{"roomId":"general","userId":"u2","userName":"Bob"}}`))
	req.NoError(err)
	joined, ok := ev.(UserJoined)
	req.True(ok)
	req.Equal("Bob", joined.UserName)

	scoped, ok := ev.(RoomScoped)
	req.True(ok)
	req.Equal(domain.DefaultRoom, scoped.Room())

	ev, err = Decode([]byte(`{"type":"room_users","data":{"roomId":"general","users":[{"id":"u1","name":"A","isOnline":true}]}}`))
	req.NoError(err)
	users, ok := ev.(RoomUsers)
	req.True(ok)
	req.Len(users.Users, 1)
	req.True(users.Users[0].IsOnline)
}

func TestDecode_Malformed(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte("not json"))
	req.ErrorIs(err, errors.ErrMalformedFrame)

	_, err = Decode([]byte(`{"data":{}}`))
	req.ErrorIs(err, errors.ErrMalformedFrame)
}

func TestDecode_InvalidPayload(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"type":"new_message","data":"oops"}`))
	req.ErrorIs(err, errors.ErrInvalidPayload)
}

func TestDecode_UnknownTagIsRaw(t *testing.T) {
	req := require.New(t)

	ev, err := Decode([]byte(`{"type":"presence","data":{"x":1}}`))
	req.NoError(err)

	raw, ok := ev.(Raw)
	req.True(ok)
	req.Equal(Type("presence"), raw.Type())
	req.JSONEq(`{"x":1}`, string(raw.Data))
	req.False(Known("presence"))
}

func TestDecode_EmptyPayload(t *testing.T) {
	req := require.New(t)

	ev, err := Decode([]byte(`{"type":"pong"}`))
	req.NoError(err)
	req.Equal(TypePong, ev.Type())
}

func TestEncode(t *testing.T) {
	req := require.New(t)

	frame, err := Encode(TypeSendMessage, SendMessage{RoomID: "general", Message: "hello"})
	req.NoError(err)
	req.JSONEq(`{"type":"send_message","data":{"roomId":"general","message":"hello"}}`, string(frame))

	frame, err = Encode(TypePing, Ping{})
	req.NoError(err)
	req.JSONEq(`{"type":"ping","data":{}}`, string(frame))

	frame, err = Encode("custom", nil)
	req.NoError(err)
	req.JSONEq(`{"type":"custom"}`, string(frame))
}

func TestEncode_Unserializable(t *testing.T) {
	req := require.New(t)

	_, err := Encode("custom", map[string]any{"ch": make(chan int)})
	req.ErrorIs(err, errors.ErrInvalidPayload)
}

func TestEnvelope_DataFieldBothWays(t *testing.T) {
	req := require.New(t)

	frame, err := Encode(TypeJoinRoom, JoinRoom{RoomID: "general"})
	req.NoError(err)

	var env Envelope
	req.NoError(json.Unmarshal(frame, &env))
	req.Equal(TypeJoinRoom, env.Type)
	req.JSONEq(`{"roomId":"general"}`, string(env.Data))
}
