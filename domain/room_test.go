package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSystemMessage(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	msg := NewSystemMessage("Alice joined the room", at)

	req.NotEmpty(msg.ID)
	req.True(msg.IsSystem())
	req.Equal(SystemSenderID, msg.SenderID)
	req.Equal(SystemSenderName, msg.SenderName)
	req.Equal(at, msg.Timestamp)
}

func TestMessage_DecodeServerShape(t *testing.T) {
	req := require.New(t)
	raw := `{"id":"1","text":"hi","sender":"u1","senderName":"A","timestamp":"2024-01-01T00:00:00Z","type":"message"}`

	var msg Message
	req.NoError(json.Unmarshal([]byte(raw), &msg))

	req.Equal("1", msg.ID)
	req.Equal("u1", msg.SenderID)
	req.Equal("A", msg.SenderName)
	req.Equal(KindRegular, msg.Kind)
	req.False(msg.IsSystem())
	req.True(msg.Timestamp.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTokens_Valid(t *testing.T) {
	req := require.New(t)
	req.True(Tokens{AccessToken: "a", RefreshToken: "r"}.Valid())
	req.False(Tokens{AccessToken: "a"}.Valid())
	req.False(Tokens{RefreshToken: "r"}.Valid())
}
