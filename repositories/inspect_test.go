package repositories

import (
	"chat-session/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRepository_Entries(t *testing.T) {
	req := require.New(t)
	_, repository := openStore(t)

	req.NoError(repository.SaveTokens(domain.Tokens{AccessToken: "eyJhbGciOiJIUzI1NiJ9.payload.sig", RefreshToken: "short"}))

	entries, err := repository.Entries()
	req.NoError(err)
	req.Len(entries, 3)

	req.Equal(KeyAccessToken, entries[0].Key)
	req.True(entries[0].Present)
	req.Equal("eyJh********.sig", entries[0].Preview)
	req.NotContains(entries[0].Preview, "payload")

	req.Equal("*****", entries[1].Preview)

	req.Equal(KeyUser, entries[2].Key)
	req.False(entries[2].Present)
	req.Equal("-", entries[2].Preview)

	req.NoError(repository.SaveUser(domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}))
	entries, err = repository.Entries()
	req.NoError(err)
	req.Equal("Alice <alice@example.com>", entries[2].Preview)
}
