package repositories

import (
	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*badger.DB, *TokenRepository) {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, NewTokenRepository(db)
}

func TestTokenRepository_SaveAndGet(t *testing.T) {
	req := require.New(t)
	_, repository := openStore(t)

	_, err := repository.GetTokens()
	req.ErrorIs(err, errors.ErrNoTokens)

	tokens := domain.Tokens{AccessToken: "access", RefreshToken: "refresh"}
	req.NoError(repository.SaveTokens(tokens))

	fetched, err := repository.GetTokens()
	req.NoError(err)
	req.Equal(tokens, fetched)
}

func TestTokenRepository_AllOrNothing(t *testing.T) {
	req := require.New(t)
	db, repository := openStore(t)

	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(KeyAccessToken), []byte("access"))
	}))

	_, err := repository.GetTokens()
	req.ErrorIs(err, errors.ErrNoTokens)
	req.ErrorIs(repository.SaveTokens(domain.Tokens{AccessToken: "access"}), errors.ErrNoTokens)
}

func TestTokenRepository_User(t *testing.T) {
	req := require.New(t)
	_, repository := openStore(t)

	_, err := repository.GetUser()
	req.ErrorIs(err, errors.ErrNoProfile)

	user := domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	req.NoError(repository.SaveUser(user))

	fetched, err := repository.GetUser()
	req.NoError(err)
	req.Equal(user.ID, fetched.ID)
	req.Equal(user.Email, fetched.Email)
	req.True(user.CreatedAt.Equal(fetched.CreatedAt))
}

func TestTokenRepository_Clear(t *testing.T) {
	req := require.New(t)
	_, repository := openStore(t)

	req.NoError(repository.SaveTokens(domain.Tokens{AccessToken: "a", RefreshToken: "r"}))
	req.NoError(repository.SaveUser(domain.User{ID: "u1"}))
	req.NoError(repository.Clear())

	_, err := repository.GetTokens()
	req.ErrorIs(err, errors.ErrNoTokens)
	_, err = repository.GetUser()
	req.ErrorIs(err, errors.ErrNoProfile)

	// Clearing an empty store is fine
	req.NoError(repository.Clear())
}

func TestMemoryTokenStore(t *testing.T) {
	req := require.New(t)
	var store contract.TokenStore = NewMemoryTokenStore()

	_, err := store.GetTokens()
	req.ErrorIs(err, errors.ErrNoTokens)

	req.NoError(store.SaveTokens(domain.Tokens{AccessToken: "a", RefreshToken: "r"}))
	req.NoError(store.SaveUser(domain.User{ID: "u1"}))

	tokens, err := store.GetTokens()
	req.NoError(err)
	req.Equal("a", tokens.AccessToken)

	req.NoError(store.Clear())
	_, err = store.GetUser()
	req.ErrorIs(err, errors.ErrNoProfile)
}

var (
	_ contract.TokenStore = (*TokenRepository)(nil)
	_ contract.TokenStore = (*MemoryTokenStore)(nil)
)
