package repositories

import (
	"chat-session/domain"
	"chat-session/errors"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys of the persisted session.
const (
	KeyAccessToken  = "@auth_access_token"
	KeyRefreshToken = "@auth_refresh_token"
	KeyUser         = "@auth_user"
)

// SessionKeys lists every key owned by the session, in display order.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// TokenRepository persists the session in BadgerDB, one entry per key.
type TokenRepository struct {
	db *badger.DB
}

func NewTokenRepository(db *badger.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// SaveTokens writes both halves in a single transaction.
func (r *TokenRepository) SaveTokens(tokens domain.Tokens) error {
	if !tokens.Valid() {
		return errors.ErrNoTokens
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(KeyAccessToken), []byte(tokens.AccessToken)); err != nil {
			return err
		}
		return txn.Set([]byte(KeyRefreshToken), []byte(tokens.RefreshToken))
	})
}

// GetTokens returns errors.ErrNoTokens when either half is missing.
func (r *TokenRepository) GetTokens() (domain.Tokens, error) {
	var tokens domain.Tokens
	err := r.db.View(func(txn *badger.Txn) error {
		access, err := readString(txn, KeyAccessToken)
		if err != nil {
			return err
		}
		refresh, err := readString(txn, KeyRefreshToken)
		if err != nil {
			return err
		}
		tokens = domain.Tokens{AccessToken: access, RefreshToken: refresh}
		return nil
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) || (err == nil && !tokens.Valid()) {
		return domain.Tokens{}, errors.ErrNoTokens
	}
	if err != nil {
		return domain.Tokens{}, fmt.Errorf("read tokens: %w", err)
	}
	return tokens, nil
}

// SaveUser stores the profile serialized as JSON.
func (r *TokenRepository) SaveUser(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(KeyUser), data)
	})
}

func (r *TokenRepository) GetUser() (domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(KeyUser))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrNoProfile
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("read user: %w", err)
	}
	return user, nil
}

// Clear drops every session key. Missing keys are not an error.
func (r *TokenRepository) Clear() error {
	return r.db.Update(func(txn *badger.Txn) error {
		for _, key := range SessionKeys {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func readString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}
