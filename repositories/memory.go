package repositories

import (
	"chat-session/domain"
	"chat-session/errors"
	"sync"
)

// MemoryTokenStore keeps the session for the lifetime of the process only.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens domain.Tokens
	user   *domain.User
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) SaveTokens(tokens domain.Tokens) error {
	if !tokens.Valid() {
		return errors.ErrNoTokens
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = tokens
	return nil
}

func (m *MemoryTokenStore) GetTokens() (domain.Tokens, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.tokens.Valid() {
		return domain.Tokens{}, errors.ErrNoTokens
	}
	return m.tokens, nil
}

func (m *MemoryTokenStore) SaveUser(user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &user
	return nil
}

func (m *MemoryTokenStore) GetUser() (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return domain.User{}, errors.ErrNoProfile
	}
	return *m.user, nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = domain.Tokens{}
	m.user = nil
	return nil
}
