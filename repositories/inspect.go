package repositories

import (
	"chat-session/domain"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// StoredEntry describes one session key without exposing its secret.
type StoredEntry struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Size    int    `json:"size"`
	Preview string `json:"preview"`
	Version uint64 `json:"version"`
}

// Entries reports every session key with a masked preview of its value.
func (r *TokenRepository) Entries() ([]StoredEntry, error) {
	entries := make([]StoredEntry, 0, len(SessionKeys))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, key := range SessionKeys {
			entry := StoredEntry{Key: key, Preview: "-"}
			item, err := txn.Get([]byte(key))
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				entries = append(entries, entry)
				continue
			}
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			entry.Present = true
			entry.Size = len(val)
			entry.Version = item.Version()
			entry.Preview = preview(key, val)
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

func preview(key string, val []byte) string {
	if key != KeyUser {
		return MaskSecret(string(val))
	}
	var user domain.User
	if err := json.Unmarshal(val, &user); err != nil {
		return "<unreadable profile>"
	}
	return user.Name + " <" + user.Email + ">"
}

// MaskSecret keeps the first and last four characters of long secrets.
func MaskSecret(secret string) string {
	if len(secret) <= 12 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", 8) + secret[len(secret)-4:]
}
