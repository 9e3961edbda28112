// Package auth drives the OAuth authorization-code exchange with the
// Payvment platform: anti-forgery state issuance and verification, the
// authorize redirect URL, and the server-to-server token exchange.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/jrsteele09/go-payvment/statestore"
	"github.com/pkg/errors"
)

const (
	// DefaultStateKey is the session-store key CSRF tokens are written
	// under when no per-session key is configured.
	DefaultStateKey = "payvment_oauth_state"

	stateTokenLength = 32 // 256 bits of entropy
)

// StateManager issues and verifies the single-use anti-forgery token that
// ties an authorization request to its callback. Tokens live in the
// injected session store under a fixed key; issuing overwrites any prior
// value.
type StateManager struct {
	store statestore.Store
	key   string
}

// NewStateManager creates a StateManager writing to the given store.
// key selects the store slot; pass "" for DefaultStateKey. Web applications
// serving multiple users must scope the key per browser session.
func NewStateManager(store statestore.Store, key string) (*StateManager, error) {
	if store == nil {
		return nil, errors.New("[NewStateManager] store is required")
	}
	if key == "" {
		key = DefaultStateKey
	}
	return &StateManager{store: store, key: key}, nil
}

// Issue generates an unguessable opaque token and stores it, overwriting
// any prior value.
func (m *StateManager) Issue() (string, error) {
	buf := make([]byte, stateTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "[StateManager.Issue] rand.Read")
	}
	token := base64.URLEncoding.EncodeToString(buf)
	if err := m.store.Put(m.key, token); err != nil {
		return "", errors.Wrap(err, "[StateManager.Issue] store.Put")
	}
	return token, nil
}

// Verify compares presented byte-for-byte against the stored token.
// Returns false, never an error, on absence or mismatch.
func (m *StateManager) Verify(presented string) bool {
	stored, err := m.store.Get(m.key)
	if err != nil {
		return false
	}
	return stored != "" && stored == presented
}

// Invalidate removes the stored token so it cannot validate a second
// callback.
func (m *StateManager) Invalidate() error {
	return m.store.Delete(m.key)
}
