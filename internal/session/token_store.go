package session

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// TokenStore persists the one piece of client state that survives restarts:
// the bearer token, sealed at rest in a single file.
type TokenStore struct {
	path string
	aead cipher.AEAD
}

// NewTokenStore derives a fixed-size key from the provided secret using
// SHA-256, so arbitrary-length secrets from .env files work unchanged.
func NewTokenStore(path, secret string) (*TokenStore, error) {
	if path == "" {
		return nil, errors.New("token store path must not be empty")
	}
	if secret == "" {
		return nil, errors.New("session key must not be empty")
	}
	sum := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(sum[:])
	if err != nil {
		return nil, fmt.Errorf("initializing token cipher: %w", err)
	}
	return &TokenStore{path: path, aead: aead}, nil
}

// Load returns the stored token, or "" when none is persisted. A file that
// cannot be opened under the current key is reported as an error; callers
// treat that the same as a rejected token.
func (s *TokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}

	sealed, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return "", fmt.Errorf("decoding token file: %w", err)
	}
	if len(sealed) < s.aead.NonceSize() {
		return "", errors.New("token file truncated")
	}
	nonce := sealed[:s.aead.NonceSize()]
	token, err := s.aead.Open(nil, nonce, sealed[s.aead.NonceSize():], nil)
	if err != nil {
		return "", fmt.Errorf("unsealing token: %w", err)
	}
	return string(token), nil
}

func (s *TokenStore) Save(token string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(token), nil)
	encoded := base64.StdEncoding.EncodeToString(sealed)
	if err := os.WriteFile(s.path, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the persisted token. A missing file is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
