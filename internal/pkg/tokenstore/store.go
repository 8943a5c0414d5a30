// Package tokenstore persists the cloud-backup OAuth token, sealed with a
// key derived from the operator's configured secret. The desktop app keeps
// this file next to the database, so it must not hold plaintext credentials.
package tokenstore

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/oauth2"
)

const saltSize = 16

var ErrNoToken = errors.New("no stored token")

type Store struct {
	path   string
	secret string
}

func NewStore(path, secret string) *Store {
	return &Store{path: path, secret: secret}
}

// Save seals the token and writes it to disk. File layout:
// salt | nonce | ciphertext.
func (s *Store) Save(token *oauth2.Token) error {
	plain, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := s.aead(salt)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plain, nil)

	buf := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create token dir: %w", err)
		}
	}
	return os.WriteFile(s.path, buf, 0o600)
}

// Load reads and opens the stored token. Returns ErrNoToken when the file
// does not exist.
func (s *Store) Load() (*oauth2.Token, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, err
	}

	if len(buf) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, errors.New("token file corrupted")
	}

	salt := buf[:saltSize]
	nonce := buf[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	sealed := buf[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(plain, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a token file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *Store) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(s.secret), salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
