// Package crypto encrypts persisted board state at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/runoshun/kanban/internal/domain"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32

	envelopeVersion = 1
)

var (
	// ErrInvalidKey is returned when the encryption key is invalid.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrCiphertextTooShort is returned when the ciphertext is too short.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Encryptor handles AES-256-GCM encryption.
type Encryptor struct {
	gcm cipher.AEAD
}

// NewEncryptor creates a new Encryptor with the given hex-encoded key.
// The key must be 64 hex characters (32 bytes).
func NewEncryptor(hexKey string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &Encryptor{gcm: gcm}, nil
}

// GenerateKey returns a random hex-encoded key for NewEncryptor.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
// Returns: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return e.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt decrypts ciphertext using AES-256-GCM.
// Expects: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, ErrCiphertextTooShort
	}

	plaintext, err := e.gcm.Open(nil, ciphertext[:NonceSize], ciphertext[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// Ensure Store implements domain.StateStore interface.
var _ domain.StateStore = (*Store)(nil)

// envelope is the JSON document written in place of an encrypted value,
// so JSON-only backends accept it.
type envelope struct {
	Data    []byte `json:"data"` // base64 on the wire
	Version int    `json:"encrypted"`
}

// sealed remembers the last value written under a key.
type sealed struct {
	doc []byte
	sum [sha256.Size]byte
}

// Store wraps a StateStore and encrypts every value it holds.
// Rewriting an unchanged value reuses its previous ciphertext, so content-
// addressed backends (git) see an identical blob.
type Store struct {
	inner domain.StateStore
	enc   *Encryptor
	last  map[string]sealed
	mu    sync.Mutex
}

// Wrap returns a Store encrypting values on their way to inner.
func Wrap(inner domain.StateStore, enc *Encryptor) *Store {
	return &Store{
		inner: inner,
		enc:   enc,
		last:  make(map[string]sealed),
	}
}

// Inner returns the wrapped backend.
func (s *Store) Inner() domain.StateStore {
	return s.inner
}

// Get returns the decrypted value under key. Values written before
// encryption was enabled are returned unchanged.
func (s *Store) Get(key string) ([]byte, error) {
	raw, err := s.inner.Get(key)
	if err != nil || raw == nil {
		return raw, err
	}

	var env envelope
	if json.Unmarshal(raw, &env) != nil || env.Version == 0 || env.Data == nil {
		return raw, nil
	}
	if env.Version > envelopeVersion {
		return nil, fmt.Errorf("get %q: unsupported encryption version %d", key, env.Version)
	}

	plaintext, err := s.enc.Decrypt(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	s.mu.Lock()
	s.last[key] = sealed{doc: raw, sum: sha256.Sum256(plaintext)}
	s.mu.Unlock()
	return plaintext, nil
}

// Set encrypts value and stores it under key.
func (s *Store) Set(key string, value []byte) error {
	sum := sha256.Sum256(value)

	s.mu.Lock()
	prev, ok := s.last[key]
	s.mu.Unlock()
	if ok && prev.sum == sum {
		return s.inner.Set(key, prev.doc)
	}

	ciphertext, err := s.enc.Encrypt(value)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(envelope{Version: envelopeVersion, Data: ciphertext})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := s.inner.Set(key, doc); err != nil {
		return err
	}

	s.mu.Lock()
	s.last[key] = sealed{doc: doc, sum: sum}
	s.mu.Unlock()
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	delete(s.last, key)
	s.mu.Unlock()
	return s.inner.Delete(key)
}
