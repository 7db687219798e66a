package client

import (
	"errors"
	"os"
	"sync"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token in process memory only.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileTokenStore persists the token to a file.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *FileTokenStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Session holds the current token. Set and Clear are the only mutation
// entry points; everything issuing requests reads through Token.
type Session struct {
	mu    sync.RWMutex
	token string
	store TokenStore
}

// NewSession builds a session over the given store, loading any persisted
// token. A nil store falls back to in-memory persistence.
func NewSession(store TokenStore) (*Session, error) {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{token: token, store: store}, nil
}

// Token returns the held token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores a freshly issued token.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.store.Save(token)
}

// Clear discards the token. With stateless server tokens this is the
// entirety of logout.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return s.store.Clear()
}
