package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/cloud-ru/invest-client-go/internal/models"
)

// Session токен и снимок пользователя. Токен непрозрачен: срок действия
// проверяет только бэкенд.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Authenticated true, если есть и токен, и пользователь
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Store хранилище сессии
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// MemoryStore хранит сессию в памяти процесса
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
}

func NewMemoryStore(s Session) *MemoryStore {
	return &MemoryStore{session: s}
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.session), nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = copySession(s)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	return nil
}

func copySession(s Session) Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// FileStore хранит сессию JSON-файлом с правами 0600
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load возвращает пустую сессию, если файла нет
func (f *FileStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session file: %w", err)
	}
	return s, nil
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
