// Package client is the Go SDK for the API: it persists the authenticated
// session, injects credentials into requests, transparently refreshes an
// expired access token once, and answers route-guard decisions.
package client

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound reports an absent storage key.
var ErrNotFound = errors.New("key not found")

// Storage is the persistence boundary for session state. Implementations
// must tolerate concurrent processes sharing the same backing location.
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Remove(key string) error
}

// FileStorage keeps one file per key under a directory, suitable for CLI
// and desktop use.
type FileStorage struct {
	dir string
}

// NewFileStorage builds storage rooted at dir, creating it when missing.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStorage) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *FileStorage) Write(key string, value []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStorage) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
