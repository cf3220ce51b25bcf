package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the session in a single JSON file, the desktop analog of
// a browser's local storage. Writes go through a temp file and rename so a
// crash mid-write leaves either the old record or the new one, never a
// torn file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore describes the newfilestore operation and its observable behavior.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Hydrate describes the hydrate operation and its observable behavior.
func (s *FileStore) Hydrate(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		// Unreadable is treated like absent; a permissions problem on the
		// session file should not break startup.
		return nil, nil
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}
	if !rec.Valid() {
		return nil, nil
	}
	return &rec, nil
}

// Persist describes the persist operation and its observable behavior.
func (s *FileStore) Persist(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
