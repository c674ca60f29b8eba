package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// IdentityFile is the fixed name of the persisted identity.
const IdentityFile = "inwo_user.json"

// FileIdentityStore keeps the session in a single file under a directory.
type FileIdentityStore struct {
	path string
}

func NewFileIdentityStore(dir string) *FileIdentityStore {
	return &FileIdentityStore{path: filepath.Join(dir, IdentityFile)}
}

// Load discards a corrupt identity file rather than failing.
func (f *FileIdentityStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read identity: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.User.Username == "" {
		_ = os.Remove(f.path)
		return nil, nil
	}
	return &s, nil
}

func (f *FileIdentityStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	return nil
}

func (f *FileIdentityStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove identity: %w", err)
	}
	return nil
}
