package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LovationAdmin/budget-dashboard/models"
)

// FileSessionBackend keeps the session in a small JSON file with the same two
// keys the browser used ("token", "refreshToken"). When a key is configured the
// values are stored AES-GCM encrypted.
type FileSessionBackend struct {
	path   string
	cipher sessionCipher
}

func NewFileSessionBackend(path string, key []byte) *FileSessionBackend {
	return &FileSessionBackend{path: path, cipher: sessionCipher{key: key}}
}

func (b *FileSessionBackend) Load(ctx context.Context) (models.Session, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored models.Session
	if err := json.Unmarshal(data, &stored); err != nil {
		return models.Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}

	return b.cipher.open(stored)
}

func (b *FileSessionBackend) Save(ctx context.Context, session models.Session) error {
	stored, err := b.cipher.seal(session)
	if err != nil {
		return err
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}
