package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/illarion/twinvault/internal/logger"
	"github.com/illarion/twinvault/internal/vault"
)

// FileStore keeps the structure as a single JSON file
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore returns a store backed by the JSON file at path
func NewFileStore(path string, log *logger.Logger) *FileStore {
	if log == nil {
		log = logger.Nop()
	}
	return &FileStore{path: path, log: log.Named("storage")}
}

// Path returns the vault file path
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the vault file exists
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Close is a no-op; the file is only open during Load and Save
func (s *FileStore) Close() error {
	return nil
}

// Load reads and validates the vault file
func (s *FileStore) Load(ctx context.Context) (*vault.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("read", s.path, err)
	}

	st, err := decodeStructure(data)
	if err != nil {
		return nil, persistenceError("decode", s.path, err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("vault loaded")
	return st, nil
}

// Save writes the structure to a temp file and renames it over the vault file
func (s *FileStore) Save(ctx context.Context, st *vault.Structure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}

	start := time.Now()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return persistenceError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return persistenceError("create", dir, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpPath)
		return persistenceError("write", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return persistenceError("replace", s.path, err)
	}

	s.log.Debug().Int("bytes", len(data)).Dur("took", time.Since(start)).Msg("vault saved")
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if err := f.Chmod(FilePermSecure); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// decodeStructure parses and validates a serialized structure
func decodeStructure(data []byte) (*vault.Structure, error) {
	var st vault.Structure
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", vault.ErrMalformedStructure, err)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &st, nil
}
