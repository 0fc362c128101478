package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/illarion/twinvault/internal/logger"
	"github.com/illarion/twinvault/internal/vault"
)

const (
	DirPermSecure  = 0700 // Directory: owner rwx only
	FilePermSecure = 0600 // File: owner rw only
)

var (
	ErrNotFound    = vault.ErrNotFound
	ErrPersistence = errors.New("persistence error")
)

// Store loads and saves the whole vault structure
type Store interface {
	// Load returns the persisted structure, or ErrNotFound
	Load(ctx context.Context) (*vault.Structure, error)
	// Save atomically replaces the persisted structure
	Save(ctx context.Context, s *vault.Structure) error
	// Exists reports whether a structure has been saved
	Exists() bool
	// Path returns the on-disk location of the vault
	Path() string
	Close() error
}

// Compactor is implemented by stores that can reclaim unused space
type Compactor interface {
	Compact() error
}

// Open opens the store for the given backend ("json" or "bolt")
func Open(backend, path string, log *logger.Logger) (Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch backend {
	case "", "json":
		return NewFileStore(path, log), nil
	case "bolt":
		return OpenBolt(path, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// persistenceError wraps an I/O failure so callers can match ErrPersistence
func persistenceError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrPersistence, op, path, err)
}
