package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/illarion/twinvault/internal/logger"
	"github.com/illarion/twinvault/internal/vault"
)

// Bucket names
var (
	ConfigBucket = []byte("config") // Format version and timestamps - unencrypted
	VaultBucket  = []byte("vault")  // The serialized dual-vault structure
)

// Keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	StructureKey   = []byte("structure")
)

const (
	formatVersion = "1"
	lockTimeout   = time.Second
)

// BoltStore provides BBolt-based storage for the vault structure
type BoltStore struct {
	db  *bolt.DB
	log *logger.Logger
}

// OpenBolt opens or creates a vault database
func OpenBolt(path string, log *logger.Logger) (*BoltStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermSecure); err != nil {
		return nil, persistenceError("mkdir", filepath.Dir(path), err)
	}

	db, err := bolt.Open(path, FilePermSecure, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, persistenceError("open", path, err)
	}

	s := &BoltStore{db: db, log: log.Named("storage")}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, persistenceError("initialize", path, err)
	}
	return s, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *BoltStore) Path() string {
	return s.db.Path()
}

// initialize creates the bucket structure if missing
func (s *BoltStore) initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, VaultBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte(formatVersion)); err != nil {
			return err
		}
		created, _ := time.Now().UTC().MarshalBinary()
		return config.Put(ConfigCreated, created)
	})
}

// Exists reports whether a structure has been saved
func (s *BoltStore) Exists() bool {
	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(VaultBucket)
		found = b != nil && b.Get(StructureKey) != nil
		return nil
	})
	return found
}

// Load returns the stored structure
func (s *BoltStore) Load(ctx context.Context) (*vault.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(VaultBucket)
		if b == nil {
			return nil
		}
		// Make a copy since the slice is only valid during the transaction
		if v := b.Get(StructureKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError("read", s.Path(), err)
	}
	if data == nil {
		return nil, ErrNotFound
	}

	st, err := decodeStructure(data)
	if err != nil {
		return nil, persistenceError("decode", s.Path(), err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("vault loaded")
	return st, nil
}

// Save replaces the stored structure in a single transaction
func (s *BoltStore) Save(ctx context.Context, st *vault.Structure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(VaultBucket).Put(StructureKey, data); err != nil {
			return err
		}
		modified, _ := time.Now().UTC().MarshalBinary()
		return tx.Bucket(ConfigBucket).Put(ConfigModified, modified)
	})
	if err != nil {
		return persistenceError("write", s.Path(), err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("vault saved")
	return nil
}

// GetModified retrieves the last modified timestamp
func (s *BoltStore) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// Compact creates a compacted copy of the database, removing unused space.
// Every save rewrites the whole structure, so freed pages accumulate.
func (s *BoltStore) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, FilePermSecure, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen database
	s.db, err = bolt.Open(srcPath, FilePermSecure, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	s.log.Debug().Msg("vault database compacted")
	return nil
}
